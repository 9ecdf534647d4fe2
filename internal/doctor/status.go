package doctor

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"

	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/jsondoc"
	"github.com/thoreinstein/vibecheck/internal/merge"
	"github.com/thoreinstein/vibecheck/pkg/fileutil"
)

// States reported by Status in addition to the merge states.
const (
	StateNotFound  = "not-found"
	StateMalformed = "malformed"
)

// ClientStatus describes the managed entry in one client's configuration.
// Secret env values and URL credentials are masked.
type ClientStatus struct {
	Client      string            `json:"client"`
	DisplayName string            `json:"display_name"`
	Path        string            `json:"path,omitempty"`
	Exists      bool              `json:"exists"`
	State       string            `json:"state"`
	Owner       string            `json:"owner,omitempty"`
	Transport   string            `json:"transport,omitempty"`
	Command     string            `json:"command,omitempty"`
	Args        []string          `json:"args,omitempty"`
	URL         string            `json:"url,omitempty"`
	Env         map[string]string `json:"env,omitempty"`
	Problem     string            `json:"problem,omitempty"`
}

// Status inspects the entry id in every target.
func Status(fsys afero.Fs, targets []Target, id, sentinel string) []ClientStatus {
	out := make([]ClientStatus, 0, len(targets))
	for _, t := range targets {
		out = append(out, status(fsys, t, id, sentinel))
	}
	return out
}

func status(fsys afero.Fs, t Target, id, sentinel string) ClientStatus {
	st := ClientStatus{Client: t.Client, DisplayName: t.DisplayName, Path: t.Path}
	if !t.Located() {
		st.State = StateNotFound
		if t.LocateErr != nil {
			st.Problem = t.LocateErr.Error()
		}
		return st
	}

	data, err := fileutil.ReadFileWithLimit(fsys, t.Path)
	if errors.Is(err, fs.ErrNotExist) {
		st.State = string(merge.StateAbsent)
		return st
	}
	st.Exists = true
	if err != nil {
		st.State = StateMalformed
		st.Problem = err.Error()
		return st
	}

	p := newProbe(data)
	if !p.valid {
		st.State = StateMalformed
		st.Problem = p.syntaxError()
		return st
	}
	doc, err := jsondoc.Parse(p.json)
	if err != nil {
		st.State = StateMalformed
		st.Problem = err.Error()
		return st
	}

	state, _, err := merge.Inspect(doc, merge.Request{Path: t.EntriesPath, ID: id, Sentinel: sentinel})
	if err != nil {
		st.State = StateMalformed
		st.Problem = err.Error()
		return st
	}
	st.State = string(state)
	if state == merge.StateAbsent {
		return st
	}

	describeEntry(&st, p.get(append(append([]string(nil), t.EntriesPath...), id)...))
	if state == merge.StateUnmanaged {
		if owner := st.Owner; owner != "" {
			st.Problem = fmt.Sprintf("owned by %q", owner)
		} else {
			st.Problem = "not managed by vibecheck"
		}
	}
	return st
}

// describeEntry fills the display fields from a raw entry.
func describeEntry(st *ClientStatus, entry gjson.Result) {
	st.Owner = entry.Get(gjsonPath(merge.SentinelField)).String()

	url := entry.Get("url").String()
	if url == "" {
		url = entry.Get("serverUrl").String()
	}
	switch t := entry.Get("type").String(); {
	case t != "":
		st.Transport = t
	case url != "":
		st.Transport = "http"
	case entry.Get("command").Exists():
		st.Transport = "stdio"
	}

	st.URL = MaskURL(url)
	st.Command = entry.Get("command").String()
	for _, a := range entry.Get("args").Array() {
		arg := a.String()
		if ContainsTokenPrefix(arg) {
			arg = MaskValue(arg)
		}
		st.Args = append(st.Args, arg)
	}

	env := map[string]string{}
	entry.Get("env").ForEach(func(k, v gjson.Result) bool {
		env[k.String()] = v.String()
		return true
	})
	if len(env) > 0 {
		st.Env = MaskSecrets(env)
	}
}

// Summary returns a one-line description of st for text output.
func (st ClientStatus) Summary() string {
	switch st.State {
	case StateNotFound:
		return "no configuration found"
	case string(merge.StateAbsent):
		return "not installed"
	case StateMalformed:
		return "malformed: " + st.Problem
	case string(merge.StateUnmanaged):
		return "present but " + st.Problem
	}
	parts := []string{"managed"}
	if st.Transport != "" {
		parts = append(parts, st.Transport)
	}
	if st.URL != "" {
		parts = append(parts, st.URL)
	} else if st.Command != "" {
		parts = append(parts, strings.TrimSpace(st.Command+" "+strings.Join(st.Args, " ")))
	}
	return strings.Join(parts, ", ")
}
