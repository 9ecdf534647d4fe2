package doctor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"

	"github.com/thoreinstein/vibecheck/internal/errors"
)

// probe is a raw configuration file prepared for gjson queries.
type probe struct {
	json  []byte
	valid bool
	empty bool
}

// newProbe strips comments and trailing commas from data. jsonc keeps byte
// offsets stable, so syntax positions still refer to the original file.
func newProbe(data []byte) probe {
	if len(bytes.TrimSpace(data)) == 0 {
		return probe{empty: true, valid: true, json: []byte("{}")}
	}
	out := jsonc.ToJSON(data)
	return probe{json: out, valid: gjson.ValidBytes(out)}
}

// root returns the top-level value.
func (p probe) root() gjson.Result {
	return gjson.ParseBytes(p.json)
}

// get returns the value at the key path. Keys are escaped, so ids
// containing dots or wildcards are looked up literally.
func (p probe) get(keys ...string) gjson.Result {
	return gjson.GetBytes(p.json, gjsonPath(keys...))
}

// syntaxError describes why the probe is invalid, with 1-indexed position.
func (p probe) syntaxError() string {
	var v any
	err := json.Unmarshal(p.json, &v)
	if err == nil {
		return ""
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := offsetToLineCol(p.json, int(syntaxErr.Offset))
		return fmt.Sprintf("JSON syntax error at line %d, column %d: %s", line, col, syntaxErr.Error())
	}
	return fmt.Sprintf("JSON error: %v", err)
}

// hasSecrets reports whether any entry under entriesPath carries an env or
// header value that would be masked for display.
func (p probe) hasSecrets(entriesPath []string) bool {
	found := false
	p.get(entriesPath...).ForEach(func(_, entry gjson.Result) bool {
		for _, field := range []string{"env", "headers"} {
			entry.Get(field).ForEach(func(k, v gjson.Result) bool {
				if ShouldMask(k.String()) || ContainsTokenPrefix(v.String()) {
					found = true
				}
				return !found
			})
		}
		return !found
	})
	return found
}

// kindOf names the JSON kind of r for messages.
func kindOf(r gjson.Result) string {
	switch {
	case r.IsArray():
		return "array"
	case r.IsObject():
		return "object"
	case r.IsBool():
		return "boolean"
	}
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	}
	return "unknown"
}

func gjsonPath(keys ...string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = gjson.Escape(k)
	}
	return strings.Join(parts, ".")
}

// offsetToLineCol converts a byte offset to line and column numbers.
// Lines and columns are 1-indexed.
func offsetToLineCol(data []byte, offset int) (line, col int) {
	if offset > len(data) {
		offset = len(data)
	}
	if offset < 0 {
		offset = 0
	}

	line = 1
	lineStart := 0

	for i := range offset {
		if data[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}

	col = offset - lineStart + 1
	return line, col
}
