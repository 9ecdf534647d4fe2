package doctor

import (
	"github.com/thoreinstein/vibecheck/internal/client"
	"github.com/thoreinstein/vibecheck/internal/errors"
)

// Target is one client configuration file under diagnosis.
type Target struct {
	Client      string
	DisplayName string

	// Path is the located file, or "" when no candidate exists.
	Path string

	// Candidates are the paths that were probed.
	Candidates []string

	// EntriesPath is the key path of the managed sub-tree in the document.
	EntriesPath []string

	// LocateErr is set when locating failed for a reason other than absence.
	LocateErr error
}

// Located reports whether a configuration file was found.
func (t Target) Located() bool {
	return t.Path != ""
}

// Locate resolves a Target per adapter. configPath returns the user override
// for a client name, or "".
func Locate(adapters []client.Adapter, configPath func(name string) string) []Target {
	targets := make([]Target, 0, len(adapters))
	for _, a := range adapters {
		desc := a.Describe()
		t := Target{
			Client:      string(desc.Name),
			DisplayName: desc.DisplayName,
			EntriesPath: desc.EntriesPath,
		}

		override := ""
		if configPath != nil {
			override = configPath(string(desc.Name))
		}
		path, err := a.Locate(override)
		var notFound *client.PathNotFoundError
		switch {
		case err == nil:
			t.Path = path
		case errors.As(err, &notFound):
			t.Candidates = notFound.Candidates
		default:
			t.LocateErr = err
		}
		targets = append(targets, t)
	}
	return targets
}
