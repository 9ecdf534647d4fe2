// Package cli holds the client registry shared by the vibecheck commands.
package cli

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/thoreinstein/vibecheck/internal/client"
	"github.com/thoreinstein/vibecheck/internal/client/claude"
	"github.com/thoreinstein/vibecheck/internal/client/cursor"
	"github.com/thoreinstein/vibecheck/internal/client/vscode"
	"github.com/thoreinstein/vibecheck/internal/client/windsurf"
	"github.com/thoreinstein/vibecheck/internal/errors"
)

// ErrNoClientsDetected is returned when no client configuration exists on
// this machine and none was named explicitly.
var ErrNoClientsDetected = errors.New("no client configurations detected")

// maxSuggestionDistance bounds how different a typo may be and still get a
// "did you mean" hint.
const maxSuggestionDistance = 3

// Registry maps client names to adapters. It is built once at startup and
// passed to the commands that need it.
type Registry struct {
	adapters map[client.Type]client.Adapter
	order    []client.Type

	// configPath returns a user-configured file for a client, or "".
	configPath func(name string) string
}

// NewRegistry returns a registry holding every supported client, each
// configured with opts.
func NewRegistry(opts ...client.Option) *Registry {
	return NewRegistryFrom(
		claude.New(opts...),
		cursor.New(opts...),
		windsurf.New(opts...),
		vscode.New(opts...),
	)
}

// NewRegistryFrom returns a registry over the given adapters, in order.
func NewRegistryFrom(adapters ...client.Adapter) *Registry {
	r := &Registry{adapters: make(map[client.Type]client.Adapter, len(adapters))}
	for _, a := range adapters {
		if _, dup := r.adapters[a.Name()]; dup {
			continue
		}
		r.adapters[a.Name()] = a
		r.order = append(r.order, a.Name())
	}
	return r
}

// Get returns the adapter for name. Unknown names yield
// errors.ErrUnknownClient, with the closest known name suggested.
func (r *Registry) Get(name string) (client.Adapter, error) {
	key := client.Type(strings.ToLower(strings.TrimSpace(name)))
	if a, ok := r.adapters[key]; ok {
		return a, nil
	}

	err := errors.Wrapf(errors.ErrUnknownClient, "%q (valid: %s)", name, strings.Join(r.Names(), ", "))
	if guess := Suggest(string(key), r.Names()); guess != "" {
		return nil, errors.NewUserError(err, "Did you mean: "+guess+"?")
	}
	return nil, err
}

// SetConfigPaths installs the per-client path overrides used by Detected and
// ConfigPath. fn may be nil.
func (r *Registry) SetConfigPaths(fn func(name string) string) {
	r.configPath = fn
}

// ConfigPath returns the configured override for a, or "".
func (r *Registry) ConfigPath(a client.Adapter) string {
	if r.configPath == nil {
		return ""
	}
	return r.configPath(string(a.Name()))
}

// All returns every adapter in registration order.
func (r *Registry) All() []client.Adapter {
	out := make([]client.Adapter, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.adapters[name])
	}
	return out
}

// Names returns the registered client names in order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, string(name))
	}
	return out
}

// Detected returns the adapters whose configuration file exists, or that
// have a configured path override.
func (r *Registry) Detected() []client.Adapter {
	var out []client.Adapter
	for _, a := range r.All() {
		if r.ConfigPath(a) != "" {
			out = append(out, a)
			continue
		}
		if _, err := a.Locate(""); err == nil {
			out = append(out, a)
		}
	}
	return out
}

// Resolve returns adapters for names. With no names it returns the detected
// clients, or ErrNoClientsDetected. The value "all" selects every client.
func (r *Registry) Resolve(names []string) ([]client.Adapter, error) {
	if len(names) == 0 {
		detected := r.Detected()
		if len(detected) == 0 {
			return nil, ErrNoClientsDetected
		}
		return detected, nil
	}

	out := make([]client.Adapter, 0, len(names))
	seen := make(map[client.Type]bool, len(names))
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			return r.All(), nil
		}
		a, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		if seen[a.Name()] {
			continue
		}
		seen[a.Name()] = true
		out = append(out, a)
	}
	return out, nil
}

// Suggest returns the candidate closest to name, or "" if none is close.
func Suggest(name string, candidates []string) string {
	best, bestDist := "", maxSuggestionDistance+1
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
