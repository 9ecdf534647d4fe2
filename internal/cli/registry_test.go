package cli

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/thoreinstein/vibecheck/internal/client"
	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/paths"
	"github.com/thoreinstein/vibecheck/internal/store"
)

func testRegistry(t *testing.T, files ...string) *Registry {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		if err := afero.WriteFile(fs, f, []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return NewRegistry(
		client.WithEnv(paths.Env{GOOS: "linux", Home: "/home/dev", WorkDir: "/work"}),
		client.WithStore(store.New(store.WithFs(fs))),
	)
}

func TestRegistry_Get(t *testing.T) {
	tests := []struct {
		name     string
		arg      string
		wantName client.Type
		wantErr  bool
	}{
		{"claude", "claude", client.Claude, false},
		{"cursor", "cursor", client.Cursor, false},
		{"windsurf", "windsurf", client.Windsurf, false},
		{"vscode", "vscode", client.VSCode, false},
		{"case insensitive", "VSCode", client.VSCode, false},
		{"unknown", "zed", "", true},
		{"empty", "", "", true},
	}

	r := testRegistry(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := r.Get(tt.arg)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrUnknownClient) {
					t.Errorf("Get(%q) error = %v, want ErrUnknownClient", tt.arg, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get(%q) unexpected error: %v", tt.arg, err)
			}
			if a.Name() != tt.wantName {
				t.Errorf("Get(%q).Name() = %q, want %q", tt.arg, a.Name(), tt.wantName)
			}
		})
	}
}

func TestRegistry_GetSuggestsClosestName(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Get("curser")
	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Get(curser) error = %v, want ExitError", err)
	}
	if exitErr.Suggestion != "Did you mean: cursor?" {
		t.Errorf("Suggestion = %q", exitErr.Suggestion)
	}
	if !errors.Is(err, errors.ErrUnknownClient) {
		t.Error("suggestion must keep ErrUnknownClient in the chain")
	}
}

func TestRegistry_All(t *testing.T) {
	r := testRegistry(t)
	want := []string{"claude", "cursor", "windsurf", "vscode"}
	got := r.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if len(r.All()) != 4 {
		t.Errorf("All() returned %d adapters", len(r.All()))
	}
}

func TestRegistry_Resolve(t *testing.T) {
	r := testRegistry(t, "/home/dev/.cursor/mcp.json", "/work/.vscode/mcp.json")

	t.Run("detected", func(t *testing.T) {
		got, err := r.Resolve(nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0].Name() != client.Cursor || got[1].Name() != client.VSCode {
			t.Errorf("Resolve(nil) = %v", names(got))
		}
	})

	t.Run("explicit with duplicates", func(t *testing.T) {
		got, err := r.Resolve([]string{"claude", "claude", "windsurf"})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Errorf("Resolve() = %v", names(got))
		}
	})

	t.Run("all", func(t *testing.T) {
		got, err := r.Resolve([]string{"all"})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 4 {
			t.Errorf("Resolve(all) = %v", names(got))
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := r.Resolve([]string{"cursor", "nope"}); !errors.Is(err, errors.ErrUnknownClient) {
			t.Errorf("err = %v", err)
		}
	})
}

func TestRegistry_ResolveNothingDetected(t *testing.T) {
	r := testRegistry(t)
	if _, err := r.Resolve(nil); !errors.Is(err, ErrNoClientsDetected) {
		t.Errorf("err = %v, want ErrNoClientsDetected", err)
	}
}

func TestRegistry_DetectedWithConfigPath(t *testing.T) {
	r := testRegistry(t)
	r.SetConfigPaths(func(name string) string {
		if name == "vscode" {
			return "/elsewhere/mcp.json"
		}
		return ""
	})

	got := names(r.Detected())
	if len(got) != 1 || got[0] != client.VSCode {
		t.Errorf("Detected() = %v, want [vscode]", got)
	}

	vs, _ := r.Get("vscode")
	if p := r.ConfigPath(vs); p != "/elsewhere/mcp.json" {
		t.Errorf("ConfigPath(vscode) = %q", p)
	}
	cur, _ := r.Get("cursor")
	if p := r.ConfigPath(cur); p != "" {
		t.Errorf("ConfigPath(cursor) = %q, want empty", p)
	}
}

func TestSuggest(t *testing.T) {
	candidates := []string{"claude", "cursor", "windsurf", "vscode"}
	tests := map[string]string{
		"claud":    "claude",
		"vs-code":  "vscode",
		"windsurf": "windsurf",
		"emacs":    "",
	}
	for in, want := range tests {
		if got := Suggest(in, candidates); got != want {
			t.Errorf("Suggest(%q) = %q, want %q", in, got, want)
		}
	}
}

func names(adapters []client.Adapter) []client.Type {
	out := make([]client.Type, len(adapters))
	for i, a := range adapters {
		out[i] = a.Name()
	}
	return out
}

func TestRegistry_AllDescribeThemselves(t *testing.T) {
	for _, a := range testRegistry(t).All() {
		d := a.Describe()
		if d.DisplayName == "" {
			t.Errorf("%s: empty DisplayName", a.Name())
		}
		if d.Notes == "" {
			t.Errorf("%s: empty Notes", a.Name())
		}
		if len(d.PathHint) == 0 {
			t.Errorf("%s: no PathHint", a.Name())
		}
	}
}
