package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/jsondoc"
)

func entry(t *testing.T, s string) *jsondoc.Object {
	t.Helper()
	obj, err := jsondoc.Parse([]byte(s))
	require.NoError(t, err)
	return obj
}

func TestDialects(t *testing.T) {
	assert.ElementsMatch(t, []string{"claude", "cursor", "vscode", "windsurf"}, Dialects())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
		entry   string
		wantErr bool
	}{
		{"claude stdio", "claude", `{"command":"npx","args":["-y","pkg"],"env":{}}`, false},
		{"claude stamped", "claude", `{"command":"npx","args":[],"env":{"K":"v"},"managedBy":"cli-v1"}`, false},
		{"claude http rejected", "claude", `{"url":"http://127.0.0.1:2091/mcp"}`, true},
		{"claude missing args", "claude", `{"command":"npx","env":{}}`, true},
		{"claude env not strings", "claude", `{"command":"npx","args":[],"env":{"K":1}}`, true},
		{"cursor stdio", "cursor", `{"command":"npx","args":[],"env":{}}`, false},
		{"cursor http", "cursor", `{"url":"http://127.0.0.1:2091/mcp"}`, false},
		{"cursor serverUrl rejected", "cursor", `{"serverUrl":"http://127.0.0.1:2091/mcp"}`, true},
		{"cursor bad scheme", "cursor", `{"url":"ftp://example.com"}`, true},
		{"windsurf http", "windsurf", `{"serverUrl":"https://example.com/mcp"}`, false},
		{"windsurf url rejected", "windsurf", `{"url":"https://example.com/mcp"}`, true},
		{"vscode stdio", "vscode", `{"type":"stdio","command":"npx","args":[],"env":{}}`, false},
		{"vscode stdio with dev", "vscode", `{"type":"stdio","command":"npx","args":[],"env":{},"dev":{"watch":"src/**/*.ts","debug":{"type":"node"}}}`, false},
		{"vscode http", "vscode", `{"type":"http","url":"http://127.0.0.1:2091/mcp"}`, false},
		{"vscode missing type", "vscode", `{"command":"npx","args":[],"env":{}}`, true},
		{"vscode empty dev", "vscode", `{"type":"http","url":"http://x","dev":{}}`, true},
		{"vscode type mismatch", "vscode", `{"type":"http","command":"npx","args":[],"env":{}}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.dialect, entry(t, tt.entry))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidEntry), "got %v", err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.NotEmpty(t, ve.Issues)
			assert.Contains(t, err.Error(), "invalid "+tt.dialect+" entry")
		})
	}
}

func TestValidate_IssuePath(t *testing.T) {
	err := Validate("claude", entry(t, `{"command":"npx","args":["ok",3],"env":{}}`))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Issues, 1)
	assert.Equal(t, "/args/1", ve.Issues[0].Path)
	assert.Equal(t, "type", ve.Issues[0].Keyword)
}

func TestValidate_UnknownDialect(t *testing.T) {
	err := Validate("zed", entry(t, `{}`))
	assert.True(t, errors.Is(err, ErrUnknownDialect))
}
