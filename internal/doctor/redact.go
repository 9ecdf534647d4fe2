// Package doctor diagnoses client configuration files and masks secrets for display.
package doctor

import (
	"net/url"
	"strings"
	"unicode"
)

// secretWords are the words of an env var or query parameter name that mark
// its value as sensitive. Names are split on any non-alphanumeric rune, so
// OPENAI_API_KEY matches on "key" while KEYBOARD_LAYOUT does not match at all.
var secretWords = map[string]bool{
	"token":       true,
	"key":         true,
	"apikey":      true,
	"secret":      true,
	"password":    true,
	"passwd":      true,
	"auth":        true,
	"bearer":      true,
	"credential":  true,
	"credentials": true,
	"private":     true,
}

// tokenPrefixes maps well-known credential prefixes to the issuer. A value
// starting with one of them is masked whatever its key is called.
var tokenPrefixes = []struct {
	prefix, issuer string
}{
	{"sk-ant-", "Anthropic"},
	{"sk-or-", "OpenRouter"},
	{"sk-", "OpenAI"},
	{"AIza", "Google"},
	{"ghp_", "GitHub"},
	{"gho_", "GitHub"},
	{"ghu_", "GitHub"},
	{"ghs_", "GitHub"},
	{"ghr_", "GitHub"},
	{"github_pat_", "GitHub"},
	{"glpat-", "GitLab"},
	{"AKIA", "AWS"},
	{"xoxa-", "Slack"},
	{"xoxb-", "Slack"},
	{"xoxp-", "Slack"},
	{"xoxr-", "Slack"},
}

// MaskSecrets returns a copy of env with sensitive values masked.
func MaskSecrets(env map[string]string) map[string]string {
	if env == nil {
		return nil
	}
	masked := make(map[string]string, len(env))
	for k, v := range env {
		if ShouldMask(k) || ContainsTokenPrefix(v) {
			v = MaskValue(v)
		}
		masked[k] = v
	}
	return masked
}

// MaskValue hides all but the last four characters of value. Values of four
// characters or fewer are replaced entirely.
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// MaskURL masks the password in the user info and the values of secret query
// parameters, e.g. http://127.0.0.1:2091/mcp?api_key=.... Unparseable input is
// returned unchanged.
func MaskURL(rawURL string) string {
	if rawURL == "" {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	changed := false
	if u.User != nil {
		if pw, ok := u.User.Password(); ok && pw != "" {
			u.User = url.UserPassword(u.User.Username(), MaskValue(pw))
			changed = true
		}
	}
	if u.RawQuery != "" {
		q := u.Query()
		for name, values := range q {
			for i, v := range values {
				if ShouldMask(name) || ContainsTokenPrefix(v) {
					values[i] = MaskValue(v)
					changed = true
				}
			}
		}
		if changed {
			u.RawQuery = q.Encode()
		}
	}
	if !changed {
		return rawURL
	}
	return u.String()
}

// ShouldMask reports whether the name of an env var or parameter suggests a
// sensitive value. Matching is case-insensitive and word based.
func ShouldMask(name string) bool {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if secretWords[w] {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix reports whether value starts with a known credential prefix.
func ContainsTokenPrefix(value string) bool {
	return TokenIssuer(value) != ""
}

// TokenIssuer names the service that issued value, or returns "" when value
// does not start with a known credential prefix.
func TokenIssuer(value string) string {
	for _, p := range tokenPrefixes {
		if strings.HasPrefix(value, p.prefix) {
			return p.issuer
		}
	}
	return ""
}
