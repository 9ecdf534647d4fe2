package install

import (
	"bytes"
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/tidwall/jsonc"

	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/jsondoc"
)

// Preview renders the change from the file's current bytes to after as a
// line diff and an RFC 7386 merge patch. A nil before means the file does not
// exist yet. before is diffed as stored, so comments and trailing commas a
// write would drop show up as removed lines.
func Preview(path string, before []byte, after *jsondoc.Object) (diff, patch string, err error) {
	newText, err := jsondoc.MarshalIndent(after)
	if err != nil {
		return "", "", err
	}

	oldJSON := []byte("{}")
	if len(bytes.TrimSpace(before)) > 0 {
		oldJSON = jsonc.ToJSON(before)
	}
	p, err := jsonpatch.CreateMergePatch(oldJSON, newText)
	if err != nil {
		return "", "", errors.Wrap(err, "computing merge patch")
	}
	pretty, err := jsondoc.Parse(p)
	if err != nil {
		return "", "", errors.Wrap(err, "decoding merge patch")
	}
	patchText, err := jsondoc.MarshalIndent(pretty)
	if err != nil {
		return "", "", err
	}

	return LineDiff(path, string(before), string(newText)), string(patchText), nil
}

// LineDiff returns a whole-file line diff with "-", "+" and " " prefixes
// under ---/+++ headers, or "" when the texts are equal.
func LineDiff(path, before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", path, path)
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
