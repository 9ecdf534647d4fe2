// Package schema validates managed entries against the JSON Schema of each
// client dialect before they are merged into a configuration file.
package schema

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/jsondoc"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// ErrInvalidEntry is returned when an entry does not match its dialect's schema.
var ErrInvalidEntry = errors.New("entry does not match client schema")

// ErrUnknownDialect is returned for a dialect without an embedded schema.
var ErrUnknownDialect = errors.New("no schema for dialect")

var printer = message.NewPrinter(language.English)

var (
	mu       sync.Mutex
	compiled = map[string]*jsonschema.Schema{}
)

// Issue is a single schema violation.
type Issue struct {
	Path    string // instance location, e.g. "/args/0"
	Message string
	Keyword string
}

// ValidationError lists every violation found in an entry.
type ValidationError struct {
	Dialect string
	Issues  []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Path, issue.Message))
	}
	return fmt.Sprintf("invalid %s entry: %s", e.Dialect, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidEntry
}

// Dialects returns the names of the embedded schemas.
func Dialects() []string {
	entries, _ := schemaFS.ReadDir("schemas")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".schema.json"))
	}
	return names
}

// Validate checks entry against the schema for dialect.
// It returns a *ValidationError when the entry does not conform.
func Validate(dialect string, entry *jsondoc.Object) error {
	sch, err := load(dialect)
	if err != nil {
		return err
	}

	data, err := entry.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "encoding entry")
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "preparing entry for validation")
	}

	err = sch.Validate(inst)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return errors.Wrap(err, "validating entry")
	}
	return &ValidationError{Dialect: dialect, Issues: collect(ve)}
}

// load compiles the schema for dialect once.
func load(dialect string) (*jsonschema.Schema, error) {
	mu.Lock()
	defer mu.Unlock()

	if sch, ok := compiled[dialect]; ok {
		return sch, nil
	}

	name := dialect + ".schema.json"
	raw, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, errors.Wrapf(ErrUnknownDialect, "%s", dialect)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "unmarshaling %s", name)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, doc); err != nil {
		return nil, errors.Wrapf(err, "adding schema resource %s", name)
	}
	sch, err := c.Compile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "compiling %s", name)
	}
	compiled[dialect] = sch
	return sch, nil
}

// collect flattens the error tree into leaf issues, skipping the
// uninformative combinator keywords.
func collect(root *jsonschema.ValidationError) []Issue {
	var issues []Issue
	seen := map[string]bool{}

	var walk func(ve *jsonschema.ValidationError)
	walk = func(ve *jsonschema.ValidationError) {
		if len(ve.Causes) > 0 {
			for _, cause := range ve.Causes {
				walk(cause)
			}
			return
		}

		var keyword, msg string
		if ve.ErrorKind != nil {
			if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
				keyword = kw[len(kw)-1]
			}
			msg = ve.ErrorKind.LocalizedString(printer)
		}
		switch keyword {
		case "", "oneOf", "allOf", "$ref":
			return
		}

		path := ""
		if len(ve.InstanceLocation) > 0 {
			path = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		key := path + "|" + keyword + "|" + msg
		if seen[key] {
			return
		}
		seen[key] = true
		issues = append(issues, Issue{Path: path, Message: msg, Keyword: keyword})
	}
	walk(root)

	if len(issues) == 0 {
		issues = append(issues, Issue{Message: root.Error()})
	}
	return issues
}
