// Package merge decides how a managed entry is installed into, or removed
// from, a client configuration document.
//
// The engine is dialect-agnostic: callers name the sub-tree that holds
// entries (for example ["mcpServers"] or ["servers"]) and pass an already
// shaped candidate entry. The engine never mutates its input. An entry whose
// ownership sentinel differs from the caller's is never modified or removed;
// the result reports why instead.
package merge

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/jsondoc"
)

// SentinelField is the key that carries the ownership sentinel in every
// entry vibecheck writes.
const SentinelField = "managedBy"

// Result is the outcome of a merge or remove decision.
type Result struct {
	// Next is the document to persist. It is the unmodified input document
	// when Changed is false.
	Next *jsondoc.Object

	// Changed reports whether Next differs from the input.
	Changed bool

	// Reason explains why an unmanaged entry blocked the operation.
	// It is empty unless the operation was skipped because of a conflict.
	Reason string
}

// Skipped reports whether an unmanaged entry blocked the operation.
func (r Result) Skipped() bool {
	return r.Reason != ""
}

// Request identifies the entry an operation targets.
type Request struct {
	// Path is the chain of keys leading to the object that holds entries.
	Path []string

	// ID is the key of the entry inside that object.
	ID string

	// Sentinel is the ownership marker stamped into and expected on the entry.
	Sentinel string
}

func (r Request) validate() error {
	if len(r.Path) == 0 {
		return errors.New("merge: entries path is required")
	}
	if r.ID == "" {
		return errors.New("merge: entry id is required")
	}
	if r.Sentinel == "" {
		return errors.New("merge: ownership sentinel is required")
	}
	return nil
}

// Apply installs candidate under req.ID.
//
// The decision is:
//  1. an existing entry not carrying req.Sentinel blocks the merge (Reason set);
//  2. an existing entry deep-equal to the stamped candidate is a no-op;
//  3. otherwise the entry is set (an existing key keeps its position, a new
//     key is appended) and Changed is true.
//
// A non-object value anywhere along req.Path yields errors.ErrMalformedConfig.
func Apply(doc *jsondoc.Object, candidate *jsondoc.Object, req Request) (Result, error) {
	if err := req.validate(); err != nil {
		return Result{}, err
	}
	if doc == nil {
		return Result{}, errors.New("merge: document is nil")
	}
	if candidate == nil {
		return Result{}, errors.New("merge: candidate entry is nil")
	}

	// Reject bad shapes before copying anything.
	if _, err := lookup(doc, req.Path); err != nil {
		return Result{}, err
	}

	stamped := Stamp(candidate, req.Sentinel)

	next := doc.Clone()
	entries, err := ensure(next, req.Path)
	if err != nil {
		return Result{}, err
	}

	if existing, ok := entries.Get(req.ID); ok {
		if owner, managed := ownedBy(existing, req.Sentinel); !managed {
			return Result{Next: doc, Reason: conflictReason(req, owner)}, nil
		}
		if jsondoc.Equal(existing, stamped) {
			return Result{Next: doc}, nil
		}
	}

	entries.Set(req.ID, stamped)
	return Result{Next: next, Changed: true}, nil
}

// Remove deletes the entry under req.ID if it carries req.Sentinel.
// A missing entry, or a missing entries object, is a no-op. An unmanaged
// entry is left alone and Reason explains why. The entries object itself is
// kept even when it becomes empty.
func Remove(doc *jsondoc.Object, req Request) (Result, error) {
	if err := req.validate(); err != nil {
		return Result{}, err
	}
	if doc == nil {
		return Result{}, errors.New("merge: document is nil")
	}

	entries, err := lookup(doc, req.Path)
	if err != nil {
		return Result{}, err
	}
	if entries == nil {
		return Result{Next: doc}, nil
	}

	existing, ok := entries.Get(req.ID)
	if !ok {
		return Result{Next: doc}, nil
	}
	if owner, managed := ownedBy(existing, req.Sentinel); !managed {
		return Result{Next: doc, Reason: conflictReason(req, owner)}, nil
	}

	next := doc.Clone()
	nextEntries, err := lookup(next, req.Path)
	if err != nil {
		return Result{}, err
	}
	nextEntries.Delete(req.ID)
	return Result{Next: next, Changed: true}, nil
}

// State describes an entry as found in a document.
type State string

const (
	// StateAbsent means no entry exists under the id.
	StateAbsent State = "absent"

	// StateManaged means the entry carries the expected sentinel.
	StateManaged State = "managed"

	// StateUnmanaged means the entry exists but is owned by someone else.
	StateUnmanaged State = "unmanaged"
)

// Inspect reports the state of the entry under req.ID without changing doc.
// The entry itself is returned when present.
func Inspect(doc *jsondoc.Object, req Request) (State, any, error) {
	if err := req.validate(); err != nil {
		return "", nil, err
	}
	if doc == nil {
		return "", nil, errors.New("merge: document is nil")
	}

	entries, err := lookup(doc, req.Path)
	if err != nil {
		return "", nil, err
	}
	if entries == nil {
		return StateAbsent, nil, nil
	}

	existing, ok := entries.Get(req.ID)
	if !ok {
		return StateAbsent, nil, nil
	}
	if _, managed := ownedBy(existing, req.Sentinel); !managed {
		return StateUnmanaged, existing, nil
	}
	return StateManaged, existing, nil
}

// Stamp returns a copy of entry with the ownership sentinel set.
// An existing sentinel field keeps its position.
func Stamp(entry *jsondoc.Object, sentinel string) *jsondoc.Object {
	stamped := entry.Clone()
	stamped.Set(SentinelField, sentinel)
	return stamped
}

// ownedBy returns the sentinel found on entry and whether it matches.
func ownedBy(entry any, sentinel string) (string, bool) {
	obj, ok := entry.(*jsondoc.Object)
	if !ok {
		return "", false
	}
	owner := obj.String(SentinelField)
	return owner, owner == sentinel
}

func conflictReason(req Request, owner string) string {
	if owner == "" {
		return fmt.Sprintf("existing entry %q is not managed by this tool (no %s field)", req.ID, SentinelField)
	}
	return fmt.Sprintf("existing entry %q is not managed by this tool (%s=%q)", req.ID, SentinelField, owner)
}

// lookup walks path and returns the entries object, or nil if any step is absent.
func lookup(doc *jsondoc.Object, path []string) (*jsondoc.Object, error) {
	cur := doc
	for i, key := range path {
		child, ok, err := cur.Object(key)
		if err != nil {
			return nil, shapeError(path[:i+1], err)
		}
		if !ok {
			return nil, nil
		}
		cur = child
	}
	return cur, nil
}

// ensure walks path, creating empty objects for missing steps.
func ensure(doc *jsondoc.Object, path []string) (*jsondoc.Object, error) {
	cur := doc
	for i, key := range path {
		child, ok, err := cur.Object(key)
		if err != nil {
			return nil, shapeError(path[:i+1], err)
		}
		if !ok {
			child = jsondoc.NewObject()
			cur.Set(key, child)
		}
		cur = child
	}
	return cur, nil
}

func shapeError(path []string, err error) error {
	return errors.Mark(errors.Wrapf(err, "%q must be an object", strings.Join(path, ".")), errors.ErrMalformedConfig)
}
