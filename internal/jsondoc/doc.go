// Package jsondoc models client configuration documents as ordered JSON
// objects.
//
// Client configuration files are owned by the user. vibecheck only touches
// one sub-tree per dialect, so everything else has to survive a
// parse/serialize round trip with its keys in their original order and its
// numbers byte-for-byte intact. [Object] keeps insertion order (backed by
// github.com/wk8/go-ordered-map), nested objects decode to *Object, arrays to
// []any and numbers to json.Number.
//
// Values stored in an Object are restricted to the JSON data model:
// nil, bool, string, json.Number, []any and *Object. Use [Strings] and
// [StringMap] to convert Go values built by callers.
package jsondoc
