// Package install runs the read, merge, write transaction that registers the
// vibe-check MCP server with a client, and its inverse.
//
// One transaction touches one client file. The file is read immediately
// before merging and written at most once immediately after; an unchanged or
// conflicting document is never written, so re-running an install is safe.
package install
