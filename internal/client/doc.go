// Package client defines the adapter contract for MCP client configuration
// files and the behavior every dialect shares.
//
// Each supported client (Claude Desktop, Cursor, Windsurf, VS Code) lives in
// its own subpackage and differs only in three ways: where its file is
// found, which key holds the server entries, and how an entry is shaped for
// a transport. Everything else (reading, ownership-safe merging, validation
// and atomic writing) is implemented once by Base.
package client
