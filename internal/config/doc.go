// Package config provides configuration management for the vibecheck CLI.
//
// This package handles loading, saving, and validating the tool's own
// configuration file. It is distinct from the client configuration files
// that vibecheck edits, which are handled by the client adapters.
//
// # Configuration File
//
// The default configuration file location is ~/.config/vibecheck/config.yaml
// (or $VIBECHECK_CONFIG_DIR/config.yaml). Every key is optional:
//
//	version: 1
//	entry_id: vibe-check-mcp
//	sentinel: vibe-check-mcp-cli
//	package: "@pv-bhat/vibe-check-mcp"
//	package_version: 2.5.1        # optional pin
//	http_port: 2091
//	backup_retention: 5
//	env_passthrough: [GEMINI_API_KEY, OPENAI_API_KEY]
//	clients:
//	  vscode:
//	    config_path: ~/work/.vscode/mcp.json
//
// Each key can be overridden from the environment with the VIBECHECK_
// prefix, for example VIBECHECK_HTTP_PORT=3000.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//
// Load validates the result; [Validate] can also be called directly and
// returns every problem rather than the first.
package config
