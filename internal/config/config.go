// Package config provides configuration management for vibecheck using Viper.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/paths"
	"github.com/thoreinstein/vibecheck/pkg/fileutil"
)

// AppName is the application name used for config file naming.
const AppName = paths.AppName

// EnvPrefix prefixes every environment variable override, e.g.
// VIBECHECK_HTTP_PORT or VIBECHECK_CLIENTS_CURSOR_CONFIG_PATH.
const EnvPrefix = "VIBECHECK"

// ConfigDirEnv overrides the directory searched for config.yaml.
const ConfigDirEnv = EnvPrefix + "_CONFIG_DIR"

// Defaults.
const (
	DefaultEntryID         = "vibe-check-mcp"
	DefaultSentinel        = "vibe-check-mcp-cli"
	DefaultPackage         = "@pv-bhat/vibe-check-mcp"
	DefaultHTTPPort        = 2091
	DefaultBackupRetention = 5
)

// DefaultEnvPassthrough lists the provider settings copied into stdio entries.
var DefaultEnvPassthrough = []string{
	"GEMINI_API_KEY",
	"OPENAI_API_KEY",
	"ANTHROPIC_API_KEY",
	"OPENROUTER_API_KEY",
	"DEFAULT_LLM_PROVIDER",
	"DEFAULT_MODEL",
}

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version" json:"version"`

	// EntryID is the key the managed entry is stored under.
	EntryID string `mapstructure:"entry_id" yaml:"entry_id" json:"entry_id"`

	// Sentinel marks entries written by this tool.
	Sentinel string `mapstructure:"sentinel" yaml:"sentinel" json:"sentinel"`

	// Package is the npm package launched for stdio clients, optionally
	// pinned to PackageVersion.
	Package        string `mapstructure:"package" yaml:"package" json:"package"`
	PackageVersion string `mapstructure:"package_version" yaml:"package_version,omitempty" json:"package_version,omitempty"`

	HTTPPort        int      `mapstructure:"http_port" yaml:"http_port" json:"http_port"`
	BackupRetention int      `mapstructure:"backup_retention" yaml:"backup_retention" json:"backup_retention"`
	EnvPassthrough  []string `mapstructure:"env_passthrough" yaml:"env_passthrough" json:"env_passthrough"`

	Clients map[string]ClientOverride `mapstructure:"clients" yaml:"clients,omitempty" json:"clients,omitempty"`
}

// ClientOverride contains configuration overrides for a specific client.
type ClientOverride struct {
	ConfigPath string `mapstructure:"config_path" yaml:"config_path,omitempty" json:"config_path,omitempty"`
}

// ClientConfigPath returns the configured path override for client, or "".
func (c *Config) ClientConfigPath(client string) string {
	if c == nil || c.Clients == nil {
		return ""
	}
	return c.Clients[client].ConfigPath
}

// Default returns a configuration with every default applied.
func Default() *Config {
	return &Config{
		Version:         1,
		EntryID:         DefaultEntryID,
		Sentinel:        DefaultSentinel,
		Package:         DefaultPackage,
		HTTPPort:        DefaultHTTPPort,
		BackupRetention: DefaultBackupRetention,
		EnvPassthrough:  append([]string(nil), DefaultEnvPassthrough...),
	}
}

// Dir returns the directory searched for config.yaml: $VIBECHECK_CONFIG_DIR
// when set, otherwise $XDG_CONFIG_HOME/vibecheck.
func Dir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return paths.AppConfigDir()
}

// DefaultConfigPath returns the path `config init` writes to.
func DefaultConfigPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Init resets Viper and registers defaults, search paths and environment
// overrides. Call it once at startup before Load.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(Dir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault("version", d.Version)
	viper.SetDefault("entry_id", d.EntryID)
	viper.SetDefault("sentinel", d.Sentinel)
	viper.SetDefault("package", d.Package)
	viper.SetDefault("package_version", "")
	viper.SetDefault("http_port", d.HTTPPort)
	viper.SetDefault("backup_retention", d.BackupRetention)
	viper.SetDefault("env_passthrough", d.EnvPassthrough)
}

// Load reads the configuration file and validates the result.
// If path is provided, it reads from that specific file and a missing file
// is an error. If path is empty, the default location is searched and a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load without a file: defaults apply.
		case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
			return nil, errors.Wrapf(errors.ErrNotFound, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(errors.Mark(err, errors.ErrInvalidConfig), "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.Mark(err, errors.ErrInvalidConfig), "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Mark(errs[0], errors.ErrInvalidConfig), "validating config")
	}

	return &cfg, nil
}

// Save writes cfg as YAML to path with owner-only permissions.
func Save(fsys afero.Fs, path string, cfg *Config) error {
	if err := fsys.MkdirAll(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Dir(path))
	}
	return fileutil.AtomicWriteYAML(fsys, path, cfg)
}
