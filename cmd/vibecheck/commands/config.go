package commands

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/vibecheck/internal/config"
	"github.com/thoreinstein/vibecheck/internal/editor"
	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/validator"
	"github.com/thoreinstein/vibecheck/pkg/fileutil"
)

// newEditor returns the editor used by `config edit`. Tests replace it.
var newEditor = editor.New

var (
	configInitForce    bool
	configShowJSON     bool
	configValidateJSON bool
)

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing configuration file")
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output as JSON")
	configValidateCmd.Flags().BoolVar(&configValidateJSON, "json", false, "output as JSON")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage vibecheck configuration",
	Long: `Manage vibecheck configuration stored in config.yaml under the user
configuration directory (override with VIBECHECK_CONFIG_DIR).

Every key can also be set through the environment, e.g.
VIBECHECK_HTTP_PORT=3000. Without a subcommand, shows the effective
configuration.`,
	Example: `  vibecheck config init
  vibecheck config get http_port
  vibecheck config validate

  See Also: vibecheck doctor`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigShowWithWriter(cmd.OutOrStdout())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigInitWithWriter(cmd.OutOrStdout())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Show the configuration in effect: defaults, overlaid by the file, overlaid by the environment.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigShowWithWriter(cmd.OutOrStdout())
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Supports dot notation for nested keys. List values are printed one per line.`,
	Example: `  vibecheck config get entry_id
  vibecheck config get clients.cursor.config_path`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigGetWithWriter(args[0], cmd.OutOrStdout())
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a configuration file for errors",
	Long: `Check a configuration file and report every invalid value, plus settings
that are valid but probably unintended. Defaults to the active config.yaml.

Exits with status 1 when the file has errors.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigPath()
		if len(args) == 1 {
			path = args[0]
		}
		return runConfigValidateWithWriter(path, cmd.OutOrStdout())
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit [client]",
	Short: "Open a configuration file in $EDITOR",
	Long: `Open vibecheck's config.yaml in your editor, or with a client name, that
client's MCP configuration file.

Uses $EDITOR, then $VISUAL, then nano or vi. Edited client files are not
checked on save; run vibecheck doctor afterwards.`,
	Example: `  vibecheck config edit
  EDITOR="code --wait" vibecheck config edit cursor`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigEdit(cmd, args, newEditor())
	},
}

func runConfigEdit(cmd *cobra.Command, args []string, ed *editor.Editor) error {
	path := config.DefaultConfigPath()
	if len(args) == 1 {
		targets, err := clientFiles(args)
		if err != nil {
			return resolveError(err)
		}
		path = targets[0].Path
	} else if !fileutil.Exists(appFs, path) {
		return errors.NewUserError(errors.Newf("config file not found at %s", path), "Run: vibecheck config init")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Location: %s\n", path)
	return ed.Open(cmd.Context(), path)
}

func runConfigInitWithWriter(w io.Writer) error {
	path := config.DefaultConfigPath()
	if fileutil.Exists(appFs, path) && !configInitForce {
		return errors.NewUserError(errors.Newf("%s already exists", path), "Use --force to overwrite it")
	}
	if err := config.Save(appFs, path, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}

func runConfigShowWithWriter(w io.Writer) error {
	cfg := currentConfig()
	if configShowJSON {
		return writeJSON(w, cfg)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return errors.Wrap(err, "encoding configuration")
	}
	return enc.Close()
}

func runConfigGetWithWriter(key string, w io.Writer) error {
	if !viper.IsSet(key) {
		fmt.Fprintln(w, "not set")
		return nil
	}

	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(w, item)
		}
	default:
		fmt.Fprintln(w, viper.GetString(key))
	}
	return nil
}

// runConfigValidateWithWriter checks the file at path on its own, without
// environment overrides, so every problem in it is reported.
func runConfigValidateWithWriter(path string, w io.Writer) error {
	format := validator.FormatText
	if configValidateJSON {
		format = validator.FormatJSON
	}
	reporter := validator.NewReporter(w, format)

	res := &validator.Result{}
	cfg, err := readConfigFile(appFs, path)
	switch {
	case errors.Is(err, errors.ErrNotFound):
		res.AddInfo("", "no configuration file; defaults apply", nil)
		res.Issues[0].Context = map[string]string{"file": path}
	case err != nil:
		res.AddError("", err.Error(), nil)
		res.Issues[0].Context = map[string]string{"file": path}
	default:
		res = config.Check(cfg)
	}

	if err := reporter.Report(res); err != nil {
		return err
	}
	if res.HasErrors() {
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}

// readConfigFile decodes path over the defaults.
func readConfigFile(fsys afero.Fs, path string) (*config.Config, error) {
	if !fileutil.Exists(fsys, path) {
		return nil, errors.Wrapf(errors.ErrNotFound, "config file not found at %s", path)
	}
	data, err := fileutil.ReadFileWithLimit(fsys, path)
	if err != nil {
		return nil, err
	}
	cfg := config.Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.Mark(err, errors.ErrInvalidConfig), "parsing YAML")
	}
	return cfg, nil
}
