package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/solitaire/internal/app"
	"github.com/specialistvlad/solitaire/internal/storage"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// usageArgs wraps an argument validator so its failures exit with code 2.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// env carries the streams and persistent flag values shared by commands.
type env struct {
	in   io.Reader
	out  io.Writer
	errW io.Writer

	configPath string
	logLevel   string
	logFormat  string
	layouts    string
	color      string
	dbPath     string
}

// Execute runs the solitaire command line. Logs go to errW.
func Execute(args []string, in io.Reader, out, errW io.Writer) error {
	e := &env{in: in, out: out, errW: errW}
	root := newRootCommand(e)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errW)

	err := root.Execute()
	if err != nil && strings.HasPrefix(err.Error(), "unknown command") {
		return usageError(err)
	}
	return err
}

func newRootCommand(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "solitaire",
		Short: "Play and validate solitaire variations",
		Long: `Solitaire deals and plays card solitaire variations. Each variation is
a layout file plus a module registering its rules; the whole operation
matrix is checked when the program starts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&e.configPath, "config", "", "Settings file (default $XDG_CONFIG_HOME/solitaire/config.toml)")
	flags.StringVar(&e.logLevel, "log-level", "", "Logging level: 'debug', 'info', 'warn' or 'error'")
	flags.StringVar(&e.logFormat, "log-format", "", "Log output format: 'text' or 'json'")
	flags.StringVar(&e.layouts, "layouts", "", "Directory of extra layout files")
	flags.StringVar(&e.color, "color", "", "Card colors: 'auto', 'always' or 'never'")
	flags.StringVar(&e.dbPath, "db", "", "Results database path")

	root.AddCommand(
		newListCommand(e),
		newValidateCommand(e),
		newDealCommand(e),
		newPlayCommand(e),
		newStatsCommand(e),
		newConfigCommand(e),
	)
	return root
}

func (e *env) settingsPath() string {
	if e.configPath != "" {
		return e.configPath
	}
	return app.SettingsPath()
}

// config loads the settings file and applies flag overrides.
func (e *env) config() (*app.Config, error) {
	settings, err := app.LoadSettings(e.settingsPath())
	if err != nil {
		return nil, err
	}
	cfg := settings.Config()
	for _, o := range []struct {
		flag string
		dst  *string
	}{
		{e.logLevel, &cfg.LogLevel},
		{e.logFormat, &cfg.LogFormat},
		{e.color, &cfg.Color},
	} {
		if o.flag != "" {
			*o.dst = strings.ToLower(o.flag)
		}
	}
	if e.layouts != "" {
		cfg.LayoutsPath = e.layouts
	}
	if e.dbPath != "" {
		cfg.DatabasePath = e.dbPath
	}

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		return nil, usageError(err)
	}
	slog.Debug("Configuration resolved.", "settings", e.settingsPath())
	return appConfig, nil
}

// app composes the application. Composition errors are returned unchanged.
func (e *env) app() (*app.App, error) {
	cfg, err := e.config()
	if err != nil {
		return nil, err
	}
	return app.NewApp(e.errW, cfg)
}

// store opens the results database, creating its directory.
func (e *env) store(cfg *app.Config) (*storage.Store, error) {
	if cfg.DatabasePath == "" {
		return nil, errors.New("no database path configured")
	}
	if cfg.DatabasePath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	return storage.Open(cfg.DatabasePath)
}
