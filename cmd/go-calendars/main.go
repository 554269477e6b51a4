package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-calendars/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// main is the application entry point.
// It delegates execution to runMain so that deferred calls (closing the log
// file) run before the process terminates.
func main() {
	os.Exit(runMain())
}

// runMain executes the command tree and maps the outcome to an exit code.
func runMain() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := &cli{}
	defer app.close()

	if err := newRootCmd(app).ExecuteContext(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// cli carries the state shared by every command once the root has run.
type cli struct {
	configPath string
	debug      bool

	settings *config.Settings
	logs     io.Closer
}

func (app *cli) close() {
	if app.logs != nil {
		_ = app.logs.Close() // Best effort close
	}
}

// newRootCmd builds the command tree. Settings and logging are initialized
// before any subcommand runs.
func newRootCmd(app *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           config.AppCommand,
		Short:         config.CmdShortRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.init(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&app.configPath, config.FlagConfig, "", config.FlagDescConfig)
	root.PersistentFlags().BoolVar(&app.debug, config.FlagDebug, false, config.FlagDescDebug)

	root.AddCommand(
		convertCmd(app),
		anniversaryCmd(app),
		newYearCmd(app),
		feedCmd(app),
		serveCmd(app),
		versionCmd(),
	)
	return root
}

// init loads the settings and installs the default logger.
func (app *cli) init(stderr io.Writer) error {
	s, err := config.LoadSettings(app.configPath)
	if err != nil {
		return err
	}
	app.settings = s

	logs, err := setupLogging(stderr, s.Log, app.debug)
	if err != nil {
		return err
	}
	app.logs = logs

	logStartupInfo()
	slog.Debug(config.MsgConfigLoaded,
		config.LogKeyComponent, config.CompCLI,
		config.LogKeyFile, app.configPath,
		config.LogKeyLevel, s.Log.Level,
	)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdVersion,
		Short: config.CmdShortVersion,
		Args:  cobra.NoArgs,
		// The version never needs settings, even broken ones.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), config.MsgVersionOutput,
				config.AppName,
				config.Version,
				config.Commit,
				config.Date,
				runtime.GOOS,
				runtime.GOARCH,
			)
		},
	}
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Debug(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger. Records go to stderr, so
// that command output on stdout stays clean, and to a rotated log file.
func setupLogging(stderr io.Writer, s config.LogSettings, debugMode bool) (io.Closer, error) {
	writers := []io.Writer{stderr}

	logPath := s.File
	if logPath == "" {
		var err error
		if logPath, err = getLogFilePath(); err != nil {
			fmt.Fprintf(stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	var rotator *lumberjack.Logger
	if logPath != "" {
		rotator = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    config.LogMaxSizeMB,
			MaxBackups: config.LogMaxBackups,
			MaxAge:     config.LogMaxAgeDays,
			Compress:   true,
		}
		writers = append(writers, rotator)
	}

	level := parseLevel(s.Level)
	if debugMode {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	out := io.MultiWriter(writers...)
	var handler slog.Handler
	if s.Format == config.LogFormatText {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	slog.SetDefault(slog.New(handler))

	if rotator == nil {
		return nil, nil
	}
	return rotator, nil
}

// parseLevel converts a configured level name to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
