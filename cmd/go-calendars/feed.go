package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-calendars/internal/config"
	"github.com/tartampluch/go-calendars/internal/engine"
	"github.com/tartampluch/go-calendars/internal/i18n"
	"github.com/tartampluch/go-calendars/internal/server"
	"github.com/zalando/go-keyring"
)

// feedOptions are the command-line overrides of the feed settings.
type feedOptions struct {
	source string
	user   string
	lang   string
}

func (o *feedOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.source, config.FlagSource, "", config.FlagDescSource)
	cmd.Flags().StringVar(&o.user, config.FlagUser, "", config.FlagDescUser)
	cmd.Flags().StringVar(&o.lang, config.FlagLang, "", config.FlagDescLang)
}

func feedCmd(app *cli) *cobra.Command {
	var opts feedOptions
	var out string

	cmd := &cobra.Command{
		Use:   config.CmdFeed,
		Short: config.CmdShortFeed,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen := app.generator(opts)
			data, _, _, err := gen.RunSync(cmd.Context(), app.syncConfig(opts))
			if err != nil {
				return err
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, config.FilePermUserRW); err != nil {
				return fmt.Errorf("%s: %w", config.ErrWriteFile, err)
			}
			slog.Info(config.MsgFeedWritten,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyFile, out,
				config.LogKeySizeBytes, len(data),
			)
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&out, config.FlagOut, "", config.FlagDescOut)
	return cmd
}

func serveCmd(app *cli) *cobra.Command {
	var opts feedOptions
	var port string

	cmd := &cobra.Command{
		Use:   config.CmdServe,
		Short: config.CmdShortServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port == "" {
				port = app.settings.Server.Port
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			srv := server.NewCalendarServer(port)
			serverErr := make(chan error, config.ChannelBufferSize)
			go func() {
				serverErr <- srv.Start(ctx)
				cancel() // A failed listener stops the worker too.
			}()

			w := &worker{
				gen:      app.generator(opts),
				cfg:      app.syncConfig(opts),
				sink:     srv,
				interval: time.Duration(app.settings.Server.RefreshInterval) * time.Minute,
			}
			w.run(ctx)

			err := <-serverErr
			if err == nil {
				slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
			}
			return err
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&port, config.FlagPort, "", config.FlagDescPort)
	return cmd
}

// feedSink receives every successfully generated feed.
type feedSink interface {
	Update(data []byte)
}

// worker regenerates the feed on a fixed schedule.
type worker struct {
	gen      *engine.Generator
	cfg      engine.SyncConfig
	sink     feedSink
	interval time.Duration // DisabledInterval: generate once
}

// run generates the feed immediately, then on every tick until ctx is done.
func (w *worker) run(ctx context.Context) {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	w.sync(ctx)

	if w.interval <= config.DisabledInterval {
		log.Info(config.MsgWorkerOnce)
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, w.interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return
		case <-ticker.C:
			w.sync(ctx)
		}
	}
}

// sync runs one generation. A failure keeps the previous feed online.
func (w *worker) sync(ctx context.Context) {
	slog.Info(config.MsgSyncReq, config.LogKeyComponent, config.CompWorker)

	data, _, _, err := w.gen.RunSync(ctx, w.cfg)
	if err != nil {
		slog.Error(config.MsgSyncFailed,
			config.LogKeyComponent, config.CompWorker,
			config.LogKeyError, err,
		)
		return
	}
	w.sink.Update(data)
}

func (app *cli) generator(opts feedOptions) *engine.Generator {
	lang := opts.lang
	if lang == "" {
		lang = app.settings.Feed.Language
	}
	return &engine.Generator{
		Clock:     engine.RealClock{},
		Fetcher:   engine.NewHTTPFetcher(),
		Localizer: i18n.New(lang),
	}
}

// syncConfig assembles the engine configuration from the settings, the
// command-line overrides and the OS keyring.
func (app *cli) syncConfig(opts feedOptions) engine.SyncConfig {
	src := app.settings.Source
	cfg := engine.SyncConfig{
		Mode:      src.Mode,
		LocalPath: src.Path,
		WebURL:    src.URL,
		WebUser:   src.Username,
	}

	if opts.source != "" {
		if isWebSource(opts.source) {
			cfg.Mode, cfg.WebURL = config.SourceModeWeb, opts.source
		} else {
			cfg.Mode, cfg.LocalPath = config.SourceModeLocal, opts.source
		}
	}
	if opts.user != "" {
		cfg.WebUser = opts.user
	}

	if cfg.Mode == config.SourceModeWeb && cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompCLI)
		}
	}

	cfg.ReminderTrigger = reminderTrigger(app.settings.Feed)
	return cfg
}

func isWebSource(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, config.SchemeHTTP+"://") || strings.HasPrefix(lower, config.SchemeHTTPS+"://")
}

// reminderTrigger renders the configured reminder as an ISO 8601 duration,
// or "" when reminders are disabled.
func reminderTrigger(f config.FeedSettings) string {
	if !f.ReminderEnabled || f.ReminderValue <= 0 {
		return ""
	}

	sign := config.ISOPeriodPrefix
	if f.ReminderDirection == config.DirBefore {
		sign = config.ISONegativePrefix
	}

	switch f.ReminderUnit {
	case config.UnitHours:
		return fmt.Sprintf("%s%s%d%s", sign, config.ISOTimePrefix, f.ReminderValue, config.ISOHour)
	case config.UnitMinutes:
		return fmt.Sprintf("%s%s%d%s", sign, config.ISOTimePrefix, f.ReminderValue, config.ISOMinute)
	default:
		return fmt.Sprintf("%s%d%s", sign, f.ReminderValue, config.ISODay)
	}
}
