// Package cfg sets up the Cobra commands and the settings store.
package cfg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"media-dupes/internal/app"
	"media-dupes/internal/domain/command"
	"media-dupes/internal/domain/consts"
	"media-dupes/internal/domain/keys"
	"media-dupes/internal/domain/paths"
	"media-dupes/internal/downloads"
	"media-dupes/internal/models"
	"media-dupes/internal/notify"
	"media-dupes/internal/repo"
	"media-dupes/internal/utils/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Program holds what the commands share for one run.
type Program struct {
	DB    *sql.DB
	store *SettingsStore
	sinks notify.Multi
}

// Execute builds the command tree and runs it.
func Execute(ctx context.Context, db *sql.DB) error {
	return NewRootCmd(&Program{DB: db}).ExecuteContext(ctx)
}

// NewRootCmd returns the root command with every subcommand attached.
func NewRootCmd(p *Program) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           consts.ProgramName,
		Short:         "media-dupes queues media URLs and downloads them with youtube-dl",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return p.setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.Int(keys.DebugLevel, 0, "Debug level (0-5)")
	pf.String(keys.ConfigFile, paths.ConfigFilePath, "Path to the config file")
	pf.Bool("verbose", false, "Run youtube-dl verbosely and print its output")
	pf.Int("max-concurrent", 0, "Maximum simultaneous downloads (0 for no limit)")
	pf.String("download-dir", "", "Directory downloads are saved under")
	pf.String("audio-format", "", "Audio format for audio mode ("+strings.Join(command.AudioFormats[:], ", ")+")")

	rootCmd.AddCommand(
		addCmd(p),
		queueCmd(p),
		startCmd(p),
		historyCmd(p),
		settingsCmd(p),
		serveCmd(p),
	)
	return rootCmd
}

// setup runs before every command.
func (p *Program) setup(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()

	if lvl, err := pf.GetInt(keys.DebugLevel); err == nil {
		logging.Level = lvl
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.W("Failed to load .env file: %v", err)
	}

	configPath, err := pf.GetString(keys.ConfigFile)
	if err != nil {
		return err
	}
	if configPath == "" {
		return errors.New("no config file path set")
	}

	if p.store, err = LoadSettingsStore(configPath); err != nil {
		return err
	}
	return p.store.BindFlags(pf)
}

// storeApp returns an app that can manage the queue and history, but not run batches.
func (p *Program) storeApp(ctx context.Context) (*app.App, error) {
	if p.DB == nil {
		return nil, errors.New("no database")
	}
	a := app.New(nil, repo.GetQueueStore(p.DB), repo.GetHistoryStore(p.DB))
	if err := a.LoadQueue(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// batchApp returns an app with a dispatcher reporting to the sinks s asks for, plus extra.
func (p *Program) batchApp(ctx context.Context, s *models.Settings, extra ...notify.Sink) (*app.App, error) {
	a, err := p.storeApp(ctx)
	if err != nil {
		return nil, err
	}

	sinks := notify.Multi{notify.Console{ShowOutput: s.Verbose}}
	if s.DesktopNotifications {
		sinks = append(sinks, notify.NewDesktopNotifier())
	}
	if len(s.NotifyURLs) > 0 {
		sinks = append(sinks, notify.NewWebhook(s.NotifyURLs))
	}
	sinks = append(sinks, extra...)

	p.sinks = sinks
	a.Dispatcher = downloads.NewDispatcher(downloads.NewExecRunner(s.YoutubeDlPath), sinks)
	return a, nil
}

// waitNotifications blocks until background notifications of the last batch app are delivered.
func (p *Program) waitNotifications() {
	if p.sinks != nil {
		p.sinks.Wait()
	}
}

// settings resolves settings, failing with the config path for context.
func (p *Program) settings() (*models.Settings, error) {
	s, err := p.store.Settings()
	if err != nil {
		return nil, fmt.Errorf("%w (config file %q)", err, p.store.path)
	}
	return s, nil
}
