package main

import (
	"errors"
	"net/http"
	"os"

	"github.com/parcelshield/shieldkit"
	"github.com/parcelshield/shieldkit/config"
	"github.com/parcelshield/shieldkit/pkg/render"
	"github.com/parcelshield/shieldkit/pkg/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// rootOptions carries the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	assumeYes  bool
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "shieldctl",
		Short: "ParcelShield client: scam content, AI image detection",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableNoDescFlag:   true,
			DisableDescriptions: true,
			HiddenDefaultCmd:    true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "./etc/shieldctl.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&opts.assumeYes, "yes", "y", false, "answer yes to every confirmation")

	rootCmd.AddCommand(newRegisterCommand(opts))
	rootCmd.AddCommand(newLoginCommand(opts))
	rootCmd.AddCommand(newLogoutCommand(opts))
	rootCmd.AddCommand(newListCommand(opts))
	rootCmd.AddCommand(newAdminCommand(opts))
	rootCmd.AddCommand(newUploadCommand(opts))
	rootCmd.AddCommand(newDetectCommand(opts))

	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		cmd.Help()
	}
	return rootCmd
}

// buildKit loads the config, sets up logging and wires the library
// behind a terminal adapter.
func (o *rootOptions) buildKit() (*shieldkit.ShieldKit, error) {
	cfg := config.NewDefaultGlobalConfig()
	if _, err := os.Stat(o.configPath); err == nil {
		loaded, err := config.TryLoadFromDisk(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	log := newLogger(cfg.Log.Level)
	term := render.NewTerminal(os.Stdout, os.Stdin, o.assumeYes)

	return shieldkit.New(shieldkit.Config{
		BaseURL:    cfg.API.BaseURL,
		Storage:    storage.NewFileStore(cfg.Session.StatePath),
		Renderer:   term,
		Notifier:   term,
		Display:    term,
		Confirm:    term,
		Navigator:  term,
		HTTPClient: &http.Client{Timeout: cfg.API.Timeout()},
		Logger:     log,
	})
}

func newLogger(level string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	zap.ReplaceGlobals(logger)
	return logger.Sugar()
}
