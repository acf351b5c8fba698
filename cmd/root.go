// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"showflix/internal/backend"
	"showflix/internal/config"
	"showflix/internal/logging"
	"showflix/internal/provider"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagConfig string
	flagPlayer string
	flagJSON   bool
	flagPrint  bool
	flagDebug  bool
)

var (
	// cfg holds the loaded configuration (merged: defaults < config file < flags).
	cfg    *config.Config
	logger = zap.NewNop()
	prov   *provider.ShowFlix
)

var rootCmd = &cobra.Command{
	Use:   "showflix [category]",
	Short: "Browse and stream the ShowFlix catalog from the terminal",
	Long: `ShowFlix browses a movie and series catalog by category, lists the
episodes of a series, and plays the selected stream with mpv, vlc, iina or celluloid.`,
	Args:               cobra.MaximumNArgs(1),
	PersistentPreRunE:  loadConfig,
	PersistentPostRunE: syncLogger,
	RunE:               interactiveRun,
	SilenceUsage:       true,
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: $XDG_CONFIG_HOME/showflix/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Media player: mpv | vlc | iina | celluloid")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Print results as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagPrint, "print", false, "Print the stream URL instead of playing it")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration (defaults < config file < CLI
// flags), then builds the logger and the provider.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if flagConfig != "" {
		cfg, err = config.LoadExplicit(afero.NewOsFs(), flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err = logging.New(logging.Options{
		Debug:      cfg.Debug,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	prov, err = newProvider(cfg, logger)
	return err
}

// newProvider wires the backend client and the provider from cfg.
func newProvider(c *config.Config, logger *zap.Logger) (*provider.ShowFlix, error) {
	client, err := backend.NewClient(backend.ClientOptions{
		ServerURL: c.ServerURL,
		Referer:   c.Referer,
		Credentials: backend.Credentials{
			ApplicationID:  c.ApplicationID,
			JavaScriptKey:  c.JavaScriptKey,
			ClientVersion:  c.ClientVersion,
			InstallationID: c.InstallationID,
		},
		Timeout:   c.Timeout,
		ScanLimit: c.ScanLimit,
	}, logger.Named("backend"))
	if err != nil {
		return nil, fmt.Errorf("creating backend client: %w", err)
	}

	return provider.New(client, provider.Options{
		Categories: c.Categories,
		HomeLimit:  c.HomeLimit,
		Referer:    c.Referer,
	}, logger.Named("provider"))
}

func syncLogger(cmd *cobra.Command, args []string) error {
	// Syncing a console core fails on some terminals; nothing to report.
	_ = logger.Sync()
	return nil
}
