package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quackstagram/quackstore"
	"github.com/quackstagram/quackstore/pkg/social"
)

var (
	verbose    bool
	dataDir    string
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quackstore",
	Short: "Inspect and administer a Quackstagram flat-file data directory",
	Long: `Quackstore persists social records (users, pictures, notifications)
as delimited line-oriented text files. This tool exposes the moderation
and administration surface: list and inspect accounts, create posts,
record likes and follows, and watch the data directory for changes.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "", "Data directory (default \"data\")")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Optional YAML config file")
}

// openService builds the store from the persistent flags.
func openService() *quackstore.Service {
	opts := []quackstore.Option{
		quackstore.WithLogger(slog.Default()),
	}

	if configFile != "" {
		cfg, err := social.LoadConfig(configFile)
		if err != nil {
			fatal("Failed to load config", err)
		}
		opts = append(opts, quackstore.WithConfig(cfg))
	}

	svc, err := quackstore.Open(dataDir, opts...)
	if err != nil {
		fatal("Failed to open data directory", err)
	}
	return svc
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
