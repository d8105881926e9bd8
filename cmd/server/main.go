package main

import (
	"fmt"
	"os"

	"github.com/docwell/editor-server/internal/config"
	"github.com/docwell/editor-server/internal/pkg/nativelog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string

	cfg    *config.AppConfig
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "editor-server",
	Short: "AI-assist backend for the rich-text editor",
	Long: `editor-server proxies the editor's writing assistant, translation,
image, video and stock photo requests to their providers, and stores
documents for signed-in users.

Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err = nativelog.NewZapLogger(cfg.Paths.Logs, cfg.IsDev())
		if err != nil {
			logger, _ = zap.NewProduction()
			logger.Warn("native log pipeline unavailable, fallback to zap production logger", zap.Error(err))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath, "Path to YAML config file")
	rootCmd.AddCommand(serveCmd, probeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
