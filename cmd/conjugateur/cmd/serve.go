package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cbueth/conjugateur-fr/internal/server"
)

var (
	serveAddr    string
	serveDataDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dataset over a JSON HTTP API",
	Long: `Serve exposes a built dataset over HTTP:

  GET /api/verbs?q=prefix&limit=n   infinitive suggestions
  GET /api/verb/{infinitive}        conjugation analysis
  GET /api/manifest                 dataset manifest
  GET /healthz                      health check

Example:
  conjugateur serve
  conjugateur serve --addr localhost:9000 --data ./data`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().StringVar(&serveDataDir, "data", "", "dataset directory (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := cfg.ServerAddr
	if serveAddr != "" {
		addr = serveAddr
	}
	dir := cfg.DataDir
	if serveDataDir != "" {
		dir = serveDataDir
	}
	store, err := openStore(dir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serving dataset",
		zap.String("addr", addr),
		zap.Int("verbs", store.Len()))
	return server.New(store, logger).ListenAndServe(ctx, addr)
}
