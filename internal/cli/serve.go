package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/odenysenko/postlens/internal/pipeline"
	"github.com/odenysenko/postlens/internal/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analytics HTTP API",
	Long: `Serve exposes the analytics pipeline over HTTP for dashboards:

  GET /healthz
  GET /api/accounts
  GET /api/accounts/:account/posts
  GET /api/accounts/:account/analytics
  GET /api/accounts/:account/export.csv
  GET /api/exports/:account/:target

Example:
  postlens serve
  postlens serve --addr :9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.JSONFormatter{})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, pipeline.New(cfg, log), log)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
