package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meur/pokeforge/internal/api"
)

var (
	listenAddr string
	staticDir  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON API server",
	Long: `Serves the listing (GET /api/pokemon?offset=&q=&sort=&type=) and the
detail route (GET /api/pokemon/{name}). With --static, a built frontend
bundle is served at / and unknown paths fall back to its index.html.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&staticDir, "static", "", "Frontend bundle directory")
}

func runServe(cmd *cobra.Command, args []string) error {
	client, journal, closeJournal, err := newClient(logger)
	if err != nil {
		return err
	}
	defer closeJournal()

	srv := api.New(client, journal, logger)
	if cfg.StaticDir != "" {
		api.MountFrontend(srv.Router(), os.DirFS(cfg.StaticDir))
	}

	httpSrv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("pokeforge API starting",
			zap.String("listen", cfg.Listen),
			zap.String("upstream", cfg.APIBaseURL),
			zap.Bool("journal", journal != nil))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
