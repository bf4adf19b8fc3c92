package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/serralheria/internal/httpapi"
	"github.com/mmynk/serralheria/internal/middleware"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the quoting API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.HTTPAddr = addr
			}
			handler, err := a.handler()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a.cfg.HTTPAddr, handler)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from HTTP_ADDR)")
	return cmd
}

// handler builds the API mux, the optional static frontend and the middleware chain.
func (a *app) handler() (http.Handler, error) {
	mux := httpapi.New(a.quotes, nil).Routes()

	if a.cfg.StaticPath != "" {
		staticDir, err := filepath.Abs(a.cfg.StaticPath)
		if err != nil {
			return nil, err
		}
		slog.Info("Serving static files", "path", staticDir)
		mux.Handle("GET /", http.FileServer(http.Dir(staticDir)))
	}

	// h2c serves HTTP/2 without TLS for local clients.
	return h2c.NewHandler(middleware.Logging(middleware.CORS(a.cfg.CORSOrigin)(mux)), &http2.Server{}), nil
}

func serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", addr, "url", "http://"+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		slog.Error("Server failed", "error", err)
		return err
	case <-ctx.Done():
	}

	slog.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
