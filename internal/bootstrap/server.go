package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/Domenick1991/aerodrome/config"
)

// Run serves the API and blocks until the context is canceled or the server
// fails.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
