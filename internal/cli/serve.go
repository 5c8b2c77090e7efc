package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"ramcalc/internal/config"
	"ramcalc/internal/httpapi"
	"ramcalc/internal/registry"
)

const shutdownTimeout = 5 * time.Second

// fnServe is replaced in tests.
var fnServe = serve

// serve runs the HTTP server until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, c config.Config, logger zerolog.Logger) error {
	reg, err := registry.Open(c.ModelsDir)
	if err != nil {
		return err
	}
	httpapi.SetLogger(logger)
	httpapi.SetDefaultLogLevel(c.LogLevel)
	httpapi.SetMaxBodyBytes(c.MaxBodyBytes)
	httpapi.SetCORSOptions(c.CORS.Enabled, c.CORS.AllowedOrigins, c.CORS.AllowedMethods, c.CORS.AllowedHeaders)
	httpapi.SetFormDefaults(c.Defaults)

	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           httpapi.NewMux(reg),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		logger.Info().Str("addr", c.Addr).Str("models_dir", c.ModelsDir).Int("models", len(reg.List())).Msg("ramcalc listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for done := false; !done; {
		select {
		case err := <-errCh:
			return err
		case <-hup:
			if err := reg.Reload(); err != nil {
				logger.Error().Err(err).Str("models_dir", c.ModelsDir).Msg("models reload failed")
				continue
			}
			logger.Info().Int("models", len(reg.List())).Msg("models reloaded")
		case <-ctx.Done():
			done = true
		}
	}
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	return nil
}
