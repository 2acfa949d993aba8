package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ARTM2000/ivy"
	"github.com/ARTM2000/ivy/inspect"
	"github.com/ARTM2000/ivy/internal/demo"
)

func newServeCmd(envFiles *[]string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the registry introspection endpoints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, r, err := setup(*envFiles)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			// Resolve once so the singletons show up as cached.
			if _, err := ivy.Get[*demo.UserService](r, demo.UserServiceType); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           inspect.NewHandler(r),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("serving registry", zap.String("addr", cfg.Addr))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			return errors.Join(srv.Shutdown(shutdownCtx), r.Shutdown(shutdownCtx))
		},
	}
}
