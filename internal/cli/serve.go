package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/py3ready/internal/server"
	"github.com/matzehuels/py3ready/pkg/check"
)

// newServeCmd creates the serve command, which exposes the check as a
// JSON HTTP endpoint. Seed sources come per-request, so only the oracle
// flags apply.
func newServeCmd() *cobra.Command {
	opts := checkOpts{workers: check.DefaultWorkers}
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blocker check over HTTP",
		Long: `Serve the blocker check over HTTP.

POST /v1/check accepts {"projects": [...], "requirements": "...",
"metadata": "...", "pyproject": "..."} (any subset) and answers with the
report and the raw blocker chains. GET /healthz reports liveness.

The server holds no state between requests; every check queries the
index fresh.`,
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c.Context(), &opts, addr)
		},
	}

	addOracleFlags(cmd, &opts)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

func runServe(ctx context.Context, opts *checkOpts, addr string) error {
	logger := loggerFromContext(ctx)

	oracle, err := opts.oracle(logger)
	if err != nil {
		return err
	}
	srv := server.New(oracle, logger, check.Options{
		Workers: opts.workers,
		Logger:  debugLogger(logger),
	})

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", addr)
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	// The signal context is already done; give in-flight requests a
	// fresh deadline to drain.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("Shutting down")
	if err := httpSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
