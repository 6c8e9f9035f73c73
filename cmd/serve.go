package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Poli-Reddy/insightmeet/metrics"
	"github.com/Poli-Reddy/insightmeet/orchestrator"
	"github.com/Poli-Reddy/insightmeet/server"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload API",
		Long: `Serve the upload API.

  POST /api/upload   multipart field "file", returns {analysis, sessionId}
  GET  /healthz      liveness
  GET  /metrics      Prometheus metrics

The server drains in-flight uploads on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.conf.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			m := metrics.New()
			p := orchestrator.NewPipeline(a.conf, orchestrator.WithLogger(a.log), orchestrator.WithMetrics(m))
			srv := server.New(p, a.log, m, a.conf.Server.MaxUploadBytes)
			return server.ListenAndServe(ctx, addr, srv.Handler(), a.conf.Server.ShutdownTimeout, a.log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	return cmd
}
