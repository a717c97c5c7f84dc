package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	apperrors "github.com/vango-dev/hashroute/internal/errors"
	"github.com/vango-dev/hashroute/pkg/server"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the routed application",
		Long: `Serve the application shell and route hash changes over WebSocket.

Routes come from the manifest named in hashroute.toml, or from S3 when
[manifest.s3] names a bucket.

Examples:
  hashroute serve
  hashroute serve --addr :3000
  hashroute serve -c deploy/hashroute.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := loadApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			return runServer(ctx, cmd, a)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides [server] addr)")
	return cmd
}

func runServer(ctx context.Context, cmd *cobra.Command, a *app) error {
	srv := server.New(a.router, serverConfig(a), serverOptions(a)...)

	out := cmd.OutOrStdout()
	success(out, "Serving %s", a.title())
	field(out, "Address", a.cfg.Server.Addr)
	field(out, "Routes", strconv.Itoa(a.router.Len()))
	if a.cfg.Metrics.Enabled {
		field(out, "Metrics", a.cfg.Metrics.Path)
	}
	if a.cfg.Router.StrictSegments {
		info(out, "Strict segment checking enabled")
	}

	return srv.Run(ctx)
}

// serverConfig maps the [server] section onto the server package config.
func serverConfig(a *app) *server.Config {
	sc := server.DefaultConfig()
	sc.Address = a.cfg.Server.Addr
	sc.Title = a.title()
	sc.MountID = a.cfg.Server.MountID
	if d := a.cfg.Server.ReadTimeoutDuration(); d > 0 {
		sc.ReadTimeout = d
	}
	if d := a.cfg.Server.ShutdownTimeoutDuration(); d > 0 {
		sc.ShutdownTimeout = d
	}
	if len(a.cfg.Server.AllowedOrigins) > 0 {
		sc.CheckOrigin = server.AllowOrigins(a.cfg.Server.AllowedOrigins...)
	}
	return sc
}

func serverOptions(a *app) []server.Option {
	opts := []server.Option{
		server.WithLogger(a.logger),
		server.WithErrorCode(apperrors.Code),
	}
	if a.metrics != nil {
		opts = append(opts,
			server.WithSessionRecorder(a.metrics),
			server.WithMetricsHandler(a.cfg.Metrics.Path, promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})),
		)
	}
	return opts
}
