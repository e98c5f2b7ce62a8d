package commands

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/tfkr-ae/sitefilter"
	"github.com/tfkr-ae/sitefilter/httpapi"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// serve: run the HTTP API until interrupted.
func serveCmd() *cobra.Command {
	var addr string
	var origins []string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API for a browser-extension popup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = appCtx.Config.HTTPAddr
			}
			return serve(cmd.Context(), appCtx, addr, origins)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default http_addr from config)")
	cmd.Flags().StringSliceVar(&origins, "allow-origin", nil, "extra CORS origins to allow")
	return cmd
}

func serve(ctx context.Context, filter *sitefilter.Filter, addr string, origins []string) error {
	logger := filter.Logger

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handlers, err := httpapi.NewHandlers(filter, logger, registry)
	if err != nil {
		return err
	}
	router := httpapi.SetupRoutes(handlers, registry, origins...)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return httpapi.Run(ctx, addr, router, logger)
	})

	g.Go(func() error {
		filter.Config.Watch(func(next *sitefilter.Config) {
			if err := filter.SetEngine(next.SearchEngine()); err != nil {
				logger.Warn("ignoring engine from config", zap.Error(err))
				return
			}
			logger.Info("search engine reloaded", zap.String("base_url", next.Engine.BaseURL))
		}, func(err error) {
			logger.Warn("reloading config", zap.Error(err))
		})
		<-ctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("serve stopped with error", zap.Error(err))
		return err
	}
	logger.Info("serve stopped gracefully")
	return nil
}
