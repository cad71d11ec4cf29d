// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/promptdoc/internal/metrics"
	"github.com/pdiddy/promptdoc/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the document form and JSON endpoint over HTTP",
	Long: `Serve runs the HTTP front end: an HTML form at /, a JSON endpoint at
POST /create_doc, a health check at /healthz and Prometheus metrics at
/metrics. Each request runs the full generate-and-publish pipeline.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig()
	m := metrics.New()
	p, closeFn, err := newPublisher(ctx, cfg, m)
	if err != nil {
		return err
	}
	defer closeFn()

	srv := server.New(server.Config{
		Publisher: p,
		Metrics:   m,
		Logger:    slog.Default(),
	})
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

func init() {
	serveCmd.Flags().String("addr", server.DefaultAddr, "listen address")

	bindFlags(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd)
}
