package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/sopforge/sopforge/internal/api"
	"github.com/sopforge/sopforge/internal/pipeline"
	"github.com/sopforge/sopforge/internal/render"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sopforge HTTP server",
	Long: `Start the HTTP API server with the asynchronous render pipeline.

Endpoints:
  GET  /health            - Health check
  POST /api/render        - Synchronous render, returns the artifact
  POST /api/import        - Convert an uploaded document to a YAML skeleton
  POST /api/jobs          - Queue an asynchronous render job
  GET  /api/jobs/{jobID}  - Job status
  GET  /api/formats       - Supported output formats

Set SOPFORGE_API_KEY to require bearer-token auth on the /api routes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		log := newLogger(cfg)
		dec := newDecomposer(log)

		ctx := cmd.Context()

		template, err := render.LoadTemplate(cfg.TemplatePath)
		if err != nil {
			return err
		}

		orch := pipeline.NewOrchestrator(cfg, dec, log, template)
		orch.Start(ctx)

		srv := api.NewServer(orch, dec, log, cfg, template)

		httpServer := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      srv,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Graceful shutdown on signal.
		go func() {
			<-ctx.Done()
			log.Info("shutting down...")

			orch.Stop()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			httpServer.Shutdown(shutdownCtx)
		}()

		log.Info("starting sopforge", "port", cfg.Port, "workers", cfg.WorkerCount)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
