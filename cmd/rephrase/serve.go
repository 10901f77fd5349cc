package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/TEJA0811/Rephrase.AI/internal/metrics"
	"github.com/TEJA0811/Rephrase.AI/internal/rephrase"
	"github.com/TEJA0811/Rephrase.AI/internal/server"
	"github.com/TEJA0811/Rephrase.AI/internal/usage"
)

const shutdownTimeout = 10 * time.Second

var port int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&port, "port", 0, "override listen port")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if port > 0 {
		cfg.Port = port
	}

	p, err := buildProvider(ctx, cfg, useMock)
	if err != nil {
		return err
	}
	metrics.ProviderAvailable.WithLabelValues(p.Name()).Set(boolGauge(p.Available()))
	if !p.Available() {
		logger.Warn("provider has no credentials; calls will fail", zap.String("provider", p.Name()))
	}

	pipeline := rephrase.NewPipeline(
		rephrase.NewClassifier(p, rephrase.StageConfig{
			Model:       cfg.ClassifierModel,
			Temperature: cfg.ClassifierTemperature,
			MaxTokens:   cfg.ClassifierMaxTokens,
		}, cfg.CallTimeout, logger),
		rephrase.NewComposer(p, rephrase.StageConfig{
			Model:       cfg.RephraseModel,
			Temperature: cfg.RephraseTemperature,
			MaxTokens:   cfg.RephraseMaxTokens,
		}, cfg.CallTimeout),
		logger,
	)

	deps := server.Deps{
		Rephraser: pipeline,
		Provider:  p,
		APIKey:    cfg.APIKey,
		Timeout:   2*cfg.CallTimeout + 5*time.Second,
		Logger:    logger,
	}

	if cfg.UsageDB != "" {
		store, err := usage.Open(ctx, cfg.UsageDB)
		if err != nil {
			return err
		}
		defer store.Close()
		deps.Usage = store
		logger.Info("usage tracking enabled", zap.String("db", cfg.UsageDB))
	}

	if cfg.APIKey != "" {
		logger.Info("auth: API key required (X-API-Key header)")
	} else {
		logger.Info("auth: disabled (no api_key configured)")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.New(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("rephrase api listening",
			zap.String("addr", srv.Addr),
			zap.String("provider", p.Name()),
			zap.String("classifier_model", cfg.ClassifierModel),
			zap.String("rephrase_model", cfg.RephraseModel),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
