package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/ducminhle1904/evosvm/internal/monitoring"
	"github.com/ducminhle1904/evosvm/internal/notifications"
	"github.com/ducminhle1904/evosvm/pkg/orchestrator"
)

func newTrainCommand(global *globalOptions) *cobra.Command {
	opts := &runOptions{}
	var metricsAddr string
	var saveConfig string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train one model and evaluate it on the test set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, global, opts)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			progress := monitoring.NewProgressTracker()
			if metricsAddr != "" {
				shutdown := serveMetrics(metricsAddr, progress)
				defer shutdown()
			}

			store, err := orchestrator.OpenStore(ctx, cfg)
			if err != nil {
				return err
			}
			options := []orchestrator.Option{
				orchestrator.WithProgress(progress),
				orchestrator.WithConsole(cmd.OutOrStdout()),
			}
			if store != nil {
				defer store.Close()
				options = append(options, orchestrator.WithStore(store))
			}
			if cfg.Notifications.Enabled() {
				options = append(options, orchestrator.WithNotifier(
					notifications.NewTelegramNotifier(cfg.Notifications.TelegramToken, cfg.Notifications.TelegramChatID)))
			}

			workflow := orchestrator.NewTrainingWorkflow(orchestrator.NewOrchestrator(options...), cfg)
			if _, err := workflow.Execute(ctx); err != nil {
				return err
			}

			if saveConfig != "" {
				return saveResolvedConfig(cfg, saveConfig)
			}
			return nil
		},
	}

	addRunFlags(cmd.Flags(), opts)
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve /metrics and /healthz on this address while training")
	cmd.Flags().StringVar(&saveConfig, "save-config", "", "Write the resolved configuration to this path")
	return cmd
}

// serveMetrics starts the monitoring endpoint and returns its shutdown function
func serveMetrics(addr string, progress *monitoring.ProgressTracker) func() {
	server := &http.Server{
		Addr:              addr,
		Handler:           monitoring.NewServeMux(progress),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		klog.InfoS("Serving metrics", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			klog.ErrorS(err, "Metrics server stopped")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			klog.ErrorS(err, "Failed to stop metrics server")
		}
	}
}
