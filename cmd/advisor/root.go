package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agri-advisor/internal/common/config"
	httpc "agri-advisor/internal/common/http"
	"agri-advisor/internal/common/logger"
	"agri-advisor/internal/common/observability"
)

// app is the state shared by every subcommand once the root pre-run has
// loaded configuration.
type app struct {
	configPath  string
	logLevel    string
	metricsAddr string
	backendURL  string

	cfg    *config.Config
	zapLog *zap.Logger
	log    logger.Logger
	obs    *observability.Observability
	client *httpc.Client
	server *http.Server
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "advisor",
		Short:         "Agricultural advisory assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `Chat with the farming assistant and run crop, fertilizer and
suitability predictions against the prediction backend.

Subcommands:
  chat     - Ask the assistant (reads lines from stdin)
  catalog  - Show a form's option catalogs
  predict  - Submit a prediction form`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			a.teardown()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override logging.level")
	rootCmd.PersistentFlags().StringVar(&a.metricsAddr, "metrics-addr", "", "Serve /metrics, /health and /ready on this address")
	rootCmd.PersistentFlags().StringVar(&a.backendURL, "backend", "", "Override backend.base_url")

	rootCmd.AddCommand(newChatCmd(a))
	rootCmd.AddCommand(newCatalogCmd(a))
	rootCmd.AddCommand(newPredictCmd(a))

	return rootCmd
}

func (a *app) setup() error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFromFile(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.metricsAddr != "" {
		cfg.Metrics.Address = a.metricsAddr
	}
	if a.backendURL != "" {
		cfg.Backend.BaseURL = a.backendURL
	}
	a.cfg = cfg

	a.zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	a.log = logger.NewZapAdapter(a.zapLog).With(map[string]interface{}{
		"app":         cfg.App.Name,
		"environment": cfg.App.Environment,
	})

	a.client = httpc.NewClient(cfg.Backend.BaseURL, config.GetDuration(cfg.Backend.Timeout))

	if cfg.Metrics.Address != "" {
		a.obs = observability.New(cfg.App.Name, a.log)
		a.startMetricsServer(cfg.Metrics.Address)
	}

	return nil
}

func (a *app) startMetricsServer(addr string) {
	mux := http.NewServeMux()
	status := func(s string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"status": s,
				"time":   time.Now().Format(time.RFC3339),
			})
		}
	}
	mux.HandleFunc("/health", status("healthy"))
	mux.HandleFunc("/ready", status("ready"))
	mux.Handle("/metrics", promhttp.Handler())

	a.server = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		a.log.Info("metrics server listening", map[string]interface{}{"address": addr})
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server failed", map[string]interface{}{"error": err})
		}
	}()
}

func (a *app) teardown() {
	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.server.Shutdown(ctx)
	}
	a.obs.Shutdown()
	if a.zapLog != nil {
		_ = a.zapLog.Sync()
	}
}

// recorder avoids handing components a typed-nil interface.
func (a *app) recorder() observability.Recorder {
	if a.obs == nil {
		return nil
	}
	return a.obs
}

func (a *app) form(name string) (config.FormConfig, error) {
	fc, ok := config.GetFormConfig(a.cfg, name)
	if !ok {
		return config.FormConfig{}, &unknownFormError{name: name, cfg: a.cfg}
	}
	return fc, nil
}
