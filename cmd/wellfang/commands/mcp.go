package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"

	"github.com/Sumatoshi-tech/wellfang/internal/config"
	"github.com/Sumatoshi-tech/wellfang/pkg/mcp"
	"github.com/Sumatoshi-tech/wellfang/pkg/observability"
	"github.com/Sumatoshi-tech/wellfang/pkg/version"
)

const metricsReadHeaderTimeout = 5 * time.Second

// NewMCPCommand creates the MCP server command.
func NewMCPCommand() *cobra.Command {
	var (
		configPath  string
		debug       bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes well-log analysis capabilities as tools that AI agents
can discover and invoke:
  - welllog_detect: anomaly detection over LAS curves (prior-rule, 3-sigma, IQR)
  - welllog_rules:  the built-in physical-range rule table`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			providers, err := initMCPObservability(cfg, debug)
			if err != nil {
				return err
			}

			defer func() {
				shutdownErr := providers.Shutdown(context.Background())
				if shutdownErr != nil {
					providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
				}
			}()

			meter := providers.Meter

			if metricsAddr != "" {
				promMeter, stopMetrics, metricsErr := serveMetrics(metricsAddr, providers.Logger)
				if metricsErr != nil {
					return metricsErr
				}

				defer stopMetrics()

				meter = promMeter
			}

			red, redErr := observability.NewREDMetrics(meter)
			if redErr != nil {
				return redErr
			}

			deps := mcp.ServerDeps{Logger: providers.Logger, Metrics: red, Tracer: providers.Tracer}

			srv := mcp.NewServer(deps)

			return srv.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default: .wellfang.yaml in CWD or $HOME)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	return cmd
}

func initMCPObservability(cfg *config.Config, debug bool) (observability.Providers, error) {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Mode = observability.ModeMCP
	obsCfg.LogJSON = true

	obsCfg.OTLPEndpoint = cfg.Observability.OTLPEndpoint
	if obsCfg.OTLPEndpoint == "" {
		obsCfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}

	obsCfg.OTLPInsecure = cfg.Observability.OTLPInsecure || os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true"
	obsCfg.SampleRatio = cfg.Observability.SampleRatio

	if debug || cfg.Observability.DebugTrace {
		obsCfg.LogLevel = slog.LevelDebug
		obsCfg.DebugTrace = true
	}

	return observability.Init(obsCfg)
}

// serveMetrics starts a Prometheus scrape endpoint and returns a meter
// backed by its registry plus a stop function.
func serveMetrics(addr string, logger *slog.Logger) (metric.Meter, func(), error) {
	handler, mp, err := observability.PrometheusHandler()
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	go func() {
		serveErr := srv.ListenAndServe()
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("metrics endpoint failed", "error", serveErr)
		}
	}()

	stop := func() {
		if shutdownErr := srv.Shutdown(context.Background()); shutdownErr != nil {
			logger.Warn("metrics endpoint shutdown failed", "error", shutdownErr)
		}
	}

	return mp.Meter("wellfang"), stop, nil
}
