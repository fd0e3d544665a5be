package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/carbon-forecast/internal/config"
	"github.com/iwvelando/carbon-forecast/internal/forecast"
	"github.com/iwvelando/carbon-forecast/internal/optimizer"
	"github.com/iwvelando/carbon-forecast/internal/scenario"
	"github.com/iwvelando/carbon-forecast/internal/server"
	"github.com/iwvelando/carbon-forecast/pkg/constants"
	"github.com/iwvelando/carbon-forecast/pkg/output"
	"github.com/iwvelando/carbon-forecast/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	configPath string
	logLevel   string
	envFiles   []string
}

func newRootCmd(ver string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "carbon-forecast",
		Short:         "Financial and emissions forecasts for carbon projects",
		Long:          "carbon-forecast projects sequestration, credit revenue, costs and investment metrics for carbon projects.",
		Version:       ver,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.LoadEnvironment(opts.envFiles...)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "environment files loaded before the configuration")

	cmd.AddCommand(
		newCalculateCmd(opts),
		newSolvePriceCmd(opts),
		newValidateCmd(opts),
		newServeCmd(opts, ver),
	)
	return cmd
}

// loadConfiguration loads the configuration and builds the logger it
// describes.
func loadConfiguration(opts *rootOptions) (*config.Configuration, *zap.Logger, error) {
	conf, err := config.LoadConfiguration(opts.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration at %s: %w", opts.configPath, err)
	}
	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return conf, logger, nil
}

func logWarnings(logger *zap.Logger, warnings []string) {
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
}

// runForecasts calculates every active scenario and attaches product notes.
func runForecasts(ctx context.Context, logger *zap.Logger, conf *config.Configuration) ([]forecast.Forecast, error) {
	inputs, notes, err := conf.Inputs()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	results, err := forecast.GetForecast(ctx, logger, inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to compute forecast: %w", err)
	}
	forecast.AttachNotes(results, notes)
	return results, nil
}

func newCalculateCmd(root *rootOptions) *cobra.Command {
	var outputFormat, outputFile string

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate every active scenario in the configuration",
		Example: `  carbon-forecast calculate --config config.yaml
  carbon-forecast calculate --output-format xlsx --output-file forecast.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, logger, err := loadConfiguration(root)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			// CLI flags take precedence over config
			if outputFormat == "" {
				outputFormat = conf.Output.Format
			}
			if outputFormat == "" {
				outputFormat = constants.OutputFormatPretty
			}
			if outputFile == "" {
				outputFile = conf.Output.File
			}
			if err := validation.ValidateOutputFormat(outputFormat); err != nil {
				return err
			}
			if outputFormat == constants.OutputFormatXLSX && outputFile == "" {
				return errors.New("xlsx output requires --output-file")
			}

			logWarnings(logger, conf.ValidateConfiguration())

			results, err := runForecasts(cmd.Context(), logger, conf)
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), outputFile, outputFormat, results)
		},
	}

	cmd.Flags().StringVar(&outputFormat, "output-format", "", "output format override: pretty, csv, json, xlsx")
	cmd.Flags().StringVar(&outputFile, "output-file", "", "write output to this file instead of stdout")
	return cmd
}

func writeOutput(stdout io.Writer, outputFile, outputFormat string, results []forecast.Forecast) error {
	if outputFile == "" {
		return output.Write(stdout, outputFormat, results)
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := output.Write(file, outputFormat, results); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func newSolvePriceCmd(root *rootOptions) *cobra.Command {
	var maxPrice, tolerance float64
	var target string

	cmd := &cobra.Command{
		Use:   "solve-price",
		Short: "Find the lowest flat carbon price at which each scenario breaks even",
		Example: `  carbon-forecast solve-price --config config.yaml
  carbon-forecast solve-price --target netProfit --max-price 200`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, logger, err := loadConfiguration(root)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			upper := maxPrice
			defaults := &config.OptimizerConfig{Target: target, Max: &upper, Tolerance: tolerance}
			if err := defaults.Validate(); err != nil {
				return err
			}

			runner, err := optimizer.NewRunner(logger, conf, defaults)
			if err != nil {
				return fmt.Errorf("failed to initialize optimizer: %w", err)
			}
			result, err := runner.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("optimizer execution failed: %w", err)
			}

			results, err := runForecasts(cmd.Context(), logger, conf)
			if err != nil {
				return err
			}
			result.Apply(results)

			for _, fc := range results {
				for _, summary := range fc.Optimizations {
					status := "converged"
					if !summary.Converged {
						status = "not converged"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: break-even carbon price %s for %s (currently %s, %s after %d iterations)\n",
						fc.Name, summary.ValueDisplay, summary.Target, summary.OriginalDisplay, status, summary.Iterations)
					for _, note := range summary.Notes {
						fmt.Fprintf(cmd.OutOrStdout(), "  * %s\n", note)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&maxPrice, "max-price", constants.DefaultSolverMaxPrice, "upper bound of the price search")
	cmd.Flags().Float64Var(&tolerance, "tolerance", constants.DefaultSolverTolerance, "price tolerance at which the search stops")
	cmd.Flags().StringVar(&target, "target", config.OptimizerTargetNPV, "metric that must reach zero: npv or netProfit")
	return cmd
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and list warnings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, logger, err := loadConfiguration(root)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			inputs, notes, err := conf.Inputs()
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			warnings := conf.ValidateConfiguration()
			for _, warning := range warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", warning)
			}
			for _, input := range inputs {
				for _, note := range notes[input.Name] {
					fmt.Fprintf(cmd.OutOrStdout(), "note: %s: %s\n", input.Name, note)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d active scenarios over %d years\n", len(inputs), conf.Common.Years)
			if len(warnings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
			}
			return nil
		},
	}
}

func newServeCmd(root *rootOptions, ver string) *cobra.Command {
	var serverConfigPath, address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the forecast and scenario HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}

			logger, err := initializeLogger(cfg.Logging, root.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			store, err := cfg.NewStore()
			if err != nil {
				return err
			}
			if redisStore, ok := store.(*scenario.RedisStore); ok {
				defer func() { _ = redisStore.Close() }()
				if err := redisStore.Ping(cmd.Context()); err != nil {
					return fmt.Errorf("failed to reach redis at %s: %w", cfg.Store.RedisAddress, err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, logger, cfg, server.NewHandler(logger, cfg.UploadSizeBytes(), ver, store))
		},
	}

	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	return cmd
}

// serve runs the HTTP server until ctx is cancelled.
func serve(ctx context.Context, logger *zap.Logger, cfg *server.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("op", "main.serve"),
			zap.String("address", cfg.Address),
			zap.String("store", cfg.Store.Backend),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down server", zap.String("op", "main.serve"))
	return srv.Shutdown(shutdownCtx)
}
