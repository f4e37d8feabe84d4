// gmmselect reads a one-line, comma-separated dataset, fits Gaussian
// mixtures with 2 through 10 components, and reports the mixture with
// the lowest Akaike Information Criterion.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/aclements/gmmselect/dataset"
	"github.com/aclements/gmmselect/mixfit"
	"github.com/aclements/gmmselect/selection"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		flags      Config
	)
	cmd := &cobra.Command{
		Use:   "gmmselect data_file.csv",
		Short: "Choose the number of components of a 1-D Gaussian mixture by AIC",
		Long: `gmmselect fits Gaussian mixture models with a range of component
counts to a dataset stored as one line of comma-separated numbers,
prints the log-likelihood and AIC of each fit, and reports the
parameters of the fit with the lowest AIC.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			overlay(cmd, &cfg, &flags)
			// Past argument checking, usage no longer helps.
			cmd.SilenceUsage = true
			return run(cmd, cfg, args[0])
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML file with default settings")
	bindFlags(cmd, &flags)
	return cmd
}

func run(cmd *cobra.Command, cfg Config, path string) error {
	logger, err := cfg.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	params, err := cfg.paramCounter()
	if err != nil {
		return err
	}

	data, err := dataset.ReadFile(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if cfg.Summary {
		printSummary(out, data)
	}

	opts := []selection.Option{
		selection.WithRange(cfg.KMin, cfg.KMax),
		selection.WithParamCounter(params),
		selection.WithParallelism(cfg.Parallel),
		selection.WithTimeout(cfg.Timeout),
		selection.WithLogger(logger),
	}
	var reg *prometheus.Registry
	if cfg.MetricsFile != "" {
		reg = prometheus.NewRegistry()
		opts = append(opts, selection.WithMetrics(selection.NewMetrics(reg)))
	}

	fitter := &mixfit.EM{
		MaxIter:  cfg.MaxIter,
		Tol:      cfg.Tol,
		Restarts: cfg.Restarts,
		Seed:     cfg.Seed,
		Logger:   logger,
	}
	report, err := selection.New(fitter, opts...).SelectBest(cmd.Context(), data)
	if report != nil {
		printTrials(out, report.Trials)
	}
	if err != nil {
		return err
	}
	printBest(out, report.Best)

	if reg != nil {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
