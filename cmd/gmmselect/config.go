package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aclements/gmmselect/mixfit"
	"github.com/aclements/gmmselect/selection"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of a run. It can be loaded from a YAML
// file; command-line flags override the file.
type Config struct {
	KMin        int           `yaml:"k_min"`
	KMax        int           `yaml:"k_max"`
	Seed        uint64        `yaml:"seed"`
	Restarts    int           `yaml:"restarts"`
	MaxIter     int           `yaml:"max_iter"`
	Tol         float64       `yaml:"tol"`
	Parallel    int           `yaml:"parallel"`
	Timeout     time.Duration `yaml:"timeout"`
	ParamCount  string        `yaml:"param_count"`
	LogLevel    string        `yaml:"log_level"`
	MetricsFile string        `yaml:"metrics_file"`
	Summary     bool          `yaml:"summary"`
}

func defaultConfig() Config {
	return Config{
		KMin:       selection.DefaultKMin,
		KMax:       selection.DefaultKMax,
		MaxIter:    mixfit.DefaultMaxIter,
		Tol:        mixfit.DefaultTol,
		Parallel:   1,
		ParamCount: "all",
		LogLevel:   "warn",
	}
}

// loadConfig returns the defaults overlaid with the YAML file at path,
// if path is not empty. Unknown keys are an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// bindFlags registers a flag for every Config field, storing into f.
func bindFlags(cmd *cobra.Command, f *Config) {
	def := defaultConfig()
	fs := cmd.Flags()
	fs.IntVar(&f.KMin, "k-min", def.KMin, "smallest number of components to fit")
	fs.IntVar(&f.KMax, "k-max", def.KMax, "largest number of components to fit")
	fs.Uint64Var(&f.Seed, "seed", def.Seed, "seed for restarted EM initializations")
	fs.IntVar(&f.Restarts, "restarts", def.Restarts, "extra EM attempts after a failed fit")
	fs.IntVar(&f.MaxIter, "max-iter", def.MaxIter, "EM iteration limit per attempt")
	fs.Float64Var(&f.Tol, "tol", def.Tol, "EM convergence tolerance on mean log-likelihood")
	fs.IntVar(&f.Parallel, "parallel", def.Parallel, "number of component counts to fit at once")
	fs.DurationVar(&f.Timeout, "timeout", def.Timeout, "time limit for the whole sweep (0 for none)")
	fs.StringVar(&f.ParamCount, "param-count", def.ParamCount, `AIC parameter count: "all" (3k) or "free" (3k-1)`)
	fs.StringVar(&f.LogLevel, "log-level", def.LogLevel, "log level: debug, info, warn, or error")
	fs.StringVar(&f.MetricsFile, "metrics-file", def.MetricsFile, "write Prometheus metrics to this file")
	fs.BoolVar(&f.Summary, "summary", def.Summary, "print a summary of the dataset")
}

// overlay copies the flags the user set from f into cfg.
func overlay(cmd *cobra.Command, cfg *Config, f *Config) {
	fs := cmd.Flags()
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("k-min", func() { cfg.KMin = f.KMin })
	set("k-max", func() { cfg.KMax = f.KMax })
	set("seed", func() { cfg.Seed = f.Seed })
	set("restarts", func() { cfg.Restarts = f.Restarts })
	set("max-iter", func() { cfg.MaxIter = f.MaxIter })
	set("tol", func() { cfg.Tol = f.Tol })
	set("parallel", func() { cfg.Parallel = f.Parallel })
	set("timeout", func() { cfg.Timeout = f.Timeout })
	set("param-count", func() { cfg.ParamCount = f.ParamCount })
	set("log-level", func() { cfg.LogLevel = f.LogLevel })
	set("metrics-file", func() { cfg.MetricsFile = f.MetricsFile })
	set("summary", func() { cfg.Summary = f.Summary })
}

func (c Config) paramCounter() (selection.ParamCounter, error) {
	switch strings.ToLower(c.ParamCount) {
	case "all":
		return selection.ParamsAll, nil
	case "free":
		return selection.ParamsFree, nil
	}
	return nil, fmt.Errorf("unknown parameter count %q (want all or free)", c.ParamCount)
}

func (c Config) logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("bad log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
