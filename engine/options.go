package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

var (
	ErrUnknownStrategy  = errors.New("unknown strategy")
	ErrUnknownEvaluator = errors.New("unknown evaluator")
)

// Options configures move selection. Zero Workers means one worker per root move.
type Options struct {
	Strategy      string `json:"strategy"`
	Evaluator     string `json:"evaluator"`
	Depth         int    `json:"depth"`
	Workers       int    `json:"workers"`
	Cooperative   bool   `json:"cooperative"`
	PrintCutStats bool   `json:"print_cut_stats"`
	LogLevel      string `json:"log_level"`
}

func DefaultOptions() Options {
	return Options{
		Strategy:    StrategyParallel,
		Evaluator:   "best",
		Depth:       4,
		Cooperative: true,
		LogLevel:    "info",
	}
}

// LoadOptions reads a JSON file on top of the defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	b, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}
	if err := json.Unmarshal(b, &opts); err != nil {
		return opts, fmt.Errorf("options %s: %w", path, err)
	}
	return opts, opts.Validate()
}

// SaveOptions writes opts as indented JSON.
func SaveOptions(path string, opts Options) error {
	b, err := json.MarshalIndent(opts, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (o Options) Validate() error {
	switch o.Strategy {
	case StrategyFirst, StrategyRandom, StrategyBest, StrategyParallel:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, o.Strategy)
	}
	if _, err := o.NewEvaluator(); err != nil {
		return err
	}
	if o.Depth < 1 {
		return fmt.Errorf("depth must be positive, got %d", o.Depth)
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", o.Workers)
	}
	if _, err := zerolog.ParseLevel(o.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// NewEvaluator resolves the evaluator name.
func (o Options) NewEvaluator() (Evaluator, error) {
	switch o.Evaluator {
	case "", "best":
		return BestEvaluator{}, nil
	case "draw":
		return DrawEvaluator{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvaluator, o.Evaluator)
}

// NewStrategy builds the configured strategy.
func (o Options) NewStrategy() (Strategy, error) {
	return StrategyByName(o.Strategy, o)
}

// Apply sets the global log level and the cut statistics toggle.
func (o Options) Apply() error {
	lvl, err := zerolog.ParseLevel(o.LogLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	PrintCutStats = o.PrintCutStats
	return nil
}
