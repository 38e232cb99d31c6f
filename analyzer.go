// Package liveness provides a static analysis pass computing classic
// backward liveness facts for one selected Go function.
//
// For every basic block of the function's naive-form SSA, it reports:
//
//   - UEVAR:   local variables read before being redefined in the block
//   - KILL:    local variables written in the block
//   - LIVEOUT: local variables that may be read after the block exits
//
// The facts are printed to stderr, written to <source>.out and returned as
// the analyzer result for other passes.
package liveness

import (
	"flag"
	"fmt"
	"reflect"

	"golang.org/x/tools/go/analysis"

	"github.com/mpyw/liveness/internal"
	"github.com/mpyw/liveness/internal/config"
)

// Result is the analyzer result: every analyzed function with its facts.
type Result = internal.Result

// Function is one analyzed function. This is a type alias for internal.Function.
type Function = internal.Function

// Analyzer is the liveness analyzer with the default configuration and
// command-line flags.
var Analyzer = NewAnalyzer(config.Default())

const doc = `compute UEVAR, KILL and LIVEOUT per basic block of one function

The function is selected by exact name (-func, default "test"). Local
variables are the tracked storage slots; reads and writes are the loads and
stores of naive-form SSA.`

// NewAnalyzer returns an analyzer for cfg. Its flags are bound to a private
// copy of cfg; -config loads a YAML file that explicitly set flags override.
func NewAnalyzer(cfg config.Config) *analysis.Analyzer {
	a := &analysis.Analyzer{
		Name:       "liveness",
		Doc:        doc,
		ResultType: reflect.TypeOf((*Result)(nil)),
	}

	var configPath string
	a.Flags.StringVar(&configPath, "config", "", "YAML configuration file")
	cfg.RegisterFlags(&a.Flags)

	a.Run = func(pass *analysis.Pass) (any, error) {
		effective := cfg
		if configPath != "" {
			loaded, err := loadWithOverrides(configPath, &a.Flags)
			if err != nil {
				return nil, fmt.Errorf("liveness: %w", err)
			}
			loaded.Stderr = cfg.Stderr
			effective = loaded
		}
		return internal.Run(pass, effective)
	}
	return a
}

// loadWithOverrides loads the file at path and re-applies every flag that
// was set explicitly in fs.
func loadWithOverrides(path string, fs *flag.FlagSet) (config.Config, error) {
	loaded, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	overlay := flag.NewFlagSet("overlay", flag.ContinueOnError)
	loaded.RegisterFlags(overlay)

	var setErr error
	fs.Visit(func(f *flag.Flag) {
		if setErr != nil || overlay.Lookup(f.Name) == nil {
			return
		}
		setErr = overlay.Set(f.Name, f.Value.String())
	})
	if setErr != nil {
		return config.Config{}, setErr
	}

	if err := loaded.Validate(); err != nil {
		return config.Config{}, err
	}
	return loaded, nil
}
