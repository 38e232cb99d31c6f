// Package internal runs liveness analysis for one package.
//
// # Architecture
//
// This package serves as the bridge between the public analyzer and the
// host-independent engine:
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                           Analysis Flow                             │
//	│                                                                     │
//	│   analyzer.go (public)                                              │
//	│        │                                                            │
//	│        ▼                                                            │
//	│   internal/analyzer.go   ◀── You are here                           │
//	│   ┌─────────────────────────────────────────────────────────────┐   │
//	│   │  Run()                                                      │   │
//	│   │    │                                                        │   │
//	│   │    ├── Build naive-form SSA (internal/ssa)                  │   │
//	│   │    ├── Select functions by exact name and directives        │   │
//	│   │    ├── Lower to IR and analyze (internal/dataflow)          │   │
//	│   │    └── Report: stderr, .out files, diagnostics              │   │
//	│   └─────────────────────────────────────────────────────────────┘   │
//	└─────────────────────────────────────────────────────────────────────┘
package internal

import (
	"fmt"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/liveness/internal/config"
	"github.com/mpyw/liveness/internal/dataflow"
	"github.com/mpyw/liveness/internal/directive"
	"github.com/mpyw/liveness/internal/report"
	ssautil "github.com/mpyw/liveness/internal/ssa"
)

// =============================================================================
// Result
// =============================================================================

// Result is the analyzer result for one package: every analyzed function in
// declaration order. It is empty when no function matches the target.
type Result struct {
	Functions []*Function
}

// Function pairs an SSA function with its liveness facts.
type Function struct {
	SSA *ssa.Function
	*dataflow.Result
}

// Lookup returns the first analyzed function named name, or nil.
func (r *Result) Lookup(name string) *Function {
	for _, f := range r.Functions {
		if f.SSA.Name() == name {
			return f
		}
	}
	return nil
}

// =============================================================================
// Entry Point
// =============================================================================

// Run performs liveness analysis on every function of the package whose name
// equals cfg.Target.
//
// Processing flow for each source function:
//  1. Narrate the visit if tracing is enabled
//  2. Skip unless the name matches, the function has a body and neither it,
//     an enclosing function nor its file is ignored
//  3. Lower to IR, classify, solve
//  4. Print the report and emit a diagnostic
//
// Report files are written once all functions are done, one file per source
// file. A report that cannot be printed or written is reported as a
// diagnostic; the result is returned regardless. Ignore directives that suppressed nothing
// are reported too.
func Run(pass *analysis.Pass, cfg config.Config) (*Result, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("liveness: %w", err)
	}

	pkg := ssautil.BuildPackage(pass)

	r := newRunner(pass, cfg)
	for _, file := range pass.Files {
		r.ignores.AddFile(pass.Fset, file)
	}
	for _, fn := range ssautil.SourceFunctions(pass, pkg) {
		r.checkFunction(fn)
	}
	r.writeFiles()

	if cfg.Diagnose {
		for _, pos := range r.ignores.Unused() {
			pass.Reportf(pos, "unused liveness:ignore directive")
		}
	}

	return r.result, nil
}

// =============================================================================
// Runner
// =============================================================================

// runner holds the state of one Run.
type runner struct {
	pass    *analysis.Pass
	cfg     config.Config
	ignores *directive.IgnoreSet
	tracer  *report.Tracer // nil unless tracing
	result  *Result

	files     map[string][]*Function // report path → functions
	fileOrder []string
}

func newRunner(pass *analysis.Pass, cfg config.Config) *runner {
	r := &runner{
		pass:    pass,
		cfg:     cfg,
		ignores: directive.NewIgnoreSet(),
		result:  &Result{},
		files:   make(map[string][]*Function),
	}
	if cfg.Trace {
		r.tracer = report.NewTracer(cfg.Writer())
	}
	return r
}

// selected reports whether fn is an analysis target.
func (r *runner) selected(fn *ssa.Function) bool {
	if fn.Name() != r.cfg.Target || len(fn.Blocks) == 0 {
		return false
	}
	if r.ignores.SkipsFile(r.pass.Fset.Position(fn.Pos()).Filename) {
		return false
	}
	for f := fn; f != nil; f = f.Parent() {
		if r.ignores.IgnoresFunc(f.Pos()) {
			return false
		}
	}
	return true
}

// checkFunction analyzes fn if it is selected.
func (r *runner) checkFunction(fn *ssa.Function) {
	if r.tracer != nil {
		r.tracer.Func(fn.Name())
	}
	if !r.selected(fn) {
		return
	}

	opts := dataflow.Options{
		Order:  r.cfg.Order,
		Policy: r.cfg.Policy,
	}
	if r.tracer != nil {
		opts.Observer = r.tracer
	}

	irFn := ssautil.Lower(fn, ssautil.Options{Heap: r.cfg.Heap})
	f := &Function{SSA: fn, Result: dataflow.Analyze(irFn, opts)}
	r.result.Functions = append(r.result.Functions, f)

	if r.cfg.Report {
		if err := report.Write(r.cfg.Writer(), f.Result); err != nil {
			r.pass.Reportf(fn.Pos(), "cannot print liveness report: %v", err)
		}
	}
	if r.cfg.Diagnose {
		r.pass.Reportf(fn.Pos(), "liveness: %s", report.Summary(f.Result))
	}
	if r.cfg.Write {
		path := report.OutputPath(irFn, r.cfg.OutputDir)
		if _, ok := r.files[path]; !ok {
			r.fileOrder = append(r.fileOrder, path)
		}
		r.files[path] = append(r.files[path], f)
	}
}

// writeFiles emits one report file per source file.
func (r *runner) writeFiles() {
	for _, path := range r.fileOrder {
		funcs := r.files[path]
		results := make([]*dataflow.Result, len(funcs))
		for i, f := range funcs {
			results[i] = f.Result
		}
		if err := report.WriteFile(path, results...); err != nil {
			r.pass.Reportf(funcs[0].SSA.Pos(), "cannot write liveness report: %v", err)
		}
	}
}
