// Command gengolden regenerates the golden liveness reports under
// testdata/src/<pkg>/<file>.out.golden.
//
// Run from the repository root:
//
//	go run ./testdata/cmd/gengolden basic
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/mpyw/liveness"
	"github.com/mpyw/liveness/internal/config"
	"github.com/mpyw/liveness/internal/report"
)

func main() {
	pkgs := os.Args[1:]
	if len(pkgs) == 0 {
		pkgs = []string{"basic"}
	}

	testdata := analysistest.TestData()
	for _, pkg := range pkgs {
		fmt.Printf("Generating golden for %s...\n", pkg)
		if err := generate(testdata, pkg); err != nil {
			fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func generate(testdata, pkg string) error {
	outDir, err := os.MkdirTemp("", "gengolden")
	if err != nil {
		return err
	}
	defer os.RemoveAll(outDir)

	cfg := config.Default()
	cfg.Report = false
	cfg.OutputDir = outDir
	cfg.Stderr = io.Discard
	analysistest.Run(&noopT{}, testdata, liveness.NewAnalyzer(cfg), pkg)

	outs, err := filepath.Glob(filepath.Join(outDir, "*"+report.Ext))
	if err != nil {
		return err
	}
	if len(outs) == 0 {
		return fmt.Errorf("package %s produced no report", pkg)
	}

	for _, out := range outs {
		content, err := os.ReadFile(out)
		if err != nil {
			return err
		}
		base := strings.TrimSuffix(filepath.Base(out), report.Ext)
		golden := filepath.Join(testdata, "src", pkg, base+report.Ext+".golden")
		if err := os.WriteFile(golden, content, 0o644); err != nil {
			return err
		}
		fmt.Printf("  Created %s\n", golden)
	}
	return nil
}

type noopT struct{}

func (t *noopT) Errorf(format string, args ...interface{}) {}
