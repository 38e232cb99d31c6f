package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mpyw/liveness/internal/dataflow"
	"github.com/mpyw/liveness/internal/ir"
)

// Ext is appended to the source name, without its extension, to name the
// report file.
const Ext = ".out"

// OutputPath returns the report file of fn: its source path with the
// extension replaced by ".out". With dir set, the file is placed in dir
// instead of beside the source. A function without a source falls back to
// its own name.
//
// Example:
//
//	OutputPath(fn /* Source: "pkg/loop.go" */, "")     = "pkg/loop.out"
//	OutputPath(fn /* Source: "pkg/loop.go" */, "/tmp") = "/tmp/loop.out"
func OutputPath(fn *ir.Function, dir string) string {
	base := fn.Name
	if fn.Source != "" {
		base = strings.TrimSuffix(fn.Source, filepath.Ext(fn.Source))
	}
	if dir != "" {
		return filepath.Join(dir, filepath.Base(base)+Ext)
	}
	return base + Ext
}

// WriteFile writes the reports of results to path, replacing its content.
func WriteFile(path string, results ...*dataflow.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report file: %w", cerr)
		}
	}()

	if err := Write(f, results...); err != nil {
		return fmt.Errorf("write report file %s: %w", path, err)
	}
	return nil
}
