// Command liveness computes UEVAR, KILL and LIVEOUT for every basic block
// of one selected function.
//
// Usage:
//
//	liveness -func=test ./...
//
// Or as a vet tool:
//
//	go vet -vettool=$(which liveness) -liveness.func=test ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/mpyw/liveness"
)

func main() {
	singlechecker.Main(liveness.Analyzer)
}
