package ssa

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ssa"
)

// BuilderMode is the SSA builder mode used for liveness.
//
// NaiveForm keeps every local variable in an Alloc accessed through explicit
// loads (*x) and stores (*x = v), which is the storage model the analysis
// tracks:
//
//	func f() int {       t0 = local int (x)
//	    x := 1           *t0 = 1:int
//	    return x + 1     t1 = *t0
//	}                    t2 = t1 + 1:int
//	                     return t2
const BuilderMode = ssa.NaiveForm

// BuildPackage builds SSA for the package under analysis.
//
// buildssa.Analyzer always lifts locals into registers, so the package is
// built here instead: dependencies are created from type information only,
// the package itself from its syntax.
func BuildPackage(pass *analysis.Pass) *ssa.Package {
	prog := ssa.NewProgram(pass.Fset, BuilderMode)

	created := make(map[*types.Package]bool)
	var createAll func(pkgs []*types.Package)
	createAll = func(pkgs []*types.Package) {
		for _, p := range pkgs {
			if created[p] {
				continue
			}
			created[p] = true
			prog.CreatePackage(p, nil, nil, true)
			createAll(p.Imports())
		}
	}
	createAll(pass.Pkg.Imports())

	pkg := prog.CreatePackage(pass.Pkg, pass.Files, pass.TypesInfo, false)
	pkg.Build()
	return pkg
}

// SourceFunctions returns the functions declared in the package's files, in
// declaration order, each followed by its nested anonymous functions.
func SourceFunctions(pass *analysis.Pass, pkg *ssa.Package) []*ssa.Function {
	var funcs []*ssa.Function
	var addAnons func(fn *ssa.Function)
	addAnons = func(fn *ssa.Function) {
		funcs = append(funcs, fn)
		for _, anon := range fn.AnonFuncs {
			addAnons(anon)
		}
	}

	for _, file := range pass.Files {
		for _, decl := range file.Decls {
			fdecl, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			obj, ok := pass.TypesInfo.Defs[fdecl.Name].(*types.Func)
			if !ok || obj == nil {
				continue
			}
			if fn := pkg.Prog.FuncValue(obj); fn != nil {
				addAnons(fn)
			}
		}
	}
	return funcs
}
