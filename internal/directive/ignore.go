package directive

import (
	"go/ast"
	"go/token"
	"sort"
)

// ignoreEntry tracks a function-level ignore directive and whether it
// suppressed an analysis target.
type ignoreEntry struct {
	pos  token.Pos // position of the directive comment
	used bool
}

// IgnoreSet records the ignore directives of one package.
//
// Functions are keyed by the position of their name, because that is what
// SSA's Function.Pos() returns for declared functions:
//
//	//liveness:ignore     // directive at line 3
//	func test() int {     // funcs[pos of "test"] → entry for line 3
type IgnoreSet struct {
	files map[string]bool            // filename → whole file skipped
	funcs map[token.Pos]*ignoreEntry // function name position → directive
}

// NewIgnoreSet returns an empty set.
func NewIgnoreSet() *IgnoreSet {
	return &IgnoreSet{
		files: make(map[string]bool),
		funcs: make(map[token.Pos]*ignoreEntry),
	}
}

// AddFile scans file for ignore directives. Generated files and files whose
// package doc carries //liveness:ignore are skipped entirely.
func (s *IgnoreSet) AddFile(fset *token.FileSet, file *ast.File) {
	filename := fset.Position(file.Pos()).Filename

	if ast.IsGenerated(file) {
		s.files[filename] = true
		return
	}
	if file.Doc != nil {
		for _, c := range file.Doc.List {
			if IsIgnoreDirective(c.Text) {
				s.files[filename] = true
				return
			}
		}
	}

	for _, decl := range file.Decls {
		// FuncLit nodes have no doc comment; they follow their enclosing
		// declaration.
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}
		for _, c := range fd.Doc.List {
			if IsIgnoreDirective(c.Text) {
				s.funcs[fd.Name.Pos()] = &ignoreEntry{pos: c.Pos()}
				break
			}
		}
	}
}

// SkipsFile reports whether every function of filename is skipped.
func (s *IgnoreSet) SkipsFile(filename string) bool {
	return s.files[filename]
}

// IgnoresFunc reports whether the function declared at pos carries an
// ignore directive. A hit marks the directive as used.
func (s *IgnoreSet) IgnoresFunc(pos token.Pos) bool {
	entry, ok := s.funcs[pos]
	if !ok {
		return false
	}
	entry.used = true
	return true
}

// Unused returns the positions of function-level directives that suppressed
// nothing, in source order.
func (s *IgnoreSet) Unused() []token.Pos {
	var unused []token.Pos
	for _, entry := range s.funcs {
		if !entry.used {
			unused = append(unused, entry.pos)
		}
	}
	sort.Slice(unused, func(i, j int) bool {
		return unused[i] < unused[j]
	})
	return unused
}
