// Package directive handles liveness comment directives.
//
// # Supported Directives
//
//	//liveness:ignore - Skip a function, or every function of a file
//
// # Directive Placement
//
// Directives can be placed:
//   - In the doc comment of a function declaration (function-level)
//   - In the doc comment of the package clause (file-level)
//
// # Examples
//
// Function-level ignore:
//
//	//liveness:ignore
//	func test() int {
//	    // not analyzed, nor are its anonymous functions
//	}
//
// File-level ignore:
//
//	//liveness:ignore
//	package scratch
//
// Generated files (see ast.IsGenerated) are skipped without a directive.
package directive

import "strings"

const directivePrefix = "liveness:"

// hasDirective checks if a comment contains the specified directive.
// Supports both "//liveness:name" and "// liveness:name". The name must be
// followed by the end of the comment or a space, so "//liveness:ignored"
// does not match "ignore".
func hasDirective(text, name string) bool {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)
	rest, ok := strings.CutPrefix(text, directivePrefix+name)
	return ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t')
}

// IsIgnoreDirective checks if a comment is an ignore directive.
func IsIgnoreDirective(text string) bool { return hasDirective(text, "ignore") }
