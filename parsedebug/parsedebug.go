// Package parsedebug provides a debug-dump helper for development
// tooling, grounded on the teacher's inline spew.Dump call in
// evaluator.preprocessExpression. Production code paths never call
// Dump; it exists for the CLI's --debug flag and ad hoc inspection.
package parsedebug

import "github.com/davecgh/go-spew/spew"

// Dump renders v (a token tree, AST node, or anything else) as a
// human-readable, deeply-expanded string.
func Dump(v any) string {
	return spew.Sdump(v)
}
