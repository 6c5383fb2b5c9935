// Package parser implements the recursive-descent parser that turns
// source text into the ast package's node types — the external
// collaborator spec.md's CORE assumes already exists. Adapted from the
// teacher's compiler/parser package: same recursive-descent structure
// and panic-as-syntax-error convention, recovered here at the Parse
// boundary instead of propagating to the caller as a raw panic.
package parser

import (
	"fmt"

	"github.com/lollipopkit/reggie/ast"
	"github.com/lollipopkit/reggie/lexer"
)

// Parse tokenizes and parses chunk (named chunkName for error messages)
// into a Module. Syntax errors surface as a plain error, never a panic,
// matching spec §7's "every operation that can fail returns a
// result-shaped value".
func Parse(chunk, chunkName string) (mod *ast.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			mod = nil
			err = fmt.Errorf("%v", r)
		}
	}()
	lx := lexer.NewLexer(chunk, chunkName)
	block := parseBlock(lx)
	lx.NextTokenOfKind(lexer.TokenEOF)
	return &ast.Module{Block: block}, nil
}
