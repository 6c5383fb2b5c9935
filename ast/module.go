// Package ast defines the fixed AST grammar spec.md's CORE assumes is
// produced externally by a lexer/parser: statements, expressions, blocks,
// declarations, conditionals, loops, function declarations, and returns.
// The grammar intentionally excludes everything spec.md marks as
// out-of-scope: the `^` operator, method-call syntax, coroutines,
// metatables, varargs, numeric for-loops, and goto/labels. Naming and
// shape follow the teacher's compiler/ast package (Line-tagged structs,
// an empty marker interface for the node family).
package ast

// Module is a parsed program: its top-level statements, run as an
// implicit function body whose `return` (if any) becomes the program's
// result (spec §6's `eval_module`).
type Module struct {
	Block *Block
}

// Block is a sequence of statements sharing one lexical scope (spec
// §4.3's "a local declared in one branch... is not observable in a
// sibling branch" applies at Block granularity).
type Block struct {
	Stats []Stat
}
