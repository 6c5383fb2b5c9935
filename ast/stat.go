package ast

// Stat is the marker interface for every statement node.
type Stat interface{}

// LocalDeclStat introduces new locals in the enclosing Block's scope.
// Initializers are evaluated under tail-value splicing (spec §4.2);
// names beyond the spliced value count are left at Nil.
type LocalDeclStat struct {
	Line  int
	Names []string
	Exprs []Expr
}

// AssignStat assigns to one or more already-bound targets (NameExpr or
// IndexExpr). The right-hand side splices per spec §4.2; extra
// right-hand values are discarded, unmatched targets receive Nil.
type AssignStat struct {
	Line    int
	Targets []Expr
	Exprs   []Expr
}

// CallStat is a function call used as a statement; its results (if any)
// are discarded.
type CallStat struct {
	Call *CallExpr
}

// IfStat models the full if/elseif/else chain as parallel slices: Conds[i]
// gathers with Blocks[i]; Else is nil if there is no else-clause.
type IfStat struct {
	Line   int
	Conds  []Expr
	Blocks []*Block
	Else   *Block
}

type WhileStat struct {
	Line int
	Cond Expr
	Body *Block
}

// RepeatStat evaluates Body once before testing Cond, and loops while
// Cond is falsy (Lua's `repeat ... until` semantics are an inverted
// while, not a do-while on the same predicate).
type RepeatStat struct {
	Line int
	Body *Block
	Cond Expr
}

// FuncDeclStat is sugar for AssignStat{Targets: [NameExpr{Name}], Exprs:
// [FuncExpr{...}]}; kept as its own node (rather than desugared by the
// parser) because the compiler's lowering for a named function
// declaration differs slightly from a general assignment (spec §4.4:
// "register it as a new CodeBlock... emit StrDGl(cell_of_name)").
type FuncDeclStat struct {
	Line   int
	Name   string
	Params []string
	Body   *Block
}

// ReturnStat's Exprs splice per spec §4.2; an empty Exprs list returns
// Nil (spec §6's ReturnValue).
type ReturnStat struct {
	Line  int
	Exprs []Expr
}
