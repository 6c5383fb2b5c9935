// Package astvm is the tree-walking evaluator: the correctness oracle
// spec.md §4.3 describes, run directly over the ast package's nodes
// without any compilation step. Grounded in the teacher's interpreter
// shape (api/lk_state.go's straightforward recursive dispatch) and in
// original_source/ast_vm's eval_error/ctrl_flow/tail_values design for
// the parts the teacher never had (no tree-walker of its own, since it
// only ships Reggie-style bytecode).
package astvm

import (
	"io"

	"github.com/lollipopkit/reggie/ast"
	"github.com/lollipopkit/reggie/lang"
)

// Evaluator is the AST tier's engine context (spec §6): a global scope
// and the table of function literals encountered so far. Function
// values are tagged lang.LuaFunction(index) exactly as the Reggie tier
// tags a BlockID — the two tiers share the Value model's shape even
// though this index means "slot in Functions" here and "slot in the
// Machine's code-block table" there.
type Evaluator struct {
	Globals   *lang.Globals
	Functions []*ast.FuncExpr
	Stdout    io.Writer
}

func NewEvaluator(globals *lang.Globals, stdout io.Writer) *Evaluator {
	return &Evaluator{Globals: globals, Stdout: stdout}
}

// EvalModule implements spec §6's eval_module for this tier: a module is
// evaluated as a single top-level function body, and its `return` (if
// any) becomes the engine's result.
func (e *Evaluator) EvalModule(mod *ast.Module) (lang.ReturnValue, error) {
	scope := newScopeStack(e.Globals)
	scope.push()
	defer scope.pop()

	c, err := e.execBlock(scope, mod.Block)
	if err != nil {
		return lang.ReturnValue{}, err
	}
	if c.returning {
		return lang.PackReturn(c.values), nil
	}
	return lang.NilReturn(), nil
}

func (e *Evaluator) registerFunc(fn *ast.FuncExpr) lang.LuaFunction {
	e.Functions = append(e.Functions, fn)
	return lang.LuaFunction(len(e.Functions) - 1)
}

func (e *Evaluator) callValue(fn lang.Value, args []lang.Value) (lang.ReturnValue, error) {
	switch f := fn.(type) {
	case lang.LuaFunction:
		return e.callLuaFunction(e.Functions[f], args)
	case *lang.NativeFunction:
		ctx := lang.NewContext(e.Globals, e.Stdout)
		return f.Fn(ctx, args)
	default:
		return lang.ReturnValue{}, &lang.NotCallableError{Value: fn}
	}
}

// callLuaFunction pushes a fresh scope stack — spec §4.3 says a
// function's closure captures only "the current function's source body
// and parameter list", not its defining environment, so a call starts
// from globals plus a brand-new parameter frame rather than extending
// the caller's scope stack.
func (e *Evaluator) callLuaFunction(fn *ast.FuncExpr, args []lang.Value) (lang.ReturnValue, error) {
	scope := newScopeStack(e.Globals)
	scope.push()
	for i, name := range fn.Params {
		var v lang.Value
		if i < len(args) {
			v = args[i]
		}
		scope.declare(name, v)
	}
	defer scope.pop()

	c, err := e.execBlock(scope, fn.Body)
	if err != nil {
		return lang.ReturnValue{}, err
	}
	if c.returning {
		return lang.PackReturn(c.values), nil
	}
	return lang.NilReturn(), nil
}
