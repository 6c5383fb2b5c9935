package astvm

import (
	"github.com/lollipopkit/reggie/ast"
	"github.com/lollipopkit/reggie/lang"
)

// evalExpr evaluates expr to a ReturnValue: a single value for every
// node except CallExpr, which may yield a multi-value pack (spec §4.2).
func (e *Evaluator) evalExpr(scope *scopeStack, expr ast.Expr) (lang.ReturnValue, error) {
	switch x := expr.(type) {
	case *ast.NilExpr:
		return lang.NilReturn(), nil
	case *ast.IntExpr:
		return lang.SingleReturn(x.Value), nil
	case *ast.FloatExpr:
		return lang.SingleReturn(x.Value), nil
	case *ast.StringExpr:
		return lang.SingleReturn(x.Value), nil
	case *ast.NameExpr:
		return lang.SingleReturn(scope.lookup(x.Name)), nil
	case *ast.ParenExpr:
		v, err := e.evalExprSingle(scope, x.Inner)
		if err != nil {
			return lang.ReturnValue{}, err
		}
		return lang.SingleReturn(v), nil
	case *ast.IndexExpr:
		return e.evalIndex(scope, x)
	case *ast.UnaryExpr:
		return e.evalUnary(scope, x)
	case *ast.BinaryExpr:
		return e.evalBinary(scope, x)
	case *ast.LogicalExpr:
		return e.evalLogical(scope, x)
	case *ast.CallExpr:
		return e.evalCall(scope, x)
	case *ast.FuncExpr:
		return lang.SingleReturn(e.registerFunc(x)), nil
	case *ast.TableExpr:
		return e.evalTable(scope, x)
	default:
		panic("astvm: unreachable expression kind")
	}
}

// evalExprSingle evaluates expr and collapses it to its first value,
// for positions that can only ever hold one value (operands, conditions,
// index targets).
func (e *Evaluator) evalExprSingle(scope *scopeStack, expr ast.Expr) (lang.Value, error) {
	r, err := e.evalExpr(scope, expr)
	if err != nil {
		return nil, err
	}
	return r.First(), nil
}

// evalExprListSpliced implements spec §4.2's tail-value splicing for the
// three sites that need it: local-decl/assignment right-hand sides,
// return-statement expression lists, and call argument lists.
func (e *Evaluator) evalExprListSpliced(scope *scopeStack, exprs []ast.Expr) ([]lang.Value, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	results := make([]lang.ReturnValue, len(exprs))
	for i, expr := range exprs {
		r, err := e.evalExpr(scope, expr)
		if err != nil {
			return nil, err
		}
		results[i] = r
	}
	return lang.SpliceTailValues(results), nil
}

func (e *Evaluator) evalIndex(scope *scopeStack, x *ast.IndexExpr) (lang.ReturnValue, error) {
	obj, err := e.evalExprSingle(scope, x.Object)
	if err != nil {
		return lang.ReturnValue{}, err
	}
	key, err := e.evalExprSingle(scope, x.Key)
	if err != nil {
		return lang.ReturnValue{}, err
	}
	v, err := lang.Index(obj, key)
	if err != nil {
		return lang.ReturnValue{}, err
	}
	return lang.SingleReturn(v), nil
}

func (e *Evaluator) evalUnary(scope *scopeStack, x *ast.UnaryExpr) (lang.ReturnValue, error) {
	v, err := e.evalExprSingle(scope, x.Operand)
	if err != nil {
		return lang.ReturnValue{}, err
	}
	switch x.Op {
	case "-":
		out, err := lang.UnaryMinus(v)
		if err != nil {
			return lang.ReturnValue{}, err
		}
		return lang.SingleReturn(out), nil
	case "not":
		return lang.SingleReturn(lang.Not(v)), nil
	default:
		panic("astvm: unreachable unary operator " + x.Op)
	}
}

func (e *Evaluator) evalBinary(scope *scopeStack, x *ast.BinaryExpr) (lang.ReturnValue, error) {
	lhs, err := e.evalExprSingle(scope, x.Left)
	if err != nil {
		return lang.ReturnValue{}, err
	}
	rhs, err := e.evalExprSingle(scope, x.Right)
	if err != nil {
		return lang.ReturnValue{}, err
	}

	var out lang.Value
	switch x.Op {
	case "+":
		out, err = lang.Add(lhs, rhs)
	case "-":
		out, err = lang.Sub(lhs, rhs)
	case "*":
		out, err = lang.Mul(lhs, rhs)
	case "/":
		out, err = lang.Div(lhs, rhs)
	case "..":
		out, err = lang.Concat(lhs, rhs)
	case "==":
		out = lang.FromBool(lang.Eq(lhs, rhs))
	case "~=":
		out = lang.FromBool(!lang.Eq(lhs, rhs))
	case "<":
		var ok bool
		ok, err = lang.Compare(lhs, rhs, lang.OpLt)
		out = lang.FromBool(ok)
	case ">":
		var ok bool
		ok, err = lang.Compare(lhs, rhs, lang.OpGt)
		out = lang.FromBool(ok)
	case "<=":
		var ok bool
		ok, err = lang.Compare(lhs, rhs, lang.OpLe)
		out = lang.FromBool(ok)
	case ">=":
		var ok bool
		ok, err = lang.Compare(lhs, rhs, lang.OpGe)
		out = lang.FromBool(ok)
	default:
		panic("astvm: unreachable binary operator " + x.Op)
	}
	if err != nil {
		return lang.ReturnValue{}, err
	}
	return lang.SingleReturn(out), nil
}

// evalLogical implements `and`/`or` short-circuiting (spec §4.1): the
// right operand is evaluated only when its value could matter, proven
// observable by planting a side effect in it (spec §8).
func (e *Evaluator) evalLogical(scope *scopeStack, x *ast.LogicalExpr) (lang.ReturnValue, error) {
	left, err := e.evalExprSingle(scope, x.Left)
	if err != nil {
		return lang.ReturnValue{}, err
	}
	switch x.Op {
	case "and":
		if !lang.Truthy(left) {
			return lang.SingleReturn(left), nil
		}
	case "or":
		if lang.Truthy(left) {
			return lang.SingleReturn(left), nil
		}
	default:
		panic("astvm: unreachable logical operator " + x.Op)
	}
	right, err := e.evalExprSingle(scope, x.Right)
	if err != nil {
		return lang.ReturnValue{}, err
	}
	return lang.SingleReturn(right), nil
}

func (e *Evaluator) evalCall(scope *scopeStack, x *ast.CallExpr) (lang.ReturnValue, error) {
	callee, err := e.evalExprSingle(scope, x.Callee)
	if err != nil {
		return lang.ReturnValue{}, err
	}
	args, err := e.evalExprListSpliced(scope, x.Args)
	if err != nil {
		return lang.ReturnValue{}, err
	}
	return e.callValue(callee, args)
}

// evalTable builds a table from a constructor. Unlike return/assignment/
// call-argument lists, table-constructor entries are not a tail-value
// splicing site (spec §4.2 names exactly three sites, and this is not
// one): every entry's value collapses to its first value. Array-position
// entries (nil Key) are assigned 1-based indices, matching Lua's
// convention that `#t`-style sequences start at 1.
func (e *Evaluator) evalTable(scope *scopeStack, x *ast.TableExpr) (lang.ReturnValue, error) {
	t := lang.NewTable()
	arrayIdx := int32(1)
	for i, valueExpr := range x.Values {
		v, err := e.evalExprSingle(scope, valueExpr)
		if err != nil {
			return lang.ReturnValue{}, err
		}
		if x.Keys[i] == nil {
			if err := t.Set(arrayIdx, v); err != nil {
				return lang.ReturnValue{}, err
			}
			arrayIdx++
			continue
		}
		key, err := e.evalExprSingle(scope, x.Keys[i])
		if err != nil {
			return lang.ReturnValue{}, err
		}
		if err := t.Set(key, v); err != nil {
			return lang.ReturnValue{}, err
		}
	}
	return lang.SingleReturn(t), nil
}
