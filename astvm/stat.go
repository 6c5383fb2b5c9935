package astvm

import (
	"github.com/lollipopkit/reggie/ast"
	"github.com/lollipopkit/reggie/lang"
)

// execBlock runs stats in their own scope frame, so locals declared here
// never leak to a sibling block (spec §4.3, §8's "local isolation").
func (e *Evaluator) execBlock(scope *scopeStack, block *ast.Block) (ctrl, error) {
	scope.push()
	defer scope.pop()

	for _, stat := range block.Stats {
		c, err := e.execStat(scope, stat)
		if err != nil {
			return ctrl{}, err
		}
		if c.returning {
			return c, nil
		}
	}
	return ctrlContinue, nil
}

func (e *Evaluator) execStat(scope *scopeStack, stat ast.Stat) (ctrl, error) {
	switch s := stat.(type) {
	case *ast.LocalDeclStat:
		return e.execLocalDecl(scope, s)
	case *ast.AssignStat:
		return e.execAssign(scope, s)
	case *ast.CallStat:
		_, err := e.evalCall(scope, s.Call)
		return ctrlContinue, err
	case *ast.IfStat:
		return e.execIf(scope, s)
	case *ast.WhileStat:
		return e.execWhile(scope, s)
	case *ast.RepeatStat:
		return e.execRepeat(scope, s)
	case *ast.FuncDeclStat:
		return e.execFuncDecl(scope, s)
	case *ast.ReturnStat:
		return e.execReturn(scope, s)
	default:
		panic("astvm: unreachable statement kind")
	}
}

func (e *Evaluator) execLocalDecl(scope *scopeStack, s *ast.LocalDeclStat) (ctrl, error) {
	values, err := e.evalExprListSpliced(scope, s.Exprs)
	if err != nil {
		return ctrl{}, err
	}
	for i, name := range s.Names {
		var v lang.Value
		if i < len(values) {
			v = values[i]
		}
		scope.declare(name, v)
	}
	return ctrlContinue, nil
}

func (e *Evaluator) execAssign(scope *scopeStack, s *ast.AssignStat) (ctrl, error) {
	values, err := e.evalExprListSpliced(scope, s.Exprs)
	if err != nil {
		return ctrl{}, err
	}
	for i, target := range s.Targets {
		var v lang.Value
		if i < len(values) {
			v = values[i]
		}
		if err := e.assignTo(scope, target, v); err != nil {
			return ctrl{}, err
		}
	}
	return ctrlContinue, nil
}

func (e *Evaluator) assignTo(scope *scopeStack, target ast.Expr, v lang.Value) error {
	switch t := target.(type) {
	case *ast.NameExpr:
		scope.assign(t.Name, v)
		return nil
	case *ast.IndexExpr:
		obj, err := e.evalExprSingle(scope, t.Object)
		if err != nil {
			return err
		}
		key, err := e.evalExprSingle(scope, t.Key)
		if err != nil {
			return err
		}
		return lang.SetIndex(obj, key, v)
	default:
		panic("astvm: unreachable assignment target kind")
	}
}

func (e *Evaluator) execIf(scope *scopeStack, s *ast.IfStat) (ctrl, error) {
	for i, cond := range s.Conds {
		v, err := e.evalExprSingle(scope, cond)
		if err != nil {
			return ctrl{}, err
		}
		if lang.Truthy(v) {
			return e.execBlock(scope, s.Blocks[i])
		}
	}
	if s.Else != nil {
		return e.execBlock(scope, s.Else)
	}
	return ctrlContinue, nil
}

func (e *Evaluator) execWhile(scope *scopeStack, s *ast.WhileStat) (ctrl, error) {
	for {
		v, err := e.evalExprSingle(scope, s.Cond)
		if err != nil {
			return ctrl{}, err
		}
		if !lang.Truthy(v) {
			return ctrlContinue, nil
		}
		c, err := e.execBlock(scope, s.Body)
		if err != nil {
			return ctrl{}, err
		}
		if c.returning {
			return c, nil
		}
	}
}

// execRepeat runs Body once before testing Cond, and loops while Cond is
// falsy — `repeat ... until` is an inverted while, not a do-while
// re-testing the same predicate (spec §4.3).
func (e *Evaluator) execRepeat(scope *scopeStack, s *ast.RepeatStat) (ctrl, error) {
	for {
		c, err := e.execBlock(scope, s.Body)
		if err != nil {
			return ctrl{}, err
		}
		if c.returning {
			return c, nil
		}
		v, err := e.evalExprSingle(scope, s.Cond)
		if err != nil {
			return ctrl{}, err
		}
		if lang.Truthy(v) {
			return ctrlContinue, nil
		}
	}
}

func (e *Evaluator) execFuncDecl(scope *scopeStack, s *ast.FuncDeclStat) (ctrl, error) {
	fn := &ast.FuncExpr{Line: s.Line, Params: s.Params, Body: s.Body}
	scope.assign(s.Name, e.registerFunc(fn))
	return ctrlContinue, nil
}

func (e *Evaluator) execReturn(scope *scopeStack, s *ast.ReturnStat) (ctrl, error) {
	values, err := e.evalExprListSpliced(scope, s.Exprs)
	if err != nil {
		return ctrl{}, err
	}
	return ctrlReturn(values), nil
}
