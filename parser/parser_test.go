package parser

import (
	"testing"

	"github.com/lollipopkit/reggie/ast"
)

func TestParseLocalAndAssign(t *testing.T) {
	mod, err := Parse("local x = 1\nx = x + 2\n", "test")
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	if len(mod.Block.Stats) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(mod.Block.Stats))
	}
	decl, ok := mod.Block.Stats[0].(*ast.LocalDeclStat)
	if !ok {
		t.Fatalf("stat 0 is %T, want *ast.LocalDeclStat", mod.Block.Stats[0])
	}
	if len(decl.Names) != 1 || decl.Names[0] != "x" {
		t.Fatalf("unexpected names: %v", decl.Names)
	}
	if len(decl.Exprs) != 1 {
		t.Fatalf("expected 1 initializer, got %d", len(decl.Exprs))
	}
	if _, ok := decl.Exprs[0].(*ast.IntExpr); !ok {
		t.Fatalf("initializer is %T, want *ast.IntExpr", decl.Exprs[0])
	}

	assign, ok := mod.Block.Stats[1].(*ast.AssignStat)
	if !ok {
		t.Fatalf("stat 1 is %T, want *ast.AssignStat", mod.Block.Stats[1])
	}
	if len(assign.Targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(assign.Targets))
	}
	bin, ok := assign.Exprs[0].(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("rhs is %T, want *ast.BinaryExpr", assign.Exprs[0])
	}
	if bin.Op != "+" {
		t.Fatalf("op = %q", bin.Op)
	}
}

func TestParseIfElseif(t *testing.T) {
	mod, err := Parse(`
if x then
  return 1
elseif y then
  return 2
else
  return 3
end
`, "test")
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	if len(mod.Block.Stats) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(mod.Block.Stats))
	}
	ifs, ok := mod.Block.Stats[0].(*ast.IfStat)
	if !ok {
		t.Fatalf("stat is %T, want *ast.IfStat", mod.Block.Stats[0])
	}
	if len(ifs.Conds) != 2 || len(ifs.Blocks) != 2 {
		t.Fatalf("expected 2 cond/block pairs, got %d/%d", len(ifs.Conds), len(ifs.Blocks))
	}
	if ifs.Else == nil {
		t.Fatal("expected an else block")
	}
}

func TestParseFunctionDeclAndCall(t *testing.T) {
	mod, err := Parse(`
function add(a, b)
  return a + b
end
print(add(1, 2))
`, "test")
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	if len(mod.Block.Stats) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(mod.Block.Stats))
	}
	fn, ok := mod.Block.Stats[0].(*ast.FuncDeclStat)
	if !ok {
		t.Fatalf("stat 0 is %T, want *ast.FuncDeclStat", mod.Block.Stats[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected decl: name=%q params=%v", fn.Name, fn.Params)
	}

	callStat, ok := mod.Block.Stats[1].(*ast.CallStat)
	if !ok {
		t.Fatalf("stat 1 is %T, want *ast.CallStat", mod.Block.Stats[1])
	}
	callee, ok := callStat.Call.Callee.(*ast.NameExpr)
	if !ok || callee.Name != "print" {
		t.Fatalf("unexpected callee: %#v", callStat.Call.Callee)
	}
	if len(callStat.Call.Args) != 1 {
		t.Fatalf("expected 1 arg to print, got %d", len(callStat.Call.Args))
	}
	inner, ok := callStat.Call.Args[0].(*ast.CallExpr)
	if !ok {
		t.Fatalf("arg is %T, want *ast.CallExpr", callStat.Call.Args[0])
	}
	if len(inner.Args) != 2 {
		t.Fatalf("expected 2 args to add, got %d", len(inner.Args))
	}
}

func TestParseTableConstructor(t *testing.T) {
	mod, err := Parse(`local t = {1, 2, x = 3}`, "test")
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	decl := mod.Block.Stats[0].(*ast.LocalDeclStat)
	tbl, ok := decl.Exprs[0].(*ast.TableExpr)
	if !ok {
		t.Fatalf("initializer is %T, want *ast.TableExpr", decl.Exprs[0])
	}
	if len(tbl.Keys) != 3 || len(tbl.Values) != 3 {
		t.Fatalf("expected 3 entries, got %d keys / %d values", len(tbl.Keys), len(tbl.Values))
	}
	if tbl.Keys[0] != nil || tbl.Keys[1] != nil {
		t.Fatalf("expected array-position entries to have nil keys")
	}
	key, ok := tbl.Keys[2].(*ast.StringExpr)
	if !ok || key.Value != "x" {
		t.Fatalf("unexpected third key: %#v", tbl.Keys[2])
	}
}

func TestParseWhileAndIndex(t *testing.T) {
	mod, err := Parse(`
while i < 10 do
  t[i] = i
end
`, "test")
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	ws, ok := mod.Block.Stats[0].(*ast.WhileStat)
	if !ok {
		t.Fatalf("stat is %T, want *ast.WhileStat", mod.Block.Stats[0])
	}
	if _, ok := ws.Cond.(*ast.BinaryExpr); !ok {
		t.Fatalf("cond is %T, want *ast.BinaryExpr", ws.Cond)
	}
	if len(ws.Body.Stats) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(ws.Body.Stats))
	}
	assign := ws.Body.Stats[0].(*ast.AssignStat)
	idx, ok := assign.Targets[0].(*ast.IndexExpr)
	if !ok {
		t.Fatalf("target is %T, want *ast.IndexExpr", assign.Targets[0])
	}
	if _, ok := idx.Object.(*ast.NameExpr); !ok {
		t.Fatalf("index object is %T, want *ast.NameExpr", idx.Object)
	}
}

func TestParseSyntaxErrorDoesNotPanic(t *testing.T) {
	_, err := Parse("local x = \n", "test")
	if err == nil {
		t.Fatal("expected a syntax error, got nil")
	}
}
