package reggie

import (
	"fmt"

	"github.com/lollipopkit/reggie/ast"
	"github.com/lollipopkit/reggie/lang"
)

// localScope is one lexical level's name -> local-register bindings
// within a function being compiled; scopes nest the way astvm's
// scopeStack does, but resolve to register indices instead of map
// lookups. Functions do not close over an enclosing function's locals
// (spec §4.3: a Lua function's closure value captures only its source
// body and parameter list), so resolveLocal never looks past the
// current funcState's own scope chain into an enclosing function.
type localScope struct {
	names  map[string]int32
	parent *localScope
}

// funcState accumulates one function's (or the top-level chunk's)
// compiled body: its instruction stream, constant pools, and the
// register allocator, grounded in the teacher's
// compiler/codegen/func_info.go discipline — registers are allocated
// from a monotonically increasing counter and never reclaimed, since a
// Reggie call frame's local register file lives for the whole call, not
// per-statement.
type funcState struct {
	debugName string
	argCount  int32
	argNames  map[string]int32
	scope     *localScope
	localCount int32

	instructions []Instruction
	floats       []float64
	strings      []string
	stringIndex  map[string]int32

	retArity ReturnArity
	globals  *lang.Globals
}

func newFuncState(debugName string, params []string, globals *lang.Globals) *funcState {
	fs := &funcState{
		debugName:   debugName,
		argCount:    int32(len(params)),
		argNames:    make(map[string]int32, len(params)),
		scope:       &localScope{names: make(map[string]int32)},
		stringIndex: make(map[string]int32),
		retArity:    ArityNone(),
		globals:     globals,
	}
	for i, p := range params {
		fs.argNames[p] = int32(i)
	}
	return fs
}

func (fs *funcState) emit(op Op, a, b int32) int32 {
	fs.instructions = append(fs.instructions, Instruction{Op: op, A: a, B: b})
	return int32(len(fs.instructions) - 1)
}

func (fs *funcState) here() int32 { return int32(len(fs.instructions)) }

func (fs *funcState) patchJmp(at int32, target int32) { fs.instructions[at].A = target }

func (fs *funcState) pushScope() { fs.scope = &localScope{names: make(map[string]int32), parent: fs.scope} }

func (fs *funcState) popScope() { fs.scope = fs.scope.parent }

func (fs *funcState) declareLocal(name string) int32 {
	idx := fs.localCount
	fs.localCount++
	if name != "" {
		fs.scope.names[name] = idx
	}
	return idx
}

// resolveLocal walks scopes innermost-out; ok is false if name is not a
// local in this function (caller then tries arguments, then globals).
func (fs *funcState) resolveLocal(name string) (int32, bool) {
	for s := fs.scope; s != nil; s = s.parent {
		if idx, ok := s.names[name]; ok {
			return idx, true
		}
	}
	return 0, false
}

func (fs *funcState) internString(s string) int32 {
	if idx, ok := fs.stringIndex[s]; ok {
		return idx
	}
	idx := int32(len(fs.strings))
	fs.strings = append(fs.strings, s)
	fs.stringIndex[s] = idx
	return idx
}

func (fs *funcState) internFloat(f float64) int32 {
	idx := int32(len(fs.floats))
	fs.floats = append(fs.floats, f)
	return idx
}

// compilerState threads the growing CompiledModule.Blocks table through
// nested function compilation: a FuncExpr discovered mid-body is
// compiled immediately (depth-first) so its BlockID is known in time to
// bake into the enclosing function's ConstI/WrapFunc sequence that
// produces the LuaFunction value.
type compilerState struct {
	globals *lang.Globals
	blocks  []CodeBlock
}

// Compile lowers mod into a CompiledModule (spec §4.4's bytecode
// lowering rules). globals must be the same *lang.Globals instance the
// resulting CompiledModule will later run against: global names resolve
// to their stable GlobalCellID at compile time, relying on spec §3's
// "stable address" guarantee to stay valid across repeated runs of the
// same compiled module.
func Compile(mod *ast.Module, globals *lang.Globals) (*CompiledModule, error) {
	c := &compilerState{globals: globals}
	top := newFuncState("<top-level>", nil, globals)
	if err := c.compileFunctionBody(top, mod.Block); err != nil {
		return nil, err
	}
	topID := c.addBlock(top, true)
	return &CompiledModule{Blocks: c.blocks, TopLevel: topID}, nil
}

func (c *compilerState) addBlock(fs *funcState, isTop bool) BlockID {
	id := BlockID(len(c.blocks))
	c.blocks = append(c.blocks, CodeBlock{
		Meta: CodeMeta{
			DebugName:   fs.debugName,
			ArgCount:    fs.argCount,
			LocalCount:  fs.localCount,
			ReturnArity: fs.retArity,
			IsTopLevel:  isTop,
		},
		Instructions: fs.instructions,
		Floats:       fs.floats,
		Strings:      fs.strings,
	})
	return id
}

// compileFunctionBody compiles a block as a whole function body (top
// level or a FuncExpr), ending with an implicit `return` (no values) if
// control falls off the end without an explicit one.
func (c *compilerState) compileFunctionBody(fs *funcState, body *ast.Block) error {
	if err := c.compileBlock(fs, body); err != nil {
		return err
	}
	fs.emit(OpStageReset, 0, 0)
	fs.emit(OpRet, 0, 0)
	fs.retArity = fs.retArity.Join(ArityExactly(0))
	return nil
}

// emitConstI loads an Int immediate straight into D (ConstI writes the I
// accumulator; WrapI tags it into D), the sequence every Int literal or
// synthesized integer constant (value_count, array indices) uses.
func (fs *funcState) emitConstI(n int32) {
	fs.emit(OpConstI, n, 0)
	fs.emit(OpWrapI, 0, 0)
}

func (c *compilerState) compileBlock(fs *funcState, block *ast.Block) error {
	fs.pushScope()
	defer fs.popScope()
	for _, stat := range block.Stats {
		if err := c.compileStat(fs, stat); err != nil {
			return err
		}
	}
	return nil
}

func (c *compilerState) compileStat(fs *funcState, stat ast.Stat) error {
	switch s := stat.(type) {
	case *ast.LocalDeclStat:
		return c.compileLocalDecl(fs, s)
	case *ast.AssignStat:
		return c.compileAssign(fs, s)
	case *ast.CallStat:
		return c.compileCallStat(fs, s.Call)
	case *ast.IfStat:
		return c.compileIf(fs, s)
	case *ast.WhileStat:
		return c.compileWhile(fs, s)
	case *ast.RepeatStat:
		return c.compileRepeat(fs, s)
	case *ast.FuncDeclStat:
		return c.compileFuncDecl(fs, s)
	case *ast.ReturnStat:
		return c.compileReturn(fs, s)
	default:
		return fmt.Errorf("reggie: compiler: unhandled statement %T", stat)
	}
}

func (c *compilerState) compileLocalDecl(fs *funcState, s *ast.LocalDeclStat) error {
	regs, err := c.compileSplicedList(fs, s.Exprs, len(s.Names))
	if err != nil {
		return err
	}
	for i, name := range s.Names {
		idx := fs.declareLocal(name)
		if i < len(regs) {
			fs.emit(OpLdaDL, regs[i], 0)
		} else {
			fs.emit(OpConstN, 0, 0)
		}
		fs.emit(OpStrDL, idx, 0)
	}
	return nil
}

func (c *compilerState) compileAssign(fs *funcState, s *ast.AssignStat) error {
	regs, err := c.compileSplicedList(fs, s.Exprs, len(s.Targets))
	if err != nil {
		return err
	}
	for i, target := range s.Targets {
		if i < len(regs) {
			fs.emit(OpLdaDL, regs[i], 0)
		} else {
			fs.emit(OpConstN, 0, 0)
		}
		if err := c.compileStoreTo(fs, target); err != nil {
			return err
		}
	}
	return nil
}

// compileStoreTo stores the current D accumulator into target.
func (c *compilerState) compileStoreTo(fs *funcState, target ast.Expr) error {
	switch t := target.(type) {
	case *ast.NameExpr:
		if idx, ok := fs.resolveLocal(t.Name); ok {
			fs.emit(OpStrDL, idx, 0)
			return nil
		}
		if idx, ok := fs.argNames[t.Name]; ok {
			fs.emit(OpStrDR, idx, 0)
			return nil
		}
		cell := int32(fs.globals.CellForName(t.Name))
		fs.emit(OpStrDGl, cell, 0)
		return nil
	case *ast.IndexExpr:
		value := fs.declareLocal("")
		fs.emit(OpStrDL, value, 0)
		objReg, err := c.compileToLocal(fs, t.Object)
		if err != nil {
			return err
		}
		keyReg, err := c.compileToLocal(fs, t.Key)
		if err != nil {
			return err
		}
		fs.emit(OpLdaDL, value, 0)
		fs.emit(OpStrIndexLL, objReg, keyReg)
		return nil
	default:
		return fmt.Errorf("reggie: compiler: invalid assignment target %T", target)
	}
}

// compileToLocal evaluates expr and spills the result into a fresh local
// register, returning its index; used whenever evaluating a later
// sub-expression would otherwise clobber the D accumulator.
func (c *compilerState) compileToLocal(fs *funcState, expr ast.Expr) (int32, error) {
	if err := c.compileExpr(fs, expr); err != nil {
		return 0, err
	}
	idx := fs.declareLocal("")
	fs.emit(OpStrDL, idx, 0)
	return idx, nil
}

func (c *compilerState) compileIf(fs *funcState, s *ast.IfStat) error {
	endJumps := make([]int32, 0, len(s.Conds))
	for i, cond := range s.Conds {
		if err := c.compileExpr(fs, cond); err != nil {
			return err
		}
		fs.emit(OpNilTest, 0, 0) // eq == true iff condition is Nil (falsy)
		skip := fs.emit(OpJmpEQ, 0, 0)
		if err := c.compileBlock(fs, s.Blocks[i]); err != nil {
			return err
		}
		endJumps = append(endJumps, fs.emit(OpJmp, 0, 0))
		fs.patchJmp(skip, fs.here())
	}
	if s.Else != nil {
		if err := c.compileBlock(fs, s.Else); err != nil {
			return err
		}
	}
	end := fs.here()
	for _, j := range endJumps {
		fs.patchJmp(j, end)
	}
	return nil
}

func (c *compilerState) compileWhile(fs *funcState, s *ast.WhileStat) error {
	top := fs.here()
	if err := c.compileExpr(fs, s.Cond); err != nil {
		return err
	}
	fs.emit(OpNilTest, 0, 0)
	exit := fs.emit(OpJmpEQ, 0, 0)
	if err := c.compileBlock(fs, s.Body); err != nil {
		return err
	}
	fs.emit(OpJmp, top, 0)
	fs.patchJmp(exit, fs.here())
	return nil
}

// compileRepeat: the body runs once unconditionally, then the loop
// repeats while Cond is falsy (spec §4.3's inverted-while semantics, not
// a do-while re-testing the same predicate each time through).
func (c *compilerState) compileRepeat(fs *funcState, s *ast.RepeatStat) error {
	top := fs.here()
	if err := c.compileBlock(fs, s.Body); err != nil {
		return err
	}
	if err := c.compileExpr(fs, s.Cond); err != nil {
		return err
	}
	fs.emit(OpNilTest, 0, 0)
	fs.emit(OpJmpEQ, top, 0) // cond falsy (eq==true) -> loop again
	return nil
}

func (c *compilerState) compileFuncDecl(fs *funcState, s *ast.FuncDeclStat) error {
	fn := &ast.FuncExpr{Line: s.Line, Params: s.Params, Body: s.Body}
	if err := c.compileExpr(fs, fn); err != nil {
		return err
	}
	return c.compileStoreTo(fs, &ast.NameExpr{Line: s.Line, Name: s.Name})
}

func (c *compilerState) compileCallStat(fs *funcState, call *ast.CallExpr) error {
	_, err := c.compileCall(fs, call)
	return err
}

// compileReturn splices its expression list (spec §4.2) into the stage
// buffer as the return values, then emits Ret.
func (c *compilerState) compileReturn(fs *funcState, s *ast.ReturnStat) error {
	if len(s.Exprs) == 0 {
		fs.emit(OpStageReset, 0, 0)
		fs.emit(OpRet, 0, 0)
		fs.retArity = fs.retArity.Join(ArityExactly(0))
		return nil
	}
	n, dynamic, err := c.compileSplicedIntoArgs(fs, s.Exprs)
	if err != nil {
		return err
	}
	fs.emit(OpRet, 0, 0)
	if dynamic {
		fs.retArity = fs.retArity.Join(ArityAtLeast(int(n)))
	} else {
		fs.retArity = fs.retArity.Join(ArityExactly(int(n)))
	}
	return nil
}

// compileSplicedIntoArgs evaluates exprs left to right and leaves the
// spliced result (spec §4.2) in the current frame's stage buffer, ready
// for an immediately following OpDCall or OpRet. When the last
// expression is itself a call, every one of ITS results is spliced in
// via OpRDShiftRight and the returned count is only a known lower bound
// (dynamic == true).
//
// Non-trailing values are evaluated into local registers first and only
// staged after a trailing call has fully run: a trailing call's own
// arguments are staged through that very same per-frame stage buffer
// (via its own nested compileSplicedIntoArgs/emitCall), and would
// otherwise be clobbered by this list's own staging if both happened
// concurrently. Deferring the copy doesn't change Lua-observable
// evaluation order, since writing a value into a register has no side
// effect of its own.
func (c *compilerState) compileSplicedIntoArgs(fs *funcState, exprs []ast.Expr) (n int32, dynamic bool, err error) {
	var regs []int32
	var trailing *ast.CallExpr
	for i, e := range exprs {
		if call, ok := e.(*ast.CallExpr); ok && i == len(exprs)-1 {
			trailing = call
			break
		}
		reg, err := c.compileToLocal(fs, e)
		if err != nil {
			return 0, false, err
		}
		regs = append(regs, reg)
	}

	if trailing != nil {
		if err := c.emitCall(fs, trailing); err != nil {
			return 0, false, err
		}
	}

	fs.emit(OpStageReset, 0, 0)
	for _, reg := range regs {
		fs.emit(OpLdaDL, reg, 0)
		fs.emit(OpStageD, 0, 0)
	}
	n = int32(len(regs))

	if trailing != nil {
		fs.emit(OpRDShiftRight, 0, 0)
		return n, true, nil
	}
	return n, false, nil
}

// compileSplicedList evaluates exprs with spec §4.2 splicing (used by
// local declarations and assignment right-hand sides), spilling each
// produced value into its own fresh local register and returning those
// indices. want is the number of targets the caller needs to fill
// (len(s.Names)/len(s.Targets)): when the last expr is a call and want
// exceeds the number of exprs, the call's extra return values (beyond
// its first, already spilled like any other expr's result) are pulled
// one by one via OpLdaDCallIdx against m.lastCallResult — mirroring how
// compileSplicedIntoArgs splices a trailing call's full result into the
// stage buffer via OpRDShiftRight, but indexed instead of bulk-appended
// since each value here lands in its own named register rather than a
// shared buffer. Only once want is exhausted (or the call had fewer
// results than needed) do remaining targets fall back to Nil, same as
// the non-call case.
func (c *compilerState) compileSplicedList(fs *funcState, exprs []ast.Expr, want int) ([]int32, error) {
	var regs []int32
	var trailing *ast.CallExpr
	for i, e := range exprs {
		if call, ok := e.(*ast.CallExpr); ok && i == len(exprs)-1 {
			trailing = call
			break
		}
		reg, err := c.compileToLocal(fs, e)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if trailing == nil {
		return regs, nil
	}

	if err := c.emitCall(fs, trailing); err != nil {
		return nil, err
	}
	idx := fs.declareLocal("")
	fs.emit(OpStrDL, idx, 0) // the call's first result; emitCall left it in D
	regs = append(regs, idx)

	for callIdx := int32(1); len(regs) < want; callIdx++ {
		fs.emit(OpLdaDCallIdx, callIdx, 0)
		extraIdx := fs.declareLocal("")
		fs.emit(OpStrDL, extraIdx, 0)
		regs = append(regs, extraIdx)
	}
	return regs, nil
}

// compileCall evaluates a call expression and returns a local register
// holding its first return value.
func (c *compilerState) compileCall(fs *funcState, call *ast.CallExpr) (int32, error) {
	if err := c.emitCall(fs, call); err != nil {
		return 0, err
	}
	idx := fs.declareLocal("")
	fs.emit(OpStrDL, idx, 0)
	return idx, nil
}

// emitCall compiles callee and arguments (spliced per spec §4.2) and
// emits OpDCall, leaving the call's first return value in D.
func (c *compilerState) emitCall(fs *funcState, call *ast.CallExpr) error {
	calleeReg, err := c.compileToLocal(fs, call.Callee)
	if err != nil {
		return err
	}
	if _, _, err := c.compileSplicedIntoArgs(fs, call.Args); err != nil {
		return err
	}
	fs.emit(OpLdaDL, calleeReg, 0)
	fs.emit(OpDCall, 0, 0)
	return nil
}

// compileExpr evaluates expr, leaving its (single-value) result in D.
func (c *compilerState) compileExpr(fs *funcState, expr ast.Expr) error {
	switch e := expr.(type) {
	case *ast.NilExpr:
		fs.emit(OpConstN, 0, 0)
	case *ast.IntExpr:
		fs.emitConstI(e.Value)
	case *ast.FloatExpr:
		idx := fs.internFloat(e.Value)
		fs.emit(OpConstF, idx, 0)
		fs.emit(OpWrapF, 0, 0)
	case *ast.StringExpr:
		idx := fs.internString(e.Value)
		fs.emit(OpConstS, idx, 0)
		fs.emit(OpWrapS, 0, 0)
	case *ast.NameExpr:
		return c.compileName(fs, e.Name)
	case *ast.ParenExpr:
		return c.compileExpr(fs, e.Inner)
	case *ast.IndexExpr:
		objReg, err := c.compileToLocal(fs, e.Object)
		if err != nil {
			return err
		}
		if err := c.compileExpr(fs, e.Key); err != nil {
			return err
		}
		fs.emit(OpLdaIndexL, objReg, 0)
	case *ast.UnaryExpr:
		if err := c.compileExpr(fs, e.Operand); err != nil {
			return err
		}
		switch e.Op {
		case "-":
			fs.emit(OpDNeg, 0, 0)
		case "not":
			fs.emit(OpDNot, 0, 0)
		default:
			return fmt.Errorf("reggie: compiler: unknown unary operator %q", e.Op)
		}
	case *ast.BinaryExpr:
		return c.compileBinary(fs, e)
	case *ast.LogicalExpr:
		return c.compileLogical(fs, e)
	case *ast.CallExpr:
		return c.emitCall(fs, e)
	case *ast.FuncExpr:
		return c.compileFuncLiteral(fs, e)
	case *ast.TableExpr:
		return c.compileTable(fs, e)
	default:
		return fmt.Errorf("reggie: compiler: unhandled expression %T", expr)
	}
	return nil
}

func (c *compilerState) compileName(fs *funcState, name string) error {
	if idx, ok := fs.resolveLocal(name); ok {
		fs.emit(OpLdaDL, idx, 0)
		return nil
	}
	if idx, ok := fs.argNames[name]; ok {
		fs.emit(OpLdaDR, idx, 0)
		return nil
	}
	cell := int32(fs.globals.CellForName(name))
	fs.emit(OpLdaDGl, cell, 0)
	return nil
}

func (c *compilerState) compileBinary(fs *funcState, e *ast.BinaryExpr) error {
	leftReg, err := c.compileToLocal(fs, e.Left)
	if err != nil {
		return err
	}
	if err := c.compileExpr(fs, e.Right); err != nil {
		return err
	}
	switch e.Op {
	case "+":
		fs.emit(OpDAddL, leftReg, 0)
	case "-":
		fs.emit(OpDSubL, leftReg, 0)
	case "*":
		fs.emit(OpDMulL, leftReg, 0)
	case "/":
		fs.emit(OpDDivL, leftReg, 0)
	case "..":
		fs.emit(OpDConcatL, leftReg, 0)
	case "==":
		fs.emit(OpEqTestL, leftReg, 0)
		fs.emitBoolFromFlag(OpJmpEQ)
	case "~=":
		fs.emit(OpEqTestL, leftReg, 0)
		fs.emitBoolFromFlag(OpJmpNE)
	case "<":
		fs.emit(OpOrderTestL, leftReg, 0)
		fs.emitBoolFromFlag(OpJmpLT)
	case ">":
		fs.emit(OpOrderTestL, leftReg, 0)
		fs.emitBoolFromFlag(OpJmpGT)
	case "<=":
		fs.emit(OpOrderTestL, leftReg, 0)
		fs.emitBoolFromFlag(OpJmpLE)
	case ">=":
		fs.emit(OpOrderTestL, leftReg, 0)
		fs.emitBoolFromFlag(OpJmpGE)
	default:
		return fmt.Errorf("reggie: compiler: unknown binary operator %q", e.Op)
	}
	return nil
}

// emitBoolFromFlag materializes the EQ/NE or ordering flag set by the
// preceding test instruction into D as True()/False() (spec §3: "there
// is no boolean type; true is Int(1), false is Nil"), via a jump
// conditioned on jumpOp.
func (fs *funcState) emitBoolFromFlag(jumpOp Op) {
	trueJump := fs.emit(jumpOp, 0, 0)
	fs.emit(OpConstN, 0, 0)
	end := fs.emit(OpJmp, 0, 0)
	fs.patchJmp(trueJump, fs.here())
	fs.emitConstI(1)
	fs.patchJmp(end, fs.here())
}

// compileLogical implements short-circuiting `and`/`or` (spec §4.1): the
// right operand is only evaluated when the left doesn't already decide
// the result.
func (c *compilerState) compileLogical(fs *funcState, e *ast.LogicalExpr) error {
	if err := c.compileExpr(fs, e.Left); err != nil {
		return err
	}
	fs.emit(OpNilTest, 0, 0) // eq == true iff left is falsy
	var shortCircuit int32
	switch e.Op {
	case "and":
		shortCircuit = fs.emit(OpJmpEQ, 0, 0) // left falsy -> result is left, skip right
	case "or":
		shortCircuit = fs.emit(OpJmpNE, 0, 0) // left truthy -> result is left, skip right
	default:
		return fmt.Errorf("reggie: compiler: unknown logical operator %q", e.Op)
	}
	if err := c.compileExpr(fs, e.Right); err != nil {
		return err
	}
	end := fs.emit(OpJmp, 0, 0)
	fs.patchJmp(shortCircuit, fs.here())
	fs.patchJmp(end, fs.here())
	return nil
}

// compileTable builds a table literal. Array positions are known
// constants at compile time (1-based, per astvm's TableExpr handling),
// so each entry lowers to a plain indexed store against the table value
// spilled to its own register, rather than a dedicated "append" opcode.
func (c *compilerState) compileTable(fs *funcState, e *ast.TableExpr) error {
	fs.emit(OpNewT, 0, 0)
	tableReg := fs.declareLocal("")
	fs.emit(OpStrDL, tableReg, 0)

	arrIdx := int32(1)
	for i, key := range e.Keys {
		var keyReg int32
		if key == nil {
			fs.emitConstI(arrIdx)
			arrIdx++
			keyReg = fs.declareLocal("")
			fs.emit(OpStrDL, keyReg, 0)
		} else {
			reg, err := c.compileToLocal(fs, key)
			if err != nil {
				return err
			}
			keyReg = reg
		}
		if err := c.compileExpr(fs, e.Values[i]); err != nil {
			return err
		}
		fs.emit(OpStrIndexLL, tableReg, keyReg)
	}
	fs.emit(OpLdaDL, tableReg, 0)
	return nil
}

// compileFuncLiteral compiles a nested function depth-first so its
// BlockID is known immediately, then emits the constant sequence that
// produces its LuaFunction value in D (OpWrapFunc, since a BlockID tags
// differently to D than a plain Int does).
func (c *compilerState) compileFuncLiteral(fs *funcState, e *ast.FuncExpr) error {
	nested := newFuncState(fmt.Sprintf("%s/func@%d", fs.debugName, e.Line), e.Params, c.globals)
	if err := c.compileFunctionBody(nested, e.Body); err != nil {
		return err
	}
	id := c.addBlock(nested, false)
	fs.emit(OpConstI, int32(id), 0)
	fs.emit(OpWrapFunc, 0, 0)
	return nil
}
