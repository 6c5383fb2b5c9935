package parser

import (
	"github.com/lollipopkit/reggie/ast"
	. "github.com/lollipopkit/reggie/lexer"
)

/*
stat ::= ';'
       | if exp then block {elseif exp then block} [else block] end
       | while exp do block end
       | repeat block until exp
       | local namelist ['=' explist]
       | function Name funcbody
       | varlist '=' explist
       | functioncall
*/
func parseStat(l *Lexer) ast.Stat {
	switch l.LookAhead() {
	case TokenSepSemi:
		l.NextToken()
		return nil
	case TokenKwIf:
		return parseIfStat(l)
	case TokenKwWhile:
		return parseWhileStat(l)
	case TokenKwRepeat:
		return parseRepeatStat(l)
	case TokenKwLocal:
		return parseLocalDeclStat(l)
	case TokenKwFunction:
		return parseFuncDeclStat(l)
	default:
		return parseAssignOrCallStat(l)
	}
}

// if exp then block {elseif exp then block} [else block] end
func parseIfStat(l *Lexer) *ast.IfStat {
	line, _ := l.NextTokenOfKind(TokenKwIf)
	conds := make([]ast.Expr, 0, 4)
	blocks := make([]*ast.Block, 0, 4)

	conds = append(conds, parseExpr(l))
	l.NextTokenOfKind(TokenKwThen)
	blocks = append(blocks, parseBlock(l))

	for l.LookAhead() == TokenKwElseif {
		l.NextToken()
		conds = append(conds, parseExpr(l))
		l.NextTokenOfKind(TokenKwThen)
		blocks = append(blocks, parseBlock(l))
	}

	var elseBlock *ast.Block
	if l.LookAhead() == TokenKwElse {
		l.NextToken()
		elseBlock = parseBlock(l)
	}
	l.NextTokenOfKind(TokenKwEnd)
	return &ast.IfStat{Line: line, Conds: conds, Blocks: blocks, Else: elseBlock}
}

// while exp do block end
func parseWhileStat(l *Lexer) *ast.WhileStat {
	line, _ := l.NextTokenOfKind(TokenKwWhile)
	cond := parseExpr(l)
	l.NextTokenOfKind(TokenKwDo)
	body := parseBlock(l)
	l.NextTokenOfKind(TokenKwEnd)
	return &ast.WhileStat{Line: line, Cond: cond, Body: body}
}

// repeat block until exp
func parseRepeatStat(l *Lexer) *ast.RepeatStat {
	line, _ := l.NextTokenOfKind(TokenKwRepeat)
	body := parseBlock(l)
	l.NextTokenOfKind(TokenKwUntil)
	cond := parseExpr(l)
	return &ast.RepeatStat{Line: line, Body: body, Cond: cond}
}

// local namelist ['=' explist]
// namelist ::= Name {',' Name}
func parseLocalDeclStat(l *Lexer) *ast.LocalDeclStat {
	line, _ := l.NextTokenOfKind(TokenKwLocal)
	_, name0 := l.NextIdentifier()
	names := []string{name0}
	for l.LookAhead() == TokenSepComma {
		l.NextToken()
		_, name := l.NextIdentifier()
		names = append(names, name)
	}
	var exprs []ast.Expr
	if l.LookAhead() == TokenOpAssign {
		l.NextToken()
		exprs = parseExprList(l)
	}
	return &ast.LocalDeclStat{Line: line, Names: names, Exprs: exprs}
}

// function Name funcbody
// funcbody ::= '(' [parlist] ')' block end
func parseFuncDeclStat(l *Lexer) *ast.FuncDeclStat {
	line, _ := l.NextTokenOfKind(TokenKwFunction)
	_, name := l.NextIdentifier()
	params, body := parseFuncBody(l)
	return &ast.FuncDeclStat{Line: line, Name: name, Params: params, Body: body}
}

// parlist ::= namelist
func parseFuncBody(l *Lexer) (params []string, body *ast.Block) {
	l.NextTokenOfKind(TokenSepLParen)
	if l.LookAhead() != TokenSepRParen {
		_, name0 := l.NextIdentifier()
		params = append(params, name0)
		for l.LookAhead() == TokenSepComma {
			l.NextToken()
			_, name := l.NextIdentifier()
			params = append(params, name)
		}
	}
	l.NextTokenOfKind(TokenSepRParen)
	body = parseBlock(l)
	l.NextTokenOfKind(TokenKwEnd)
	return
}

// varlist '=' explist
// functioncall
func parseAssignOrCallStat(l *Lexer) ast.Stat {
	line := l.Line()
	prefix := parsePrefixExpr(l)
	if call, ok := prefix.(*ast.CallExpr); ok && l.LookAhead() != TokenOpAssign && l.LookAhead() != TokenSepComma {
		return &ast.CallStat{Call: call}
	}
	targets := []ast.Expr{checkVar(l, prefix)}
	for l.LookAhead() == TokenSepComma {
		l.NextToken()
		targets = append(targets, checkVar(l, parsePrefixExpr(l)))
	}
	l.NextTokenOfKind(TokenOpAssign)
	exprs := parseExprList(l)
	return &ast.AssignStat{Line: line, Targets: targets, Exprs: exprs}
}

func checkVar(l *Lexer, e ast.Expr) ast.Expr {
	switch e.(type) {
	case *ast.NameExpr, *ast.IndexExpr:
		return e
	}
	l.NextTokenOfKind(-1) // force a syntax error with context
	panic("unreachable")
}
