package parser

import (
	"strconv"

	"github.com/lollipopkit/reggie/ast"
	. "github.com/lollipopkit/reggie/lexer"
)

// explist ::= exp {',' exp}
func parseExprList(l *Lexer) []ast.Expr {
	exprs := []ast.Expr{parseExpr(l)}
	for l.LookAhead() == TokenSepComma {
		l.NextToken()
		exprs = append(exprs, parseExpr(l))
	}
	return exprs
}

// Precedence climbing over: or < and < comparisons < concat < + - < * /.
// Unary `not`/`-` bind tighter than every binary operator.
var binPrecedence = map[int]int{
	TokenOpOr:     1,
	TokenOpAnd:    2,
	TokenOpLt:     3,
	TokenOpGt:     3,
	TokenOpLe:     3,
	TokenOpGe:     3,
	TokenOpEq:     3,
	TokenOpNe:     3,
	TokenOpConcat: 4,
	TokenOpAdd:    5,
	TokenOpMinus:  5,
	TokenOpMul:    6,
	TokenOpDiv:    6,
}

func parseExpr(l *Lexer) ast.Expr {
	return parseSubExpr(l, 0)
}

func parseSubExpr(l *Lexer, limit int) ast.Expr {
	var left ast.Expr
	if l.LookAhead() == TokenOpNot || l.LookAhead() == TokenOpMinus {
		line, op, _ := l.NextToken()
		operand := parseSubExpr(l, 7) // unary binds tighter than every binop
		left = &ast.UnaryExpr{Line: line, Op: tokenText(op), Operand: operand}
	} else {
		left = parsePrimaryExpr(l)
	}

	for {
		op := l.LookAhead()
		prec, ok := binPrecedence[op]
		if !ok || prec <= limit {
			return left
		}
		line, _, tok := l.NextToken()
		right := parseSubExpr(l, prec)
		if op == TokenOpAnd || op == TokenOpOr {
			left = &ast.LogicalExpr{Line: line, Op: tok, Left: left, Right: right}
		} else {
			left = &ast.BinaryExpr{Line: line, Op: tok, Left: left, Right: right}
		}
	}
}

func tokenText(op int) string {
	if op == TokenOpNot {
		return "not"
	}
	return "-"
}

// primaryexp ::= nil | Numeral | LiteralString | functiondef | tableconstructor | prefixexp
func parsePrimaryExpr(l *Lexer) ast.Expr {
	switch l.LookAhead() {
	case TokenKwNil:
		line, _ := l.NextTokenOfKind(TokenKwNil)
		return &ast.NilExpr{Line: line}
	case TokenNumber:
		return parseNumberExpr(l)
	case TokenString:
		line, _, s := l.NextToken()
		return &ast.StringExpr{Line: line, Value: s}
	case TokenKwFunction:
		return parseFuncExpr(l)
	case TokenSepLCurly:
		return parseTableExpr(l)
	default:
		return parsePrefixExpr(l)
	}
}

func parseNumberExpr(l *Lexer) ast.Expr {
	line, _, tok := l.NextToken()
	if i, err := strconv.ParseInt(tok, 10, 32); err == nil {
		return &ast.IntExpr{Line: line, Value: int32(i)}
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		panic("malformed number literal: " + tok)
	}
	return &ast.FloatExpr{Line: line, Value: f}
}

func parseFuncExpr(l *Lexer) ast.Expr {
	line, _ := l.NextTokenOfKind(TokenKwFunction)
	params, body := parseFuncBody(l)
	return &ast.FuncExpr{Line: line, Params: params, Body: body}
}

// tableconstructor ::= '{' [fieldlist] '}'
// fieldlist ::= field {fieldsep field} [fieldsep]
// field ::= '[' exp ']' '=' exp | Name '=' exp | exp
// fieldsep ::= ',' | ';'
func parseTableExpr(l *Lexer) ast.Expr {
	line, _ := l.NextTokenOfKind(TokenSepLCurly)
	var keys, values []ast.Expr
	for l.LookAhead() != TokenSepRCurly {
		var key, value ast.Expr
		switch l.LookAhead() {
		case TokenSepLBrack:
			l.NextToken()
			key = parseExpr(l)
			l.NextTokenOfKind(TokenSepRBrack)
			l.NextTokenOfKind(TokenOpAssign)
			value = parseExpr(l)
		case TokenIdentifier:
			if peekIsFieldAssign(l) {
				keyLine, name := l.NextIdentifier()
				key = &ast.StringExpr{Line: keyLine, Value: name}
				l.NextTokenOfKind(TokenOpAssign)
				value = parseExpr(l)
			} else {
				value = parseExpr(l)
			}
		default:
			value = parseExpr(l)
		}
		keys = append(keys, key)
		values = append(values, value)
		if l.LookAhead() == TokenSepComma || l.LookAhead() == TokenSepSemi {
			l.NextToken()
		} else {
			break
		}
	}
	l.NextTokenOfKind(TokenSepRCurly)
	return &ast.TableExpr{Line: line, Keys: keys, Values: values}
}

// peekIsFieldAssign reports whether the upcoming `Name` token is
// followed by `=`, i.e. it is a `Name = exp` field rather than a bare
// expression that happens to start with an identifier.
func peekIsFieldAssign(l *Lexer) bool {
	return l.LookAhead() == TokenIdentifier && l.PeekAssignAfterIdentifier()
}

// prefixexp ::= Name | '(' exp ')' | prefixexp '[' exp ']' | prefixexp '.' Name | prefixexp args
func parsePrefixExpr(l *Lexer) ast.Expr {
	var expr ast.Expr
	if l.LookAhead() == TokenSepLParen {
		l.NextToken()
		inner := parseExpr(l)
		l.NextTokenOfKind(TokenSepRParen)
		expr = &ast.ParenExpr{Inner: inner}
	} else {
		line, name := l.NextIdentifier()
		expr = &ast.NameExpr{Line: line, Name: name}
	}

	for {
		switch l.LookAhead() {
		case TokenSepDot:
			l.NextToken()
			line, name := l.NextIdentifier()
			expr = &ast.IndexExpr{Line: line, Object: expr, Key: &ast.StringExpr{Line: line, Value: name}}
		case TokenSepLBrack:
			l.NextToken()
			key := parseExpr(l)
			line, _ := l.NextTokenOfKind(TokenSepRBrack)
			expr = &ast.IndexExpr{Line: line, Object: expr, Key: key}
		case TokenSepLParen:
			line, _ := l.NextTokenOfKind(TokenSepLParen)
			var args []ast.Expr
			if l.LookAhead() != TokenSepRParen {
				args = parseExprList(l)
			}
			l.NextTokenOfKind(TokenSepRParen)
			expr = &ast.CallExpr{Line: line, Callee: expr, Args: args}
		default:
			return expr
		}
	}
}
