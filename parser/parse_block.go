package parser

import (
	"github.com/lollipopkit/reggie/ast"
	. "github.com/lollipopkit/reggie/lexer"
)

// block ::= {stat} [retstat]
func parseBlock(l *Lexer) *ast.Block {
	return &ast.Block{Stats: parseStats(l)}
}

func parseStats(l *Lexer) []ast.Stat {
	stats := make([]ast.Stat, 0, 8)
	for !isBlockFollow(l) {
		if l.LookAhead() == TokenKwReturn {
			stats = append(stats, parseReturnStat(l))
			break
		}
		stat := parseStat(l)
		if stat != nil {
			stats = append(stats, stat)
		}
	}
	return stats
}

func isBlockFollow(l *Lexer) bool {
	switch l.LookAhead() {
	case TokenEOF, TokenKwEnd, TokenKwElse, TokenKwElseif, TokenKwUntil:
		return true
	default:
		return false
	}
}

// retstat ::= return [explist] [';']
func parseReturnStat(l *Lexer) *ast.ReturnStat {
	line, _ := l.NextTokenOfKind(TokenKwReturn)
	var exprs []ast.Expr
	if !isBlockFollow(l) && l.LookAhead() != TokenSepSemi {
		exprs = parseExprList(l)
	}
	if l.LookAhead() == TokenSepSemi {
		l.NextToken()
	}
	return &ast.ReturnStat{Line: line, Exprs: exprs}
}
