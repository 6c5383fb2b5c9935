package lexer

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var reNewLine = regexp.MustCompile("\r\n|\n\r|\n|\r")
var reIdentifier = regexp.MustCompile(`^[_\d\w]+`)
var reNumber = regexp.MustCompile(`^[0-9]+\.[0-9]*([eE][+\-]?[0-9]+)?|^\.[0-9]+([eE][+\-]?[0-9]+)?|^[0-9]+([eE][+\-]?[0-9]+)?`)
var reShortStr = regexp.MustCompile(`(?s)(^'(\\\\|\\'|\\\n|[^'\n])*')|(^"(\\\\|\\"|\\\n|[^"\n])*")`)
var reDecEscapeSeq = regexp.MustCompile(`^\\[0-9]{1,3}`)

// Lexer tokenizes chunk one token at a time, buffering a single
// look-ahead token (needed to disambiguate e.g. `local function` from
// `local x`).
type Lexer struct {
	chunk         string
	chunkName     string
	line          int
	nextToken     string
	nextTokenKind int
	nextTokenLine int
}

func NewLexer(chunk, chunkName string) *Lexer {
	return &Lexer{chunk: chunk, chunkName: chunkName, line: 1}
}

func (l *Lexer) Line() int { return l.line }

func (l *Lexer) LookAhead() int {
	if l.nextTokenLine > 0 {
		return l.nextTokenKind
	}
	currentLine := l.line
	line, kind, token := l.NextToken()
	l.line = currentLine
	l.nextTokenLine = line
	l.nextTokenKind = kind
	l.nextToken = token
	return kind
}

func (l *Lexer) NextIdentifier() (line int, token string) {
	return l.NextTokenOfKind(TokenIdentifier)
}

// Checkpoint is a saved scan position, used by the parser to backtrack
// when one token of look-ahead isn't enough to disambiguate a
// production (e.g. table-constructor `Name = exp` vs. a bare `Name`).
type Checkpoint struct {
	chunk         string
	line          int
	nextToken     string
	nextTokenKind int
	nextTokenLine int
}

func (l *Lexer) Save() Checkpoint {
	return Checkpoint{l.chunk, l.line, l.nextToken, l.nextTokenKind, l.nextTokenLine}
}

func (l *Lexer) Restore(c Checkpoint) {
	l.chunk, l.line, l.nextToken, l.nextTokenKind, l.nextTokenLine =
		c.chunk, c.line, c.nextToken, c.nextTokenKind, c.nextTokenLine
}

// PeekAssignAfterIdentifier reports whether, starting from the upcoming
// identifier token, the token immediately after it is `=`. Used only to
// disambiguate table-constructor fields; restores position afterward.
func (l *Lexer) PeekAssignAfterIdentifier() bool {
	save := l.Save()
	l.NextToken() // consume the identifier
	isAssign := l.LookAhead() == TokenOpAssign
	l.Restore(save)
	return isAssign
}

func (l *Lexer) NextTokenOfKind(kind int) (line int, token string) {
	line, gotKind, token := l.NextToken()
	if kind != gotKind {
		l.error("syntax error near line %d: expected '%s' but got '%s'", line, tokenName(kind), tokenName(gotKind))
	}
	return line, token
}

func (l *Lexer) NextToken() (line, kind int, token string) {
	if l.nextTokenLine > 0 {
		line, kind, token = l.nextTokenLine, l.nextTokenKind, l.nextToken
		l.line = l.nextTokenLine
		l.nextTokenLine = 0
		return
	}

	l.skipWhiteSpaces()
	if len(l.chunk) == 0 {
		return l.line, TokenEOF, "EOF"
	}

	switch l.chunk[0] {
	case ';':
		l.next(1)
		return l.line, TokenSepSemi, ";"
	case ',':
		l.next(1)
		return l.line, TokenSepComma, ","
	case '(':
		l.next(1)
		return l.line, TokenSepLParen, "("
	case ')':
		l.next(1)
		return l.line, TokenSepRParen, ")"
	case '[':
		l.next(1)
		return l.line, TokenSepLBrack, "["
	case ']':
		l.next(1)
		return l.line, TokenSepRBrack, "]"
	case '{':
		l.next(1)
		return l.line, TokenSepLCurly, "{"
	case '}':
		l.next(1)
		return l.line, TokenSepRCurly, "}"
	case '+':
		l.next(1)
		return l.line, TokenOpAdd, "+"
	case '-':
		l.next(1)
		return l.line, TokenOpMinus, "-"
	case '*':
		l.next(1)
		return l.line, TokenOpMul, "*"
	case '/':
		l.next(1)
		return l.line, TokenOpDiv, "/"
	case '~':
		if l.test("~=") {
			l.next(2)
			return l.line, TokenOpNe, "~="
		}
	case '=':
		if l.test("==") {
			l.next(2)
			return l.line, TokenOpEq, "=="
		}
		l.next(1)
		return l.line, TokenOpAssign, "="
	case '<':
		if l.test("<=") {
			l.next(2)
			return l.line, TokenOpLe, "<="
		}
		l.next(1)
		return l.line, TokenOpLt, "<"
	case '>':
		if l.test(">=") {
			l.next(2)
			return l.line, TokenOpGe, ">="
		}
		l.next(1)
		return l.line, TokenOpGt, ">"
	case '.':
		if l.test("..") {
			l.next(2)
			return l.line, TokenOpConcat, ".."
		}
		if len(l.chunk) == 1 || !isDigit(l.chunk[1]) {
			l.next(1)
			return l.line, TokenSepDot, "."
		}
	case '\'', '"':
		return l.line, TokenString, l.scanShortString()
	}

	c := l.chunk[0]
	if c == '.' || isDigit(c) {
		return l.line, TokenNumber, l.scanNumber()
	}
	if c == '_' || isLetter(c) {
		token := l.scanIdentifier()
		if kind, found := keywords[token]; found {
			return l.line, kind, token
		}
		return l.line, TokenIdentifier, token
	}

	l.error("unexpected symbol near %q", c)
	return
}

func (l *Lexer) next(n int) { l.chunk = l.chunk[n:] }

func (l *Lexer) test(s string) bool { return strings.HasPrefix(l.chunk, s) }

func (l *Lexer) error(f string, a ...interface{}) {
	err := fmt.Sprintf(f, a...)
	panic(fmt.Sprintf("%s:%d: %s", l.chunkName, l.line, err))
}

func (l *Lexer) skipWhiteSpaces() {
	for len(l.chunk) > 0 {
		switch {
		case l.test("--"):
			l.skipComment()
		case l.test("\r\n") || l.test("\n\r"):
			l.next(2)
			l.line++
		case isNewLine(l.chunk[0]):
			l.next(1)
			l.line++
		case isWhiteSpace(l.chunk[0]):
			l.next(1)
		default:
			return
		}
	}
}

func (l *Lexer) skipComment() {
	l.next(2)
	for len(l.chunk) > 0 && !isNewLine(l.chunk[0]) {
		l.next(1)
	}
}

func (l *Lexer) scanIdentifier() string { return l.scan(reIdentifier) }
func (l *Lexer) scanNumber() string     { return l.scan(reNumber) }

func (l *Lexer) scan(re *regexp.Regexp) string {
	token := re.FindString(l.chunk)
	if token == "" {
		l.error("malformed token")
	}
	l.next(len(token))
	return token
}

func (l *Lexer) scanShortString() string {
	str := reShortStr.FindString(l.chunk)
	if str == "" {
		l.error("unfinished string")
	}
	l.next(len(str))
	str = str[1 : len(str)-1]
	if strings.Contains(str, `\`) {
		l.line += len(reNewLine.FindAllString(str, -1))
		str = l.escape(str)
	}
	return str
}

func (l *Lexer) escape(str string) string {
	var buf bytes.Buffer
	for len(str) > 0 {
		if str[0] != '\\' {
			buf.WriteByte(str[0])
			str = str[1:]
			continue
		}
		if len(str) == 1 {
			l.error("unfinished string")
		}
		switch str[1] {
		case 'n':
			buf.WriteByte('\n')
			str = str[2:]
		case 'r':
			buf.WriteByte('\r')
			str = str[2:]
		case 't':
			buf.WriteByte('\t')
			str = str[2:]
		case '"':
			buf.WriteByte('"')
			str = str[2:]
		case '\'':
			buf.WriteByte('\'')
			str = str[2:]
		case '\\':
			buf.WriteByte('\\')
			str = str[2:]
		case '\n':
			buf.WriteByte('\n')
			str = str[2:]
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			found := reDecEscapeSeq.FindString(str)
			if found == "" {
				l.error("invalid escape sequence")
			}
			d, _ := strconv.ParseInt(found[1:], 10, 32)
			buf.WriteByte(byte(d))
			str = str[len(found):]
		default:
			l.error("invalid escape sequence near '\\%c'", str[1])
		}
	}
	return buf.String()
}

func isWhiteSpace(c byte) bool {
	switch c {
	case '\t', '\n', '\v', '\f', '\r', ' ':
		return true
	}
	return false
}

func isNewLine(c byte) bool { return c == '\r' || c == '\n' }
func isDigit(c byte) bool   { return c >= '0' && c <= '9' }
func isLetter(c byte) bool  { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
