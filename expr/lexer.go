package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Lexer tokenizes SQL boolean expressions. It handles case-insensitive
// keywords, SQL-style string escaping, line and block comments, and the
// full numeric literal syntax (decimal, hex, octal, float, L suffix).
type Lexer struct {
	input string
	chars []rune
	pos   int
}

// NewLexer creates a lexer over the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: input,
		chars: []rune(input),
	}
}

var keywords = map[string]TokenType{
	"AND":     TokenAnd,
	"OR":      TokenOr,
	"NOT":     TokenNot,
	"BETWEEN": TokenBetween,
	"LIKE":    TokenLike,
	"ESCAPE":  TokenEscape,
	"IN":      TokenIn,
	"IS":      TokenIs,
	"TRUE":    TokenTrue,
	"FALSE":   TokenFalse,
	"NULL":    TokenNull,
}

// current returns the character at the cursor, or 0 at end of input.
func (l *Lexer) current() rune {
	if l.pos >= len(l.chars) {
		return 0
	}
	return l.chars[l.pos]
}

// peek looks at the character after the cursor without advancing.
func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.chars) {
		return 0
	}
	return l.chars[l.pos+1]
}

// advance moves the cursor to the next character.
func (l *Lexer) advance() {
	l.pos++
}

// errorf builds a lex error carrying the current position and the full
// original input for diagnostic context.
func (l *Lexer) errorf(format string, args ...interface{}) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Pos:     l.pos,
		Input:   l.input,
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.chars) && unicode.IsSpace(l.current()) {
		l.advance()
	}
}

// skipLineComment consumes '--' through end of line.
func (l *Lexer) skipLineComment() {
	l.advance()
	l.advance()
	for l.pos < len(l.chars) {
		if l.current() == '\n' {
			l.advance()
			break
		}
		l.advance()
	}
}

// skipBlockComment consumes '/* ... */', failing if no closing marker is
// found before end of input.
func (l *Lexer) skipBlockComment() error {
	l.advance()
	l.advance()
	for l.pos < len(l.chars) {
		if l.current() == '*' && l.peek() == '/' {
			l.advance()
			l.advance()
			return nil
		}
		l.advance()
	}
	return l.errorf("unterminated block comment")
}

// readIdentifier consumes an identifier or keyword.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for l.pos < len(l.chars) {
		ch := l.current()
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '$' {
			l.advance()
		} else {
			break
		}
	}
	return string(l.chars[start:l.pos])
}

// readString consumes a single-quoted string literal with SQL-style
// doubled-quote escaping ('' denotes a literal quote).
func (l *Lexer) readString() (string, error) {
	var out []rune
	l.advance() // skip opening quote
	for l.pos < len(l.chars) {
		ch := l.current()
		if ch == '\'' {
			if l.peek() == '\'' {
				out = append(out, '\'')
				l.advance()
				l.advance()
				continue
			}
			l.advance() // skip closing quote
			return string(out), nil
		}
		out = append(out, ch)
		l.advance()
	}
	return "", l.errorf("unterminated string literal")
}

// readNumber dispatches on the numeral form: hex (0x), octal (0 followed
// by a digit), or decimal extending into a float on '.'/exponent. A
// trailing l/L on a non-float numeral is accepted as a plain integer.
func (l *Lexer) readNumber(start int) (Token, error) {
	if l.current() == '0' && (l.peek() == 'x' || l.peek() == 'X') {
		return l.readHex(start)
	}
	if l.current() == '0' && isASCIIDigit(l.peek()) {
		return l.readOctal(start)
	}

	var num []rune
	isFloat := false

	for l.pos < len(l.chars) && isASCIIDigit(l.current()) {
		num = append(num, l.current())
		l.advance()
	}

	if l.current() == '.' && (isASCIIDigit(l.peek()) || l.peek() == 'e' || l.peek() == 'E') {
		isFloat = true
		num = append(num, '.')
		l.advance()
		for l.pos < len(l.chars) && isASCIIDigit(l.current()) {
			num = append(num, l.current())
			l.advance()
		}
	}

	if l.current() == 'e' || l.current() == 'E' {
		isFloat = true
		num = append(num, 'e')
		l.advance()
		if l.current() == '+' || l.current() == '-' {
			num = append(num, l.current())
			l.advance()
		}
		for l.pos < len(l.chars) && isASCIIDigit(l.current()) {
			num = append(num, l.current())
			l.advance()
		}
	}

	if !isFloat && (l.current() == 'l' || l.current() == 'L') {
		l.advance()
		n, err := strconv.ParseInt(string(num), 10, 64)
		if err != nil {
			return Token{}, l.errorf("invalid integer literal: %v", err)
		}
		return Token{Type: TokenInteger, Int: n, Pos: start}, nil
	}

	if isFloat {
		f, err := strconv.ParseFloat(string(num), 64)
		if err != nil {
			return Token{}, l.errorf("invalid float literal: %v", err)
		}
		return Token{Type: TokenFloat, Float: f, Pos: start}, nil
	}

	n, err := strconv.ParseInt(string(num), 10, 64)
	if err != nil {
		return Token{}, l.errorf("invalid integer literal: %v", err)
	}
	return Token{Type: TokenInteger, Int: n, Pos: start}, nil
}

// readHex consumes a 0x-prefixed hexadecimal literal.
func (l *Lexer) readHex(start int) (Token, error) {
	l.advance() // '0'
	l.advance() // 'x'
	var hex []rune
	for l.pos < len(l.chars) && isHexDigit(l.current()) {
		hex = append(hex, l.current())
		l.advance()
	}
	if len(hex) == 0 {
		return Token{}, l.errorf("invalid hexadecimal literal: no digits after 0x")
	}
	n, err := strconv.ParseInt(string(hex), 16, 64)
	if err != nil {
		return Token{}, l.errorf("invalid hexadecimal literal: %v", err)
	}
	return Token{Type: TokenInteger, Int: n, Pos: start}, nil
}

// readOctal consumes a 0-prefixed octal literal (digits 0-7; the scanner
// stops at the first non-octal digit).
func (l *Lexer) readOctal(start int) (Token, error) {
	var oct []rune
	for l.pos < len(l.chars) && l.current() >= '0' && l.current() <= '7' {
		oct = append(oct, l.current())
		l.advance()
	}
	n, err := strconv.ParseInt(string(oct), 8, 64)
	if err != nil {
		return Token{}, l.errorf("invalid octal literal: %v", err)
	}
	return Token{Type: TokenInteger, Int: n, Pos: start}, nil
}

// readFloatFromDot consumes a float literal written as '.<digits>',
// shorthand for '0.<digits>'.
func (l *Lexer) readFloatFromDot(start int) (Token, error) {
	num := []rune{'0', '.'}
	l.advance() // skip '.'
	for l.pos < len(l.chars) && isASCIIDigit(l.current()) {
		num = append(num, l.current())
		l.advance()
	}
	if l.current() == 'e' || l.current() == 'E' {
		num = append(num, 'e')
		l.advance()
		if l.current() == '+' || l.current() == '-' {
			num = append(num, l.current())
			l.advance()
		}
		for l.pos < len(l.chars) && isASCIIDigit(l.current()) {
			num = append(num, l.current())
			l.advance()
		}
	}
	f, err := strconv.ParseFloat(string(num), 64)
	if err != nil {
		return Token{}, l.errorf("invalid float literal: %v", err)
	}
	return Token{Type: TokenFloat, Float: f, Pos: start}, nil
}

// Next returns the next token, skipping whitespace and comments.
func (l *Lexer) Next() (Token, error) {
	for {
		l.skipWhitespace()

		start := l.pos
		if l.pos >= len(l.chars) {
			return Token{Type: TokenEOF, Pos: start}, nil
		}
		ch := l.current()

		if ch == '-' && l.peek() == '-' {
			l.skipLineComment()
			continue
		}
		if ch == '/' && l.peek() == '*' {
			if err := l.skipBlockComment(); err != nil {
				return Token{}, err
			}
			continue
		}

		switch ch {
		case '(':
			l.advance()
			return Token{Type: TokenLeftParen, Pos: start}, nil
		case ')':
			l.advance()
			return Token{Type: TokenRightParen, Pos: start}, nil
		case ',':
			l.advance()
			return Token{Type: TokenComma, Pos: start}, nil
		case '+':
			l.advance()
			return Token{Type: TokenPlus, Pos: start}, nil
		case '-':
			l.advance()
			return Token{Type: TokenMinus, Pos: start}, nil
		case '*':
			l.advance()
			return Token{Type: TokenStar, Pos: start}, nil
		case '/':
			l.advance()
			return Token{Type: TokenSlash, Pos: start}, nil
		case '%':
			l.advance()
			return Token{Type: TokenPercent, Pos: start}, nil
		case '=':
			l.advance()
			return Token{Type: TokenEqual, Pos: start}, nil
		case '!':
			if l.peek() == '=' {
				l.advance()
				l.advance()
				return Token{Type: TokenNotEqual, Pos: start}, nil
			}
			return Token{}, l.errorf("unexpected character: '%c'", ch)
		case '<':
			l.advance()
			if l.current() == '>' {
				l.advance()
				return Token{Type: TokenNotEqual, Pos: start}, nil
			}
			if l.current() == '=' {
				l.advance()
				return Token{Type: TokenLessEqual, Pos: start}, nil
			}
			return Token{Type: TokenLess, Pos: start}, nil
		case '>':
			l.advance()
			if l.current() == '=' {
				l.advance()
				return Token{Type: TokenGreaterEqual, Pos: start}, nil
			}
			return Token{Type: TokenGreater, Pos: start}, nil
		case '\'':
			s, err := l.readString()
			if err != nil {
				return Token{}, err
			}
			return Token{Type: TokenString, Text: s, Pos: start}, nil
		case '.':
			if isASCIIDigit(l.peek()) {
				return l.readFloatFromDot(start)
			}
			return Token{}, l.errorf("unexpected character: '%c'", ch)
		}

		if unicode.IsLetter(ch) || ch == '_' || ch == '$' {
			ident := l.readIdentifier()
			if tt, ok := keywords[strings.ToUpper(ident)]; ok {
				return Token{Type: tt, Pos: start}, nil
			}
			return Token{Type: TokenIdent, Text: ident, Pos: start}, nil
		}

		if isASCIIDigit(ch) {
			return l.readNumber(start)
		}

		return Token{}, l.errorf("unexpected character: '%c'", ch)
	}
}

// Tokenize lexes the entire input into a token slice terminated by an EOF
// token. The first lexical error aborts tokenization.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func isASCIIDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isASCIIDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
