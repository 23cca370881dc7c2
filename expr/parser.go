package expr

import "fmt"

// Recursive-descent parser over a materialized token slice. The explicit
// integer cursor supports save/restore, which the grammar needs: a '('
// starting a boolean term cannot be classified without unbounded
// lookahead (see parseBooleanTerm).

// Parser parses a token stream into a BooleanExpr.
type Parser struct {
	tokens []Token
	pos    int
	input  string
}

// NewParser creates a parser over a token slice. The original input is
// kept only for error context.
func NewParser(tokens []Token, input string) *Parser {
	return &Parser{tokens: tokens, input: input}
}

// Parse tokenizes and parses a boolean expression, returning the root of
// the AST. Any grammar violation, static type violation, or trailing
// input yields a *ParseError; no partial tree is ever returned.
func Parse(input string) (BooleanExpr, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	if err := validateTokens(tokens); err != nil {
		return nil, err
	}

	p := NewParser(tokens, input)
	root, err := p.parseBooleanExpression()
	if err != nil {
		return nil, err
	}
	if p.current().Type != TokenEOF {
		return nil, p.errorf("unexpected token %s", p.current())
	}
	return root, nil
}

// current returns the token at the cursor.
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Pos: len(p.input)}
	}
	return p.tokens[p.pos]
}

// peek returns the token after the cursor without advancing.
func (p *Parser) peek() Token {
	if p.pos+1 >= len(p.tokens) {
		return Token{Type: TokenEOF, Pos: len(p.input)}
	}
	return p.tokens[p.pos+1]
}

// advance moves the cursor to the next token.
func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// expect consumes a token of the given type or fails.
func (p *Parser) expect(tt TokenType) error {
	if p.current().Type != tt {
		return p.errorf("expected %s, got %s", Token{Type: tt}, p.current())
	}
	p.advance()
	return nil
}

// errorf builds a parse error at the current token, embedding the full
// original input for diagnostic context.
func (p *Parser) errorf(format string, args ...interface{}) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Pos:     p.current().Pos,
		Input:   p.input,
	}
}

// BooleanExpression = BooleanOrExpression
func (p *Parser) parseBooleanExpression() (BooleanExpr, error) {
	return p.parseOr()
}

// BooleanOrExpression = BooleanAndExpression { "OR" BooleanAndExpression }
func (p *Parser) parseOr() (BooleanExpr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &OrExpr{Left: left, Right: right}
	}
	return left, nil
}

// BooleanAndExpression = BooleanTerm { "AND" BooleanTerm }
func (p *Parser) parseAnd() (BooleanExpr, error) {
	left, err := p.parseBooleanTerm()
	if err != nil {
		return nil, err
	}
	for p.current().Type == TokenAnd {
		p.advance()
		right, err := p.parseBooleanTerm()
		if err != nil {
			return nil, err
		}
		left = &AndExpr{Left: left, Right: right}
	}
	return left, nil
}

// BooleanTerm = "NOT" BooleanTerm
//             | "(" BooleanExpression ")"
//             | "TRUE" | "FALSE"
//             | Variable
//             | RelationalExpression
func (p *Parser) parseBooleanTerm() (BooleanExpr, error) {
	switch p.current().Type {
	case TokenNot:
		p.advance()
		inner, err := p.parseBooleanTerm()
		if err != nil {
			return nil, err
		}
		return &NotExpr{Expr: inner}, nil

	case TokenLeftParen:
		// A '(' here is ambiguous: the parenthesized content may be a
		// boolean expression like (x > 5 AND y < 10), or a value operand
		// of an outer relational expression like (x + y) > 10. Trial-parse
		// a boolean expression; accept it only if the closing paren
		// immediately follows. Otherwise rewind to before the '(' and
		// reparse the whole term as a relational expression, which will
		// consume the parenthesized value as a primary.
		p.advance()
		saved := p.pos
		inner, err := p.parseBooleanExpression()
		if err == nil && p.current().Type == TokenRightParen {
			p.advance()
			return inner, nil
		}
		p.pos = saved - 1
		return p.parseRelationalExpression()

	case TokenTrue:
		p.advance()
		return &BoolLiteral{Value: true}, nil

	case TokenFalse:
		p.advance()
		return &BoolLiteral{Value: false}, nil

	case TokenIdent:
		// A lone identifier is a boolean variable; an identifier followed
		// by a relational or arithmetic operator (or NOT, as in NOT LIKE)
		// starts a relational expression in value context.
		if p.relationalOperatorAhead() || p.arithmeticOperatorAhead() {
			return p.parseRelationalExpression()
		}
		name := p.current().Text
		p.advance()
		return &BoolVariable{Name: name}, nil

	default:
		return p.parseRelationalExpression()
	}
}

// relationalOperatorAhead reports whether the token after the cursor can
// continue a relational expression.
func (p *Parser) relationalOperatorAhead() bool {
	switch p.peek().Type {
	case TokenEqual, TokenNotEqual,
		TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual,
		TokenLike, TokenBetween, TokenIn, TokenIs,
		TokenNot: // NOT LIKE, NOT BETWEEN, NOT IN
		return true
	}
	return false
}

// arithmeticOperatorAhead reports whether the token after the cursor is an
// arithmetic operator.
func (p *Parser) arithmeticOperatorAhead() bool {
	switch p.peek().Type {
	case TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent:
		return true
	}
	return false
}

// RelationalExpression = ValueExpression ( equality | comparison
//                      | [NOT] LIKE | [NOT] BETWEEN | [NOT] IN
//                      | IS [NOT] NULL )
func (p *Parser) parseRelationalExpression() (RelationalExpr, error) {
	left, err := p.parseValueExpression()
	if err != nil {
		return nil, err
	}

	switch p.current().Type {
	case TokenEqual:
		p.advance()
		right, err := p.parseValueExpression()
		if err != nil {
			return nil, err
		}
		return &EqualityExpr{Left: left, Op: OpEqual, Right: right}, nil

	case TokenNotEqual:
		p.advance()
		right, err := p.parseValueExpression()
		if err != nil {
			return nil, err
		}
		return &EqualityExpr{Left: left, Op: OpNotEqual, Right: right}, nil

	case TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual:
		op := comparisonOpFor(p.current().Type)
		p.advance()
		right, err := p.parseValueExpression()
		if err != nil {
			return nil, err
		}
		return &ComparisonExpr{Left: left, Op: op, Right: right}, nil

	case TokenLike:
		p.advance()
		return p.parseLikeTail(left, false)

	case TokenBetween:
		p.advance()
		return p.parseBetweenTail(left, false)

	case TokenIn:
		p.advance()
		return p.parseInTail(left, false)

	case TokenNot:
		p.advance()
		switch p.current().Type {
		case TokenLike:
			p.advance()
			return p.parseLikeTail(left, true)
		case TokenBetween:
			p.advance()
			return p.parseBetweenTail(left, true)
		case TokenIn:
			p.advance()
			return p.parseInTail(left, true)
		default:
			return nil, p.errorf("expected LIKE, BETWEEN, or IN after NOT, got %s", p.current())
		}

	case TokenIs:
		p.advance()
		negated := false
		if p.current().Type == TokenNot {
			p.advance()
			negated = true
		}
		if err := p.expect(TokenNull); err != nil {
			return nil, err
		}
		return &IsNullExpr{Expr: left, Negated: negated}, nil

	default:
		return nil, p.errorf("expected relational operator, got %s", p.current())
	}
}

func comparisonOpFor(tt TokenType) ComparisonOp {
	switch tt {
	case TokenGreater:
		return OpGreater
	case TokenGreaterEqual:
		return OpGreaterEqual
	case TokenLess:
		return OpLess
	default:
		return OpLessEqual
	}
}

// parseLikeTail parses the pattern and optional ESCAPE clause after
// [NOT] LIKE. Both must be string literals.
func (p *Parser) parseLikeTail(left ValueExpr, negated bool) (RelationalExpr, error) {
	pattern, err := p.expectStringLiteral()
	if err != nil {
		return nil, err
	}
	var escape *string
	if p.current().Type == TokenEscape {
		p.advance()
		esc, err := p.expectStringLiteral()
		if err != nil {
			return nil, err
		}
		escape = &esc
	}
	return &LikeExpr{Expr: left, Pattern: pattern, Escape: escape, Negated: negated}, nil
}

// parseBetweenTail parses the bounds after [NOT] BETWEEN and runs the
// static bound validation.
func (p *Parser) parseBetweenTail(left ValueExpr, negated bool) (RelationalExpr, error) {
	lower, err := p.parseValueExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenAnd); err != nil {
		return nil, err
	}
	upper, err := p.parseValueExpression()
	if err != nil {
		return nil, err
	}
	if err := p.validateBetween(lower, upper, negated); err != nil {
		return nil, err
	}
	return &BetweenExpr{Expr: left, Lower: lower, Upper: upper, Negated: negated}, nil
}

// parseInTail parses the literal list after [NOT] IN.
func (p *Parser) parseInTail(left ValueExpr, negated bool) (RelationalExpr, error) {
	values, err := p.parseLiteralList()
	if err != nil {
		return nil, err
	}
	return &InExpr{Expr: left, Values: values, Negated: negated}, nil
}

// expectStringLiteral consumes a string literal token.
func (p *Parser) expectStringLiteral() (string, error) {
	if p.current().Type != TokenString {
		return "", p.errorf("expected string literal, got %s", p.current())
	}
	s := p.current().Text
	p.advance()
	return s, nil
}

// ValueExpression = AddExpression
func (p *Parser) parseValueExpression() (ValueExpr, error) {
	return p.parseAddExpression()
}

// AddExpression = MultExpression { ( "+" | "-" ) MultExpression }
func (p *Parser) parseAddExpression() (ValueExpr, error) {
	left, err := p.parseMultExpression()
	if err != nil {
		return nil, err
	}
	for {
		var op ArithOp
		switch p.current().Type {
		case TokenPlus:
			op = OpAdd
		case TokenMinus:
			op = OpSubtract
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMultExpression()
		if err != nil {
			return nil, err
		}
		left = &ArithmeticExpr{Op: op, Left: left, Right: right}
	}
}

// MultExpression = UnaryValueExpression { ( "*" | "/" | "%" ) UnaryValueExpression }
func (p *Parser) parseMultExpression() (ValueExpr, error) {
	left, err := p.parseUnaryValueExpression()
	if err != nil {
		return nil, err
	}
	for {
		var op ArithOp
		switch p.current().Type {
		case TokenStar:
			op = OpMultiply
		case TokenSlash:
			op = OpDivide
		case TokenPercent:
			op = OpModulo
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnaryValueExpression()
		if err != nil {
			return nil, err
		}
		left = &ArithmeticExpr{Op: op, Left: left, Right: right}
	}
}

// UnaryValueExpression = ( "+" | "-" ) UnaryValueExpression | ValuePrimary
func (p *Parser) parseUnaryValueExpression() (ValueExpr, error) {
	switch p.current().Type {
	case TokenPlus:
		p.advance()
		inner, err := p.parseUnaryValueExpression()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: OpUnaryPlus, Expr: inner}, nil
	case TokenMinus:
		p.advance()
		inner, err := p.parseUnaryValueExpression()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: OpUnaryMinus, Expr: inner}, nil
	default:
		return p.parseValuePrimary()
	}
}

// ValuePrimary = Literal | Variable | "(" ValueExpression ")"
func (p *Parser) parseValuePrimary() (ValueExpr, error) {
	tok := p.current()
	switch tok.Type {
	case TokenInteger:
		p.advance()
		return &LiteralExpr{Value: IntegerLiteral(tok.Int)}, nil
	case TokenFloat:
		p.advance()
		return &LiteralExpr{Value: FloatLiteral(tok.Float)}, nil
	case TokenString:
		p.advance()
		return &LiteralExpr{Value: StringLiteral(tok.Text)}, nil
	case TokenNull:
		p.advance()
		return &LiteralExpr{Value: NullLiteral()}, nil
	case TokenTrue:
		p.advance()
		return &LiteralExpr{Value: BooleanLiteral(true)}, nil
	case TokenFalse:
		p.advance()
		return &LiteralExpr{Value: BooleanLiteral(false)}, nil
	case TokenIdent:
		p.advance()
		return &VariableExpr{Name: tok.Text}, nil
	case TokenLeftParen:
		p.advance()
		inner, err := p.parseValueExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.errorf("expected value expression, got %s", tok)
	}
}
