package expr

// Static validation performed during parsing. BETWEEN bounds and IN list
// elements are checked here so that violations surface as parse errors
// rather than being deferred to evaluation.

// extractLiteral reduces a value expression to a literal. The one shape
// beyond a bare literal that is accepted is a single unary plus/minus of
// a numeric literal, which folds into a signed literal.
func (p *Parser) extractLiteral(e ValueExpr) (Literal, error) {
	switch n := e.(type) {
	case *LiteralExpr:
		return n.Value, nil
	case *UnaryExpr:
		inner, ok := n.Expr.(*LiteralExpr)
		if !ok {
			return Literal{}, p.errorf("complex expressions are not allowed here, only literal values")
		}
		if n.Op == OpUnaryPlus {
			return inner.Value, nil
		}
		switch inner.Value.Kind {
		case LiteralInteger:
			return IntegerLiteral(-inner.Value.Int), nil
		case LiteralFloat:
			return FloatLiteral(-inner.Value.Float), nil
		default:
			return Literal{}, p.errorf("unary minus can only be applied to numeric literals in BETWEEN bounds")
		}
	case *VariableExpr:
		return Literal{}, p.errorf("variables are not allowed here, only literal values")
	default:
		return Literal{}, p.errorf("complex expressions are not allowed here, only literal values")
	}
}

// betweenCompatible reports whether two bound literals may appear in one
// BETWEEN: both numeric (int/float in any mix) or both string.
func betweenCompatible(lower, upper Literal) bool {
	if lower.IsNumeric() && upper.IsNumeric() {
		return true
	}
	return lower.Kind == LiteralString && upper.Kind == LiteralString
}

// validateBetween enforces the static BETWEEN rules: literal-only bounds,
// no NULL or boolean bounds, type compatibility, and lower <= upper.
func (p *Parser) validateBetween(lowerExpr, upperExpr ValueExpr, negated bool) error {
	op := "BETWEEN"
	if negated {
		op = "NOT BETWEEN"
	}

	lower, err := p.extractLiteral(lowerExpr)
	if err != nil {
		return err
	}
	upper, err := p.extractLiteral(upperExpr)
	if err != nil {
		return err
	}

	if lower.Kind == LiteralNull {
		return p.errorf("NULL is not allowed as lower bound in %s", op)
	}
	if upper.Kind == LiteralNull {
		return p.errorf("NULL is not allowed as upper bound in %s", op)
	}
	if lower.Kind == LiteralBoolean {
		return p.errorf("boolean literals are not allowed as lower bound in %s", op)
	}
	if upper.Kind == LiteralBoolean {
		return p.errorf("boolean literals are not allowed as upper bound in %s", op)
	}
	if !betweenCompatible(lower, upper) {
		return p.errorf("%s bounds must be both numeric or both string, found %s and %s",
			op, lower.TypeName(), upper.TypeName())
	}

	// Bound ordering: same-type bounds compare directly, mixed numeric
	// bounds compare after float coercion.
	switch {
	case lower.Kind == LiteralInteger && upper.Kind == LiteralInteger:
		if lower.Int > upper.Int {
			return p.errorf("%s lower bound (%d) must be less than or equal to upper bound (%d)",
				op, lower.Int, upper.Int)
		}
	case lower.Kind == LiteralString && upper.Kind == LiteralString:
		if lower.Str > upper.Str {
			return p.errorf("%s lower bound ('%s') must be less than or equal to upper bound ('%s')",
				op, lower.Str, upper.Str)
		}
	default:
		lo := lower.Float
		if lower.Kind == LiteralInteger {
			lo = float64(lower.Int)
		}
		hi := upper.Float
		if upper.Kind == LiteralInteger {
			hi = float64(upper.Int)
		}
		if lo > hi {
			return p.errorf("%s lower bound (%v) must be less than or equal to upper bound (%v)",
				op, lo, hi)
		}
	}
	return nil
}

// parseLiteralList parses the parenthesized literal list of an IN
// expression with strict type checking: no NULL or boolean elements, and
// every element must have the exact same literal type as the first (no
// int/float mixing, unlike BETWEEN).
func (p *Parser) parseLiteralList() ([]Literal, error) {
	if err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}

	first, err := p.expectLiteral()
	if err != nil {
		return nil, err
	}
	if err := p.validateInListLiteral(first); err != nil {
		return nil, err
	}

	values := []Literal{first}
	for p.current().Type == TokenComma {
		p.advance()
		next, err := p.expectLiteral()
		if err != nil {
			return nil, err
		}
		if err := p.validateInListLiteral(next); err != nil {
			return nil, err
		}
		if first.Kind != next.Kind {
			return nil, p.errorf("IN list values must all be the same type, found %s and %s",
				first.TypeName(), next.TypeName())
		}
		values = append(values, next)
	}

	if err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}
	return values, nil
}

// validateInListLiteral rejects NULL and boolean elements at their first
// occurrence.
func (p *Parser) validateInListLiteral(l Literal) error {
	switch l.Kind {
	case LiteralNull:
		return p.errorf("NULL is not allowed in IN list")
	case LiteralBoolean:
		return p.errorf("boolean literals are not allowed in IN list")
	}
	return nil
}

// expectLiteral consumes one literal token, allowing a leading unary
// minus on numeric literals only.
func (p *Parser) expectLiteral() (Literal, error) {
	negative := false
	if p.current().Type == TokenMinus {
		p.advance()
		negative = true
	}

	tok := p.current()
	switch tok.Type {
	case TokenString:
		if negative {
			return Literal{}, p.errorf("cannot apply unary minus to string literal")
		}
		p.advance()
		return StringLiteral(tok.Text), nil
	case TokenInteger:
		p.advance()
		if negative {
			return IntegerLiteral(-tok.Int), nil
		}
		return IntegerLiteral(tok.Int), nil
	case TokenFloat:
		p.advance()
		if negative {
			return FloatLiteral(-tok.Float), nil
		}
		return FloatLiteral(tok.Float), nil
	case TokenNull:
		if negative {
			return Literal{}, p.errorf("cannot apply unary minus to NULL")
		}
		p.advance()
		return NullLiteral(), nil
	case TokenTrue, TokenFalse:
		if negative {
			return Literal{}, p.errorf("cannot apply unary minus to boolean")
		}
		p.advance()
		return BooleanLiteral(tok.Type == TokenTrue), nil
	default:
		return Literal{}, p.errorf("expected literal value, got %s", tok)
	}
}
