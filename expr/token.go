package expr

import "fmt"

// TokenType identifies the kind of a lexical token.
type TokenType int

const (
	// Keywords (matched case-insensitively)
	TokenAnd TokenType = iota
	TokenOr
	TokenNot
	TokenBetween
	TokenLike
	TokenEscape
	TokenIn
	TokenIs
	TokenTrue
	TokenFalse
	TokenNull

	// Operators
	TokenEqual        // =
	TokenNotEqual     // <> or !=
	TokenGreater      // >
	TokenGreaterEqual // >=
	TokenLess         // <
	TokenLessEqual    // <=
	TokenPlus         // +
	TokenMinus        // -
	TokenStar         // *
	TokenSlash        // /
	TokenPercent      // %

	// Delimiters
	TokenLeftParen  // (
	TokenRightParen // )
	TokenComma      // ,

	// Literals
	TokenIdent
	TokenString
	TokenInteger
	TokenFloat

	// End of input
	TokenEOF
)

// Token represents a single lexical unit. Payload-bearing tokens carry
// their value in Text (identifiers, string literals), Int, or Float.
// Pos is the rune offset in the input where the token starts.
type Token struct {
	Type  TokenType
	Text  string
	Int   int64
	Float float64
	Pos   int
}

// String renders the token for diagnostics.
func (t Token) String() string {
	switch t.Type {
	case TokenAnd:
		return "AND"
	case TokenOr:
		return "OR"
	case TokenNot:
		return "NOT"
	case TokenBetween:
		return "BETWEEN"
	case TokenLike:
		return "LIKE"
	case TokenEscape:
		return "ESCAPE"
	case TokenIn:
		return "IN"
	case TokenIs:
		return "IS"
	case TokenTrue:
		return "TRUE"
	case TokenFalse:
		return "FALSE"
	case TokenNull:
		return "NULL"
	case TokenEqual:
		return "="
	case TokenNotEqual:
		return "<>"
	case TokenGreater:
		return ">"
	case TokenGreaterEqual:
		return ">="
	case TokenLess:
		return "<"
	case TokenLessEqual:
		return "<="
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenPercent:
		return "%"
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	case TokenComma:
		return ","
	case TokenIdent:
		return fmt.Sprintf("identifier '%s'", t.Text)
	case TokenString:
		return fmt.Sprintf("string '%s'", t.Text)
	case TokenInteger:
		return fmt.Sprintf("integer %d", t.Int)
	case TokenFloat:
		return fmt.Sprintf("float %v", t.Float)
	case TokenEOF:
		return "end of input"
	default:
		return fmt.Sprintf("token(%d)", int(t.Type))
	}
}
