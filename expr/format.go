package expr

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Render writes an AST back to source-like text. The result reparses to an
// equivalent tree; parenthesization need not match the original input.
func Render(e BooleanExpr) string {
	var b strings.Builder
	renderBoolean(&b, e)
	return b.String()
}

func renderBoolean(b *strings.Builder, e BooleanExpr) {
	switch n := e.(type) {
	case *OrExpr:
		b.WriteByte('(')
		renderBoolean(b, n.Left)
		b.WriteString(" OR ")
		renderBoolean(b, n.Right)
		b.WriteByte(')')
	case *AndExpr:
		b.WriteByte('(')
		renderBoolean(b, n.Left)
		b.WriteString(" AND ")
		renderBoolean(b, n.Right)
		b.WriteByte(')')
	case *NotExpr:
		b.WriteString("NOT ")
		renderBoolean(b, n.Expr)
	case *BoolLiteral:
		if n.Value {
			b.WriteString("TRUE")
		} else {
			b.WriteString("FALSE")
		}
	case *BoolVariable:
		b.WriteString(n.Name)
	case *EqualityExpr:
		renderValue(b, n.Left)
		fmt.Fprintf(b, " %s ", n.Op)
		renderValue(b, n.Right)
	case *ComparisonExpr:
		renderValue(b, n.Left)
		fmt.Fprintf(b, " %s ", n.Op)
		renderValue(b, n.Right)
	case *LikeExpr:
		renderValue(b, n.Expr)
		if n.Negated {
			b.WriteString(" NOT LIKE ")
		} else {
			b.WriteString(" LIKE ")
		}
		renderQuoted(b, n.Pattern)
		if n.Escape != nil {
			b.WriteString(" ESCAPE ")
			renderQuoted(b, *n.Escape)
		}
	case *BetweenExpr:
		renderValue(b, n.Expr)
		if n.Negated {
			b.WriteString(" NOT BETWEEN ")
		} else {
			b.WriteString(" BETWEEN ")
		}
		renderValue(b, n.Lower)
		b.WriteString(" AND ")
		renderValue(b, n.Upper)
	case *InExpr:
		renderValue(b, n.Expr)
		if n.Negated {
			b.WriteString(" NOT IN (")
		} else {
			b.WriteString(" IN (")
		}
		for i, v := range n.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(renderLiteral(v))
		}
		b.WriteByte(')')
	case *IsNullExpr:
		renderValue(b, n.Expr)
		if n.Negated {
			b.WriteString(" IS NOT NULL")
		} else {
			b.WriteString(" IS NULL")
		}
	}
}

func renderValue(b *strings.Builder, e ValueExpr) {
	switch n := e.(type) {
	case *ArithmeticExpr:
		b.WriteByte('(')
		renderValue(b, n.Left)
		fmt.Fprintf(b, " %s ", n.Op)
		renderValue(b, n.Right)
		b.WriteByte(')')
	case *UnaryExpr:
		b.WriteString(n.Op.String())
		renderValue(b, n.Expr)
	case *LiteralExpr:
		b.WriteString(renderLiteral(n.Value))
	case *VariableExpr:
		b.WriteString(n.Name)
	}
}

func renderLiteral(l Literal) string {
	switch l.Kind {
	case LiteralInteger:
		return strconv.FormatInt(l.Int, 10)
	case LiteralFloat:
		s := strconv.FormatFloat(l.Float, 'g', -1, 64)
		// Keep float literals lexically float so they reparse as floats.
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case LiteralString:
		return "'" + strings.ReplaceAll(l.Str, "'", "''") + "'"
	case LiteralBoolean:
		if l.Bool {
			return "TRUE"
		}
		return "FALSE"
	default:
		return "NULL"
	}
}

func renderQuoted(b *strings.Builder, s string) {
	b.WriteByte('\'')
	b.WriteString(strings.ReplaceAll(s, "'", "''"))
	b.WriteByte('\'')
}

// Dump writes an indented tree view of the AST for diagnostics. It is an
// explicit opt-in; nothing in the engine triggers it implicitly.
func Dump(w io.Writer, e BooleanExpr) {
	dumpBoolean(w, e, 0)
}

func dumpBoolean(w io.Writer, e BooleanExpr, indent int) {
	prefix := strings.Repeat(" ", indent)
	switch n := e.(type) {
	case *OrExpr:
		fmt.Fprintf(w, "%sOr\n", prefix)
		dumpBoolean(w, n.Left, indent+3)
		dumpBoolean(w, n.Right, indent+3)
	case *AndExpr:
		fmt.Fprintf(w, "%sAnd\n", prefix)
		dumpBoolean(w, n.Left, indent+3)
		dumpBoolean(w, n.Right, indent+3)
	case *NotExpr:
		fmt.Fprintf(w, "%sNot\n", prefix)
		dumpBoolean(w, n.Expr, indent+3)
	case *BoolLiteral:
		fmt.Fprintf(w, "%sBooleanLiteral: %t\n", prefix, n.Value)
	case *BoolVariable:
		fmt.Fprintf(w, "%sVariable: %s\n", prefix, n.Name)
	case *EqualityExpr:
		fmt.Fprintf(w, "%sEquality: %s\n", prefix, n.Op)
		dumpValue(w, n.Left, indent+3)
		dumpValue(w, n.Right, indent+3)
	case *ComparisonExpr:
		fmt.Fprintf(w, "%sComparison: %s\n", prefix, n.Op)
		dumpValue(w, n.Left, indent+3)
		dumpValue(w, n.Right, indent+3)
	case *LikeExpr:
		escape := ""
		if n.Escape != nil {
			escape = *n.Escape
		}
		fmt.Fprintf(w, "%sLike: negated=%t, pattern='%s', escape='%s'\n", prefix, n.Negated, n.Pattern, escape)
		dumpValue(w, n.Expr, indent+3)
	case *BetweenExpr:
		fmt.Fprintf(w, "%sBetween: negated=%t\n", prefix, n.Negated)
		dumpValue(w, n.Expr, indent+3)
		dumpValue(w, n.Lower, indent+3)
		dumpValue(w, n.Upper, indent+3)
	case *InExpr:
		fmt.Fprintf(w, "%sIn: negated=%t, values=%d\n", prefix, n.Negated, len(n.Values))
		dumpValue(w, n.Expr, indent+3)
		for _, v := range n.Values {
			fmt.Fprintf(w, "%s   Literal: %s\n", prefix, renderLiteral(v))
		}
	case *IsNullExpr:
		fmt.Fprintf(w, "%sIsNull: negated=%t\n", prefix, n.Negated)
		dumpValue(w, n.Expr, indent+3)
	}
}

func dumpValue(w io.Writer, e ValueExpr, indent int) {
	prefix := strings.Repeat(" ", indent)
	switch n := e.(type) {
	case *ArithmeticExpr:
		fmt.Fprintf(w, "%s%s\n", prefix, n.Op.Name())
		dumpValue(w, n.Left, indent+3)
		dumpValue(w, n.Right, indent+3)
	case *UnaryExpr:
		fmt.Fprintf(w, "%s%s\n", prefix, n.Op.Name())
		dumpValue(w, n.Expr, indent+3)
	case *LiteralExpr:
		fmt.Fprintf(w, "%sLiteral: %s\n", prefix, renderLiteral(n.Value))
	case *VariableExpr:
		fmt.Fprintf(w, "%sVariable: %s\n", prefix, n.Name)
	}
}
