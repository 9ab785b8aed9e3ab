// Package parseerr defines the unified error type shared by the lexer and
// the structural and expression parsers.
package parseerr

import (
	"fmt"

	"github.com/go-less/lesscore/token"
)

// Kind enumerates every failure the lexer and parsers can report.
type Kind string

const (
	// Lex errors.
	UnterminatedString      Kind = "unterminated_string"
	UnmatchedOpenDelimiter  Kind = "unmatched_open_delimiter"
	StrayCloseDelimiter     Kind = "stray_close_delimiter"

	// Structure errors.
	ExpectedBlock       Kind = "expected_block"
	ExpectedSemicolon   Kind = "expected_semicolon"
	UnexpectedToken     Kind = "unexpected_token"
	UnbalancedLookup    Kind = "unbalanced_lookup"
	EmptyArgument       Kind = "empty_argument"
	UnknownItemShape    Kind = "unknown_item_shape"

	// Expression errors.
	UnterminatedInterpolation Kind = "unterminated_interpolation"
	EmptyExpression           Kind = "empty_expression"
	InvalidOperator           Kind = "invalid_operator"
)

// Category groups a Kind into the three taxonomy buckets from the design.
type Category string

const (
	CategoryLex        Category = "lex"
	CategoryStructure  Category = "structure"
	CategoryExpression Category = "expression"
)

// Category reports which taxonomy bucket k belongs to.
func (k Kind) Category() Category {
	switch k {
	case UnterminatedString, UnmatchedOpenDelimiter, StrayCloseDelimiter:
		return CategoryLex
	case UnterminatedInterpolation, EmptyExpression, InvalidOperator:
		return CategoryExpression
	default:
		return CategoryStructure
	}
}

// Error is the single error type returned by lex and parse operations. It
// carries a primary span for the offending position and, where relevant,
// secondary spans (e.g. the matching open delimiter for an unmatched
// close).
type Error struct {
	Kind      Kind
	Primary   token.Span
	Secondary []token.Span
	Message   string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Primary, e.Message)
	}
	return fmt.Sprintf("%s at %s", e.Kind, e.Primary)
}

// New constructs an Error with no secondary spans and no extra message.
func New(kind Kind, primary token.Span) *Error {
	return &Error{Kind: kind, Primary: primary}
}

// Newf constructs an Error with a formatted message.
func Newf(kind Kind, primary token.Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Primary: primary, Message: fmt.Sprintf(format, args...)}
}

// WithSecondary returns a copy of e with secondary spans attached.
func (e *Error) WithSecondary(spans ...token.Span) *Error {
	cp := *e
	cp.Secondary = append([]token.Span(nil), spans...)
	return &cp
}
