// Package token defines the span, token, and token-tree types produced by
// the lexer and consumed by the structural and expression parsers.
package token

import "fmt"

// Span is a half-open byte range [Start, End) over the original input.
type Span struct {
	Start int
	End   int
}

// Cover returns the smallest span containing both a and b.
func Cover(a, b Span) Span {
	s := Span{Start: a.Start, End: a.End}
	if b.Start < s.Start {
		s.Start = b.Start
	}
	if b.End > s.End {
		s.End = b.End
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Delim enumerates the three bracket kinds the lexer groups into trees.
type Delim int

const (
	Paren Delim = iota
	Brace
	Bracket
)

// Open and Close return the delimiter's bracket characters.
func (d Delim) Open() rune {
	switch d {
	case Paren:
		return '('
	case Brace:
		return '{'
	case Bracket:
		return '['
	default:
		return 0
	}
}

func (d Delim) Close() rune {
	switch d {
	case Paren:
		return ')'
	case Brace:
		return '}'
	case Bracket:
		return ']'
	default:
		return 0
	}
}

func (d Delim) String() string {
	switch d {
	case Paren:
		return "()"
	case Brace:
		return "{}"
	case Bracket:
		return "[]"
	default:
		return "?"
	}
}

// Kind discriminates the flat (non-tree) token kinds, plus the tree kind
// itself so a TokenTree can carry a single discriminant.
type Kind int

const (
	Whitespace Kind = iota
	Comment
	Ident
	Hash
	String
	Number
	Symbol
	Tree
)

func (k Kind) String() string {
	switch k {
	case Whitespace:
		return "Whitespace"
	case Comment:
		return "Comment"
	case Ident:
		return "Ident"
	case Hash:
		return "Hash"
	case String:
		return "String"
	case Number:
		return "Number"
	case Symbol:
		return "Symbol"
	case Tree:
		return "Tree"
	default:
		return "?"
	}
}

// TokenTree is either a flat token (Kind != Tree) or a balanced group
// (Kind == Tree) containing a nested sequence of token-trees. Span covers
// every character consumed, including the delimiters for a Tree node.
//
// The fields below are a flattened discriminated union: only the fields
// relevant to Kind are meaningful, matching the combined-struct style the
// rest of this tree's ancestry uses for its own node types.
type TokenTree struct {
	Kind Kind
	Span Span

	// Text holds the literal body for Comment, Ident, Hash and String
	// tokens (quotes excluded for String, delimiters excluded for
	// Comment's markers, '#' excluded for Hash).
	Text string

	// Quote holds the quote character ('"' or '\'') for String tokens.
	Quote rune

	// Num holds the converted numeric value for Number tokens.
	Num float32
	// NumText holds the exact literal text of a Number token, so the token
	// can be reprinted as written instead of re-rendering the float.
	NumText string

	// Ch holds the scalar for Symbol tokens.
	Ch rune

	// Delim and Children are meaningful when Kind == Tree.
	Delim    Delim
	Children []TokenTree
}

// IsJunk reports whether the token is whitespace or a comment: the
// categories the structural parser skips between recognized constructs.
func (t TokenTree) IsJunk() bool {
	return t.Kind == Whitespace || t.Kind == Comment
}

// NewSymbol constructs a Symbol token-tree for the rune c covering the
// given span.
func NewSymbol(c rune, span Span) TokenTree {
	return TokenTree{Kind: Symbol, Span: span, Ch: c}
}

// TrimJunk returns the sub-slice of tts with leading and trailing junk
// tokens removed.
func TrimJunk(tts []TokenTree) []TokenTree {
	start := 0
	end := len(tts)
	for start < end && tts[start].IsJunk() {
		start++
	}
	for end > start && tts[end-1].IsJunk() {
		end--
	}
	return tts[start:end]
}

// SpanOf returns the covering span of a non-empty token-tree slice.
func SpanOf(tts []TokenTree) Span {
	if len(tts) == 0 {
		return Span{}
	}
	return Cover(tts[0].Span, tts[len(tts)-1].Span)
}
