// Package lexer implements the context-free token-tree lexer: it consumes
// LESS source text and emits an ordered sequence of spanned token-trees
// with brackets already balanced. Whitespace and comments are emitted as
// tokens, not skipped; skipping "junk" is the structural parser's job.
package lexer

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-less/lesscore/ident"
	"github.com/go-less/lesscore/parseerr"
	"github.com/go-less/lesscore/token"
)

type lexer struct {
	input string
	pos   int
}

// Lex converts input into a sequence of spanned token-trees, consuming the
// entire input. A stray or unmatched bracket produces a *parseerr.Error.
func Lex(input string) ([]token.TokenTree, error) {
	l := &lexer{input: input}
	trees, err := l.lexSequence(nil)
	if err != nil {
		return nil, err
	}
	return trees, nil
}

// lexSequence lexes token-trees until EOF, or until it reaches a
// delimiter matching close (which it leaves unconsumed for the caller),
// or until it hits a mismatched close delimiter (an error).
func (l *lexer) lexSequence(close *token.Delim) ([]token.TokenTree, error) {
	var out []token.TokenTree
	for {
		if l.pos >= len(l.input) {
			return out, nil
		}
		r, w := utf8.DecodeRuneInString(l.input[l.pos:])

		if d, ok := closeDelimFor(r); ok {
			if close != nil && d == *close {
				return out, nil
			}
			return out, parseerr.New(parseerr.StrayCloseDelimiter, token.Span{Start: l.pos, End: l.pos + w})
		}

		if d, ok := openDelimFor(r); ok {
			start := l.pos
			l.pos += w
			children, err := l.lexSequence(&d)
			if err != nil {
				return out, err
			}
			if l.pos >= len(l.input) {
				return out, parseerr.New(parseerr.UnmatchedOpenDelimiter, token.Span{Start: start, End: start + w})
			}
			_, cw := utf8.DecodeRuneInString(l.input[l.pos:])
			l.pos += cw
			out = append(out, token.TokenTree{
				Kind:     token.Tree,
				Span:     token.Span{Start: start, End: l.pos},
				Delim:    d,
				Children: children,
			})
			continue
		}

		tok, err := l.lexToken()
		if err != nil {
			return out, err
		}
		out = append(out, tok)
	}
}

func openDelimFor(r rune) (token.Delim, bool) {
	switch r {
	case '(':
		return token.Paren, true
	case '{':
		return token.Brace, true
	case '[':
		return token.Bracket, true
	}
	return 0, false
}

func closeDelimFor(r rune) (token.Delim, bool) {
	switch r {
	case ')':
		return token.Paren, true
	case '}':
		return token.Brace, true
	case ']':
		return token.Bracket, true
	}
	return 0, false
}

// lexToken reads exactly one flat token at l.pos, trying each kind in the
// priority order the design specifies: whitespace, line comment, block
// comment, identifier, hash, string, number, symbol.
func (l *lexer) lexToken() (token.TokenTree, error) {
	start := l.pos
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])

	if isWhitespace(r) {
		l.pos += w
		for l.pos < len(l.input) {
			r2, w2 := utf8.DecodeRuneInString(l.input[l.pos:])
			if !isWhitespace(r2) {
				break
			}
			l.pos += w2
		}
		return token.TokenTree{Kind: token.Whitespace, Span: token.Span{Start: start, End: l.pos}}, nil
	}

	if r == '/' {
		switch l.peekAt(w) {
		case '/':
			l.pos += w + 1
			bodyStart := l.pos
			for l.pos < len(l.input) {
				rr, ww := utf8.DecodeRuneInString(l.input[l.pos:])
				if rr == '\n' {
					break
				}
				l.pos += ww
			}
			return token.TokenTree{Kind: token.Comment, Span: token.Span{Start: start, End: l.pos}, Text: l.input[bodyStart:l.pos]}, nil
		case '*':
			l.pos += w + 1
			bodyStart := l.pos
			if idx := strings.Index(l.input[l.pos:], "*/"); idx >= 0 {
				bodyEnd := l.pos + idx
				text := l.input[bodyStart:bodyEnd]
				l.pos = bodyEnd + 2
				return token.TokenTree{Kind: token.Comment, Span: token.Span{Start: start, End: l.pos}, Text: text}, nil
			}
			// EOF before closing */: emit the partial comment body and stop.
			text := l.input[bodyStart:]
			l.pos = len(l.input)
			return token.TokenTree{Kind: token.Comment, Span: token.Span{Start: start, End: l.pos}, Text: text}, nil
		}
	}

	if ident.WouldStartIdentifier(l.lookaheadAt(l.pos)) {
		return l.lexIdentifier(start), nil
	}

	if r == '#' {
		afterHash := l.pos + w
		if afterHash < len(l.input) {
			r2, _ := utf8.DecodeRuneInString(l.input[afterHash:])
			if ident.IsNameContinue(r2) {
				l.pos = afterHash
				nameStart := l.pos
				for l.pos < len(l.input) {
					rr, ww := utf8.DecodeRuneInString(l.input[l.pos:])
					if !ident.IsNameContinue(rr) {
						break
					}
					l.pos += ww
				}
				return token.TokenTree{Kind: token.Hash, Span: token.Span{Start: start, End: l.pos}, Text: l.input[nameStart:l.pos]}, nil
			}
		}
	}

	if r == '"' || r == '\'' {
		return l.lexString(start, r)
	}

	if isNumberStart(l.input, l.pos) {
		return l.lexNumber(start), nil
	}

	l.pos += w
	return token.NewSymbol(r, token.Span{Start: start, End: l.pos}), nil
}

// lexIdentifier consumes the maximal identifier-continue run starting at
// start, honoring backslash escapes (a backslash not followed by a
// newline consumes the following rune literally as part of the name).
func (l *lexer) lexIdentifier(start int) token.TokenTree {
	for l.pos < len(l.input) {
		r, w := utf8.DecodeRuneInString(l.input[l.pos:])
		if r == '\\' {
			nextPos := l.pos + w
			if nextPos < len(l.input) {
				r2, w2 := utf8.DecodeRuneInString(l.input[nextPos:])
				if r2 != '\n' {
					l.pos = nextPos + w2
					continue
				}
			}
			break
		}
		if ident.IsNameContinue(r) {
			l.pos += w
			continue
		}
		break
	}
	return token.TokenTree{Kind: token.Ident, Span: token.Span{Start: start, End: l.pos}, Text: l.input[start:l.pos]}
}

func (l *lexer) lexString(start int, quote rune) (token.TokenTree, error) {
	qw := utf8.RuneLen(quote)
	l.pos += qw
	bodyStart := l.pos
	for l.pos < len(l.input) {
		r, w := utf8.DecodeRuneInString(l.input[l.pos:])
		if r == quote {
			text := l.input[bodyStart:l.pos]
			l.pos += w
			return token.TokenTree{Kind: token.String, Span: token.Span{Start: start, End: l.pos}, Text: text, Quote: quote}, nil
		}
		l.pos += w
	}
	return token.TokenTree{}, parseerr.New(parseerr.UnterminatedString, token.Span{Start: start, End: start + qw})
}

// isNumberStart reports whether input[pos:] begins a number literal per
// `sign? (digits ('.' digits)? | '.' digits)`.
func isNumberStart(input string, pos int) bool {
	i := pos
	if i < len(input) && (input[i] == '+' || input[i] == '-') {
		i++
	}
	if i >= len(input) {
		return false
	}
	if isDigitByte(input[i]) {
		return true
	}
	if input[i] == '.' {
		return i+1 < len(input) && isDigitByte(input[i+1])
	}
	return false
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

// lexNumber parses `sign? (digits ('.' digits)? | '.' digits) ([eE] sign?
// digits)?` and computes its value as s*(I + F*10^-D)*10^(t*E) in 32-bit
// float, per the CSS convert-string-to-number algorithm. Units are not
// consumed here; they are attached by the expression layer.
func (l *lexer) lexNumber(start int) token.TokenTree {
	input := l.input
	i := l.pos
	sign := 1.0
	if i < len(input) && (input[i] == '+' || input[i] == '-') {
		if input[i] == '-' {
			sign = -1.0
		}
		i++
	}

	intStart := i
	for i < len(input) && isDigitByte(input[i]) {
		i++
	}
	intPart := input[intStart:i]

	fracPart := ""
	if i < len(input) && input[i] == '.' && i+1 < len(input) && isDigitByte(input[i+1]) {
		i++
		fracStart := i
		for i < len(input) && isDigitByte(input[i]) {
			i++
		}
		fracPart = input[fracStart:i]
	}

	expSign := 1.0
	expMag := 0.0
	if i < len(input) && (input[i] == 'e' || input[i] == 'E') {
		j := i + 1
		var esign byte
		if j < len(input) && (input[j] == '+' || input[j] == '-') {
			esign = input[j]
			j++
		}
		digStart := j
		for j < len(input) && isDigitByte(input[j]) {
			j++
		}
		if j > digStart {
			if esign == '-' {
				expSign = -1.0
			}
			expMag, _ = strconv.ParseFloat(input[digStart:j], 64)
			i = j
		}
	}

	l.pos = i
	text := input[start:l.pos]

	var iVal float64
	if intPart != "" {
		iVal, _ = strconv.ParseFloat(intPart, 64)
	}
	var fVal float64
	d := len(fracPart)
	if fracPart != "" {
		fVal, _ = strconv.ParseFloat(fracPart, 64)
	}
	mantissa := iVal + fVal*math.Pow(10, -float64(d))
	value := sign * mantissa * math.Pow(10, expSign*expMag)

	return token.TokenTree{
		Kind:    token.Number,
		Span:    token.Span{Start: start, End: l.pos},
		Num:     float32(value),
		NumText: text,
	}
}

func isWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}

func (l *lexer) peekAt(byteOffset int) rune {
	i := l.pos + byteOffset
	if i >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[i:])
	return r
}

func (l *lexer) lookaheadAt(pos int) ident.Lookahead {
	return stringLookahead{s: l.input, pos: pos}
}

type stringLookahead struct {
	s   string
	pos int
}

func (la stringLookahead) At(n int) (rune, bool) {
	i := la.pos
	for k := 0; k < n; k++ {
		if i >= len(la.s) {
			return 0, false
		}
		_, w := utf8.DecodeRuneInString(la.s[i:])
		i += w
	}
	if i >= len(la.s) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(la.s[i:])
	return r, true
}
