package parser

import "github.com/go-less/lesscore/token"

func skipJunk(tts []token.TokenTree, i int) int {
	for i < len(tts) && tts[i].IsJunk() {
		i++
	}
	return i
}

func findTopLevelSemicolon(tts []token.TokenTree, start int) int {
	for k := start; k < len(tts); k++ {
		if tts[k].Kind == token.Symbol && tts[k].Ch == ';' {
			return k
		}
	}
	return len(tts)
}

func findTopLevelBrace(tts []token.TokenTree, start int) int {
	for k := start; k < len(tts); k++ {
		if tts[k].Kind == token.Tree && tts[k].Delim == token.Brace {
			return k
		}
	}
	return len(tts)
}

// findHorizon returns the index of whichever comes first among a
// top-level ';' and a top-level '{...}' tree starting at start, along
// with which it found ("semi", "brace", or "eof" if neither exists).
func findHorizon(tts []token.TokenTree, start int) (int, string) {
	semi := findTopLevelSemicolon(tts, start)
	brace := findTopLevelBrace(tts, start)
	if brace < semi {
		return brace, "brace"
	}
	if semi < len(tts) {
		return semi, "semi"
	}
	return len(tts), "eof"
}

// splitTopLevel splits tts at every Symbol(sep) token, none of which can
// be nested (brackets are already grouped into Tree nodes by the lexer).
func splitTopLevel(tts []token.TokenTree, sep rune) [][]token.TokenTree {
	var groups [][]token.TokenTree
	start := 0
	for k := 0; k < len(tts); k++ {
		if tts[k].Kind == token.Symbol && tts[k].Ch == sep {
			groups = append(groups, tts[start:k])
			start = k + 1
		}
	}
	groups = append(groups, tts[start:])
	return groups
}

// adjacent reports whether b begins exactly where a ends, i.e. no
// whitespace or comment token separates them.
func adjacent(a, b token.TokenTree) bool {
	return a.Span.End == b.Span.Start
}

func isDotSymbol(t token.TokenTree) bool {
	return t.Kind == token.Symbol && t.Ch == '.'
}

func spanOfRange(tts []token.TokenTree, start, limit int) token.Span {
	if start >= limit || start >= len(tts) {
		if start > 0 && start-1 < len(tts) {
			return tts[start-1].Span
		}
		return token.Span{}
	}
	return token.SpanOf(tts[start:limit])
}
