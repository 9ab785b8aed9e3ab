package parser

import (
	"github.com/go-less/lesscore/ast"
	"github.com/go-less/lesscore/parseerr"
	"github.com/go-less/lesscore/token"
)

// parseSimpleSelector recognizes one non-combinator selector component:
// `*`, a type name, `#id` (a single Hash token), `.class`, `[attr]`,
// `:pseudo-class`, `::pseudo-element`, or `:not(...)`.
func parseSimpleSelector(tts []token.TokenTree, i, limit int) (ast.SimpleSelector, int, bool) {
	if i >= limit {
		return ast.SimpleSelector{}, i, false
	}
	t := tts[i]
	switch {
	case t.Kind == token.Symbol && t.Ch == '*':
		return ast.SimpleSelector{Kind: ast.SelUniversal}, i + 1, true
	case t.Kind == token.Ident:
		return ast.SimpleSelector{Kind: ast.SelType, Name: t.Text}, i + 1, true
	case t.Kind == token.Hash:
		return ast.SimpleSelector{Kind: ast.SelID, Name: t.Text}, i + 1, true
	case t.Kind == token.Symbol && t.Ch == '.' && i+1 < limit && tts[i+1].Kind == token.Ident:
		return ast.SimpleSelector{Kind: ast.SelClass, Name: tts[i+1].Text}, i + 2, true
	case t.Kind == token.Tree && t.Delim == token.Bracket:
		name := ""
		inner := token.TrimJunk(t.Children)
		if len(inner) == 1 && inner[0].Kind == token.Ident {
			name = inner[0].Text
		}
		return ast.SimpleSelector{Kind: ast.SelAttribute, Name: name}, i + 1, true
	case t.Kind == token.Symbol && t.Ch == ':':
		if i+2 < limit && tts[i+1].Kind == token.Symbol && tts[i+1].Ch == ':' && tts[i+2].Kind == token.Ident {
			return ast.SimpleSelector{Kind: ast.SelPseudoElement, Name: tts[i+2].Text}, i + 3, true
		}
		if i+1 < limit && tts[i+1].Kind == token.Ident {
			name := tts[i+1].Text
			if name == "not" && i+2 < limit && tts[i+2].Kind == token.Tree && tts[i+2].Delim == token.Paren {
				inner := token.TrimJunk(tts[i+2].Children)
				if notSel, _, ok := parseSimpleSelector(inner, 0, len(inner)); ok {
					return ast.SimpleSelector{Kind: ast.SelNot, Not: &notSel}, i + 3, true
				}
			}
			return ast.SimpleSelector{Kind: ast.SelPseudoClass, Name: name}, i + 2, true
		}
	}
	return ast.SimpleSelector{}, i, false
}

// parseSelectorSequence parses a maximal run of directly-adjacent simple
// selectors, e.g. `div.foo:hover`.
func parseSelectorSequence(tts []token.TokenTree, i, limit int) ([]ast.SimpleSelector, int, bool) {
	var seq []ast.SimpleSelector
	for {
		ss, next, ok := parseSimpleSelector(tts, i, limit)
		if !ok {
			break
		}
		seq = append(seq, ss)
		i = next
	}
	if len(seq) == 0 {
		return nil, i, false
	}
	return seq, i, true
}

func parseSelector(tts []token.TokenTree, i, limit int) (ast.Selector, int, error) {
	seq, j, ok := parseSelectorSequence(tts, i, limit)
	if !ok {
		return ast.Selector{}, i, parseerr.New(parseerr.UnexpectedToken, spanOfRange(tts, i, limit))
	}
	sequences := [][]ast.SimpleSelector{seq}
	var combs []ast.CombinatorKind
	for {
		comb, j2, ok2 := tryConsumeCombinator(tts, j, limit)
		if !ok2 {
			break
		}
		seq2, j3, ok3 := parseSelectorSequence(tts, j2, limit)
		if !ok3 {
			break
		}
		combs = append(combs, comb)
		sequences = append(sequences, seq2)
		j = j3
	}
	return ast.Selector{Sequences: sequences, Combinators: combs}, j, nil
}

// ParseSelectorGroup parses a comma-separated list of CSS-style
// selectors, used to interpret a qualified rule's otherwise-opaque
// prelude wherever a structured selector is required downstream.
func ParseSelectorGroup(tts []token.TokenTree) (*ast.SelectorGroup, error) {
	trimmed := token.TrimJunk(tts)
	groups := splitTopLevel(trimmed, ',')
	var selectors []ast.Selector
	for _, g := range groups {
		tg := token.TrimJunk(g)
		if len(tg) == 0 {
			return nil, parseerr.New(parseerr.UnexpectedToken, token.Span{})
		}
		sel, _, err := parseSelector(tg, 0, len(tg))
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, sel)
	}
	return &ast.SelectorGroup{Selectors: selectors}, nil
}
