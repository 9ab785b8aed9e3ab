// Package parser implements the structural parser: it consumes the
// token-tree sequence the lexer produces and builds a typed stylesheet,
// resolving the shared-prefix ambiguities between at-rules, mixin
// definitions and calls, qualified rules, and declarations by looking
// ahead to each item's block-or-semicolon horizon.
package parser

import (
	"github.com/go-less/lesscore/ast"
	"github.com/go-less/lesscore/lexer"
	"github.com/go-less/lesscore/parseerr"
	"github.com/go-less/lesscore/token"
)

// Parse lexes and structurally parses a full document.
func Parse(input string) (*ast.Stylesheet, error) {
	tts, err := lexer.Lex(input)
	if err != nil {
		return nil, err
	}
	items, err := ParseItems(tts)
	if err != nil {
		return nil, err
	}
	return &ast.Stylesheet{Items: items}, nil
}

// ParseItems parses a sequence of items out of an already-grouped block
// body (a Stylesheet's top level, or the Children of a '{...}' tree).
func ParseItems(tts []token.TokenTree) ([]ast.Item, error) {
	var items []ast.Item
	i := skipJunk(tts, 0)
	for i < len(tts) {
		item, next, err := parseItem(tts, i)
		if err != nil {
			return nil, err
		}
		if item != nil {
			items = append(items, item)
		}
		i = skipJunk(tts, next)
	}
	return items, nil
}

// parseItem dispatches on the shared prefixes of the item grammar. A
// bare `@ident` is tried first (variable declaration, variable call, or
// at-rule); then a declaration name, which is cheap to rule out since it
// only commits once a top-level ':' follows its name run; then the call
// forms (mixin rule, mixin call, bare function call); and finally a
// qualified rule as the catch-all.
func parseItem(tts []token.TokenTree, i int) (ast.Item, int, error) {
	if i < len(tts) && tts[i].Kind == token.Symbol && tts[i].Ch == '@' {
		return parseAtSignItem(tts, i)
	}

	if nameParts, ok := collectDeclarationNameParts(tts, i); ok {
		afterName := skipJunk(tts, nameParts[len(nameParts)-1].end)
		if afterName < len(tts) && tts[afterName].Kind == token.Symbol && tts[afterName].Ch == ':' {
			return finishDeclarationFromParts(tts, i, nameParts, afterName)
		}
	}

	if tts[i].Kind == token.Hash || (tts[i].Kind == token.Symbol && (tts[i].Ch == '.' || tts[i].Ch == '#')) {
		item, next, ok, err := tryParseMixinShape(tts, i)
		if err != nil {
			return nil, i, err
		}
		if ok {
			return item, next, nil
		}
	}

	if item, next, ok, err := tryParseFunctionCallItem(tts, i); err != nil {
		return nil, i, err
	} else if ok {
		return item, next, nil
	}

	return parseQualifiedRuleFallback(tts, i)
}

// parseAtSignItem handles every `@`-prefixed item shape: `@ident: value;`
// (variable declaration), `@ident();` (variable call), and `@ident
// prelude? (';' | '{...}' | EOF)` (at-rule).
func parseAtSignItem(tts []token.TokenTree, i int) (ast.Item, int, error) {
	if i+1 >= len(tts) || tts[i+1].Kind != token.Ident || !adjacent(tts[i], tts[i+1]) {
		return nil, i, parseerr.New(parseerr.UnexpectedToken, tts[i].Span)
	}
	name := tts[i+1].Text
	after := skipJunk(tts, i+2)

	if after < len(tts) && tts[after].Kind == token.Symbol && tts[after].Ch == ':' {
		valueStart := skipJunk(tts, after+1)
		horizon, kind := findHorizon(tts, valueStart)
		if kind == "brace" {
			horizon = findTopLevelSemicolon(tts, valueStart)
		}
		valueEnd := horizon
		value, important := stripImportant(token.TrimJunk(tts[valueStart:valueEnd]))
		declName := ast.DeclarationName{Kind: ast.DeclNameVariable, Ident: name}
		next := valueEnd
		if next < len(tts) && tts[next].Kind == token.Symbol && tts[next].Ch == ';' {
			next++
		}
		return ast.NewDeclaration(spanOfRange(tts, i, next), declName, value, important), next, nil
	}

	if after < len(tts) && tts[after].Kind == token.Tree && tts[after].Delim == token.Paren && len(token.TrimJunk(tts[after].Children)) == 0 {
		next := skipJunk(tts, after+1)
		if next < len(tts) && tts[next].Kind == token.Symbol && tts[next].Ch == ';' {
			next++
		}
		return ast.NewVariableCall(spanOfRange(tts, i, next), name), next, nil
	}

	return parseAtRule(tts, i, name, after)
}

func parseAtRule(tts []token.TokenTree, start int, name string, preludeStart int) (ast.Item, int, error) {
	horizon, kind := findHorizon(tts, preludeStart)
	prelude := token.TrimJunk(tts[preludeStart:horizon])
	switch kind {
	case "brace":
		block, err := ParseItems(tts[horizon].Children)
		if err != nil {
			return nil, start, err
		}
		next := horizon + 1
		return ast.NewAtRule(spanOfRange(tts, start, next), name, prelude, block, true), next, nil
	case "semi":
		next := horizon + 1
		return ast.NewAtRule(spanOfRange(tts, start, next), name, prelude, nil, false), next, nil
	default:
		return ast.NewAtRule(spanOfRange(tts, start, len(tts)), name, prelude, nil, false), len(tts), nil
	}
}

// stripImportant detects a trailing `!important` on a declaration value,
// tolerating junk between the `!` and `important` (e.g. `bar ! important`)
// without trimming that junk from whatever the value turns out to be.
func stripImportant(value []token.TokenTree) ([]token.TokenTree, bool) {
	n := len(value)
	k := n
	for k > 0 && value[k-1].IsJunk() {
		k--
	}
	if k == 0 || value[k-1].Kind != token.Ident || value[k-1].Text != "important" {
		return value, false
	}
	k--
	for k > 0 && value[k-1].IsJunk() {
		k--
	}
	if k == 0 || value[k-1].Kind != token.Symbol || value[k-1].Ch != '!' {
		return value, false
	}
	k--
	return token.TrimJunk(value[:k]), true
}

type nameToken struct{ end int }

// collectDeclarationNameParts gathers the Ident/'-'/'@{...}' run that
// makes up a plain or interpolated declaration name, returning the
// cumulative end index of each token consumed so the caller can recheck
// what follows the last one without re-scanning.
func collectDeclarationNameParts(tts []token.TokenTree, i int) ([]nameToken, bool) {
	if i >= len(tts) {
		return nil, false
	}
	if tts[i].Kind != token.Ident && !(tts[i].Kind == token.Symbol && tts[i].Ch == '-') {
		return nil, false
	}
	var parts []nameToken
	j := i
	for j < len(tts) {
		switch {
		case tts[j].Kind == token.Ident:
			j++
		case tts[j].Kind == token.Symbol && tts[j].Ch == '-':
			j++
		case tts[j].Kind == token.Symbol && tts[j].Ch == '@' && j+1 < len(tts) &&
			tts[j+1].Kind == token.Tree && tts[j+1].Delim == token.Brace && adjacent(tts[j], tts[j+1]):
			j += 2
		default:
			return parts, len(parts) > 0
		}
		parts = append(parts, nameToken{end: j})
		if j < len(tts) && !adjacent(tts[j-1], tts[j]) {
			break
		}
	}
	return parts, len(parts) > 0
}

func buildDeclarationName(tts []token.TokenTree, start, end int) ast.DeclarationName {
	run := tts[start:end]
	if len(run) == 1 && run[0].Kind == token.Ident {
		return ast.DeclarationName{Kind: ast.DeclNameIdent, Ident: run[0].Text}
	}
	return ast.DeclarationName{Kind: ast.DeclNameInterpolated, Parts: run}
}

func finishDeclarationFromParts(tts []token.TokenTree, start int, parts []nameToken, colonIdx int) (ast.Item, int, error) {
	nameEnd := parts[len(parts)-1].end
	name := buildDeclarationName(tts, start, nameEnd)
	valueStart := skipJunk(tts, colonIdx+1)
	horizon, kind := findHorizon(tts, valueStart)
	if kind == "brace" {
		horizon = findTopLevelSemicolon(tts, valueStart)
	}
	value, important := stripImportant(token.TrimJunk(tts[valueStart:horizon]))
	next := horizon
	if next < len(tts) && tts[next].Kind == token.Symbol && tts[next].Ch == ';' {
		next++
	}
	return ast.NewDeclaration(spanOfRange(tts, start, next), name, value, important), next, nil
}

// tryParseMixinShape disambiguates a mixin definition from a mixin call
// from a plain class/id qualified-rule prelude, all of which share the
// `.`/`#`-prefixed selector-chain prefix. Once a selector+args shape has
// matched, any later failure (bad guard, missing block after a guard,
// missing `;` terminator) is a real error rather than a silent fallback.
func tryParseMixinShape(tts []token.TokenTree, i int) (ast.Item, int, bool, error) {
	sel, argsTree, after, ok := tryParseMixinSelectorWithArgs(tts, i, len(tts))
	if !ok {
		return nil, i, false, nil
	}
	j := skipJunk(tts, after)

	if j < len(tts) && tts[j].Kind == token.Tree && tts[j].Delim == token.Brace {
		args, err := parseMixinDeclarationArgs(argsTree.Children)
		if err != nil {
			return nil, i, true, err
		}
		block, err := ParseItems(tts[j].Children)
		if err != nil {
			return nil, i, true, err
		}
		next := j + 1
		return ast.NewMixinRule(spanOfRange(tts, i, next), sel, args, nil, block), next, true, nil
	}

	if isWhenKeyword(tts, j) {
		guard, j2, err := parseGuardClause(tts, j)
		if err != nil {
			return nil, i, true, err
		}
		j3 := skipJunk(tts, j2)
		if j3 >= len(tts) || tts[j3].Kind != token.Tree || tts[j3].Delim != token.Brace {
			return nil, i, true, parseerr.New(parseerr.ExpectedBlock, spanOfRange(tts, j3, j3+1))
		}
		args, err := parseMixinDeclarationArgs(argsTree.Children)
		if err != nil {
			return nil, i, true, err
		}
		block, err := ParseItems(tts[j3].Children)
		if err != nil {
			return nil, i, true, err
		}
		next := j3 + 1
		return ast.NewMixinRule(spanOfRange(tts, i, next), sel, args, guard, block), next, true, nil
	}

	important := false
	k := j
	if k < len(tts) && tts[k].Kind == token.Symbol && tts[k].Ch == '!' {
		k2 := skipJunk(tts, k+1)
		if k2 < len(tts) && tts[k2].Kind == token.Ident && tts[k2].Text == "important" {
			important = true
			k = skipJunk(tts, k2+1)
		}
	}
	if k < len(tts) && tts[k].Kind == token.Symbol && tts[k].Ch == ';' {
		args, err := parseMixinCallArgs(argsTree.Children)
		if err != nil {
			return nil, i, true, err
		}
		next := k + 1
		return ast.NewMixinCall(spanOfRange(tts, i, next), sel, args, important), next, true, nil
	}
	if k >= len(tts) {
		args, err := parseMixinCallArgs(argsTree.Children)
		if err != nil {
			return nil, i, true, err
		}
		return ast.NewMixinCall(spanOfRange(tts, i, k), sel, args, important), k, true, nil
	}

	return nil, i, true, parseerr.New(parseerr.ExpectedSemicolon, spanOfRange(tts, k, k+1))
}

// tryParseFunctionCallItem recognizes `ident '(' args ')' ';'` used as a
// top-level item, e.g. a plugin or namespace call with no receiver.
func tryParseFunctionCallItem(tts []token.TokenTree, i int) (ast.Item, int, bool, error) {
	if i >= len(tts) || tts[i].Kind != token.Ident {
		return nil, i, false, nil
	}
	j := i + 1
	if j >= len(tts) || tts[j].Kind != token.Tree || tts[j].Delim != token.Paren || !adjacent(tts[i], tts[j]) {
		return nil, i, false, nil
	}
	k := skipJunk(tts, j+1)
	if k >= len(tts) || tts[k].Kind != token.Symbol || tts[k].Ch != ';' {
		return nil, i, false, nil
	}
	args, err := parseFunctionArgs(tts[j].Children)
	if err != nil {
		return nil, i, true, err
	}
	next := k + 1
	return ast.NewFunctionCallItem(spanOfRange(tts, i, next), tts[i].Text, args), next, true, nil
}

// parseQualifiedRuleFallback is the catch-all item shape: a prelude of
// arbitrary tokens (a CSS selector group, most commonly) up to its first
// top-level '{...}' block, with an optional trailing `when (...)` guard.
func parseQualifiedRuleFallback(tts []token.TokenTree, i int) (ast.Item, int, error) {
	brace := findTopLevelBrace(tts, i)
	if brace >= len(tts) {
		return nil, i, parseerr.New(parseerr.UnknownItemShape, tts[i].Span)
	}
	rawPrelude := tts[i:brace]
	guard, prelude, err := extractTrailingGuard(rawPrelude)
	if err != nil {
		return nil, i, err
	}
	block, err := ParseItems(tts[brace].Children)
	if err != nil {
		return nil, i, err
	}
	next := brace + 1
	return ast.NewQualifiedRule(spanOfRange(tts, i, next), prelude, guard, block), next, nil
}
