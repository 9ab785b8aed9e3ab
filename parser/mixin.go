package parser

import (
	"github.com/go-less/lesscore/ast"
	"github.com/go-less/lesscore/parseerr"
	"github.com/go-less/lesscore/token"
)

// parseMixinSegment parses one `.`/`#`-prefixed name. The lexer emits
// `#name` as a single Hash token, so that form is accepted alongside a
// `.` or `#` symbol followed by an ident.
func parseMixinSegment(tts []token.TokenTree, i, limit int) (ast.MixinSelectorSegment, int, bool) {
	if i < limit && tts[i].Kind == token.Hash {
		return ast.MixinSelectorSegment{Prefix: '#', Name: tts[i].Text}, i + 1, true
	}
	if i >= limit || tts[i].Kind != token.Symbol || (tts[i].Ch != '.' && tts[i].Ch != '#') {
		return ast.MixinSelectorSegment{}, i, false
	}
	prefix := tts[i].Ch
	j := i + 1
	if j >= limit || tts[j].Kind != token.Ident {
		return ast.MixinSelectorSegment{}, i, false
	}
	return ast.MixinSelectorSegment{Prefix: prefix, Name: tts[j].Text}, j + 1, true
}

// tryConsumeCombinator matches the shared selector/mixin-selector
// combinator grammar: optional surrounding whitespace, optional one of
// `>`, `+`, `~` (default Descendant if only whitespace was seen), and
// fails if neither whitespace nor a combinator symbol appears.
func tryConsumeCombinator(tts []token.TokenTree, i, limit int) (ast.CombinatorKind, int, bool) {
	j := i
	hadWS1 := false
	for j < limit && tts[j].IsJunk() {
		j++
		hadWS1 = true
	}
	comb := ast.CombinatorDescendant
	hadSymbol := false
	if j < limit && tts[j].Kind == token.Symbol {
		switch tts[j].Ch {
		case '>':
			comb, hadSymbol = ast.CombinatorChild, true
			j++
		case '+':
			comb, hadSymbol = ast.CombinatorNextSibling, true
			j++
		case '~':
			comb, hadSymbol = ast.CombinatorSubsequent, true
			j++
		}
	}
	hadWS2 := false
	for j < limit && tts[j].IsJunk() {
		j++
		hadWS2 = true
	}
	if !hadWS1 && !hadSymbol && !hadWS2 {
		return 0, i, false
	}
	return comb, j, true
}

// parseMixinSelector parses a chain of `.`/`#` segments joined by
// combinators, e.g. `.a > .b`.
func parseMixinSelector(tts []token.TokenTree, i, limit int) (ast.MixinSelector, int, bool) {
	seg, j, ok := parseMixinSegment(tts, i, limit)
	if !ok {
		return ast.MixinSelector{}, i, false
	}
	segments := []ast.MixinSelectorSegment{seg}
	for {
		comb, j2, ok2 := tryConsumeCombinator(tts, j, limit)
		if !ok2 {
			break
		}
		seg2, j3, ok3 := parseMixinSegment(tts, j2, limit)
		if !ok3 {
			break
		}
		seg2.Combinator = comb
		segments = append(segments, seg2)
		j = j3
	}
	return ast.MixinSelector{Segments: segments}, j, true
}

// tryParseMixinSelectorWithArgs parses a mixin selector immediately
// followed (after optional junk) by a parenthesized argument list, the
// shape shared by mixin rules and mixin calls.
func tryParseMixinSelectorWithArgs(tts []token.TokenTree, i, limit int) (ast.MixinSelector, token.TokenTree, int, bool) {
	sel, j, ok := parseMixinSelector(tts, i, limit)
	if !ok {
		return ast.MixinSelector{}, token.TokenTree{}, i, false
	}
	j2 := skipJunk(tts, j)
	if j2 >= limit || tts[j2].Kind != token.Tree || tts[j2].Delim != token.Paren {
		return ast.MixinSelector{}, token.TokenTree{}, i, false
	}
	return sel, tts[j2], j2 + 1, true
}

// argSlot is the intermediate result of parsing one mixin-argument
// position, before the comma/semicolon mode fold and the declaration-
// or call-argument lowering.
type argSlot struct {
	kind     ast.MixinDeclArgKind
	name     string
	value    ast.Expression
	hasValue bool
}

func isEllipsis(tts []token.TokenTree, i int) bool {
	return i+2 < len(tts) && isDotSymbol(tts[i]) && isDotSymbol(tts[i+1]) && isDotSymbol(tts[i+2]) &&
		adjacent(tts[i], tts[i+1]) && adjacent(tts[i+1], tts[i+2])
}

// parseArgValue grabs the raw tokens up to (but not including) the next
// top-level ',' or ';' and parses them as either a detached ruleset or a
// space-list of expressions.
func parseArgValue(tts []token.TokenTree, start int) (ast.Expression, int, error) {
	end := start
	for end < len(tts) {
		if tts[end].Kind == token.Symbol && (tts[end].Ch == ',' || tts[end].Ch == ';') {
			break
		}
		end++
	}
	raw := token.TrimJunk(tts[start:end])
	if len(raw) == 0 {
		return nil, end, nil
	}
	if len(raw) == 1 && raw[0].Kind == token.Tree && raw[0].Delim == token.Brace {
		items, err := ParseItems(raw[0].Children)
		if err != nil {
			return nil, 0, err
		}
		return &ast.DetachedRuleset{Items: items}, end, nil
	}
	expr, err := parseSpaceList(raw)
	if err != nil {
		return nil, 0, err
	}
	return expr, end, nil
}

// parseMixinArgSlots implements the two-pass comma/semicolon mode-switch
// fold: arguments are read as a comma-separated list until the first
// top-level `;`, at which point every slot gathered so far is folded
// into a single semicolon-separated slot (its value becoming a comma
// list of the individual values) and remaining arguments are read one
// per `;`.
func parseMixinArgSlots(tts []token.TokenTree) ([]argSlot, error) {
	i := 0
	mode := "comma"
	var slots []argSlot
	for {
		i = skipJunk(tts, i)
		if i >= len(tts) {
			break
		}

		name := ""
		hasName := false
		if tts[i].Kind == token.Symbol && tts[i].Ch == '@' && i+1 < len(tts) && tts[i+1].Kind == token.Ident && adjacent(tts[i], tts[i+1]) {
			name = tts[i+1].Text
			hasName = true
			i = skipJunk(tts, i+2)
		}

		if isEllipsis(tts, i) {
			slots = append(slots, argSlot{kind: ast.MixinArgVariadic, name: name})
			i += 3
			i = skipJunk(tts, i)
			break
		}

		var value ast.Expression
		hasValue := false
		if hasName {
			i2 := skipJunk(tts, i)
			if i2 < len(tts) && tts[i2].Kind == token.Symbol && tts[i2].Ch == ':' {
				v, next, err := parseArgValue(tts, skipJunk(tts, i2+1))
				if err != nil {
					return nil, err
				}
				value, hasValue, i = v, v != nil, next
			}
		} else {
			v, next, err := parseArgValue(tts, i)
			if err != nil {
				return nil, err
			}
			if v != nil {
				value, hasValue, i = v, true, next
			}
		}

		if !hasName && !hasValue {
			break
		}

		kind := ast.MixinArgVariable
		if !hasName {
			kind = ast.MixinArgLiteral
		}
		slots = append(slots, argSlot{kind: kind, name: name, value: value, hasValue: hasValue})

		i = skipJunk(tts, i)
		if i >= len(tts) {
			break
		}
		if tts[i].Kind == token.Symbol && tts[i].Ch == ',' && mode == "comma" {
			i++
			continue
		}
		if tts[i].Kind == token.Symbol && tts[i].Ch == ';' {
			if mode == "comma" {
				slots = foldToSemicolonSeparated(slots)
				mode = "semicolon"
			}
			i++
			continue
		}
		break
	}
	return slots, nil
}

// foldToSemicolonSeparated collapses a run of comma-separated slots into
// one slot whose value is their comma list, preserving a name carried by
// the first slot (mirroring the original mixin-argument grammar's
// retroactive reinterpretation once a `;` separator is seen).
func foldToSemicolonSeparated(slots []argSlot) []argSlot {
	if len(slots) == 0 {
		return slots
	}
	var values []ast.Expression
	name := ""
	hasName := false
	for idx, s := range slots {
		if idx == 0 && s.kind == ast.MixinArgVariable && s.name != "" {
			name, hasName = s.name, true
		}
		if s.hasValue {
			values = append(values, s.value)
		}
	}
	folded := argSlot{}
	if len(values) > 0 {
		folded.value, folded.hasValue = &ast.ListExpr{Kind: ast.CommaList, Items: values}, true
	}
	if hasName {
		folded.kind, folded.name = ast.MixinArgVariable, name
	} else {
		folded.kind = ast.MixinArgLiteral
	}
	return []argSlot{folded}
}

func toDeclarationArgs(slots []argSlot) []ast.MixinDeclarationArgument {
	out := make([]ast.MixinDeclarationArgument, 0, len(slots))
	for _, s := range slots {
		switch s.kind {
		case ast.MixinArgVariable:
			var def ast.Expression
			if s.hasValue {
				def = s.value
			}
			out = append(out, ast.MixinDeclarationArgument{Kind: ast.MixinArgVariable, Name: s.name, Default: def})
		case ast.MixinArgLiteral:
			out = append(out, ast.MixinDeclarationArgument{Kind: ast.MixinArgLiteral, Value: s.value})
		case ast.MixinArgVariadic:
			out = append(out, ast.MixinDeclarationArgument{Kind: ast.MixinArgVariadic, Name: s.name})
		}
	}
	return out
}

func toCallArgs(slots []argSlot) ([]ast.MixinCallArgument, error) {
	out := make([]ast.MixinCallArgument, 0, len(slots))
	for _, s := range slots {
		switch s.kind {
		case ast.MixinArgVariable:
			if s.hasValue {
				out = append(out, ast.MixinCallArgument{Name: s.name, Value: s.value})
			} else {
				out = append(out, ast.MixinCallArgument{Value: &ast.Variable{Name: s.name}})
			}
		case ast.MixinArgLiteral:
			out = append(out, ast.MixinCallArgument{Value: s.value})
		case ast.MixinArgVariadic:
			return nil, parseerr.New(parseerr.UnexpectedToken, token.Span{})
		}
	}
	return out, nil
}

func parseMixinDeclarationArgs(tts []token.TokenTree) ([]ast.MixinDeclarationArgument, error) {
	slots, err := parseMixinArgSlots(tts)
	if err != nil {
		return nil, err
	}
	return toDeclarationArgs(slots), nil
}

func parseMixinCallArgs(tts []token.TokenTree) ([]ast.MixinCallArgument, error) {
	slots, err := parseMixinArgSlots(tts)
	if err != nil {
		return nil, err
	}
	return toCallArgs(slots)
}

func isWhenKeyword(tts []token.TokenTree, k int) bool {
	return k < len(tts) && tts[k].Kind == token.Ident && tts[k].Text == "when"
}

func parseGuardClause(tts []token.TokenTree, k int) (ast.Expression, int, error) {
	j := skipJunk(tts, k+1)
	if j >= len(tts) || tts[j].Kind != token.Tree || tts[j].Delim != token.Paren {
		return nil, 0, parseerr.New(parseerr.UnexpectedToken, tts[k].Span)
	}
	expr, err := ParseBooleanExpression(tts[j].Children)
	if err != nil {
		return nil, 0, err
	}
	return expr, j + 1, nil
}

// extractTrailingGuard pulls a trailing `when ( expr )` clause off the
// end of a qualified-rule prelude, if present. Junk between `when` and
// the `(` is allowed.
func extractTrailingGuard(prelude []token.TokenTree) (ast.Expression, []token.TokenTree, error) {
	trimmed := token.TrimJunk(prelude)
	if len(trimmed) >= 2 {
		last := trimmed[len(trimmed)-1]
		w := len(trimmed) - 2
		for w >= 0 && trimmed[w].IsJunk() {
			w--
		}
		if last.Kind == token.Tree && last.Delim == token.Paren && w >= 0 && trimmed[w].Kind == token.Ident && trimmed[w].Text == "when" {
			guard, err := ParseBooleanExpression(last.Children)
			if err != nil {
				return nil, nil, err
			}
			return guard, token.TrimJunk(trimmed[:w]), nil
		}
	}
	return nil, trimmed, nil
}
