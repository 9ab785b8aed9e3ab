package parser

import (
	"strings"

	"github.com/go-less/lesscore/ast"
	"github.com/go-less/lesscore/parseerr"
	"github.com/go-less/lesscore/token"
)

// exprParser is a cursor over one already-delimited slice of token trees
// (one comma segment, one argument, one parenthesized group): there is
// no comma or semicolon left inside it for the precedence climb to stop
// at, so it can run to exhaustion.
type exprParser struct {
	tts []token.TokenTree
	pos int
}

func (p *exprParser) skipJunk() {
	for p.pos < len(p.tts) && p.tts[p.pos].IsJunk() {
		p.pos++
	}
}

func (p *exprParser) atEnd() bool { return p.pos >= len(p.tts) }

func (p *exprParser) peek() token.TokenTree { return p.tts[p.pos] }

func (p *exprParser) peekSpan() token.Span {
	if p.atEnd() {
		if len(p.tts) > 0 {
			return p.tts[len(p.tts)-1].Span
		}
		return token.Span{}
	}
	return p.peek().Span
}

func (p *exprParser) tryConsumeKeywordOp(words ...string) (string, bool) {
	if p.atEnd() || p.peek().Kind != token.Ident {
		return "", false
	}
	for _, w := range words {
		if p.peek().Text == w {
			p.pos++
			return w, true
		}
	}
	return "", false
}

func (p *exprParser) tryConsumeComparisonOp() (ast.BinaryOp, bool) {
	if p.atEnd() || p.peek().Kind != token.Symbol {
		return 0, false
	}
	switch p.peek().Ch {
	case '=':
		p.pos++
		return ast.OpEquality, true
	case '<':
		if p.pos+1 < len(p.tts) && p.tts[p.pos+1].Kind == token.Symbol && p.tts[p.pos+1].Ch == '=' && adjacent(p.tts[p.pos], p.tts[p.pos+1]) {
			p.pos += 2
			return ast.OpLessThanOrEqual, true
		}
		p.pos++
		return ast.OpLessThan, true
	case '>':
		if p.pos+1 < len(p.tts) && p.tts[p.pos+1].Kind == token.Symbol && p.tts[p.pos+1].Ch == '=' && adjacent(p.tts[p.pos], p.tts[p.pos+1]) {
			p.pos += 2
			return ast.OpGreaterThanOrEqual, true
		}
		p.pos++
		return ast.OpGreaterThan, true
	}
	return 0, false
}

// parseSpaceList parses the whole of tts as one or more juxtaposed
// logical-precedence expressions separated by whitespace.
func parseSpaceList(tts []token.TokenTree) (ast.Expression, error) {
	p := &exprParser{tts: tts}
	p.skipJunk()
	if p.atEnd() {
		return nil, parseerr.New(parseerr.EmptyExpression, token.Span{})
	}
	var items []ast.Expression
	for {
		p.skipJunk()
		if p.atEnd() {
			break
		}
		e, err := p.parseLogical()
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return &ast.ListExpr{Kind: ast.SpaceList, Items: items}, nil
}

func (p *exprParser) parseLogical() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for {
		save := p.pos
		p.skipJunk()
		word, ok := p.tryConsumeKeywordOp("and", "or")
		if !ok {
			p.pos = save
			break
		}
		p.skipJunk()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		op := ast.OpAnd
		if word == "or" {
			op = ast.OpOr
		}
		left = &ast.BinaryOperation{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *exprParser) parseComparison() (ast.Expression, error) {
	left, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	for {
		save := p.pos
		p.skipJunk()
		op, ok := p.tryConsumeComparisonOp()
		if !ok {
			p.pos = save
			break
		}
		p.skipJunk()
		right, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperation{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *exprParser) parseSum() (ast.Expression, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for {
		save := p.pos
		p.skipJunk()
		if p.atEnd() || p.peek().Kind != token.Symbol || (p.peek().Ch != '+' && p.peek().Ch != '-') {
			p.pos = save
			break
		}
		op := ast.OpAdd
		if p.peek().Ch == '-' {
			op = ast.OpSubtract
		}
		p.pos++
		p.skipJunk()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperation{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *exprParser) parseProduct() (ast.Expression, error) {
	left, err := p.parseSimple()
	if err != nil {
		return nil, err
	}
	for {
		save := p.pos
		p.skipJunk()
		if p.atEnd() || p.peek().Kind != token.Symbol || (p.peek().Ch != '*' && p.peek().Ch != '/') {
			p.pos = save
			break
		}
		op := ast.OpMultiply
		if p.peek().Ch == '/' {
			op = ast.OpDivide
		}
		p.pos++
		p.skipJunk()
		right, err := p.parseSimple()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperation{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *exprParser) parseSimple() (ast.Expression, error) {
	if p.atEnd() {
		return nil, parseerr.New(parseerr.EmptyExpression, token.Span{})
	}
	t := p.peek()

	switch t.Kind {
	case token.Number:
		return p.parseNumeric()
	case token.String:
		return p.parseStringLiteral()
	case token.Ident:
		return p.parseIdentOrCall()
	case token.Tree:
		return p.parseGroupedOrDetached()
	case token.Symbol:
		switch t.Ch {
		case '@':
			return p.parseVariableOrLookup()
		case '$':
			p.pos++
			if p.atEnd() || p.peek().Kind != token.Ident {
				return nil, parseerr.New(parseerr.UnexpectedToken, t.Span)
			}
			name := p.peek().Text
			p.pos++
			return &ast.Property{Name: name}, nil
		case '.', '#':
			return p.parseMixinCallExpression()
		case '!':
			p.pos++
			p.skipJunk()
			operand, err := p.parseSimple()
			if err != nil {
				return nil, err
			}
			return &ast.UnaryOperation{Op: ast.UnaryNot, Operand: operand}, nil
		case '-':
			p.pos++
			p.skipJunk()
			operand, err := p.parseSimple()
			if err != nil {
				return nil, err
			}
			return &ast.UnaryOperation{Op: ast.UnaryNegate, Operand: operand}, nil
		}
	}
	return nil, parseerr.New(parseerr.UnexpectedToken, t.Span)
}

func (p *exprParser) parseNumeric() (ast.Expression, error) {
	t := p.peek()
	p.pos++
	unit, hasUnit := "", false
	if !p.atEnd() {
		nt := p.peek()
		if adjacent(t, nt) {
			if nt.Kind == token.Ident {
				unit, hasUnit = nt.Text, true
				p.pos++
			} else if nt.Kind == token.Symbol && nt.Ch == '%' {
				unit, hasUnit = "%", true
				p.pos++
			}
		}
	}
	return &ast.Numeric{Value: t.Num, Unit: unit, HasUnit: hasUnit}, nil
}

func (p *exprParser) parseIdentOrCall() (ast.Expression, error) {
	t := p.peek()
	p.pos++
	if !p.atEnd() && p.peek().Kind == token.Tree && p.peek().Delim == token.Paren && adjacent(t, p.peek()) {
		argsTree := p.peek()
		p.pos++
		args, err := parseFunctionArgs(argsTree.Children)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionCall{Name: t.Text, Arguments: args}, nil
	}
	return &ast.Ident{Text: t.Text}, nil
}

func (p *exprParser) parseGroupedOrDetached() (ast.Expression, error) {
	t := p.peek()
	if t.Delim == token.Paren {
		p.pos++
		inner := token.TrimJunk(t.Children)
		if len(inner) == 0 {
			return nil, parseerr.New(parseerr.EmptyExpression, t.Span)
		}
		ip := &exprParser{tts: inner}
		e, err := ip.parseLogical()
		if err != nil {
			return nil, err
		}
		ip.skipJunk()
		if !ip.atEnd() {
			return nil, parseerr.New(parseerr.UnexpectedToken, ip.peekSpan())
		}
		return e, nil
	}
	if t.Delim == token.Brace {
		p.pos++
		items, err := ParseItems(t.Children)
		if err != nil {
			return nil, err
		}
		return &ast.DetachedRuleset{Items: items}, nil
	}
	return nil, parseerr.New(parseerr.UnexpectedToken, t.Span)
}

func (p *exprParser) parseVariableOrLookup() (ast.Expression, error) {
	atSpan := p.peek().Span
	p.pos++
	if p.atEnd() || p.peek().Kind != token.Ident {
		return nil, parseerr.New(parseerr.UnexpectedToken, atSpan)
	}
	name := p.peek().Text
	p.pos++
	var lookups []ast.Lookup
	for !p.atEnd() && p.peek().Kind == token.Tree && p.peek().Delim == token.Bracket {
		lk, err := parseLookupContents(p.peek().Children, p.peek().Span)
		if err != nil {
			return nil, err
		}
		lookups = append(lookups, lk)
		p.pos++
	}
	if len(lookups) == 0 {
		return &ast.Variable{Name: name}, nil
	}
	return &ast.VariableLookup{Name: name, Lookups: lookups}, nil
}

func (p *exprParser) parseMixinCallExpression() (ast.Expression, error) {
	sel, next, ok := parseMixinSelector(p.tts, p.pos, len(p.tts))
	if !ok {
		return nil, parseerr.New(parseerr.UnexpectedToken, p.peek().Span)
	}
	j := skipJunk(p.tts, next)
	if j >= len(p.tts) || p.tts[j].Kind != token.Tree || p.tts[j].Delim != token.Paren {
		return nil, parseerr.New(parseerr.UnexpectedToken, p.peekSpan())
	}
	slots, err := parseMixinArgSlots(p.tts[j].Children)
	if err != nil {
		return nil, err
	}
	args, err := toCallArgs(slots)
	if err != nil {
		return nil, err
	}
	p.pos = j + 1
	return &ast.MixinCallExpr{Selector: sel, Arguments: args}, nil
}

// parseLookupContents classifies one `[...]` group's body into one of
// the six lookup shapes. Longer prefixes are checked before shorter
// ones so `[$@x]` is not mistaken for `[$...]`.
func parseLookupContents(tts []token.TokenTree, bracketSpan token.Span) (ast.Lookup, error) {
	trimmed := token.TrimJunk(tts)
	switch {
	case len(trimmed) == 0:
		return ast.Lookup{Kind: ast.LookupLast}, nil
	case len(trimmed) >= 3 && isSym(trimmed[0], '$') && isSym(trimmed[1], '@') && trimmed[2].Kind == token.Ident:
		return ast.Lookup{Kind: ast.LookupVariableProperty, Name: trimmed[2].Text}, nil
	case len(trimmed) >= 3 && isSym(trimmed[0], '@') && isSym(trimmed[1], '@') && trimmed[2].Kind == token.Ident:
		return ast.Lookup{Kind: ast.LookupVariableVariable, Name: trimmed[2].Text}, nil
	case len(trimmed) >= 2 && isSym(trimmed[0], '@') && trimmed[1].Kind == token.Ident:
		return ast.Lookup{Kind: ast.LookupVariable, Name: trimmed[1].Text}, nil
	case len(trimmed) >= 2 && isSym(trimmed[0], '$') && trimmed[1].Kind == token.Ident:
		return ast.Lookup{Kind: ast.LookupProperty, Name: trimmed[1].Text}, nil
	case len(trimmed) == 1 && trimmed[0].Kind == token.Ident:
		return ast.Lookup{Kind: ast.LookupIdent, Name: trimmed[0].Text}, nil
	}
	return ast.Lookup{}, parseerr.New(parseerr.UnbalancedLookup, bracketSpan)
}

func isSym(t token.TokenTree, ch rune) bool { return t.Kind == token.Symbol && t.Ch == ch }

func (p *exprParser) parseStringLiteral() (ast.Expression, error) {
	t := p.peek()
	p.pos++
	baseOffset := t.Span.Start + 1 // past the opening quote byte
	parts, interps, err := splitInterpolatedString(t.Text, baseOffset)
	if err != nil {
		return nil, err
	}
	if len(interps) == 0 {
		return &ast.QuotedString{Text: t.Text, Quote: t.Quote}, nil
	}
	return &ast.InterpolatedString{Parts: parts, Interpolations: interps, Quote: t.Quote}, nil
}

// splitInterpolatedString scans a string literal's raw body for `@{name}`
// and `${name}` interpolations, alternating literal text with reference
// expressions so that len(parts) == len(interps)+1.
func splitInterpolatedString(s string, baseOffset int) ([]string, []ast.Expression, error) {
	var parts []string
	var interps []ast.Expression
	i, partStart := 0, 0
	for i < len(s) {
		if strings.HasPrefix(s[i:], "@{") || strings.HasPrefix(s[i:], "${") {
			isVar := s[i] == '@'
			parts = append(parts, s[partStart:i])
			j := i + 2
			nameStart := j
			for j < len(s) && s[j] != '}' {
				j++
			}
			if j >= len(s) {
				return nil, nil, parseerr.New(parseerr.UnterminatedInterpolation, token.Span{Start: baseOffset + i, End: baseOffset + len(s)})
			}
			name := s[nameStart:j]
			if isVar {
				interps = append(interps, &ast.Variable{Name: name})
			} else {
				interps = append(interps, &ast.Property{Name: name})
			}
			i = j + 1
			partStart = i
			continue
		}
		i++
	}
	parts = append(parts, s[partStart:])
	return parts, interps, nil
}

// ParseExpression parses a declaration-value-level expression: a
// detached ruleset, or a comma-list of space-lists.
func ParseExpression(tts []token.TokenTree) (ast.Expression, error) {
	trimmed := token.TrimJunk(tts)
	if len(trimmed) == 0 {
		return nil, parseerr.New(parseerr.EmptyExpression, token.Span{})
	}
	if len(trimmed) == 1 && trimmed[0].Kind == token.Tree && trimmed[0].Delim == token.Brace {
		items, err := ParseItems(trimmed[0].Children)
		if err != nil {
			return nil, err
		}
		return &ast.DetachedRuleset{Items: items}, nil
	}
	groups := splitTopLevel(trimmed, ',')
	if len(groups) == 1 {
		return parseSpaceList(token.TrimJunk(groups[0]))
	}
	var items []ast.Expression
	for _, g := range groups {
		tg := token.TrimJunk(g)
		if len(tg) == 0 {
			return nil, parseerr.New(parseerr.EmptyArgument, token.Span{})
		}
		e, err := parseSpaceList(tg)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return &ast.ListExpr{Kind: ast.CommaList, Items: items}, nil
}

// ParseBooleanExpression parses a single logical-precedence expression,
// the grammar a `when (...)` guard clause holds.
func ParseBooleanExpression(tts []token.TokenTree) (ast.Expression, error) {
	trimmed := token.TrimJunk(tts)
	if len(trimmed) == 0 {
		return nil, parseerr.New(parseerr.EmptyExpression, token.Span{})
	}
	p := &exprParser{tts: trimmed}
	e, err := p.parseLogical()
	if err != nil {
		return nil, err
	}
	p.skipJunk()
	if !p.atEnd() {
		return nil, parseerr.New(parseerr.UnexpectedToken, p.peekSpan())
	}
	return e, nil
}

// parseFunctionArgs builds the `semicolon-list of comma-lists of
// space-lists` shape every function-call argument list has, even when
// no separators are present (a single argument still yields a
// one-element semicolon list wrapping a one-element comma list). An
// empty argument list yields a nil Expression.
func parseFunctionArgs(tts []token.TokenTree) (ast.Expression, error) {
	if len(token.TrimJunk(tts)) == 0 {
		return nil, nil
	}
	semiGroups := splitTopLevel(tts, ';')
	var semiItems []ast.Expression
	for _, seg := range semiGroups {
		trimmedSeg := token.TrimJunk(seg)
		if len(trimmedSeg) == 0 {
			continue
		}
		commaGroups := splitTopLevel(trimmedSeg, ',')
		var commaItems []ast.Expression
		for _, cg := range commaGroups {
			trimmedCg := token.TrimJunk(cg)
			if len(trimmedCg) == 0 {
				return nil, parseerr.New(parseerr.EmptyArgument, token.Span{})
			}
			if len(trimmedCg) == 1 && trimmedCg[0].Kind == token.Tree && trimmedCg[0].Delim == token.Brace {
				items, err := ParseItems(trimmedCg[0].Children)
				if err != nil {
					return nil, err
				}
				commaItems = append(commaItems, &ast.DetachedRuleset{Items: items})
				continue
			}
			expr, err := parseSpaceList(trimmedCg)
			if err != nil {
				return nil, err
			}
			commaItems = append(commaItems, expr)
		}
		semiItems = append(semiItems, &ast.ListExpr{Kind: ast.CommaList, Items: commaItems})
	}
	if len(semiItems) == 0 {
		return nil, nil
	}
	return &ast.ListExpr{Kind: ast.SemicolonList, Items: semiItems}, nil
}
