package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-less/lesscore/ast"
	"github.com/go-less/lesscore/parseerr"
	"github.com/go-less/lesscore/parser"
)

func TestParseDeclaration(t *testing.T) {
	sheet, err := parser.Parse("foo: bar;")
	require.NoError(t, err)
	require.Len(t, sheet.Items, 1)
	decl, ok := sheet.Items[0].(*ast.Declaration)
	require.True(t, ok)
	require.Equal(t, ast.DeclNameIdent, decl.Name.Kind)
	require.Equal(t, "foo", decl.Name.Ident)
	require.False(t, decl.Important)
}

func TestParseImportantDeclaration(t *testing.T) {
	sheet, err := parser.Parse("foo: bar !important;")
	require.NoError(t, err)
	decl := sheet.Items[0].(*ast.Declaration)
	require.True(t, decl.Important)
	expr, err := parser.ParseExpression(decl.Value)
	require.NoError(t, err)
	list, ok := expr.(*ast.ListExpr)
	require.True(t, ok)
	require.Equal(t, ast.SpaceList, list.Kind)
	require.Len(t, list.Items, 1)
	ident, ok := list.Items[0].(*ast.Ident)
	require.True(t, ok)
	require.Equal(t, "bar", ident.Text)
}

func TestParseVariableDeclaration(t *testing.T) {
	sheet, err := parser.Parse("@primary: #fff;")
	require.NoError(t, err)
	decl := sheet.Items[0].(*ast.Declaration)
	require.Equal(t, ast.DeclNameVariable, decl.Name.Kind)
	require.Equal(t, "primary", decl.Name.Ident)
}

func TestParseVariableCall(t *testing.T) {
	sheet, err := parser.Parse("@plugin();")
	require.NoError(t, err)
	call, ok := sheet.Items[0].(*ast.VariableCall)
	require.True(t, ok)
	require.Equal(t, "plugin", call.Name)
}

func TestParseAtRuleWithBlock(t *testing.T) {
	sheet, err := parser.Parse("@media screen { color: red; }")
	require.NoError(t, err)
	rule, ok := sheet.Items[0].(*ast.AtRule)
	require.True(t, ok)
	require.Equal(t, "media", rule.Name)
	require.True(t, rule.HasBlock)
	require.Len(t, rule.Block, 1)
}

func TestParseAtRuleWithSemicolon(t *testing.T) {
	sheet, err := parser.Parse("@import \"foo.less\";")
	require.NoError(t, err)
	rule, ok := sheet.Items[0].(*ast.AtRule)
	require.True(t, ok)
	require.Equal(t, "import", rule.Name)
	require.False(t, rule.HasBlock)
}

func TestParseQualifiedRule(t *testing.T) {
	sheet, err := parser.Parse(".box { color: red; }")
	require.NoError(t, err)
	rule, ok := sheet.Items[0].(*ast.QualifiedRule)
	require.True(t, ok)
	require.Len(t, rule.Block, 1)
	require.Nil(t, rule.Guard)
}

func TestParseQualifiedRuleWithGuard(t *testing.T) {
	sheet, err := parser.Parse(".box when (@a > 0) { color: red; }")
	require.NoError(t, err)
	rule, ok := sheet.Items[0].(*ast.QualifiedRule)
	require.True(t, ok)
	require.NotNil(t, rule.Guard)
}

func TestParseDeclarationWithDetachedRulesetValue(t *testing.T) {
	sheet, err := parser.Parse("foo: { color: red; };")
	require.NoError(t, err)
	require.Len(t, sheet.Items, 1)
	decl, ok := sheet.Items[0].(*ast.Declaration)
	require.True(t, ok)
	expr, err := parser.ParseExpression(decl.Value)
	require.NoError(t, err)
	ruleset, ok := expr.(*ast.DetachedRuleset)
	require.True(t, ok)
	require.Len(t, ruleset.Items, 1)
}

func TestParseMixinRuleDefinition(t *testing.T) {
	sheet, err := parser.Parse(".mixin(@a; @b: 2) { width: @a; }")
	require.NoError(t, err)
	rule, ok := sheet.Items[0].(*ast.MixinRule)
	require.True(t, ok)
	require.Len(t, rule.Selector.Segments, 1)
	require.Equal(t, byte('.'), byte(rule.Selector.Segments[0].Prefix))
	require.Len(t, rule.Arguments, 2)
	require.Equal(t, "a", rule.Arguments[0].Name)
	require.Equal(t, "b", rule.Arguments[1].Name)
	require.NotNil(t, rule.Arguments[1].Default)
}

func TestParseMixinRuleWithGuard(t *testing.T) {
	sheet, err := parser.Parse(".generate-classes(@n) when (@n > 0) { color: red; }")
	require.NoError(t, err)
	rule, ok := sheet.Items[0].(*ast.MixinRule)
	require.True(t, ok)
	require.NotNil(t, rule.Guard)
}

func TestParseMixinCall(t *testing.T) {
	sheet, err := parser.Parse(".mixin(1, 2);")
	require.NoError(t, err)
	call, ok := sheet.Items[0].(*ast.MixinCall)
	require.True(t, ok)
	require.Len(t, call.Arguments, 2)
	require.False(t, call.Important)
}

func TestParseMixinCallImportant(t *testing.T) {
	sheet, err := parser.Parse(".mixin() !important;")
	require.NoError(t, err)
	call, ok := sheet.Items[0].(*ast.MixinCall)
	require.True(t, ok)
	require.True(t, call.Important)
}

func TestParseMixinCallWithCombinator(t *testing.T) {
	sheet, err := parser.Parse("#ns > .mixin();")
	require.NoError(t, err)
	call, ok := sheet.Items[0].(*ast.MixinCall)
	require.True(t, ok)
	require.Len(t, call.Selector.Segments, 2)
	require.Equal(t, ast.CombinatorChild, call.Selector.Segments[1].Combinator)
}

func TestParseFunctionCallItem(t *testing.T) {
	sheet, err := parser.Parse("plugin(\"path\");")
	require.NoError(t, err)
	call, ok := sheet.Items[0].(*ast.FunctionCallItem)
	require.True(t, ok)
	require.Equal(t, "plugin", call.Name)
}

func TestParseSelectorGroup(t *testing.T) {
	sheet, err := parser.Parse("div.foo > span, #bar { color: red; }")
	require.NoError(t, err)
	rule := sheet.Items[0].(*ast.QualifiedRule)
	group, err := parser.ParseSelectorGroup(rule.Prelude)
	require.NoError(t, err)
	require.Len(t, group.Selectors, 2)
	require.Len(t, group.Selectors[0].Sequences, 2)
	require.Equal(t, ast.CombinatorChild, group.Selectors[0].Combinators[0])
}

func TestParseBooleanExpressionOperators(t *testing.T) {
	cases := []string{"@a > 1", "@a >= 1", "@a < 1", "@a <= 1", "@a = 1", "@a and @b", "@a or @b"}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			sheet, err := parser.Parse(".x when (" + src + ") { a: b; }")
			require.NoError(t, err)
			rule := sheet.Items[0].(*ast.QualifiedRule)
			require.NotNil(t, rule.Guard)
		})
	}
}

func TestParseNestedMixinDetachedRulesetArgument(t *testing.T) {
	sheet, err := parser.Parse(".mixin({ color: red; });")
	require.NoError(t, err)
	call, ok := sheet.Items[0].(*ast.MixinCall)
	require.True(t, ok)
	require.Len(t, call.Arguments, 1)
	_, isRuleset := call.Arguments[0].Value.(*ast.DetachedRuleset)
	require.True(t, isRuleset)
}

func TestParseEmptyStylesheet(t *testing.T) {
	sheet, err := parser.Parse("   \n  // just a comment\n")
	require.NoError(t, err)
	require.Empty(t, sheet.Items)
}

func TestParseUnknownItemShape(t *testing.T) {
	_, err := parser.Parse("foo bar;")
	require.Error(t, err)
	perr, ok := err.(*parseerr.Error)
	require.True(t, ok)
	require.Equal(t, parseerr.UnknownItemShape, perr.Kind)
}
