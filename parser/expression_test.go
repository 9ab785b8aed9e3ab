package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-less/lesscore/ast"
	"github.com/go-less/lesscore/parseerr"
	"github.com/go-less/lesscore/parser"
)

func TestParseGroupedFunctionCallArguments(t *testing.T) {
	sheet, err := parser.Parse("color: rgba(255,0,255);")
	require.NoError(t, err)
	decl := sheet.Items[0].(*ast.Declaration)
	expr, err := parser.ParseExpression(decl.Value)
	require.NoError(t, err)
	call, ok := expr.(*ast.FunctionCall)
	require.True(t, ok)
	require.Equal(t, "rgba", call.Name)

	semi, ok := call.Arguments.(*ast.ListExpr)
	require.True(t, ok)
	require.Equal(t, ast.SemicolonList, semi.Kind)
	require.Len(t, semi.Items, 1)

	comma, ok := semi.Items[0].(*ast.ListExpr)
	require.True(t, ok)
	require.Equal(t, ast.CommaList, comma.Kind)
	require.Len(t, comma.Items, 3)

	for i, want := range []float32{255, 0, 255} {
		num, ok := comma.Items[i].(*ast.Numeric)
		require.True(t, ok)
		require.Equal(t, want, num.Value)
	}
}

func TestParseVariableLookupChain(t *testing.T) {
	sheet, err := parser.Parse("color: @colors[primary][];")
	require.NoError(t, err)
	decl := sheet.Items[0].(*ast.Declaration)
	expr, err := parser.ParseExpression(decl.Value)
	require.NoError(t, err)
	lookup, ok := expr.(*ast.VariableLookup)
	require.True(t, ok)
	require.Equal(t, "colors", lookup.Name)
	require.Len(t, lookup.Lookups, 2)
	require.Equal(t, ast.LookupIdent, lookup.Lookups[0].Kind)
	require.Equal(t, "primary", lookup.Lookups[0].Name)
	require.Equal(t, ast.LookupLast, lookup.Lookups[1].Kind)
	require.Empty(t, lookup.Lookups[1].Name)
}

func TestParseInterpolatedString(t *testing.T) {
	sheet, err := parser.Parse(`content: "hello @{name}, ${prop}";`)
	require.NoError(t, err)
	decl := sheet.Items[0].(*ast.Declaration)
	expr, err := parser.ParseExpression(decl.Value)
	require.NoError(t, err)
	str, ok := expr.(*ast.InterpolatedString)
	require.True(t, ok)
	require.Len(t, str.Interpolations, 2)
	require.Len(t, str.Parts, 3)
	v, ok := str.Interpolations[0].(*ast.Variable)
	require.True(t, ok)
	require.Equal(t, "name", v.Name)
	p, ok := str.Interpolations[1].(*ast.Property)
	require.True(t, ok)
	require.Equal(t, "prop", p.Name)
}

func TestParseUnbalancedLookupError(t *testing.T) {
	sheet, err := parser.Parse("color: @colors[1];")
	require.NoError(t, err)
	decl := sheet.Items[0].(*ast.Declaration)
	_, err = parser.ParseExpression(decl.Value)
	require.Error(t, err)
	perr, ok := err.(*parseerr.Error)
	require.True(t, ok)
	require.Equal(t, parseerr.UnbalancedLookup, perr.Kind)
}

func TestParseUnterminatedInterpolationError(t *testing.T) {
	sheet, err := parser.Parse(`content: "hello @{name";`)
	require.NoError(t, err)
	decl := sheet.Items[0].(*ast.Declaration)
	_, err = parser.ParseExpression(decl.Value)
	require.Error(t, err)
	perr, ok := err.(*parseerr.Error)
	require.True(t, ok)
	require.Equal(t, parseerr.UnterminatedInterpolation, perr.Kind)
}
