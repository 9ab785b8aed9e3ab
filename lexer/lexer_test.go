package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-less/lesscore/lexer"
	"github.com/go-less/lesscore/parseerr"
	"github.com/go-less/lesscore/token"
)

func kinds(tts []token.TokenTree) []token.Kind {
	out := make([]token.Kind, len(tts))
	for i, tt := range tts {
		out[i] = tt.Kind
	}
	return out
}

func TestLexKinds(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected []token.Kind
	}{
		{"empty", "", nil},
		{
			"declaration",
			"color: red;",
			[]token.Kind{token.Ident, token.Symbol, token.Whitespace, token.Ident, token.Symbol},
		},
		{
			"variable",
			"@primary: #fff;",
			[]token.Kind{token.Symbol, token.Ident, token.Symbol, token.Whitespace, token.Hash, token.Symbol},
		},
		{
			"line comment",
			"// hi\n@x;",
			[]token.Kind{token.Comment, token.Whitespace, token.Symbol, token.Ident, token.Symbol},
		},
		{
			"block comment",
			"/* hi */a",
			[]token.Kind{token.Comment, token.Ident},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tts, err := lexer.Lex(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.expected, kinds(tts))
		})
	}
}

func TestLexTokenTreeGrouping(t *testing.T) {
	tts, err := lexer.Lex("foo(bar)")
	require.NoError(t, err)
	require.Len(t, tts, 2)
	require.Equal(t, token.Ident, tts[0].Kind)
	require.Equal(t, token.Tree, tts[1].Kind)
	require.Equal(t, token.Paren, tts[1].Delim)
	require.Len(t, tts[1].Children, 1)
	require.Equal(t, "bar", tts[1].Children[0].Text)
	require.Equal(t, token.Span{Start: 3, End: 8}, tts[1].Span)
}

func TestLexNestedTrees(t *testing.T) {
	tts, err := lexer.Lex("a { b: [c]; }")
	require.NoError(t, err)
	var brace *token.TokenTree
	for i := range tts {
		if tts[i].Kind == token.Tree && tts[i].Delim == token.Brace {
			brace = &tts[i]
		}
	}
	require.NotNil(t, brace)
	var bracket *token.TokenTree
	for i := range brace.Children {
		if brace.Children[i].Kind == token.Tree && brace.Children[i].Delim == token.Bracket {
			bracket = &brace.Children[i]
		}
	}
	require.NotNil(t, bracket)
	require.Equal(t, "c", bracket.Children[0].Text)
}

func TestLexNumbers(t *testing.T) {
	cases := []struct {
		input    string
		expected float32
	}{
		{"5", 5},
		{"-5", -5},
		{"+5", 5},
		{"5.5", 5.5},
		{".5", 0.5},
		{"1e2", 100},
		{"1.5e-2", 0.015},
		{"0", 0},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			tts, err := lexer.Lex(tc.input)
			require.NoError(t, err)
			require.Len(t, tts, 1)
			require.Equal(t, token.Number, tts[0].Kind)
			require.InDelta(t, tc.expected, tts[0].Num, 0.0001)
		})
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		kind  string
	}{
		{"unterminated string", `"abc`, "unterminated_string"},
		{"unmatched open", "(abc", "unmatched_open_delimiter"},
		{"stray close", "abc)", "stray_close_delimiter"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := lexer.Lex(tc.input)
			require.Error(t, err)
			perr, ok := err.(*parseerr.Error)
			require.True(t, ok)
			require.Equal(t, tc.kind, string(perr.Kind))
		})
	}
}

func TestLexIdentifierEdgeCases(t *testing.T) {
	tts, err := lexer.Lex("-foo --bar")
	require.NoError(t, err)
	require.Equal(t, "-foo", tts[0].Text)
	require.Equal(t, "--bar", tts[2].Text)
}

func TestLexHashRequiresNameContinue(t *testing.T) {
	tts, err := lexer.Lex("#fff #")
	require.NoError(t, err)
	require.Equal(t, token.Hash, tts[0].Kind)
	require.Equal(t, "fff", tts[0].Text)
	require.Equal(t, token.Symbol, tts[2].Kind)
	require.Equal(t, '#', tts[2].Ch)
}
