package ident_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-less/lesscore/ident"
)

type runeLookahead []rune

func (rl runeLookahead) At(n int) (rune, bool) {
	if n < 0 || n >= len(rl) {
		return 0, false
	}
	return rl[n], true
}

func TestWouldStartIdentifier(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected bool
	}{
		{"empty", "", false},
		{"letter", "foo", true},
		{"underscore", "_foo", true},
		{"non-ascii", "école", true},
		{"dash-letter", "-foo", true},
		{"dash-dash", "--foo", true},
		{"dash-digit", "-5px", false},
		{"digit", "5px", false},
		{"backslash-char", "\\x", true},
		{"backslash-newline", "\\\n", false},
		{"at-sign", "@foo", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, ident.WouldStartIdentifier(runeLookahead([]rune(tc.input))))
		})
	}
}

func TestNamePredicates(t *testing.T) {
	require.True(t, ident.IsNameStart('a'))
	require.True(t, ident.IsNameStart('_'))
	require.True(t, ident.IsNameStart('é'))
	require.False(t, ident.IsNameStart('5'))
	require.False(t, ident.IsNameStart('-'))

	require.True(t, ident.IsNameContinue('-'))
	require.True(t, ident.IsNameContinue('5'))
	require.False(t, ident.IsNameContinue(' '))

	require.True(t, ident.IsHexDigit('f'))
	require.True(t, ident.IsHexDigit('F'))
	require.False(t, ident.IsHexDigit('g'))
}
