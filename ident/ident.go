// Package ident implements the character predicates used to classify
// source bytes during lexing: digits, hex digits, letters, and the
// CSS-derived identifier-start / identifier-continue rules.
package ident

// IsDigit reports whether r is an ASCII digit.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsHexDigit reports whether r is an ASCII hex digit.
func IsHexDigit(r rune) bool {
	return IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// IsLetter reports whether r is an ASCII letter.
func IsLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// IsNonASCII reports whether r lies outside the ASCII range.
func IsNonASCII(r rune) bool {
	return r >= 0x80
}

// IsNameStart reports whether r may begin a name: a letter, a non-ASCII
// code point, or underscore.
func IsNameStart(r rune) bool {
	return IsLetter(r) || IsNonASCII(r) || r == '_'
}

// IsNameContinue reports whether r may continue a name once started.
func IsNameContinue(r rune) bool {
	return IsNameStart(r) || IsDigit(r) || r == '-'
}

// IsValidEscape reports whether the two-rune lookahead (c1, c2) starts a
// valid escape sequence: a backslash not immediately followed by a
// newline. c2Present is false when c1 is the last rune of the input.
func IsValidEscape(c1 rune, c2 rune, c2Present bool) bool {
	if c1 != '\\' {
		return false
	}
	if !c2Present {
		return true
	}
	return c2 != '\n'
}

// Lookahead abstracts a small forward-peeking window over the remaining
// input so WouldStartIdentifier can be shared between the lexer (which
// peeks into a string) and tests (which peek into literal rune slices).
type Lookahead interface {
	// At returns the rune at offset n past the current position (0 is the
	// current rune) and whether it exists.
	At(n int) (rune, bool)
}

// WouldStartIdentifier reports whether the lookahead window would start
// an identifier per the CSS-derived grammar:
//
//	'-' followed by name-start or '-'   -> yes
//	'-' followed by a valid escape      -> yes
//	name-start directly                 -> yes
//	'\' followed by anything but '\n'   -> yes
//	otherwise                           -> no
func WouldStartIdentifier(la Lookahead) bool {
	c0, ok := la.At(0)
	if !ok {
		return false
	}
	switch {
	case c0 == '-':
		c1, ok1 := la.At(1)
		if !ok1 {
			return false
		}
		if IsNameStart(c1) || c1 == '-' {
			return true
		}
		c2, ok2 := la.At(2)
		return IsValidEscape(c1, c2, ok2)
	case IsNameStart(c0):
		return true
	case c0 == '\\':
		c1, ok1 := la.At(1)
		return IsValidEscape(c0, c1, ok1)
	default:
		return false
	}
}
