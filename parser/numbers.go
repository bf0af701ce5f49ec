package parser

import "strconv"

// ParseNumber converts a lexer-canonicalised numeric literal ("0xFF",
// "123", "1010b") into its value. The bool result is false only when text
// is not a well-formed literal in one of those three forms; callers must
// not fall back to treating a failed parse as zero (Open Question 5):
// an operand that looks like a number but fails to parse is a malformed
// literal, not an implicit zero, and should be reported as an error.
func ParseNumber(text string) (uint32, bool) {
	if text == "" {
		return 0, false
	}
	if len(text) > 2 && (text[0:2] == "0x" || text[0:2] == "0X") {
		v, err := strconv.ParseUint(text[2:], 16, 32)
		if err != nil {
			return 0, false
		}
		return uint32(v), true
	}
	if last := text[len(text)-1]; last == 'b' || last == 'B' {
		digits := text[:len(text)-1]
		if digits == "" {
			return 0, false
		}
		v, err := strconv.ParseUint(digits, 2, 32)
		if err != nil {
			return 0, false
		}
		return uint32(v), true
	}
	v, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}
