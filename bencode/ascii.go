package bencode

// Byte-scanning helpers for the decoder. Bencode's frame characters
// are all ASCII, so classification is plain byte comparison with no
// text-encoding interpretation of the payload bytes around them.

// isDigit reports whether c is an ASCII decimal digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// scanDigits returns the index of the first byte at or after off that
// is not an ASCII digit, or len(data) if the digits run to the end.
func scanDigits(data []byte, off int) int {
	for off < len(data) && isDigit(data[off]) {
		off++
	}
	return off
}

// validIntLiteral reports whether s matches 0|-?[1-9][0-9]*: zero, or
// an optional minus followed by a nonzero leading digit. This rejects
// "", "-", "-0", leading zeros, and any non-digit.
func validIntLiteral(s []byte) bool {
	if len(s) == 0 {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
		if len(s) == 0 || s[0] == '0' {
			return false
		}
	} else if s[0] == '0' && len(s) > 1 {
		return false
	}
	for _, c := range s {
		if !isDigit(c) {
			return false
		}
	}
	return true
}
