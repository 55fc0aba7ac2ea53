package parser

// ParseTemp converts a temperature token to a scaled integer (value x 10).
//
// The token is assumed to match -?\d{1,2}\.\d. A '-' anywhere sets the sign,
// digits accumulate and every other byte is ignored, so the decimal point needs
// no special handling. Tokens outside the format yield an unspecified result.
func ParseTemp(b []byte) int64 {
	var r int64
	neg := false
	for _, c := range b {
		switch {
		case c == '-':
			neg = true
		case c >= '0' && c <= '9':
			r = r*10 + int64(c-'0')
		}
	}
	if neg {
		return -r
	}

	return r
}

// ParseTempStrict is ParseTemp restricted to tokens matching -?\d{1,2}\.\d.
// It reports false for anything else.
func ParseTempStrict(b []byte) (int64, bool) {
	neg := false
	if len(b) > 0 && b[0] == '-' {
		neg = true
		b = b[1:]
	}

	var r int64
	switch len(b) {
	case 3: // d.d
		if !isDigit(b[0]) || b[1] != '.' || !isDigit(b[2]) {
			return 0, false
		}
		r = int64(b[0]-'0')*10 + int64(b[2]-'0')
	case 4: // dd.d
		if !isDigit(b[0]) || !isDigit(b[1]) || b[2] != '.' || !isDigit(b[3]) {
			return 0, false
		}
		r = int64(b[0]-'0')*100 + int64(b[1]-'0')*10 + int64(b[3]-'0')
	default:
		return 0, false
	}

	if neg {
		return -r, true
	}

	return r, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
