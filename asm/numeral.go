package asm

import "strconv"

// ParseNumeral parses a numeric literal with auto-base detection: a `0x`
// prefix selects hex, a `0b` prefix selects binary, otherwise the literal
// is parsed as signed decimal. Grounded on KTStephano-GVM/vm/parse.go's
// hand-rolled `0x` stripping plus strconv.ParseInt, generalized to also
// recognize `0b` the way Go's own integer literals do.
func ParseNumeral(tok string) (int64, error) {
	base := 10
	neg := false
	s := tok
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	switch {
	case len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X"):
		base = 16
		s = s[2:]
	case len(s) > 2 && (s[:2] == "0b" || s[:2] == "0B"):
		base = 2
		s = s[2:]
	}
	v, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, err
	}
	if neg {
		v = -v
	}
	return v, nil
}
