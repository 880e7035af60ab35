package ordering

import "strings"

// CompareTrips orders trip labels naturally: runs of digits compare by
// value, so "2" sorts before "10" and "T2" before "T10". Other text compares
// case-insensitively, with the raw label as the final tie-break.
func CompareTrips(a, b string) int {
	x, y := a, b
	for x != "" && y != "" {
		xd, yd := isDigit(x[0]), isDigit(y[0])
		switch {
		case xd && yd:
			xn, xrest := leadingRun(x, true)
			yn, yrest := leadingRun(y, true)
			if c := compareDigits(xn, yn); c != 0 {
				return c
			}
			x, y = xrest, yrest
		case xd != yd:
			// Digits sort before text
			if xd {
				return -1
			}
			return 1
		default:
			xs, xrest := leadingRun(x, false)
			ys, yrest := leadingRun(y, false)
			if c := strings.Compare(strings.ToLower(xs), strings.ToLower(ys)); c != 0 {
				return c
			}
			x, y = xrest, yrest
		}
	}
	switch {
	case x == "" && y != "":
		return -1
	case x != "" && y == "":
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// leadingRun splits s after its leading run of digits (or non-digits).
func leadingRun(s string, digits bool) (string, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) == digits {
		i++
	}
	return s[:i], s[i:]
}

// compareDigits compares two digit runs by numeric value without overflow.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}
