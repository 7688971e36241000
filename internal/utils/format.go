package utils

import "strconv"

// FormatIDR renders an integer rupiah amount with dot thousand
// separators, e.g. 50500 -> "50.500". IDR has no decimals.
func FormatIDR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	n := len(s)
	if n > 3 {
		var b []byte
		first := n % 3
		if first > 0 {
			b = append(b, s[:first]...)
		}
		for i := first; i < n; i += 3 {
			if len(b) > 0 {
				b = append(b, '.')
			}
			b = append(b, s[i:i+3]...)
		}
		s = string(b)
	}

	if neg {
		return "-" + s
	}
	return s
}
