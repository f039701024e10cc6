package utils

import "strconv"

// FormatVND renders a whole-VND amount with dot thousand separators and the
// đồng suffix, e.g. 1234567 -> "1.234.567 đ". Used for display strings carried
// on notification events.
func FormatVND(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	out := make([]byte, 0, len(digits)+len(digits)/3+4)
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	formatted := string(out) + " đ"
	if negative {
		return "-" + formatted
	}
	return formatted
}
