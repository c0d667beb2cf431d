package utils

import (
	"strings"
	"unicode"
)

// NumberHelper cleans numeric text before parsing.
type NumberHelper struct {
	currency string
}

// NewNumberHelper creates a helper that strips the usual currency marks.
func NewNumberHelper() *NumberHelper {
	return &NumberHelper{currency: "₹$€£¥"}
}

// Clean strips surrounding spaces, currency marks, thousands separators and a
// trailing "%" so that "₹1,250.00 " becomes "1250.00". It does not validate.
func (n *NumberHelper) Clean(str string) string {
	str = strings.TrimSpace(str)
	str = strings.TrimSuffix(str, "%")
	str = strings.TrimLeftFunc(str, func(r rune) bool {
		return strings.ContainsRune(n.currency, r) || unicode.IsSpace(r)
	})

	upper := strings.ToUpper(str)
	for _, code := range []string{"INR", "USD", "RS.", "RS"} {
		if strings.HasPrefix(upper, code) {
			str = strings.TrimSpace(str[len(code):])
			break
		}
	}

	str = strings.ReplaceAll(str, ",", "")
	str = strings.ReplaceAll(str, "_", "")

	return strings.TrimSpace(str)
}

// Group inserts thousands separators into plain numeric text, so that
// "-1590.50" becomes "-1,590.50".
func (n *NumberHelper) Group(str string) string {
	sign := ""
	if strings.HasPrefix(str, "-") {
		sign, str = "-", str[1:]
	}

	intPart, frac, hasFrac := strings.Cut(str, ".")
	if len(intPart) <= 3 {
		return sign + str
	}

	var sb strings.Builder

	lead := len(intPart) % 3
	if lead > 0 {
		sb.WriteString(intPart[:lead])
	}

	for i := lead; i < len(intPart); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(intPart[i : i+3])
	}

	if hasFrac {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}

	return sign + sb.String()
}
