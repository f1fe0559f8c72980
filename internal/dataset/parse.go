package dataset

import (
	"strconv"
	"strings"
)

// ParseValue types a raw cell: blank is missing, anything that reads as a
// number (either decimal convention, optional thousands separators and
// trailing %) is numeric, everything else is text. The raw string is kept.
func ParseValue(raw string) Value {
	if strings.TrimSpace(raw) == "" {
		return NullValue()
	}
	if f, ok := parseNumeric(raw); ok {
		return Value{Kind: Number, Text: raw, Num: f}
	}
	return Value{Kind: Text, Text: raw}
}

func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimSuffix(raw, "%")
	raw = strings.ReplaceAll(raw, "\u00a0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	// Only digits, sign, separators and exponent may appear; this keeps labels
	// like "2019-2020" or "2019/2020" as text.
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == ' ':
		case (r == '-' || r == '+') && (i == 0 || raw[i-1] == 'e' || raw[i-1] == 'E'):
		case r == 'e' || r == 'E':
		default:
			return 0, false
		}
	}
	var dec, thou rune
	cpos := strings.LastIndex(raw, ",")
	dpos := strings.LastIndex(raw, ".")
	switch {
	case cpos >= 0 && dpos >= 0:
		if cpos > dpos {
			dec, thou = ',', '.'
		} else {
			dec, thou = '.', ','
		}
	case cpos >= 0:
		dec = ','
	default:
		dec = '.'
	}
	if thou != 0 {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	raw = strings.ReplaceAll(raw, " ", "")
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
