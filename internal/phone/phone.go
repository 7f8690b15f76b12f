// Package phone renders free-typed input as a Brazilian mobile phone mask:
// (DD) DDDDD-DDDD.
package phone

import "strings"

// MaxDigits is the number of digits in a full mobile number:
// 2 for the area code plus 9 for the subscriber.
const MaxDigits = 11

// Digits strips every non-digit from raw and keeps at most MaxDigits.
func Digits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if b.Len() == MaxDigits {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Format applies the mask progressively, so partially typed numbers still
// render sensibly:
//
//	"1"           → "(1"
//	"11"          → "(11"
//	"11987"       → "(11) 987"
//	"11987654"    → "(11) 98765-4"
//	"11987654321" → "(11) 98765-4321"
//
// Formatting an already formatted value returns it unchanged.
func Format(raw string) string {
	d := Digits(raw)

	switch {
	case d == "":
		return ""
	case len(d) <= 2:
		return "(" + d
	case len(d) <= 7:
		return "(" + d[:2] + ") " + d[2:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
}
