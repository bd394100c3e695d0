package field

import (
	"regexp"
	"strings"
)

var rutStrip = regexp.MustCompile(`[^0-9kK]`)

// ValidRut checks a Chilean RUT against its modulo-11 check digit.
// Cosmetic characters (dots, dashes, spaces) are ignored.
func ValidRut(raw string) bool {
	rut := rutStrip.ReplaceAllString(raw, "")
	if len(rut) < 2 {
		return false
	}

	body := rut[:len(rut)-1]
	check := strings.ToUpper(rut[len(rut)-1:])

	return rutCheckDigit(body) == check
}

// rutCheckDigit computes the modulo-11 check digit for a RUT body.
// Returns "" if the body contains non-digits.
func rutCheckDigit(body string) string {
	sum := 0
	mult := 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return ""
		}
		sum += mult * int(c-'0')
		if mult < 7 {
			mult++
		} else {
			mult = 2
		}
	}

	switch rem := 11 - (sum % 11); rem {
	case 11:
		return "0"
	case 10:
		return "K"
	default:
		return string(rune('0' + rem))
	}
}
