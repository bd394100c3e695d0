package field

import (
	"regexp"
	"strings"
)

// Server-side mirrors of the client formatters. Both sides must agree so
// a value formatted in the browser round-trips through CleanFormatting to
// the same canonical form the validators see.

var (
	phoneStrip  = regexp.MustCompile(`[^0-9+]`)
	numberStrip = regexp.MustCompile(`[^0-9.\-]`)
)

// FormatRut renders a RUT as 12.345.678-9. Idempotent: formatting an
// already-formatted value yields the same string.
func FormatRut(raw string) string {
	rut := rutStrip.ReplaceAllString(raw, "")
	if len(rut) > 9 {
		rut = rut[:9]
	}
	if len(rut) < 2 {
		return rut
	}

	check := strings.ToUpper(rut[len(rut)-1:])
	body := rut[:len(rut)-1]

	return groupThousands(body) + "-" + check
}

// FormatPhone renders a Chilean phone number as +56XXXXXXXXX, inserting
// the country code when the input looks like a bare mobile number.
func FormatPhone(raw string) string {
	v := phoneStrip.ReplaceAllString(raw, "")

	if !strings.HasPrefix(v, "+56") {
		switch {
		case strings.HasPrefix(v, "56"):
			v = "+" + v
		case strings.HasPrefix(v, "9") && len(v) == 9:
			v = "+56" + v
		case v != "" && !strings.HasPrefix(v, "+"):
			v = "+56" + v
		}
	}

	// +56 plus nine digits
	if len(v) > 12 {
		v = v[:12]
	}
	return v
}

// CleanFormatting strips cosmetic separators so the canonical value is
// submitted and stored. The inverse of the Format helpers.
func CleanFormatting(value string, t Type) string {
	switch t {
	case TypeRut:
		return rutStrip.ReplaceAllString(value, "")
	case TypeTel:
		return phoneCosmetic.Replace(value)
	case TypeNumber:
		return numberStrip.ReplaceAllString(value, "")
	default:
		return value
	}
}

func groupThousands(digits string) string {
	var b strings.Builder
	n := len(digits)
	for i, c := range digits {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return b.String()
}
