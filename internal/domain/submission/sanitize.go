package submission

import (
	"strconv"
	"strings"
	"unicode"

	"formgate/internal/domain/field"
)

// sanitizeString trims whitespace and strips control characters. Newlines
// and tabs survive so textarea content keeps its shape.
func sanitizeString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Sanitize cleans raw submitted data: strings trimmed and stripped of
// control chars, arrays element-wise, everything else stringified. Returns
// a fresh map, never mutating the input.
func Sanitize(data map[string]interface{}) FormData {
	out := make(FormData, len(data))
	for k, v := range data {
		switch value := v.(type) {
		case string:
			out[k] = sanitizeString(value)
		case []interface{}:
			items := make([]string, 0, len(value))
			for _, item := range value {
				if s, ok := item.(string); ok {
					items = append(items, sanitizeString(s))
				}
			}
			out[k] = items
		case []string:
			items := make([]string, 0, len(value))
			for _, item := range value {
				items = append(items, sanitizeString(item))
			}
			out[k] = items
		case nil:
			out[k] = ""
		default:
			out[k] = sanitizeString(strings.TrimSpace(stringify(value)))
		}
	}
	return out
}

// stringify renders scalar JSON values that arrive untyped.
func stringify(v interface{}) string {
	switch value := v.(type) {
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}

// Canonicalize rewrites cosmetic formatting out of typed values so the
// stored form matches what the validators and adapters expect.
func Canonicalize(data FormData, specs []field.Spec) {
	for _, spec := range specs {
		raw, ok := data[spec.Name].(string)
		if !ok {
			continue
		}
		data[spec.Name] = field.CleanFormatting(raw, spec.Type)
	}
}
