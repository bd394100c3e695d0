package whatsapp

import (
	"net/url"
	"regexp"
	"strings"
)

// Config controls link generation. Number is the destination in
// international digits ("56912345678"); Template is the prefilled message
// with {field} placeholders resolved from the submission.
type Config struct {
	Enabled  bool
	Number   string
	Template string
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

// placeholder matches {field_name} tokens in the message template.
var placeholder = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// BuildLink returns a wa.me deep link with the rendered message, or ""
// when the config is disabled or incomplete.
func BuildLink(cfg Config, data map[string]string) string {
	if !cfg.Enabled || cfg.Number == "" || cfg.Template == "" {
		return ""
	}

	number := nonDigits.ReplaceAllString(cfg.Number, "")
	if number == "" {
		return ""
	}

	message := RenderTemplate(cfg.Template, data)
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}

// RenderTemplate substitutes {field} tokens with submission values. Tokens
// with no matching field stay literal so a typo in the template is visible
// instead of silently vanishing.
func RenderTemplate(template string, data map[string]string) string {
	return placeholder.ReplaceAllStringFunc(template, func(token string) string {
		key := strings.Trim(token, "{}")
		if v, ok := data[key]; ok {
			return v
		}
		return token
	})
}
