package assist

import (
	"regexp"
	"strings"
)

var (
	styleTagRe = regexp.MustCompile(`(?is)</?style[^>]*>`)
	fenceRe    = regexp.MustCompile("(?m)^```[a-zA-Z]*\\s*$")
	importRe   = regexp.MustCompile(`(?im)^\s*@import[^;]*;?\s*$`)
)

// SanitizeCSS strips everything a model tends to wrap its answer in, plus
// @import rules that would pull remote content into the embedding page.
func SanitizeCSS(raw string) string {
	css := styleTagRe.ReplaceAllString(raw, "")
	css = fenceRe.ReplaceAllString(css, "")
	css = importRe.ReplaceAllString(css, "")
	return strings.TrimSpace(css)
}
