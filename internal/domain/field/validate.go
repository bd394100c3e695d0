package field

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Result is the outcome of validating one value against one Spec.
type Result struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?56[0-9]{9}$`)

	phoneCosmetic = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

var dateLayouts = []string{"2006-01-02", time.RFC3339, "02-01-2006", "2006/01/02"}

func invalid(msg string) Result { return Result{Valid: false, Error: msg} }

// Validate checks value against spec. The required check runs first; the
// literal "0" is never treated as empty. An empty optional value is valid
// and no further checks run. These semantics are mirrored verbatim by the
// client-side validator so both tiers agree.
func Validate(spec Spec, value string) Result {
	empty := value == ""

	if spec.Required && empty {
		return invalid("this field is required")
	}
	if empty {
		return Result{Valid: true}
	}

	switch spec.Type {
	case TypeEmail:
		if !emailRe.MatchString(value) {
			return invalid("invalid email format")
		}

	case TypeTel:
		if !phoneRe.MatchString(phoneCosmetic.Replace(value)) {
			return invalid("invalid phone format, expected +56912345678")
		}

	case TypeRut:
		if !ValidRut(value) {
			return invalid("invalid RUT")
		}

	case TypeNumber:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return invalid("must be a valid number")
		}
		if spec.Min != nil && n < *spec.Min {
			return invalid(fmt.Sprintf("minimum value is %v", *spec.Min))
		}
		if spec.Max != nil && n > *spec.Max {
			return invalid(fmt.Sprintf("maximum value is %v", *spec.Max))
		}

	case TypeDate:
		if !parseableDate(value) {
			return invalid("invalid date")
		}
	}

	if spec.MaxLength > 0 && len(value) > spec.MaxLength {
		return invalid(fmt.Sprintf("maximum %d characters", spec.MaxLength))
	}

	if spec.Pattern != "" {
		re, err := regexp.Compile(spec.Pattern)
		if err != nil || !re.MatchString(value) {
			return invalid("invalid format")
		}
	}

	return Result{Valid: true}
}

func parseableDate(value string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}
