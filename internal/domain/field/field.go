package field

// Type identifies one of the supported input kinds.
type Type string

const (
	TypeText     Type = "text"
	TypeEmail    Type = "email"
	TypeTel      Type = "tel"
	TypeRut      Type = "rut"
	TypeTextarea Type = "textarea"
	TypeSelect   Type = "select"
	TypeRadio    Type = "radio"
	TypeCheckbox Type = "checkbox"
	TypeNumber   Type = "number"
	TypeDate     Type = "date"
	TypeFile     Type = "file"
	TypeHidden   Type = "hidden"
)

// Option is one entry of a choice field (select, radio, checkbox).
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Spec describes a single form field. Name is the key used in submitted
// data and must be unique within a form.
type Spec struct {
	ID          string   `json:"id,omitempty"`
	Type        Type     `json:"type"`
	Name        string   `json:"name"`
	Label       string   `json:"label,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required,omitempty"`
	Options     []Option `json:"options,omitempty"`
	CSSClass    string   `json:"css_class,omitempty"`
	Value       string   `json:"value,omitempty"`

	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Step *float64 `json:"step,omitempty"`

	MaxLength int    `json:"max_length,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	Rows     int    `json:"rows,omitempty"`
	Width    string `json:"width,omitempty"`
	Accept   string `json:"accept,omitempty"`
	Multiple bool   `json:"multiple,omitempty"`
}

// IsChoice reports whether the field carries an options list.
func (s Spec) IsChoice() bool {
	switch s.Type {
	case TypeSelect, TypeRadio, TypeCheckbox:
		return true
	}
	return false
}

// SupportedTypes returns the type tags the engine can render and validate,
// in a stable order.
func SupportedTypes() []Type {
	return []Type{
		TypeText, TypeEmail, TypeTel, TypeRut,
		TypeTextarea, TypeSelect, TypeRadio, TypeCheckbox,
		TypeNumber, TypeDate, TypeFile, TypeHidden,
	}
}

// IsSupported reports whether t is a known field type.
func IsSupported(t Type) bool {
	_, ok := renderers[t]
	return ok
}
