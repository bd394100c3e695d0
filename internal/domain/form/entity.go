package form

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"formgate/internal/domain/field"
)

// FieldList is the ordered field schema of a form, stored as one JSON column.
type FieldList []field.Spec

func (l FieldList) Value() (driver.Value, error) {
	if l == nil {
		l = FieldList{}
	}
	return json.Marshal(l)
}

func (l *FieldList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// FormDefinition is a configured form: its field schema, presentation and
// delivery settings.
type FormDefinition struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `json:"description,omitempty"`
	Fields      FieldList `gorm:"type:json" json:"fields"`
	Stylesheet  string    `json:"stylesheet,omitempty"`
	Settings    Settings  `gorm:"type:json" json:"settings"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FormDefinition) TableName() string { return "forms" }

// Shortcode is the embed tag site builders paste to place the form.
func (f *FormDefinition) Shortcode() string {
	return fmt.Sprintf(`[formgate id="%s"]`, f.Slug)
}

// FieldByName finds a field spec in the schema.
func (f *FormDefinition) FieldByName(name string) (field.Spec, bool) {
	for _, spec := range f.Fields {
		if spec.Name == name {
			return spec, true
		}
	}
	return field.Spec{}, false
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}
