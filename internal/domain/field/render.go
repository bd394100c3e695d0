package field

import (
	"fmt"
	"html"
	"strings"
)

type renderFunc func(Spec) string

// renderers maps each field type to its markup pattern.
var renderers map[Type]renderFunc

func init() {
	renderers = map[Type]renderFunc{
		TypeText:     renderInput,
		TypeEmail:    renderInput,
		TypeTel:      renderInput,
		TypeRut:      renderRut,
		TypeNumber:   renderNumber,
		TypeDate:     renderDate,
		TypeTextarea: renderTextarea,
		TypeSelect:   renderSelect,
		TypeRadio:    renderRadio,
		TypeCheckbox: renderCheckbox,
		TypeFile:     renderFile,
		TypeHidden:   renderHidden,
	}
}

// Render produces the markup for a single field. Unsupported types render
// to the empty string; callers filter with SupportedTypes beforehand.
func Render(spec Spec) string {
	fn, ok := renderers[spec.Type]
	if !ok {
		return ""
	}
	return fn(spec)
}

// Build wraps Render with the field group markup: wrapper div, label with
// required mark, the control itself, and an error message slot.
func Build(spec Spec) string {
	if !IsSupported(spec.Type) {
		return ""
	}

	wrapper := "fg-form-field fg-field-" + string(spec.Type)
	if spec.Required {
		wrapper += " fg-field-required"
	}
	if spec.Width != "" {
		wrapper += " fg-width-" + spec.Width
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="%s" data-field-name="%s">`, esc(wrapper), esc(spec.Name))

	if spec.Label != "" && spec.Type != TypeHidden {
		fmt.Fprintf(&b, `<label for="%s" class="fg-field-label">%s`, esc(fieldID(spec)), esc(spec.Label))
		if spec.Required {
			b.WriteString(` <span class="fg-required-mark">*</span>`)
		}
		b.WriteString(`</label>`)
	}

	b.WriteString(Render(spec))

	if spec.Type != TypeHidden {
		fmt.Fprintf(&b, `<span class="fg-field-error" data-field="%s"></span>`, esc(spec.Name))
	}

	b.WriteString(`</div>`)
	return b.String()
}

func esc(s string) string { return html.EscapeString(s) }

func fieldID(spec Spec) string {
	if spec.ID != "" {
		return spec.ID
	}
	return "field-" + spec.Name
}

type attrs struct {
	b strings.Builder
}

func (a *attrs) set(key, value string) {
	fmt.Fprintf(&a.b, ` %s="%s"`, key, esc(value))
}

func (a *attrs) flag(key string, on bool) {
	if on {
		a.b.WriteString(" " + key)
	}
}

func (a *attrs) String() string { return a.b.String() }

func inputAttrs(spec Spec, class string) *attrs {
	a := &attrs{}
	a.set("id", fieldID(spec))
	a.set("name", spec.Name)
	a.set("class", strings.TrimSpace(class+" "+spec.CSSClass))
	if spec.Placeholder != "" {
		a.set("placeholder", spec.Placeholder)
	}
	if spec.Value != "" {
		a.set("value", spec.Value)
	}
	a.flag("required", spec.Required)
	return a
}

func renderInput(spec Spec) string {
	a := inputAttrs(spec, "fg-input")
	if spec.MaxLength > 0 {
		a.set("maxlength", fmt.Sprint(spec.MaxLength))
	}
	if spec.Pattern != "" {
		a.set("pattern", spec.Pattern)
	}
	if spec.Type == TypeTel {
		a.set("data-format", "phone")
	}
	return fmt.Sprintf(`<input type="%s"%s />`, esc(string(spec.Type)), a)
}

func renderRut(spec Spec) string {
	if spec.Placeholder == "" {
		spec.Placeholder = "12.345.678-9"
	}
	a := inputAttrs(spec, "fg-input fg-rut-field")
	a.set("data-format", "rut")
	a.set("maxlength", "12")
	return fmt.Sprintf(`<input type="text"%s />`, a)
}

func renderNumber(spec Spec) string {
	a := inputAttrs(spec, "fg-input")
	if spec.Min != nil {
		a.set("min", fmt.Sprint(*spec.Min))
	}
	if spec.Max != nil {
		a.set("max", fmt.Sprint(*spec.Max))
	}
	if spec.Step != nil {
		a.set("step", fmt.Sprint(*spec.Step))
	}
	return fmt.Sprintf(`<input type="number"%s />`, a)
}

func renderDate(spec Spec) string {
	a := inputAttrs(spec, "fg-input")
	return fmt.Sprintf(`<input type="date"%s />`, a)
}

func renderTextarea(spec Spec) string {
	a := &attrs{}
	a.set("id", fieldID(spec))
	a.set("name", spec.Name)
	a.set("class", strings.TrimSpace("fg-textarea "+spec.CSSClass))
	if spec.Placeholder != "" {
		a.set("placeholder", spec.Placeholder)
	}
	rows := spec.Rows
	if rows == 0 {
		rows = 4
	}
	a.set("rows", fmt.Sprint(rows))
	if spec.MaxLength > 0 {
		a.set("maxlength", fmt.Sprint(spec.MaxLength))
	}
	a.flag("required", spec.Required)
	return fmt.Sprintf(`<textarea%s>%s</textarea>`, a, esc(spec.Value))
}

func renderSelect(spec Spec) string {
	a := &attrs{}
	a.set("id", fieldID(spec))
	a.set("name", spec.Name)
	a.set("class", strings.TrimSpace("fg-select "+spec.CSSClass))
	a.flag("required", spec.Required)

	var b strings.Builder
	fmt.Fprintf(&b, `<select%s>`, a)
	if spec.Placeholder != "" {
		fmt.Fprintf(&b, `<option value="">%s</option>`, esc(spec.Placeholder))
	}
	for _, opt := range spec.Options {
		selected := ""
		if spec.Value != "" && spec.Value == opt.Value {
			selected = " selected"
		}
		fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`, esc(opt.Value), selected, esc(opt.Label))
	}
	b.WriteString(`</select>`)
	return b.String()
}

func renderRadio(spec Spec) string {
	var b strings.Builder
	b.WriteString(`<div class="fg-radio-group">`)
	for i, opt := range spec.Options {
		checked := ""
		if spec.Value != "" && spec.Value == opt.Value {
			checked = " checked"
		}
		b.WriteString(`<label class="fg-radio-label">`)
		fmt.Fprintf(&b,
			`<input type="radio" id="%s_%d" name="%s" value="%s" class="%s"%s%s />`,
			esc(fieldID(spec)), i, esc(spec.Name), esc(opt.Value),
			esc(strings.TrimSpace("fg-radio "+spec.CSSClass)),
			requiredFlag(spec.Required), checked)
		fmt.Fprintf(&b, `<span class="fg-radio-text">%s</span></label>`, esc(opt.Label))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func renderCheckbox(spec Spec) string {
	var b strings.Builder
	b.WriteString(`<div class="fg-checkbox-group">`)
	for i, opt := range spec.Options {
		b.WriteString(`<label class="fg-checkbox-label">`)
		// checkbox groups submit as name[] so multiple values survive
		fmt.Fprintf(&b,
			`<input type="checkbox" id="%s_%d" name="%s[]" value="%s" class="%s" />`,
			esc(fieldID(spec)), i, esc(spec.Name), esc(opt.Value),
			esc(strings.TrimSpace("fg-checkbox "+spec.CSSClass)))
		fmt.Fprintf(&b, `<span class="fg-checkbox-text">%s</span></label>`, esc(opt.Label))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func renderFile(spec Spec) string {
	a := &attrs{}
	a.set("id", fieldID(spec))
	a.set("name", spec.Name)
	a.set("class", strings.TrimSpace("fg-input fg-file-input "+spec.CSSClass))
	a.flag("required", spec.Required)
	if spec.Accept != "" {
		a.set("accept", spec.Accept)
	}
	a.flag("multiple", spec.Multiple)

	out := fmt.Sprintf(`<input type="file"%s />`, a)
	if spec.Accept != "" {
		out += fmt.Sprintf(`<small class="fg-file-info">%s</small>`, esc(spec.Accept))
	}
	return out
}

func renderHidden(spec Spec) string {
	a := &attrs{}
	a.set("id", fieldID(spec))
	a.set("name", spec.Name)
	if spec.Value != "" {
		a.set("value", spec.Value)
	}
	return fmt.Sprintf(`<input type="hidden"%s />`, a)
}

func requiredFlag(required bool) string {
	if required {
		return " required"
	}
	return ""
}
