package assist

import (
	"fmt"
	"strings"

	"formgate/internal/domain/form"
)

// knownClasses are the stylesheet hooks the renderer emits; listed so the
// model targets real selectors instead of inventing its own.
var knownClasses = []string{
	".fg-form-field", ".fg-field-label", ".fg-required-mark", ".fg-field-error",
	".fg-input", ".fg-textarea", ".fg-select",
	".fg-radio-group", ".fg-radio-label", ".fg-checkbox-group", ".fg-checkbox-label",
	".fg-rut-field", ".fg-file-input", ".fg-field-required",
}

// BuildPrompt assembles the generation prompt from the form's context and
// the admin's style request.
func BuildPrompt(f *form.FormDefinition, request string) string {
	var b strings.Builder

	b.WriteString("Eres un experto en CSS. Genera una hoja de estilos para un formulario web.\n\n")
	fmt.Fprintf(&b, "Formulario: %s\n", f.Name)

	if len(f.Fields) > 0 {
		b.WriteString("Campos:\n")
		for _, spec := range f.Fields {
			label := spec.Label
			if label == "" {
				label = spec.Name
			}
			fmt.Fprintf(&b, "- %s (%s)\n", label, spec.Type)
		}
	}

	b.WriteString("\nClases CSS disponibles:\n")
	b.WriteString(strings.Join(knownClasses, ", "))
	b.WriteString("\n")

	if f.Stylesheet != "" {
		b.WriteString("\nHoja de estilos actual (como referencia):\n")
		b.WriteString(f.Stylesheet)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nInstrucciones del usuario: %s\n\n", request)
	b.WriteString("Responde SOLO con CSS válido, sin explicaciones, sin markdown, sin etiquetas <style>.")

	return b.String()
}
