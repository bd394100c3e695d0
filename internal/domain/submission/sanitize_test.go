package submission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"formgate/internal/domain/field"
)

func TestSanitizeTrimsAndStripsControlChars(t *testing.T) {
	out := Sanitize(map[string]interface{}{
		"nombre": "  Ana\x00 Pérez\x1b ",
		"nota":   "línea uno\nlínea dos\tfin",
	})

	assert.Equal(t, "Ana Pérez", out.StringValue("nombre"))
	// newlines and tabs survive
	assert.Equal(t, "línea uno\nlínea dos\tfin", out.StringValue("nota"))
}

func TestSanitizeArraysElementWise(t *testing.T) {
	out := Sanitize(map[string]interface{}{
		"intereses": []interface{}{" uno ", "dos\x00", "tres"},
	})

	assert.Equal(t, []string{"uno", "dos", "tres"}, out["intereses"])
	assert.Equal(t, "uno, dos, tres", out.StringValue("intereses"))
}

func TestSanitizeScalars(t *testing.T) {
	out := Sanitize(map[string]interface{}{
		"edad":    float64(35),
		"monto":   35.5,
		"activo":  true,
		"missing": nil,
	})

	assert.Equal(t, "35", out.StringValue("edad"))
	assert.Equal(t, "35.5", out.StringValue("monto"))
	assert.Equal(t, "true", out.StringValue("activo"))
	assert.Equal(t, "", out.StringValue("missing"))
}

func TestSanitizeDoesNotMutateInput(t *testing.T) {
	in := map[string]interface{}{"nombre": "  Ana "}
	_ = Sanitize(in)
	assert.Equal(t, "  Ana ", in["nombre"])
}

func TestCanonicalize(t *testing.T) {
	data := FormData{
		"rut":      "12.345.678-5",
		"telefono": "+56 9 1234-5678",
		"nombre":   "Ana  Pérez",
	}
	specs := []field.Spec{
		{Type: field.TypeRut, Name: "rut"},
		{Type: field.TypeTel, Name: "telefono"},
		{Type: field.TypeText, Name: "nombre"},
	}

	Canonicalize(data, specs)

	assert.Equal(t, "123456785", data["rut"])
	assert.Equal(t, "+56912345678", data["telefono"])
	assert.Equal(t, "Ana  Pérez", data["nombre"])
}
