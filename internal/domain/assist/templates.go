package assist

// PromptTemplate is a canned style request admins can start from.
type PromptTemplate struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

// Templates returns the built-in style presets.
func Templates() []PromptTemplate {
	return []PromptTemplate{
		{
			ID:   "corporate",
			Name: "Corporativo",
			Prompt: "Estilo corporativo profesional: paleta azul marino y gris, " +
				"bordes sutiles, tipografía sobria, botones rectangulares con esquinas levemente redondeadas.",
		},
		{
			ID:   "minimal",
			Name: "Minimalista",
			Prompt: "Estilo minimalista: mucho espacio en blanco, líneas finas, " +
				"sin sombras, tipografía liviana, solo un color de acento.",
		},
		{
			ID:   "modern",
			Name: "Moderno",
			Prompt: "Estilo moderno: gradientes suaves, esquinas redondeadas generosas, " +
				"sombras difusas, transiciones al enfocar los campos.",
		},
		{
			ID:   "dark",
			Name: "Oscuro",
			Prompt: "Tema oscuro: fondo gris muy oscuro, texto claro, campos con fondo " +
				"levemente más claro que el contenedor, acento de color vibrante.",
		},
	}
}
