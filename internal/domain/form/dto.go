package form

import "formgate/internal/domain/field"

// CreateFormRequest creates a form. Slug is derived from the name when
// omitted.
type CreateFormRequest struct {
	Name        string       `json:"name" validate:"required"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Fields      []field.Spec `json:"fields"`
	Stylesheet  string       `json:"stylesheet"`
	Settings    *Settings    `json:"settings"`
	Active      *bool        `json:"active"`
}

// UpdateFormRequest patches a form; nil fields stay untouched.
type UpdateFormRequest struct {
	Name        *string       `json:"name"`
	Slug        *string       `json:"slug"`
	Description *string       `json:"description"`
	Fields      *[]field.Spec `json:"fields"`
	Stylesheet  *string       `json:"stylesheet"`
	Settings    *Settings     `json:"settings"`
	Active      *bool         `json:"active"`
}

// FormResponse is a FormDefinition with its derived shortcode attached.
type FormResponse struct {
	FormDefinition
	Shortcode string `json:"shortcode"`
}

func NewFormResponse(f *FormDefinition) FormResponse {
	return FormResponse{FormDefinition: *f, Shortcode: f.Shortcode()}
}

// FormListResponse is a paginated list.
type FormListResponse struct {
	Forms []FormResponse `json:"forms"`
	Total int64          `json:"total"`
}

// ClientSettings is the settings subset safe to expose on the public render
// endpoint. Tokens and destination URLs never leave the server.
type ClientSettings struct {
	Messages        Messages `json:"messages"`
	WhatsAppEnabled bool     `json:"whatsapp_enabled"`
	Honeypot        bool     `json:"honeypot"`
}

// RenderResult is the public render payload.
type RenderResult struct {
	Available  bool            `json:"available"`
	Message    string          `json:"message,omitempty"`
	FormID     int64           `json:"form_id,omitempty"`
	Name       string          `json:"name,omitempty"`
	Slug       string          `json:"slug,omitempty"`
	Stylesheet string          `json:"stylesheet,omitempty"`
	HTML       string          `json:"html,omitempty"`
	Settings   *ClientSettings `json:"settings,omitempty"`
}
