package submission

// SubmitRequest is the public intake payload.
type SubmitRequest struct {
	FormID        int64                  `json:"form_id" validate:"required"`
	FormData      map[string]interface{} `json:"form_data" validate:"required"`
	ClickedButton string                 `json:"clicked_button"`
	UserAgent     string                 `json:"user_agent"`
}

// IntakeResult is what the submitter gets back: never delivery outcomes,
// only an id, the configured message and the WhatsApp link when enabled.
type IntakeResult struct {
	SubmissionID string `json:"submission_id"`
	Message      string `json:"message,omitempty"`
	WhatsAppLink string `json:"whatsapp_link,omitempty"`
}

// ListResponse is the paginated admin list.
type ListResponse struct {
	Submissions []Submission `json:"submissions"`
	Total       int64        `json:"total"`
}

// BulkDeleteRequest names the submissions to remove.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// TestWebhookRequest fires a sample payload at one configured slot.
type TestWebhookRequest struct {
	Slot string `json:"slot"` // primary (default) or secondary
}
