package form

import (
	"database/sql/driver"
	"encoding/json"
)

// Webhook delivery modes. Test mode targets the staging endpoints so a form
// can be exercised without hitting the production destination.
const (
	ModeProduction = "production"
	ModeTest       = "test"
)

type Messages struct {
	SubmitButton string `json:"submit_button"`
	Success      string `json:"success"`
	Error        string `json:"error"`
}

type WebhookSettings struct {
	Enabled        bool   `json:"enabled"`
	Mode           string `json:"mode"`
	PrimaryProd    string `json:"primary_production"`
	SecondaryProd  string `json:"secondary_production"`
	PrimaryTest    string `json:"primary_test"`
	SecondaryTest  string `json:"secondary_test"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// ActiveURLs resolves the mode to the URL pair the dispatcher should hit.
func (w WebhookSettings) ActiveURLs() (primary, secondary string) {
	if w.Mode == ModeTest {
		return w.PrimaryTest, w.SecondaryTest
	}
	return w.PrimaryProd, w.SecondaryProd
}

type ChatwootSettings struct {
	Enabled            bool   `json:"enabled"`
	BaseURL            string `json:"base_url"`
	APIToken           string `json:"api_token"`
	AccountID          string `json:"account_id"`
	InboxID            string `json:"inbox_id"`
	CreateConversation bool   `json:"create_conversation"`
}

type WhatsAppSettings struct {
	Enabled         bool   `json:"enabled"`
	Number          string `json:"number" validate:"omitempty,clphone"`
	MessageTemplate string `json:"message_template"`
}

type SecuritySettings struct {
	Honeypot bool `json:"honeypot"`
}

// Settings is the single schema both the save path and the dispatch path
// read. Stored as one JSON column; absent keys pick up defaults on scan.
type Settings struct {
	Messages Messages         `json:"messages"`
	Webhooks WebhookSettings  `json:"webhooks"`
	Chatwoot ChatwootSettings `json:"chatwoot"`
	WhatsApp WhatsAppSettings `json:"whatsapp"`
	Security SecuritySettings `json:"security"`
}

func DefaultSettings() Settings {
	return Settings{
		Messages: Messages{
			SubmitButton: "Enviar",
			Success:      "¡Gracias! Hemos recibido tu información.",
			Error:        "Ocurrió un error. Por favor intenta nuevamente.",
		},
		Webhooks: WebhookSettings{
			Mode:           ModeProduction,
			TimeoutSeconds: 15,
		},
		Chatwoot: ChatwootSettings{
			CreateConversation: true,
		},
		Security: SecuritySettings{
			Honeypot: true,
		},
	}
}

// Normalize backfills the invariants defaults guarantee, for settings that
// arrived through the API rather than the scanner.
func (s *Settings) Normalize() {
	def := DefaultSettings()
	if s.Webhooks.Mode != ModeTest && s.Webhooks.Mode != ModeProduction {
		s.Webhooks.Mode = ModeProduction
	}
	if s.Webhooks.TimeoutSeconds <= 0 {
		s.Webhooks.TimeoutSeconds = def.Webhooks.TimeoutSeconds
	}
	if s.Messages.SubmitButton == "" {
		s.Messages.SubmitButton = def.Messages.SubmitButton
	}
	if s.Messages.Success == "" {
		s.Messages.Success = def.Messages.Success
	}
	if s.Messages.Error == "" {
		s.Messages.Error = def.Messages.Error
	}
}

func (s Settings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Settings) Scan(src interface{}) error {
	// start from defaults so columns written by older versions keep sane values
	*s = DefaultSettings()
	if err := scanJSON(src, s); err != nil {
		return err
	}
	s.Normalize()
	return nil
}
