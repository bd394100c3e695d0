package submission

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status is a per-destination delivery outcome.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	// StatusSkipped marks a deliberately idle slot (destination disabled or
	// no URL configured), as opposed to a never-attempted pending.
	StatusSkipped Status = "skipped"
)

// FormData holds the submitted values keyed by field name. Values are
// strings, or []string for checkbox groups. Stored as one JSON column.
type FormData map[string]interface{}

func (d FormData) Value() (driver.Value, error) {
	if d == nil {
		d = FormData{}
	}
	return json.Marshal(d)
}

func (d *FormData) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}

// StringValue flattens a field value for display and CRM delivery;
// multi-values join with ", ".
func (d FormData) StringValue(key string) string {
	switch v := d[key].(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Flatten renders every field as a string map.
func (d FormData) Flatten() map[string]string {
	out := make(map[string]string, len(d))
	for k := range d {
		out[k] = d.StringValue(k)
	}
	return out
}

// Submission is one received form response with its per-destination
// delivery outcomes.
type Submission struct {
	ID       int64    `gorm:"primaryKey" json:"-"`
	PublicID string   `gorm:"uniqueIndex;not null" json:"id"`
	FormID   int64    `gorm:"index;not null" json:"form_id"`
	FormData FormData `gorm:"type:json" json:"form_data"`

	ClickedButton string `gorm:"default:submit" json:"clicked_button"`
	UserAgent     string `json:"user_agent,omitempty"`
	IPAddress     string `json:"-"`

	WebhookPrimaryStatus     Status `gorm:"default:pending" json:"webhook_primary_status"`
	WebhookPrimaryCode       int    `json:"webhook_primary_code,omitempty"`
	WebhookPrimaryResponse   string `json:"webhook_primary_response,omitempty"`
	WebhookSecondaryStatus   Status `gorm:"default:pending" json:"webhook_secondary_status"`
	WebhookSecondaryCode     int    `json:"webhook_secondary_code,omitempty"`
	WebhookSecondaryResponse string `json:"webhook_secondary_response,omitempty"`

	ChatwootStatus         Status `gorm:"default:pending" json:"chatwoot_status"`
	ChatwootContactID      int64  `json:"chatwoot_contact_id,omitempty"`
	ChatwootConversationID int64  `json:"chatwoot_conversation_id,omitempty"`
	ChatwootResponse       string `json:"chatwoot_response,omitempty"`

	WhatsAppGenerated bool `json:"whatsapp_generated"`

	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`
}

func (Submission) TableName() string { return "submissions" }
