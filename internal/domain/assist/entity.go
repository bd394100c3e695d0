package assist

import "time"

// GenerationRecord is one entry in the append-only generation history.
type GenerationRecord struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	FormID       int64     `gorm:"index" json:"form_id"`
	Prompt       string    `json:"prompt"`
	GeneratedCSS string    `json:"generated_css"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (GenerationRecord) TableName() string { return "assist_generations" }
