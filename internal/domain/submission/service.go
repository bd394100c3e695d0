package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"formgate/internal/adapter/chatwoot"
	"formgate/internal/adapter/webhook"
	"formgate/internal/adapter/whatsapp"
	"formgate/internal/domain/field"
	"formgate/internal/domain/form"
)

// HoneypotField is the hidden trap field bots fill in.
const HoneypotField = "website"

// FormProvider resolves the form a submission targets.
type FormProvider interface {
	GetByID(ctx context.Context, id int64) (*form.FormDefinition, error)
}

// Service handles submission intake and admin access.
type Service struct {
	repo       *Repository
	forms      FormProvider
	dispatcher *Dispatcher
	logger     *zap.Logger
}

func NewService(repo *Repository, forms FormProvider, dispatcher *Dispatcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, forms: forms, dispatcher: dispatcher, logger: logger}
}

// Intake validates, stores and fans out one submission. Honeypot hits are
// answered as if accepted, with a synthetic id and nothing persisted.
func (s *Service) Intake(ctx context.Context, req *SubmitRequest, ip string) (*IntakeResult, error) {
	f, err := s.forms.GetByID(ctx, req.FormID)
	if err != nil {
		return nil, err
	}
	if !f.Active {
		return nil, form.ErrFormNotAvailable
	}
	if len(req.FormData) == 0 {
		return nil, ErrEmptyData
	}

	data := Sanitize(req.FormData)

	if f.Settings.Security.Honeypot {
		if data.StringValue(HoneypotField) != "" {
			s.logger.Info("honeypot triggered",
				zap.Int64("form_id", f.ID), zap.String("ip", ip))
			return &IntakeResult{
				SubmissionID: uuid.NewString(),
				Message:      f.Settings.Messages.Success,
			}, nil
		}
		delete(data, HoneypotField)
	}

	Canonicalize(data, f.Fields)

	for _, spec := range f.Fields {
		if res := field.Validate(spec, data.StringValue(spec.Name)); !res.Valid {
			return nil, &ValidationError{Field: spec.Name, Message: res.Error}
		}
	}

	clicked := req.ClickedButton
	if clicked == "" {
		clicked = "submit"
	}

	sub := &Submission{
		PublicID:      uuid.NewString(),
		FormID:        f.ID,
		FormData:      data,
		ClickedButton: clicked,
		UserAgent:     req.UserAgent,
		IPAddress:     ip,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, sub, f.Settings)

	link := whatsapp.BuildLink(whatsappConfig(f.Settings), data.Flatten())
	sub.WhatsAppGenerated = link != ""

	if err := s.repo.UpdateOutcomes(ctx, sub); err != nil {
		// outcomes are best-effort telemetry, the submission itself is stored
		s.logger.Error("failed to persist delivery outcomes",
			zap.String("submission", sub.PublicID), zap.Error(err))
	}

	return &IntakeResult{
		SubmissionID: sub.PublicID,
		Message:      f.Settings.Messages.Success,
		WhatsAppLink: link,
	}, nil
}

func (s *Service) List(ctx context.Context, formID int64, limit, offset int) ([]Submission, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, formID, limit, offset)
}

func (s *Service) Get(ctx context.Context, publicID string) (*Submission, error) {
	return s.repo.GetByPublicID(ctx, publicID)
}

func (s *Service) Delete(ctx context.Context, publicID string) error {
	return s.repo.Delete(ctx, publicID)
}

func (s *Service) BulkDelete(ctx context.Context, publicIDs []string) (int64, error) {
	return s.repo.DeleteBatch(ctx, publicIDs)
}

// WhatsAppLink rebuilds the deep link for a stored submission.
func (s *Service) WhatsAppLink(ctx context.Context, publicID string) (string, error) {
	sub, err := s.repo.GetByPublicID(ctx, publicID)
	if err != nil {
		return "", err
	}
	f, err := s.forms.GetByID(ctx, sub.FormID)
	if err != nil {
		return "", err
	}
	return whatsapp.BuildLink(whatsappConfig(f.Settings), sub.FormData.Flatten()), nil
}

// TestWebhook fires a sample payload at one configured slot and returns the
// raw adapter result.
func (s *Service) TestWebhook(ctx context.Context, formID int64, slot string) (webhook.Result, error) {
	f, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return webhook.Result{}, err
	}

	cfg := f.Settings.Webhooks
	primary, secondary := cfg.ActiveURLs()
	url := primary
	if slot == "secondary" {
		url = secondary
	}
	if url == "" {
		return webhook.Result{}, fmt.Errorf("no %s webhook URL configured for mode %s", slotName(slot), cfg.Mode)
	}

	payload := map[string]interface{}{
		"form_id":       f.ID,
		"submission_id": "test-" + uuid.NewString(),
		"test":          true,
		"submitted_at":  time.Now().UTC().Format(time.RFC3339),
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return s.dispatcher.sendRecovered(ctx, url, timeout, payload), nil
}

// TestChatwoot checks the form's CRM credentials by running a contact
// search round-trip.
func (s *Service) TestChatwoot(ctx context.Context, formID int64) error {
	f, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return err
	}

	cfg := chatwoot.Config{
		BaseURL:            f.Settings.Chatwoot.BaseURL,
		AccountID:          f.Settings.Chatwoot.AccountID,
		APIToken:           f.Settings.Chatwoot.APIToken,
		InboxID:            f.Settings.Chatwoot.InboxID,
		CreateConversation: false,
	}
	if !cfg.Complete() {
		return fmt.Errorf("chatwoot configuration incomplete")
	}
	return chatwoot.NewClient(cfg, 10*time.Second).Ping(ctx)
}

func slotName(slot string) string {
	if slot == "secondary" {
		return "secondary"
	}
	return "primary"
}

func whatsappConfig(settings form.Settings) whatsapp.Config {
	return whatsapp.Config{
		Enabled:  settings.WhatsApp.Enabled,
		Number:   settings.WhatsApp.Number,
		Template: settings.WhatsApp.MessageTemplate,
	}
}
