package submission

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"formgate/internal/adapter/chatwoot"
	"formgate/internal/adapter/webhook"
	"formgate/internal/domain/form"
)

// WebhookSender posts a payload to one destination.
type WebhookSender interface {
	Send(ctx context.Context, url string, payload map[string]interface{}) webhook.Result
}

// CRMSender syncs a submission into the CRM.
type CRMSender interface {
	ProcessSubmission(ctx context.Context, data map[string]string) (chatwoot.Result, error)
}

// CRMFactory builds a CRM client for one form's settings. Indirection point
// for tests.
type CRMFactory func(cfg chatwoot.Config, timeout time.Duration) CRMSender

// Dispatcher fans a stored submission out to its destinations. Destinations
// are independent: each failure is captured on its own columns and never
// stops the others. One attempt each, no retries.
type Dispatcher struct {
	webhooks WebhookSender
	newCRM   CRMFactory
	logger   *zap.Logger
}

func NewDispatcher(webhooks WebhookSender, newCRM CRMFactory, logger *zap.Logger) *Dispatcher {
	if newCRM == nil {
		newCRM = func(cfg chatwoot.Config, timeout time.Duration) CRMSender {
			return chatwoot.NewClient(cfg, timeout)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{webhooks: webhooks, newCRM: newCRM, logger: logger}
}

// Dispatch runs webhooks first, then the CRM, writing outcomes onto sub.
// The caller persists the mutated submission afterwards.
func (d *Dispatcher) Dispatch(ctx context.Context, sub *Submission, settings form.Settings) {
	d.dispatchWebhooks(ctx, sub, settings.Webhooks)
	d.dispatchChatwoot(ctx, sub, settings.Chatwoot)
}

func (d *Dispatcher) dispatchWebhooks(ctx context.Context, sub *Submission, cfg form.WebhookSettings) {
	if !cfg.Enabled {
		skip(&sub.WebhookPrimaryStatus)
		skip(&sub.WebhookSecondaryStatus)
		return
	}

	primary, secondary := cfg.ActiveURLs()
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	// destinations receive the submitted fields as-is, no envelope
	payload := map[string]interface{}(sub.FormData)

	d.deliverSlot(ctx, sub, primary, timeout, payload,
		&sub.WebhookPrimaryStatus, &sub.WebhookPrimaryCode, &sub.WebhookPrimaryResponse)
	d.deliverSlot(ctx, sub, secondary, timeout, payload,
		&sub.WebhookSecondaryStatus, &sub.WebhookSecondaryCode, &sub.WebhookSecondaryResponse)
}

func (d *Dispatcher) deliverSlot(ctx context.Context, sub *Submission, url string, timeout time.Duration,
	payload map[string]interface{}, status *Status, code *int, body *string) {

	if url == "" {
		skip(status)
		return
	}

	result := d.sendRecovered(ctx, url, timeout, payload)
	*code = result.Code
	if result.Success {
		*status = StatusSuccess
		*body = result.Body
		return
	}

	*status = StatusError
	if result.Message != "" {
		*body = result.Message
	} else {
		*body = result.Body
	}
	d.logger.Warn("webhook delivery failed",
		zap.String("submission", sub.PublicID),
		zap.String("url", url),
		zap.Int("code", result.Code))
}

// sendRecovered bounds the attempt and turns an adapter panic into an error
// outcome instead of taking the request down.
func (d *Dispatcher) sendRecovered(ctx context.Context, url string, timeout time.Duration,
	payload map[string]interface{}) (result webhook.Result) {

	defer func() {
		if r := recover(); r != nil {
			result = webhook.Result{Message: fmt.Sprintf("webhook adapter panic: %v", r)}
			d.logger.Error("webhook adapter panic", zap.Any("panic", r))
		}
	}()

	if timeout <= 0 {
		timeout = webhook.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return d.webhooks.Send(ctx, url, payload)
}

func (d *Dispatcher) dispatchChatwoot(ctx context.Context, sub *Submission, cfg form.ChatwootSettings) {
	if !cfg.Enabled {
		skip(&sub.ChatwootStatus)
		return
	}

	clientCfg := chatwoot.Config{
		BaseURL:            cfg.BaseURL,
		AccountID:          cfg.AccountID,
		APIToken:           cfg.APIToken,
		InboxID:            cfg.InboxID,
		CreateConversation: cfg.CreateConversation,
	}
	if !clientCfg.Complete() {
		// enabled but unconfigured is an operator mistake, not a delivery failure
		skip(&sub.ChatwootStatus)
		d.logger.Warn("chatwoot enabled but config incomplete", zap.Int64("form_id", sub.FormID))
		return
	}

	result, err := d.processRecovered(ctx, clientCfg, sub.FormData.Flatten())
	if err != nil {
		sub.ChatwootStatus = StatusError
		sub.ChatwootResponse = err.Error()
		d.logger.Warn("chatwoot delivery failed",
			zap.String("submission", sub.PublicID), zap.Error(err))
		return
	}

	sub.ChatwootStatus = StatusSuccess
	sub.ChatwootContactID = result.ContactID
	sub.ChatwootConversationID = result.ConversationID
}

func (d *Dispatcher) processRecovered(ctx context.Context, cfg chatwoot.Config,
	data map[string]string) (result chatwoot.Result, err error) {

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("chatwoot adapter panic: %v", r)
			d.logger.Error("chatwoot adapter panic", zap.Any("panic", r))
		}
	}()
	return d.newCRM(cfg, 0).ProcessSubmission(ctx, data)
}

// skip marks an idle slot, never downgrading an attempted outcome.
func skip(status *Status) {
	if *status == StatusPending || *status == "" {
		*status = StatusSkipped
	}
}
