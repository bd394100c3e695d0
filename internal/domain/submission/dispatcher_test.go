package submission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"formgate/internal/adapter/chatwoot"
	"formgate/internal/adapter/webhook"
	"formgate/internal/domain/form"
)

type mockWebhookSender struct {
	calls    []string
	payloads map[string]map[string]interface{}
	results  map[string]webhook.Result
	panics   map[string]bool
}

func newMockWebhookSender() *mockWebhookSender {
	return &mockWebhookSender{
		payloads: make(map[string]map[string]interface{}),
		results:  make(map[string]webhook.Result),
		panics:   make(map[string]bool),
	}
}

func (m *mockWebhookSender) Send(_ context.Context, url string, payload map[string]interface{}) webhook.Result {
	m.calls = append(m.calls, url)
	m.payloads[url] = payload
	if m.panics[url] {
		panic("adapter blew up")
	}
	if res, ok := m.results[url]; ok {
		return res
	}
	return webhook.Result{Success: true, Code: 200}
}

type mockCRM struct {
	called bool
	data   map[string]string
	result chatwoot.Result
	err    error
	panics bool
}

func (m *mockCRM) ProcessSubmission(_ context.Context, data map[string]string) (chatwoot.Result, error) {
	m.called = true
	m.data = data
	if m.panics {
		panic("crm blew up")
	}
	return m.result, m.err
}

func crmFactory(crm *mockCRM) CRMFactory {
	return func(cfg chatwoot.Config, timeout time.Duration) CRMSender { return crm }
}

func webhookSettings(enabled bool) form.Settings {
	s := form.DefaultSettings()
	s.Webhooks.Enabled = enabled
	s.Webhooks.PrimaryProd = "https://primary.example.com/hook"
	return s
}

func newPendingSubmission() *Submission {
	return &Submission{
		PublicID:               "sub-1",
		FormID:                 1,
		FormData:               FormData{"email": "a@b.com", "nombre": "Ana"},
		WebhookPrimaryStatus:   StatusPending,
		WebhookSecondaryStatus: StatusPending,
		ChatwootStatus:         StatusPending,
	}
}

func TestDispatchWebhooksDisabled(t *testing.T) {
	sender := newMockWebhookSender()
	d := NewDispatcher(sender, crmFactory(&mockCRM{}), nil)

	sub := newPendingSubmission()
	d.Dispatch(context.Background(), sub, webhookSettings(false))

	assert.Empty(t, sender.calls)
	assert.Equal(t, StatusSkipped, sub.WebhookPrimaryStatus)
	assert.Equal(t, StatusSkipped, sub.WebhookSecondaryStatus)
}

func TestDispatchPrimaryOnlySecondarySkipped(t *testing.T) {
	sender := newMockWebhookSender()
	sender.results["https://primary.example.com/hook"] = webhook.Result{Success: true, Code: 201, Body: "ok"}
	d := NewDispatcher(sender, crmFactory(&mockCRM{}), nil)

	sub := newPendingSubmission()
	d.Dispatch(context.Background(), sub, webhookSettings(true))

	assert.Equal(t, []string{"https://primary.example.com/hook"}, sender.calls)
	assert.Equal(t, StatusSuccess, sub.WebhookPrimaryStatus)
	assert.Equal(t, 201, sub.WebhookPrimaryCode)
	assert.Equal(t, "ok", sub.WebhookPrimaryResponse)
	assert.Equal(t, StatusSkipped, sub.WebhookSecondaryStatus)
}

func TestDispatchTestModeUsesTestURLs(t *testing.T) {
	sender := newMockWebhookSender()
	d := NewDispatcher(sender, crmFactory(&mockCRM{}), nil)

	settings := webhookSettings(true)
	settings.Webhooks.Mode = form.ModeTest
	settings.Webhooks.PrimaryTest = "https://staging.example.com/hook"

	sub := newPendingSubmission()
	d.Dispatch(context.Background(), sub, settings)

	assert.Equal(t, []string{"https://staging.example.com/hook"}, sender.calls)
}

func TestDispatchFailureIsIsolated(t *testing.T) {
	sender := newMockWebhookSender()
	sender.results["https://primary.example.com/hook"] = webhook.Result{Code: 500, Body: "boom"}

	crm := &mockCRM{result: chatwoot.Result{ContactID: 5}}
	d := NewDispatcher(sender, crmFactory(crm), nil)

	settings := webhookSettings(true)
	settings.Webhooks.SecondaryProd = "https://secondary.example.com/hook"
	settings.Chatwoot.Enabled = true
	settings.Chatwoot.BaseURL = "https://crm.example.com"
	settings.Chatwoot.AccountID = "1"
	settings.Chatwoot.APIToken = "tok"

	sub := newPendingSubmission()
	d.Dispatch(context.Background(), sub, settings)

	assert.Equal(t, StatusError, sub.WebhookPrimaryStatus)
	assert.Equal(t, 500, sub.WebhookPrimaryCode)
	assert.Equal(t, "boom", sub.WebhookPrimaryResponse)

	// secondary still ran and succeeded
	assert.Equal(t, StatusSuccess, sub.WebhookSecondaryStatus)

	// chatwoot still ran
	assert.True(t, crm.called)
	assert.Equal(t, StatusSuccess, sub.ChatwootStatus)
	assert.Equal(t, int64(5), sub.ChatwootContactID)
}

func TestDispatchWebhookPanicRecovered(t *testing.T) {
	sender := newMockWebhookSender()
	sender.panics["https://primary.example.com/hook"] = true

	crm := &mockCRM{}
	d := NewDispatcher(sender, crmFactory(crm), nil)

	settings := webhookSettings(true)
	settings.Chatwoot.Enabled = true
	settings.Chatwoot.BaseURL = "https://crm.example.com"
	settings.Chatwoot.AccountID = "1"
	settings.Chatwoot.APIToken = "tok"

	sub := newPendingSubmission()
	d.Dispatch(context.Background(), sub, settings)

	assert.Equal(t, StatusError, sub.WebhookPrimaryStatus)
	assert.Contains(t, sub.WebhookPrimaryResponse, "panic")
	assert.True(t, crm.called)
}

func TestDispatchChatwootPanicRecovered(t *testing.T) {
	crm := &mockCRM{panics: true}
	d := NewDispatcher(newMockWebhookSender(), crmFactory(crm), nil)

	settings := form.DefaultSettings()
	settings.Chatwoot.Enabled = true
	settings.Chatwoot.BaseURL = "https://crm.example.com"
	settings.Chatwoot.AccountID = "1"
	settings.Chatwoot.APIToken = "tok"

	sub := newPendingSubmission()
	d.Dispatch(context.Background(), sub, settings)

	assert.Equal(t, StatusError, sub.ChatwootStatus)
	assert.Contains(t, sub.ChatwootResponse, "panic")
}

func TestDispatchChatwootDisabledOrIncomplete(t *testing.T) {
	crm := &mockCRM{}
	d := NewDispatcher(newMockWebhookSender(), crmFactory(crm), nil)

	sub := newPendingSubmission()
	d.Dispatch(context.Background(), sub, form.DefaultSettings())
	assert.Equal(t, StatusSkipped, sub.ChatwootStatus)
	assert.False(t, crm.called)

	// enabled but missing the token
	settings := form.DefaultSettings()
	settings.Chatwoot.Enabled = true
	settings.Chatwoot.BaseURL = "https://crm.example.com"
	settings.Chatwoot.AccountID = "1"

	sub = newPendingSubmission()
	d.Dispatch(context.Background(), sub, settings)
	assert.Equal(t, StatusSkipped, sub.ChatwootStatus)
	assert.False(t, crm.called)
}

func TestDispatchChatwootError(t *testing.T) {
	crm := &mockCRM{err: errors.New("could not create contact (status 422)")}
	d := NewDispatcher(newMockWebhookSender(), crmFactory(crm), nil)

	settings := form.DefaultSettings()
	settings.Chatwoot.Enabled = true
	settings.Chatwoot.BaseURL = "https://crm.example.com"
	settings.Chatwoot.AccountID = "1"
	settings.Chatwoot.APIToken = "tok"

	sub := newPendingSubmission()
	d.Dispatch(context.Background(), sub, settings)

	assert.Equal(t, StatusError, sub.ChatwootStatus)
	assert.Contains(t, sub.ChatwootResponse, "could not create contact")
}

func TestSkipNeverOverwritesAttemptedOutcome(t *testing.T) {
	status := StatusError
	skip(&status)
	assert.Equal(t, StatusError, status)

	status = StatusSuccess
	skip(&status)
	assert.Equal(t, StatusSuccess, status)

	status = StatusPending
	skip(&status)
	assert.Equal(t, StatusSkipped, status)
}

func TestWebhookPayloadIsRawFormData(t *testing.T) {
	sender := newMockWebhookSender()
	d := NewDispatcher(sender, crmFactory(&mockCRM{}), nil)

	sub := newPendingSubmission()
	d.Dispatch(context.Background(), sub, webhookSettings(true))

	// destinations see exactly the submitted fields, nothing added
	assert.Equal(t, map[string]interface{}{
		"email":  "a@b.com",
		"nombre": "Ana",
	}, sender.payloads["https://primary.example.com/hook"])
}

func TestWebhookPayloadKeepsCollidingFieldNames(t *testing.T) {
	sender := newMockWebhookSender()
	d := NewDispatcher(sender, crmFactory(&mockCRM{}), nil)

	sub := newPendingSubmission()
	sub.FormData["form_id"] = "ticket-88"
	d.Dispatch(context.Background(), sub, webhookSettings(true))

	payload := sender.payloads["https://primary.example.com/hook"]
	assert.Equal(t, "ticket-88", payload["form_id"])
	assert.NotContains(t, payload, "submission_id")
	assert.NotContains(t, payload, "submitted_at")
}
