package chatwoot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Config carries everything a delivery needs. A config with an empty
// BaseURL, AccountID or APIToken is incomplete and cannot deliver.
type Config struct {
	BaseURL            string
	AccountID          string
	APIToken           string
	InboxID            string
	CreateConversation bool
}

// Complete reports whether the config has the minimum to reach the API.
func (c Config) Complete() bool {
	return c.BaseURL != "" && c.AccountID != "" && c.APIToken != ""
}

// Result records what the delivery achieved. ConversationID stays zero when
// conversation creation is disabled or failed; a failed conversation does
// not undo a successful contact sync.
type Result struct {
	ContactID      int64
	ConversationID int64
	Created        bool
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Contact is the subset of the Chatwoot contact payload we read and write.
type Contact struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`

	CustomAttributes map[string]string `json:"custom_attributes,omitempty"`
}

func NewClient(cfg Config, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ProcessSubmission syncs the submission into Chatwoot: find the contact by
// email (creating or updating as needed), then optionally open a
// conversation carrying the submitted fields as a message.
func (c *Client) ProcessSubmission(ctx context.Context, data map[string]string) (Result, error) {
	email := firstValue(data, "email", "correo")
	if email == "" {
		return Result{}, fmt.Errorf("submission has no email field to identify the contact")
	}

	contact := buildContact(email, data)

	existing, err := c.searchContact(ctx, email)
	if err != nil {
		return Result{}, err
	}

	var res Result
	if existing != nil {
		contact.ID = existing.ID
		if err := c.updateContact(ctx, contact); err != nil {
			return Result{}, err
		}
		res.ContactID = existing.ID
	} else {
		id, err := c.createContact(ctx, contact)
		if err != nil {
			return Result{}, err
		}
		res.ContactID = id
		res.Created = true
	}

	if c.cfg.CreateConversation && c.cfg.InboxID != "" {
		convID, err := c.createConversation(ctx, res.ContactID)
		if err != nil {
			// contact sync already succeeded, keep it
			return res, nil
		}
		if err := c.postMessage(ctx, convID, FormatMessage(data)); err == nil {
			res.ConversationID = convID
		}
	}

	return res, nil
}

// Ping verifies the base URL and credentials with a harmless contact
// search.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.searchContact(ctx, "connectivity-check@example.com")
	return err
}

func (c *Client) searchContact(ctx context.Context, email string) (*Contact, error) {
	endpoint := fmt.Sprintf("%s/api/v1/accounts/%s/contacts/search?q=%s",
		c.cfg.BaseURL, c.cfg.AccountID, url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("api_access_token", c.cfg.APIToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search contact: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("contact search failed (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Payload []Contact `json:"payload"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	// the search matches loosely, only trust an exact email hit
	for i := range result.Payload {
		if strings.EqualFold(result.Payload[i].Email, email) {
			return &result.Payload[i], nil
		}
	}
	return nil, nil
}

func (c *Client) createContact(ctx context.Context, contact Contact) (int64, error) {
	endpoint := fmt.Sprintf("%s/api/v1/accounts/%s/contacts", c.cfg.BaseURL, c.cfg.AccountID)

	resp, err := c.doJSON(ctx, http.MethodPost, endpoint, contact)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("could not create contact (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Payload struct {
			Contact Contact `json:"contact"`
		} `json:"payload"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode create response: %w", err)
	}
	return result.Payload.Contact.ID, nil
}

func (c *Client) updateContact(ctx context.Context, contact Contact) error {
	endpoint := fmt.Sprintf("%s/api/v1/accounts/%s/contacts/%d",
		c.cfg.BaseURL, c.cfg.AccountID, contact.ID)

	resp, err := c.doJSON(ctx, http.MethodPut, endpoint, contact)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("could not update contact (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}

func (c *Client) createConversation(ctx context.Context, contactID int64) (int64, error) {
	endpoint := fmt.Sprintf("%s/api/v1/accounts/%s/conversations", c.cfg.BaseURL, c.cfg.AccountID)

	// the API rejects a string inbox id
	inboxID, err := strconv.Atoi(strings.TrimSpace(c.cfg.InboxID))
	if err != nil {
		return 0, fmt.Errorf("invalid inbox id %q", c.cfg.InboxID)
	}

	payload := map[string]interface{}{
		"contact_id": contactID,
		"inbox_id":   inboxID,
	}
	resp, err := c.doJSON(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("could not create conversation (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode conversation response: %w", err)
	}
	return result.ID, nil
}

func (c *Client) postMessage(ctx context.Context, conversationID int64, content string) error {
	endpoint := fmt.Sprintf("%s/api/v1/accounts/%s/conversations/%d/messages",
		c.cfg.BaseURL, c.cfg.AccountID, conversationID)

	payload := map[string]interface{}{
		"content":      content,
		"message_type": "incoming",
	}
	resp, err := c.doJSON(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("could not post message (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, payload interface{}) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api_access_token", c.cfg.APIToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	return resp, nil
}

// buildContact maps submission fields onto the contact: well-known aliases
// become the standard attributes, everything else rides along as a custom
// attribute.
func buildContact(email string, data map[string]string) Contact {
	contact := Contact{
		Email:       email,
		Name:        firstValue(data, "nombre", "name"),
		PhoneNumber: firstValue(data, "telefono", "phone"),
	}

	known := map[string]bool{
		"email": true, "correo": true,
		"nombre": true, "name": true,
		"telefono": true, "phone": true,
	}
	for k, v := range data {
		if known[k] || v == "" {
			continue
		}
		if contact.CustomAttributes == nil {
			contact.CustomAttributes = make(map[string]string)
		}
		contact.CustomAttributes[k] = v
	}
	return contact
}

// FormatMessage renders the submission as a bulleted message, one line per
// field, with field names prettified into labels.
func FormatMessage(data map[string]string) string {
	var b strings.Builder
	b.WriteString("Nueva respuesta de formulario:\n\n")
	for _, k := range sortedKeys(data) {
		if data[k] == "" {
			continue
		}
		fmt.Fprintf(&b, "• %s: %s\n", prettifyLabel(k), data[k])
	}
	return strings.TrimRight(b.String(), "\n")
}

func prettifyLabel(name string) string {
	label := strings.ReplaceAll(name, "_", " ")
	if label == "" {
		return label
	}
	runes := []rune(label)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func firstValue(data map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := data[k]; v != "" {
			return v
		}
	}
	return ""
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
