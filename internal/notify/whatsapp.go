package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// WhatsAppClient sends templated WhatsApp messages through the messaging
// provider's REST API.
type WhatsAppClient struct {
	apiURL   string
	token    string
	template string
	client   *http.Client
}

type whatsappRequest struct {
	To         string   `json:"to"`
	Template   string   `json:"template"`
	Parameters []string `json:"parameters"`
}

type whatsappError struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// NewWhatsAppClient creates a WhatsApp template sender
func NewWhatsAppClient(apiURL, token, template string) *WhatsAppClient {
	return &WhatsAppClient{
		apiURL:   apiURL,
		token:    token,
		template: template,
		client:   &http.Client{},
	}
}

// SendTemplate sends one templated message to the given recipient handle
func (c *WhatsAppClient) SendTemplate(ctx context.Context, to string, params []string) error {
	if c.apiURL == "" {
		return fmt.Errorf("whatsapp api url not configured")
	}

	body, err := json.Marshal(whatsappRequest{
		To:         to,
		Template:   c.template,
		Parameters: params,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var waErr whatsappError
		if json.Unmarshal(respBody, &waErr) == nil && waErr.Error.Message != "" {
			return fmt.Errorf("whatsapp API error (%d): %s", resp.StatusCode, waErr.Error.Message)
		}
		return fmt.Errorf("whatsapp API error (%d): %s", resp.StatusCode, string(respBody))
	}

	return nil
}
