package telecmi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
)

const (
	defaultBaseURL = "https://rest.telecmi.com/v2/user"

	// successCode is the status code Telecmi embeds in successful
	// response bodies, independent of the HTTP status.
	successCode = 200
)

// TokenCache is the single in-memory slot for the Telecmi user token.
// Its lifecycle is owned by the composition root and shared by all
// requests; there are no per-user tokens.
type TokenCache struct {
	mu    sync.Mutex
	token string
}

// NewTokenCache creates an empty token cache
func NewTokenCache() *TokenCache {
	return &TokenCache{}
}

// Token returns the cached token and whether one is present
func (c *TokenCache) Token() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token, c.token != ""
}

// Set stores a token
func (c *TokenCache) Set(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Clear empties the cache slot
func (c *TokenCache) Clear() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// Client is a thin proxy over the Telecmi user API with token caching
type Client struct {
	userID   string
	password string
	baseURL  string
	cache    *TokenCache
	client   *http.Client
}

type loginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

type loginResponse struct {
	Code    int    `json:"code"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

type apiError struct {
	Message string `json:"message"`
}

// NewClient creates a Telecmi client. baseURL may be empty to use the
// production endpoint; the cache must be provided by the caller.
func NewClient(userID, password, baseURL string, cache *TokenCache) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		userID:   userID,
		password: password,
		baseURL:  baseURL,
		cache:    cache,
		client:   &http.Client{},
	}
}

// ValidToken returns the cached token, logging in first if the slot is
// empty.
func (c *Client) ValidToken(ctx context.Context) (string, error) {
	if token, ok := c.cache.Token(); ok {
		return token, nil
	}
	return c.login(ctx)
}

// Invalidate clears the cached token. The next ValidToken call performs a
// fresh login; the failed call itself is not retried.
func (c *Client) Invalidate() {
	log.Printf("telecmi: invalidating cached token")
	c.cache.Clear()
}

// login exchanges credentials for a token and caches it. The response body
// is read once into a buffer and parsed from there; non-JSON bodies become
// a synthetic error record carrying the raw text.
func (c *Client) login(ctx context.Context) (string, error) {
	log.Printf("telecmi: generating new user token")

	body, err := json.Marshal(loginRequest{ID: c.userID, Password: c.password})
	if err != nil {
		return "", fmt.Errorf("failed to marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("network error trying to connect to telecmi: %w", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return "", fmt.Errorf("failed to read telecmi response: %w", err)
	}

	var data loginResponse
	if err := json.Unmarshal(respBody, &data); err != nil {
		data = loginResponse{Code: resp.StatusCode, Message: string(respBody)}
		if data.Message == "" {
			data.Message = "telecmi returned an unreadable (non-JSON) response"
		}
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !ok || data.Code != successCode {
		msg := data.Message
		if msg == "" {
			msg = fmt.Sprintf("telecmi login failed (status %d)", resp.StatusCode)
		}
		return "", fmt.Errorf("telecmi login: %s", msg)
	}

	if data.Token == "" {
		return "", fmt.Errorf("telecmi login did not return a token: %s", data.Message)
	}

	c.cache.Set(data.Token)
	return data.Token, nil
}

// fetchCDR issues an authenticated CDR request. The token travels in the
// request body, per the Telecmi API. On 404 or an "Invalid Token" error
// the cached token is invalidated before the error propagates.
func (c *Client) fetchCDR(ctx context.Context, endpoint string, req cdrRequest, token string) (*cdrResponse, error) {
	req.Token = token

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		json.Unmarshal(respBody, &apiErr)
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}

		if resp.StatusCode == http.StatusNotFound || strings.Contains(msg, "Invalid Token") {
			c.Invalidate()
		}

		return nil, fmt.Errorf("telecmi API error (%d): %s", resp.StatusCode, msg)
	}

	var cdrResp cdrResponse
	if err := json.Unmarshal(respBody, &cdrResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &cdrResp, nil
}
