package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/contentstudio/server/internal/auth"
	"codeberg.org/contentstudio/server/internal/content"
	"codeberg.org/contentstudio/server/internal/studio"
	"codeberg.org/contentstudio/server/internal/usage"
)

// creates a backend generating in process for one local client
func NewLocalBackend(s *studio.Studio, clientKey string) *LocalBackend {
	return &LocalBackend{studio: s, clientKey: clientKey}
}

func (b *LocalBackend) Generate(ctx context.Context, input content.BrandInput) (*studio.Result, error) {
	return b.studio.Generate(ctx, b.clientKey, input)
}

func (b *LocalBackend) Usage(ctx context.Context) (studio.Usage, error) {
	return b.studio.Usage(ctx, b.clientKey)
}

// creates a new REST client identified by clientID
func NewRemoteClient(endpoint, clientID string) *RemoteClient {
	return &RemoteClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		clientID: clientID,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// sends a generate request to the REST API
func (c *RemoteClient) Generate(ctx context.Context, input content.BrandInput) (*studio.Result, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var resp generateResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/generate", payload, &resp); err != nil {
		return nil, err
	}

	return &studio.Result{
		Bundle: &content.Bundle{
			Captions: resp.Captions,
			Hashtags: resp.Hashtags,
		},
		Usage: resp.Usage,
	}, nil
}

// reads today's usage from the REST API
func (c *RemoteClient) Usage(ctx context.Context) (studio.Usage, error) {
	var u studio.Usage
	if err := c.do(ctx, http.MethodGet, "/api/v1/usage", nil, &u); err != nil {
		return studio.Usage{}, err
	}

	return u, nil
}

func (c *RemoteClient) do(ctx context.Context, method, path string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(auth.HeaderClientID, c.clientID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// maps API error responses back onto the domain sentinels
func decodeError(status int, data []byte) error {
	var errResp errorResponse
	if err := json.Unmarshal(data, &errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("request failed with status %d: %s", status, string(data))
	}

	switch errResp.Error {
	case "validation_failed":
		return fmt.Errorf("%w: %s", content.ErrValidationFailed, errResp.Details)
	case "quota_exhausted":
		return fmt.Errorf("%w: %s", usage.ErrQuotaExhausted, errResp.Message)
	default:
		return fmt.Errorf("%s: %s", errResp.Error, errResp.Message)
	}
}

// reads the client id kept at path, creating one on first use
func LoadOrCreateClientID(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); auth.ValidClientID(id) {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read client id: %w", err)
	}

	id := auth.NewClientID()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("failed to create client id directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("failed to write client id: %w", err)
	}

	return id, nil
}

// REST API response types

type generateResponse struct {
	Captions []string     `json:"captions"`
	Hashtags []string     `json:"hashtags"`
	Usage    studio.Usage `json:"usage"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
