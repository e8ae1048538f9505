package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/morikuni/failure/v2"
	"github.com/raysurfer/raysurfer-cli/log"
)

// maxErrorBody bounds how much of a failed response is read for its message
const maxErrorBody = 1 << 20

// Transport sends one JSON request to the service and decodes the JSON
// response into out.
type Transport interface {
	Do(ctx context.Context, endpoint string, in, out any) error
}

// HTTPTransport is the Transport talking to the Raysurfer HTTP API
type HTTPTransport struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport creates a transport from cfg. It fails with
// ErrMissingCredential when no API key is configured.
func NewHTTPTransport(cfg Config) (*HTTPTransport, error) {
	key, err := cfg.Credential()
	if err != nil {
		return nil, err
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPTransport{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  key,
		HTTPClient: &http.Client{
			Transport: log.NewTransport(http.DefaultTransport),
			Timeout:   cfg.Timeout,
		},
	}, nil
}

// Do POSTs in as JSON to endpoint and decodes a 2xx body into out.
func (t *HTTPTransport) Do(ctx context.Context, endpoint string, in, out any) error {
	u := t.BaseURL + endpoint

	body, err := json.Marshal(in)
	if err != nil {
		return failure.Wrap(err, failure.WithCode(ErrInvalidRequest),
			failure.Context{"endpoint": endpoint})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return failure.Wrap(err, failure.WithCode(ErrInvalidRequest),
			failure.Context{"url": u})
	}
	req.Header.Set("Authorization", "Bearer "+t.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent())

	client := t.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return failure.Wrap(err, failure.WithCode(ErrNetwork),
			failure.Context{"url": u})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failure.Wrap(newServerError(resp), failure.WithCode(ErrServer),
			failure.Context{"url": u})
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return failure.Wrap(err, failure.WithCode(ErrInvalidResponse),
			failure.Context{"url": u})
	}
	return nil
}

// errorBody covers the error shapes the service and its proxies return
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func newServerError(resp *http.Response) *ServerError {
	se := &ServerError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return se
	}

	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err != nil {
		log.Debug("Undecodable error body", "status", resp.StatusCode, "body", string(raw))
		return se
	}

	var detail string
	if len(eb.Detail) > 0 {
		// detail is either a string or a list of validation errors
		if err := json.Unmarshal(eb.Detail, &detail); err != nil {
			detail = string(eb.Detail)
		}
	}
	for _, m := range []string{detail, eb.Message, eb.Error} {
		if m = strings.TrimSpace(m); m != "" {
			se.Message = m
			break
		}
	}
	return se
}
