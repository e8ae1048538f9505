package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/morikuni/failure/v2"
)

func newTestTransport(t *testing.T, h http.HandlerFunc) *HTTPTransport {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	tr, err := NewHTTPTransport(Config{APIKey: "test-key", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("NewHTTPTransport() error = %v", err)
	}
	return tr
}

func TestNewHTTPTransportMissingCredential(t *testing.T) {
	for _, key := range []string{"", "   "} {
		_, err := NewHTTPTransport(Config{APIKey: key})
		if !failure.Is(err, ErrMissingCredential) {
			t.Errorf("NewHTTPTransport(%q) error = %v, want %v", key, err, ErrMissingCredential)
		}
	}
}

func TestHTTPTransportDo(t *testing.T) {
	var gotHeader http.Header
	var gotPath string
	var gotBody map[string]any

	tr := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header
		gotPath = r.URL.Path
		if r.Method != http.MethodPost {
			t.Errorf("Method = %s, want POST", r.Method)
		}
		b, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(b, &gotBody); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"matches":[{"code_block":{"id":"abc123","name":"chart"},"thumbs_up":3}],"total_found":1,"cache_hit":true}`)
	})

	var resp SearchResponse
	req := NewSearchRequest("Parse CSV and generate chart")
	if err := tr.Do(context.Background(), EndpointSearch, req, &resp); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	if gotPath != EndpointSearch {
		t.Errorf("path = %q, want %q", gotPath, EndpointSearch)
	}
	if got := gotHeader.Get("Authorization"); got != "Bearer test-key" {
		t.Errorf("Authorization = %q", got)
	}
	if got := gotHeader.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := gotHeader.Get("User-Agent"); got != UserAgent() {
		t.Errorf("User-Agent = %q, want %q", got, UserAgent())
	}

	wantBody := map[string]any{
		"task":              "Parse CSV and generate chart",
		"top_k":             float64(5),
		"min_verdict_score": float64(0),
		"prefer_complete":   true,
		"public_snips":      false,
	}
	if diff := cmp.Diff(wantBody, gotBody); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}

	want := SearchResponse{
		Matches: []SearchMatch{
			{CodeBlock: &CodeBlock{ID: "abc123", Name: "chart"}, ThumbsUp: 3},
		},
		TotalFound: 1,
		CacheHit:   true,
	}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestHTTPTransportServerError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "detail string",
			status:      http.StatusNotFound,
			body:        `{"detail":"Code block abc123 not found"}`,
			wantMessage: "Code block abc123 not found",
		},
		{
			name:        "message field",
			status:      http.StatusBadRequest,
			body:        `{"message":"task is required"}`,
			wantMessage: "task is required",
		},
		{
			name:        "error field",
			status:      http.StatusUnauthorized,
			body:        `{"error":"invalid api key"}`,
			wantMessage: "invalid api key",
		},
		{
			name:        "detail list",
			status:      http.StatusUnprocessableEntity,
			body:        `{"detail":[{"loc":["body","task"]}]}`,
			wantMessage: `[{"loc":["body","task"]}]`,
		},
		{
			name:        "plain text body",
			status:      http.StatusBadGateway,
			body:        `<html>bad gateway</html>`,
			wantMessage: "Bad Gateway",
		},
		{
			name:        "empty body",
			status:      http.StatusInternalServerError,
			body:        ``,
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			var resp VoteResponse
			err := tr.Do(context.Background(), EndpointVote, VoteRequest{CodeBlockID: "abc123"}, &resp)
			if !failure.Is(err, ErrServer) {
				t.Fatalf("Do() error = %v, want %v", err, ErrServer)
			}

			var se *ServerError
			if !errors.As(err, &se) {
				t.Fatalf("error %v does not wrap *ServerError", err)
			}
			if se.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", se.StatusCode, tt.status)
			}
			if se.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", se.Message, tt.wantMessage)
			}
		})
	}
}

func TestHTTPTransportNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	tr, err := NewHTTPTransport(Config{APIKey: "test-key", BaseURL: baseURL})
	if err != nil {
		t.Fatalf("NewHTTPTransport() error = %v", err)
	}

	err = tr.Do(context.Background(), EndpointPatterns, NewPatternsRequest(""), &PatternsResponse{})
	if !failure.Is(err, ErrNetwork) {
		t.Errorf("Do() error = %v, want %v", err, ErrNetwork)
	}
}

func TestHTTPTransportInvalidResponse(t *testing.T) {
	tr := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `not json`)
	})

	err := tr.Do(context.Background(), EndpointPatterns, NewPatternsRequest(""), &PatternsResponse{})
	if !failure.Is(err, ErrInvalidResponse) {
		t.Errorf("Do() error = %v, want %v", err, ErrInvalidResponse)
	}
}

func TestServerErrorString(t *testing.T) {
	tests := []struct {
		err  ServerError
		want string
	}{
		{ServerError{StatusCode: 404, Message: "Not Found"}, "server responded 404 Not Found"},
		{ServerError{StatusCode: 404}, "server responded 404 Not Found"},
		{ServerError{StatusCode: 403, Message: "quota exceeded"}, "server responded 403 Forbidden: quota exceeded"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
