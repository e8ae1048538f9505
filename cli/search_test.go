package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/morikuni/failure/v2"
	"github.com/raysurfer/raysurfer-cli/api"
)

func TestSearchNoMatches(t *testing.T) {
	ft := &fakeTransport{responses: map[string]string{
		api.EndpointSearch: `{"matches":[],"total_found":0,"cache_hit":false,"search_namespaces":["private"]}`,
	}}

	res := execute(t, testConfig, ft, "search", "Parse CSV and generate chart")
	if res.err != nil {
		t.Fatalf("search error = %v", res.err)
	}
	if ExitCode(res.err) != ExitOK {
		t.Errorf("exit code = %d, want 0", ExitCode(res.err))
	}
	if !strings.Contains(res.stdout, "No matches.") {
		t.Errorf("stdout does not contain no-match message:\n%s", res.stdout)
	}
	if !strings.Contains(res.stdout, "Found 0 result(s)") {
		t.Errorf("stdout does not contain summary:\n%s", res.stdout)
	}
}

func TestSearchPublicFlag(t *testing.T) {
	private := &fakeTransport{}
	if res := execute(t, testConfig, private, "search", "Parse CSV and generate chart"); res.err != nil {
		t.Fatalf("search error = %v", res.err)
	}
	public := &fakeTransport{}
	if res := execute(t, testConfig, public, "search", "Parse CSV and generate chart", "--public"); res.err != nil {
		t.Fatalf("search --public error = %v", res.err)
	}

	if len(private.requests) != 1 || len(public.requests) != 1 {
		t.Fatalf("requests = %d/%d, want 1/1", len(private.requests), len(public.requests))
	}
	if got := private.requests[0].body["public_snips"]; got != false {
		t.Errorf("public_snips without --public = %v, want false", got)
	}
	if got := public.requests[0].body["public_snips"]; got != true {
		t.Errorf("public_snips with --public = %v, want true", got)
	}
	if cmp.Equal(private.requests[0].body, public.requests[0].body) {
		t.Error("--public produced an identical request")
	}
}

func TestSearchRequestBody(t *testing.T) {
	ft := &fakeTransport{}
	res := execute(t, testConfig, ft, "search", "  Parse CSV  ", "-k", "10", "--min-score", "0.5", "--prefer-complete=false")
	if res.err != nil {
		t.Fatalf("search error = %v", res.err)
	}

	want := []fakeRequest{{
		endpoint: api.EndpointSearch,
		body: map[string]any{
			"task":              "Parse CSV",
			"top_k":             float64(10),
			"min_verdict_score": 0.5,
			"prefer_complete":   false,
			"public_snips":      false,
		},
	}}
	if diff := cmp.Diff(want, ft.requests, cmp.AllowUnexported(fakeRequest{})); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchRendersMatches(t *testing.T) {
	ft := &fakeTransport{responses: map[string]string{
		api.EndpointSearch: `{
			"matches": [
				{"code_block": {"id": "abc123", "name": "csv_chart", "language": "python", "source": "print('chart')"},
				 "combined_score": 0.912, "thumbs_up": 7, "thumbs_down": 1},
				{"filename": "plot.py", "language": "python", "combined_score": 0.5}
			],
			"total_found": 2,
			"cache_hit": true,
			"search_namespaces": ["private", "public"]
		}`,
	}}

	res := execute(t, testConfig, ft, "search", "Parse CSV and generate chart", "--show-code")
	if res.err != nil {
		t.Fatalf("search error = %v", res.err)
	}

	for _, want := range []string{
		"Found 2 result(s)",
		"cache_hit=true",
		"namespaces=[private, public]",
		"csv_chart",
		"abc123",
		"plot.py",
		"0.91",
		"+7 / -1",
	} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout does not contain %q:\n%s", want, res.stdout)
		}
	}
	// first match is listed before the second, as ranked by the server
	if strings.Index(res.stdout, "csv_chart") > strings.Index(res.stdout, "plot.py") {
		t.Error("matches are not rendered in server order")
	}
}

func TestSearchJSON(t *testing.T) {
	ft := &fakeTransport{responses: map[string]string{
		api.EndpointSearch: `{"matches":[{"code_block":{"id":"abc123"}}],"total_found":1}`,
	}}
	res := execute(t, testConfig, ft, "search", "task", "--json")
	if res.err != nil {
		t.Fatalf("search error = %v", res.err)
	}
	var got api.SearchResponse
	if err := json.Unmarshal([]byte(res.stdout), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, res.stdout)
	}
	if got.TotalFound != 1 || got.Matches[0].CodeBlock.ID != "abc123" {
		t.Errorf("decoded = %+v", got)
	}
}

func TestSearchEmptyDescription(t *testing.T) {
	ft := &fakeTransport{}
	res := execute(t, testConfig, ft, "search", "   ")
	if !failure.Is(res.err, InvalidArguments) {
		t.Errorf("error = %v, want %v", res.err, InvalidArguments)
	}
	if len(ft.requests) != 0 {
		t.Errorf("transport called %d times, want 0", len(ft.requests))
	}
}

func TestSearchInvalidTopK(t *testing.T) {
	ft := &fakeTransport{}
	res := execute(t, testConfig, ft, "search", "task", "--top-k", "0")
	if !failure.Is(res.err, api.ErrInvalidRequest) {
		t.Errorf("error = %v, want %v", res.err, api.ErrInvalidRequest)
	}
	if ExitCode(res.err) != ExitUsage {
		t.Errorf("exit code = %d, want %d", ExitCode(res.err), ExitUsage)
	}
	if len(ft.requests) != 0 {
		t.Errorf("transport called %d times, want 0", len(ft.requests))
	}
}

func TestSearchNetworkError(t *testing.T) {
	ft := &fakeTransport{err: failure.Wrap(errTest, failure.WithCode(api.ErrNetwork))}
	res := execute(t, testConfig, ft, "search", "task")
	if !failure.Is(res.err, api.ErrNetwork) {
		t.Fatalf("error = %v, want %v", res.err, api.ErrNetwork)
	}
	msg := failure.MessageOf(res.err).String()
	if !strings.HasPrefix(msg, "Search failed: ") {
		t.Errorf("message = %q", msg)
	}
	if ExitCode(res.err) != ExitError {
		t.Errorf("exit code = %d, want %d", ExitCode(res.err), ExitError)
	}
}
