package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/raysurfer/raysurfer-cli/api"
	"github.com/spf13/cobra"
)

// fakeTransport records every request and answers with canned JSON per endpoint
type fakeTransport struct {
	requests  []fakeRequest
	responses map[string]string
	err       error
}

type fakeRequest struct {
	endpoint string
	body     map[string]any
}

func (f *fakeTransport) Do(ctx context.Context, endpoint string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	var body map[string]any
	if err := json.Unmarshal(b, &body); err != nil {
		return err
	}
	f.requests = append(f.requests, fakeRequest{endpoint: endpoint, body: body})
	if f.err != nil {
		return f.err
	}
	resp, ok := f.responses[endpoint]
	if !ok {
		resp = `{}`
	}
	return json.Unmarshal([]byte(resp), out)
}

var errTest = errors.New("dial tcp: connection refused")

var testConfig = api.Config{APIKey: "rs_test", BaseURL: api.DefaultBaseURL}

type result struct {
	stdout string
	err    error
}

// execute runs the command tree with args against ft
func execute(t *testing.T, cfg api.Config, ft *fakeTransport, args ...string) result {
	t.Helper()
	cmd := NewRootCommand(cfg, func(api.Config) (api.Transport, error) {
		return ft, nil
	})
	return executeCommand(cmd, args...)
}

func executeCommand(cmd *cobra.Command, args ...string) result {
	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), err: err}
}

// writeFile creates a file under a temp dir and returns its path
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}
