package api

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/morikuni/failure/v2"
)

var validate = validator.New()

// Client is a typed Raysurfer API client on top of a Transport
type Client struct {
	transport Transport
}

// NewClient creates a client sending every request through t
func NewClient(t Transport) *Client {
	return &Client{transport: t}
}

// Search finds cached snippets matching a task description
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.call(ctx, EndpointSearch, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Upload stores code as a cached execution result
func (c *Client) Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error) {
	var resp UploadResponse
	if err := c.call(ctx, EndpointUpload, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Vote records a thumbs up or thumbs down on a code block
func (c *Client) Vote(ctx context.Context, req VoteRequest) (*VoteResponse, error) {
	var resp VoteResponse
	if err := c.call(ctx, EndpointVote, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Patterns fetches proven task patterns
func (c *Client) Patterns(ctx context.Context, req PatternsRequest) (*PatternsResponse, error) {
	var resp PatternsResponse
	if err := c.call(ctx, EndpointPatterns, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FewShotExamples fetches examples of code that solved similar tasks
func (c *Client) FewShotExamples(ctx context.Context, req FewShotRequest) (*FewShotResponse, error) {
	var resp FewShotResponse
	if err := c.call(ctx, EndpointFewShotExample, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) call(ctx context.Context, endpoint string, req, resp any) error {
	if err := validate.StructCtx(ctx, req); err != nil {
		return failure.Wrap(err, failure.WithCode(ErrInvalidRequest),
			failure.Context{"endpoint": endpoint})
	}
	if err := c.transport.Do(ctx, endpoint, req, resp); err != nil {
		return failure.Wrap(err)
	}
	return nil
}
