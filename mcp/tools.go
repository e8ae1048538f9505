package mcp

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
	"github.com/raysurfer/raysurfer-cli/api"
)

var validate = validator.New()

func InitTools(client *api.Client) []server.ServerTool {
	return []server.ServerTool{
		newServerTool(SearchSnippets(client)),
		newServerTool(UploadSnippet(client)),
		newServerTool(VoteSnippet(client)),
		newServerTool(ListPatterns(client)),
	}
}

// decodeArgs decodes tool arguments into out using its json tags and
// validates the result
func decodeArgs(ctx context.Context, args map[string]interface{}, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return err
	}
	return validate.StructCtx(ctx, out)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func SearchSnippets(client *api.Client) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"raysurfer_search",
			mcp.WithDescription("Search cached code snippets matching a task description"),
			mcp.WithString("task", mcp.Required(), mcp.Description("Task description")),
			mcp.WithBoolean("public", mcp.Description("Include community public snippets")),
			mcp.WithNumber("top_k", mcp.Description("Maximum number of results (default 5)")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				Task   string `json:"task" validate:"required"`
				Public bool   `json:"public"`
				TopK   int    `json:"top_k" validate:"omitempty,min=1"`
			}
			var args ToolArguments
			if err := decodeArgs(ctx, req.Params.Arguments, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			r := api.NewSearchRequest(args.Task)
			r.PublicSnips = args.Public
			if args.TopK > 0 {
				r.TopK = args.TopK
			}
			resp, err := client.Search(ctx, r)
			if err != nil {
				return mcp.NewToolResultError(api.Describe(err)), nil
			}
			return jsonResult(resp)
		}
}

func UploadSnippet(client *api.Client) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"raysurfer_upload",
			mcp.WithDescription("Upload source code that solved a task"),
			mcp.WithString("task", mcp.Required(), mcp.Description("Task description")),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path of the code")),
			mcp.WithString("content", mcp.Required(), mcp.Description("Source code")),
			mcp.WithBoolean("failed", mcp.Description("Mark the execution as failed")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				Task    string `json:"task" validate:"required"`
				Path    string `json:"path" validate:"required"`
				Content string `json:"content" validate:"required"`
				Failed  bool   `json:"failed"`
			}
			var args ToolArguments
			if err := decodeArgs(ctx, req.Params.Arguments, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			resp, err := client.Upload(ctx, api.UploadRequest{
				Task:         args.Task,
				FilesWritten: []api.UploadFile{{Path: args.Path, Content: args.Content}},
				Succeeded:    !args.Failed,
				AutoVote:     true,
			})
			if err != nil {
				return mcp.NewToolResultError(api.Describe(err)), nil
			}
			if !resp.Success {
				return mcp.NewToolResultError("upload rejected: " + resp.Message), nil
			}
			return jsonResult(resp)
		}
}

func VoteSnippet(client *api.Client) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"raysurfer_vote",
			mcp.WithDescription("Upvote or downvote a cached code block"),
			mcp.WithString("code_block_id", mcp.Required(), mcp.Description("Code block ID")),
			mcp.WithString("direction", mcp.Required(), mcp.Description("up or down"), mcp.Enum("up", "down")),
			mcp.WithString("task", mcp.Description("Task description for context")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				CodeBlockID string `json:"code_block_id" validate:"required"`
				Direction   string `json:"direction" validate:"required,oneof=up down"`
				Task        string `json:"task"`
			}
			var args ToolArguments
			if err := decodeArgs(ctx, req.Params.Arguments, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			resp, err := client.Vote(ctx, api.VoteRequest{
				CodeBlockID: args.CodeBlockID,
				Succeeded:   args.Direction == "up",
				Task:        args.Task,
			})
			if err != nil {
				return mcp.NewToolResultError(api.Describe(err)), nil
			}
			if !resp.Success {
				return mcp.NewToolResultError("vote rejected: " + resp.Message), nil
			}
			return jsonResult(resp)
		}
}

func ListPatterns(client *api.Client) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"raysurfer_patterns",
			mcp.WithDescription("List proven task patterns from the community registry"),
			mcp.WithString("task", mcp.Description("Optional task description")),
			mcp.WithNumber("top_k", mcp.Description("Maximum number of results (default 5)")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				Task string `json:"task"`
				TopK int    `json:"top_k" validate:"omitempty,min=1"`
			}
			var args ToolArguments
			if err := decodeArgs(ctx, req.Params.Arguments, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			r := api.NewPatternsRequest(args.Task)
			if args.TopK > 0 {
				r.TopK = args.TopK
			}
			resp, err := client.Patterns(ctx, r)
			if err != nil {
				return mcp.NewToolResultError(api.Describe(err)), nil
			}
			return jsonResult(resp)
		}
}
