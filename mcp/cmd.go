package mcp

import (
	"github.com/raysurfer/raysurfer-cli/api"
	"github.com/spf13/cobra"
)

// Command returns the MCP server command. client is called after the
// command's pre-run hooks have connected to the service.
func Command(client func() *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewServer(client()).Run()
		},
	}
}
