package cli

import (
	"strings"

	"github.com/raysurfer/raysurfer-cli/api"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type patternsOptions struct {
	codeBlockID string
	minThumbsUp int
	topK        int
}

func newPatternsCommand(a *app) *cobra.Command {
	var opts patternsOptions

	cmd := &cobra.Command{
		Use:   "patterns [task]",
		Short: "List proven task patterns from the community registry",
		Long: `List frequently cached patterns aggregated by the service. An optional
task description narrows the listing.`,
		Args:    rangeArgs(0, 1),
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			var task string
			if len(args) == 1 {
				task = strings.TrimSpace(args[0])
			}
			return a.runPatterns(cmd, task, opts)
		},
	}

	cmd.Flags().StringVar(&opts.codeBlockID, "id", "", "Filter by code block ID")
	cmd.Flags().IntVar(&opts.minThumbsUp, "min-up", 1, "Minimum thumbs-up count")
	cmd.Flags().IntVarP(&opts.topK, "top-k", "k", 5, "Maximum number of results")
	return cmd
}

func (a *app) runPatterns(cmd *cobra.Command, task string, opts patternsOptions) error {
	req := api.NewPatternsRequest(task)
	req.CodeBlockID = opts.codeBlockID
	req.MinThumbsUp = opts.minThumbsUp
	req.TopK = opts.topK

	resp, err := a.client.Patterns(cmd.Context(), req)
	if err != nil {
		return apiError(err, "Patterns lookup failed")
	}

	p := newPrinter(cmd.OutOrStdout())
	if a.jsonOutput {
		return p.json(resp)
	}
	if len(resp.Patterns) == 0 {
		p.muted("No patterns found.")
		return nil
	}
	p.table(lo.Map(resp.Patterns, func(e api.PatternEntry, _ int) row { return patternRow(e) }), false)
	return nil
}
