package cli

import (
	"fmt"
	"strings"

	"github.com/raysurfer/raysurfer-cli/api"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type searchOptions struct {
	public         bool
	topK           int
	minScore       float64
	preferComplete bool
	showCode       bool
	pager          bool
}

func newSearchCommand(a *app) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <description>",
		Short: "Search cached code snippets matching a task description",
		Long: `Search the Raysurfer cache for code snippets matching a natural-language
task description. Results are ranked by the service.

By default only your own snippets are searched; --public includes
community-visible snippets as well.`,
		Args:    exactArgs(1),
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSearch(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.public, "public", false, "Include community public snippets")
	cmd.Flags().IntVarP(&opts.topK, "top-k", "k", 5, "Maximum number of results")
	cmd.Flags().Float64VarP(&opts.minScore, "min-score", "m", 0, "Minimum verdict score threshold (0-1)")
	cmd.Flags().BoolVar(&opts.preferComplete, "prefer-complete", true, "Prefer complete snippets")
	cmd.Flags().BoolVarP(&opts.showCode, "show-code", "c", false, "Display source code for each match")
	cmd.Flags().BoolVar(&opts.pager, "pager", false, "Show source code in a pager when writing to a terminal")
	return cmd
}

func (a *app) runSearch(cmd *cobra.Command, description string, opts searchOptions) error {
	task := strings.TrimSpace(description)
	if task == "" {
		return invalidArguments("search description must not be empty")
	}

	req := api.NewSearchRequest(task)
	req.TopK = opts.topK
	req.MinVerdictScore = opts.minScore
	req.PreferComplete = opts.preferComplete
	req.PublicSnips = opts.public

	resp, err := a.client.Search(cmd.Context(), req)
	if err != nil {
		return apiError(err, "Search failed")
	}

	p := newPrinter(cmd.OutOrStdout())
	if a.jsonOutput {
		return p.json(resp)
	}

	p.searchSummary(resp)
	if len(resp.Matches) == 0 {
		p.muted("No matches.")
		return nil
	}
	p.table(lo.Map(resp.Matches, func(m api.SearchMatch, _ int) row { return matchRow(m) }), true)

	if !opts.showCode {
		return nil
	}
	blocks := matchCode(resp.Matches)
	if len(blocks) == 0 {
		return nil
	}
	out, err := p.renderCode(blocks)
	if err != nil {
		return err
	}
	if opts.pager && isTerminal(cmd.OutOrStdout()) {
		return RunPager(fmt.Sprintf("raysurfer search: %s", task), out)
	}
	fmt.Fprintf(p.w, "\n%s", out)
	return nil
}

// matchCode collects the source of every match that carries one
func matchCode(matches []api.SearchMatch) []codeBlock {
	var blocks []codeBlock
	for i, m := range matches {
		if m.CodeBlock == nil || m.CodeBlock.Source == "" {
			continue
		}
		cb := m.CodeBlock
		title, _ := lo.Coalesce(cb.Name, m.Filename, fmt.Sprintf("Match #%d", i+1))
		lang, _ := lo.Coalesce(cb.Language, m.Language, "text")
		blocks = append(blocks, codeBlock{title: title, language: lang, source: cb.Source})
	}
	return blocks
}
