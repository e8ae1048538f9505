package cli

import (
	"fmt"
	"strings"

	"github.com/raysurfer/raysurfer-cli/api"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newExamplesCommand(a *app) *cobra.Command {
	var k int

	cmd := &cobra.Command{
		Use:     "examples <task>",
		Short:   "Show few-shot examples for a task",
		Args:    exactArgs(1),
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			task := strings.TrimSpace(args[0])
			if task == "" {
				return invalidArguments("task description must not be empty")
			}

			resp, err := a.client.FewShotExamples(cmd.Context(), api.FewShotRequest{Task: task, K: k})
			if err != nil {
				return apiError(err, "Examples lookup failed")
			}

			p := newPrinter(cmd.OutOrStdout())
			if a.jsonOutput {
				return p.json(resp)
			}
			if len(resp.Examples) == 0 {
				p.muted("No examples found.")
				return nil
			}

			out, err := p.renderCode(lo.Map(resp.Examples, func(ex api.FewShotExample, i int) codeBlock {
				title, _ := lo.Coalesce(ex.Task, "untitled")
				code, _ := lo.Coalesce(ex.Code, "(no code)")
				return codeBlock{
					title:    fmt.Sprintf("Example %d - %s", i+1, title),
					language: "python",
					source:   code,
				}
			}))
			if err != nil {
				return err
			}
			fmt.Fprint(p.w, out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&k, "k", "k", 3, "Number of examples")
	return cmd
}
