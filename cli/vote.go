package cli

import (
	"strings"

	"github.com/raysurfer/raysurfer-cli/api"
	"github.com/spf13/cobra"
)

type voteOptions struct {
	direction   voteDirection
	task        string
	name        string
	description string
}

func newVoteCommand(a *app) *cobra.Command {
	var opts voteOptions

	cmd := &cobra.Command{
		Use:   "vote <snippet_id> --up|--down",
		Short: "Vote on a cached code block",
		Long: `Record a thumbs up (--up) or thumbs down (--down) for a cached code block.
Exactly one direction must be given.`,
		Args:    exactArgs(1),
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runVote(cmd, args[0], &opts)
		},
	}

	opts.direction.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.task, "task", "t", "", "Task description for context")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Code block name")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "Code block description")
	return cmd
}

func (a *app) runVote(cmd *cobra.Command, id string, opts *voteOptions) error {
	up, err := opts.direction.Succeeded()
	if err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return invalidArguments("snippet id must not be empty")
	}

	resp, err := a.client.Vote(cmd.Context(), api.VoteRequest{
		CodeBlockID:          id,
		Succeeded:            up,
		Task:                 opts.task,
		CodeBlockName:        opts.name,
		CodeBlockDescription: opts.description,
	})
	if err != nil {
		return apiError(err, "Vote on %s failed", id)
	}

	p := newPrinter(cmd.OutOrStdout())
	if a.jsonOutput {
		if err := p.json(resp); err != nil {
			return err
		}
	}
	if !resp.Success {
		return rejected("Vote on "+id, resp.Message)
	}
	if a.jsonOutput {
		return nil
	}

	icon := "thumbs down"
	if up {
		icon = "thumbs up"
	}
	p.success(strings.TrimSpace("Voted " + icon + " on " + id + ". " + resp.Message))
	return nil
}
