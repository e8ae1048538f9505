package cli

import (
	"fmt"
	"strings"

	"github.com/morikuni/failure/v2"
	"github.com/raysurfer/raysurfer-cli/api"
	"github.com/raysurfer/raysurfer-cli/log"
	"github.com/raysurfer/raysurfer-cli/mcp"
	"github.com/spf13/cobra"
)

// TransportFactory builds the transport used by API commands
type TransportFactory func(cfg api.Config) (api.Transport, error)

// DefaultTransport talks to the Raysurfer HTTP API
func DefaultTransport(cfg api.Config) (api.Transport, error) {
	t, err := api.NewHTTPTransport(cfg)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// app holds the state shared by the commands of one invocation
type app struct {
	cfg          api.Config
	newTransport TransportFactory
	client       *api.Client

	// Command line flags
	jsonOutput bool
	baseURL    string
}

// Run executes the main CLI functionality
func Run() error {
	cfg, err := api.LoadConfig()
	if err != nil {
		return err
	}
	log.InitLogger(cfg.Debug)

	return NewRootCommand(cfg, DefaultTransport).Execute()
}

// NewRootCommand builds the raysurfer command tree
func NewRootCommand(cfg api.Config, newTransport TransportFactory) *cobra.Command {
	a := &app{
		cfg:          cfg,
		newTransport: newTransport,
	}

	rootCmd := &cobra.Command{
		Use:   "raysurfer",
		Short: "Search, upload, vote, and browse cached code snippets",
		Long: `raysurfer is a command-line client for the Raysurfer code-caching API.

Set RAYSURFER_API_KEY to your API key before running commands:

  raysurfer search "Parse CSV and generate chart" --public
  raysurfer upload "Generate bar chart" chart.py
  raysurfer vote abc123 --up
  raysurfer patterns`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return failure.Wrap(err, failure.WithCode(InvalidArguments), failure.Message(err.Error()))
	})

	rootCmd.PersistentFlags().BoolVarP(&a.jsonOutput, "json", "j", false, "Output raw JSON")
	rootCmd.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "Raysurfer API base URL (overrides RAYSURFER_BASE_URL)")

	mcpCmd := mcp.Command(func() *api.Client { return a.client })
	mcpCmd.PreRunE = a.connect

	rootCmd.AddCommand(
		newSearchCommand(a),
		newUploadCommand(a),
		newVoteCommand(a),
		newPatternsCommand(a),
		newExamplesCommand(a),
		newVersionCommand(a),
		mcpCmd,
	)
	return rootCmd
}

// connect checks the credential and creates the API client.
// It runs before any argument of an API command is looked at.
func (a *app) connect(cmd *cobra.Command, args []string) error {
	cfg := a.cfg
	if a.baseURL != "" {
		cfg.BaseURL = strings.TrimRight(a.baseURL, "/")
	}
	if _, err := cfg.Credential(); err != nil {
		return err
	}

	t, err := a.newTransport(cfg)
	if err != nil {
		return failure.Wrap(err)
	}
	log.Debug("Connected", "base_url", cfg.BaseURL, "command", cmd.Name())
	a.client = api.NewClient(t)
	return nil
}

// exactArgs is cobra.ExactArgs reporting InvalidArguments
func exactArgs(n int) cobra.PositionalArgs {
	return rangeArgs(n, n)
}

// rangeArgs is cobra.RangeArgs reporting InvalidArguments; maxN < 0 means unbounded
func rangeArgs(minN, maxN int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < minN || (maxN >= 0 && len(args) > maxN) {
			return invalidArguments("%s: wrong number of arguments (got %d)\nUsage: %s",
				cmd.Name(), len(args), cmd.UseLine())
		}
		return nil
	}
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if a.jsonOutput {
				return writeJSON(w, map[string]string{
					"version": api.Version,
					"commit":  api.VersionCommit,
				})
			}
			fmt.Fprintf(w, "raysurfer-cli %s\n", api.Version)
			if api.VersionCommit != "" {
				fmt.Fprintf(w, "  commit: %s\n", api.VersionCommit)
			}
			return nil
		},
	}
}
