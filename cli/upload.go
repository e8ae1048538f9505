package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/morikuni/failure/v2"
	"github.com/raysurfer/raysurfer-cli/api"
	"github.com/spf13/cobra"
)

type uploadOptions struct {
	failed     bool
	noAutoVote bool
}

func newUploadCommand(a *app) *cobra.Command {
	var opts uploadOptions

	cmd := &cobra.Command{
		Use:   "upload <description> <file> [file...]",
		Short: "Upload code files as a cached execution result",
		Long: `Upload one or more source files together with the task description they
solve. The service assigns and returns an identifier for each stored
code block.`,
		Args:    rangeArgs(2, -1),
		PreRunE: a.connect,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runUpload(cmd, args[0], args[1:], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.failed, "failed", false, "Mark the execution as failed")
	cmd.Flags().BoolVar(&opts.noAutoVote, "no-auto-vote", false, "Disable automatic upvote")
	return cmd
}

func (a *app) runUpload(cmd *cobra.Command, description string, paths []string, opts uploadOptions) error {
	task := strings.TrimSpace(description)
	if task == "" {
		return invalidArguments("upload description must not be empty")
	}

	files := make([]api.UploadFile, 0, len(paths))
	for _, path := range paths {
		f, err := readUploadFile(path)
		if err != nil {
			return err
		}
		files = append(files, f)
	}

	resp, err := a.client.Upload(cmd.Context(), api.UploadRequest{
		Task:         task,
		FilesWritten: files,
		Succeeded:    !opts.failed,
		AutoVote:     !opts.noAutoVote,
	})
	if err != nil {
		return apiError(err, "Upload failed")
	}

	p := newPrinter(cmd.OutOrStdout())
	if a.jsonOutput {
		if err := p.json(resp); err != nil {
			return err
		}
	}
	if !resp.Success {
		return rejected("Upload", resp.Message)
	}
	if a.jsonOutput {
		return nil
	}

	p.success(strings.TrimSpace("Uploaded successfully. " + resp.Message))
	if len(resp.CodeBlockIDs) > 0 {
		fmt.Fprintf(p.w, "Code block IDs: %s\n", strings.Join(resp.CodeBlockIDs, ", "))
	}
	return nil
}

// readUploadFile loads a file for upload, failing before any request is made
func readUploadFile(path string) (api.UploadFile, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return api.UploadFile{}, failure.New(FileNotFound,
			failure.Message(fmt.Sprintf("File not found: %s", path)),
			failure.Context{"path": path},
		)
	}
	if err != nil {
		return api.UploadFile{}, failure.Wrap(err,
			failure.Message(fmt.Sprintf("Cannot read %s: %v", path, err)),
		)
	}
	if info.IsDir() {
		return api.UploadFile{}, invalidArguments("%s is a directory, not a file", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return api.UploadFile{}, failure.Wrap(err,
			failure.Message(fmt.Sprintf("Cannot read %s: %v", path, err)),
		)
	}
	if len(content) == 0 {
		return api.UploadFile{}, failure.New(EmptyContent,
			failure.Message(fmt.Sprintf("File is empty: %s", path)),
			failure.Context{"path": path},
		)
	}

	return api.UploadFile{
		Path:    filepath.ToSlash(filepath.Clean(path)),
		Content: string(content),
	}, nil
}
