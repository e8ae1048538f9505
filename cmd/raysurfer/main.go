// Command raysurfer is a command-line client for the Raysurfer code-caching API.
package main

import (
	"fmt"
	"os"

	"github.com/morikuni/failure/v2"
	"github.com/raysurfer/raysurfer-cli/cli"
	"github.com/raysurfer/raysurfer-cli/log"
)

func main() {
	if err := cli.Run(); err != nil {
		var userMessage string
		if fmsg := failure.MessageOf(err); fmsg != "" {
			userMessage = fmsg.String()
		} else {
			userMessage = err.Error()
		}
		log.Debug("Command failed", "error", fmt.Sprintf("%+v", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", userMessage)
		os.Exit(cli.ExitCode(err))
	}
}
