// Package cli implements the command-line interface for raysurfer.
//
// The cli package provides:
// - Subcommands for searching, uploading, voting on and browsing cached snippets
// - Local argument, credential and file validation before any request is sent
// - Terminal rendering of API responses as tables, highlighted code or JSON
// - Mapping of error codes to process exit status
package cli
