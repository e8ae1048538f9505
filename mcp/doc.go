// Package mcp implements the Model Context Protocol server for raysurfer.
//
// The mcp package exposes search, upload, vote and patterns as MCP tools so
// that coding agents can use the Raysurfer cache over stdio.
package mcp
