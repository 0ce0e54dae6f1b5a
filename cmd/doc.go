// Package cmd contains the Cobra commands for the kubectl-mcp-server
// application: serve (the MCP server, run by default), version, and
// self-update.
package cmd
