package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the kubectl-mcp-server
// application. It is the entry point when the application is called
// without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kubectl-mcp-server",
	Short: "MCP server exposing gated kubectl operations",
	Long: `kubectl-mcp-server is a Model Context Protocol (MCP) server that exposes
Kubernetes cluster-management operations: kubeconfig context discovery,
context switching, and kubectl command execution.

Command execution comes in two trust tiers. The unrestricted tool forwards
any kubectl command with full privileges; the read-only tool gates every
command through a classifier that rejects mutating operations before a
process is ever spawned.

When run without subcommands, it starts the MCP server (equivalent to
'kubectl-mcp-server serve').`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. Called from the main
// package to inject the build-time version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "kubectl-mcp-server version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newServeCmd())
}
