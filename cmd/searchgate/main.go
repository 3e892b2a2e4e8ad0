package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

var (
	rootCmd = &cobra.Command{
		Use:           "searchgate",
		Short:         "Serper.dev search tools over HTTP, MCP and A2A",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  "Serve the tool catalog over REST, MCP streamable HTTP and, when configured, A2A.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	mcpCmd = &cobra.Command{
		Use:   "mcp",
		Short: "Serve the tool catalog over MCP on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP(cmd.Context())
		},
	}

	toolsCmd = &cobra.Command{
		Use:   "tools",
		Short: "Print the plugin manifest with every tool schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTools(cmd.OutOrStdout())
		},
	}

	callCmd = &cobra.Command{
		Use:   "call <tool> [json-arguments]",
		Short: "Invoke one tool and print its result",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) > 1 {
				raw = args[1]
			}
			return runCall(cmd.Context(), cmd.OutOrStdout(), args[0], raw)
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the searchgate version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "searchgate %s\n", version)
		},
	}

	configPath string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
