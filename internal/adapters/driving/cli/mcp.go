package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worldpincode/pincode-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can look up
postal codes, list locations and build detailed queries.

By default, the server communicates over stdio using JSON-RPC. Use --port
to serve streamable HTTP instead, for example with the MCP Inspector.

Examples:
  # Stdio mode (default, for desktop assistants)
  pincode mcp serve

  # HTTP mode
  pincode mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "pincode": {
        "command": "/path/to/pincode",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	svc, err := requireLookup()
	if err != nil {
		return lookupFailure(err)
	}

	server, err := mcp.NewServer(mcp.PortsFor(svc))
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
