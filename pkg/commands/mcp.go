package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mistakes/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server on stdin/stdout that exposes the mistake count, the
flags and the ledger commands through the Model Context Protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := persistence()
			if err != nil {
				return err
			}
			runner := mcp.Runner{
				Persistence: p,
				Name:        "mistakes",
				Version:     version,
			}
			return runner.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
