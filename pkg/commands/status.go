package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mistakes/pkg/runner/status"
)

func addStatus(topLevel *cobra.Command) {
	watch := false

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the mistake count",
		Long: `Print the status line for the displayed flag. With --watch the line is
printed again every time the ledger changes, which makes it usable as a
persistent status indicator in a terminal multiplexer.`,
		Example: `
mistakes status
mistakes status --watch
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := persistence()
			if err != nil {
				return err
			}
			s := status.Status{
				JSON:        output.JSON,
				Watch:       watch,
				Persistence: p,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"Keep running and print the status line whenever it changes.")

	topLevel.AddCommand(cmd)
}
