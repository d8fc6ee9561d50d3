package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mistakes/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the ledger and where it is stored.",
		Example: `
mistakes info
mistakes info --json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := persistence()
			if err != nil {
				return err
			}
			s := info.Info{
				Config:      config,
				Persistence: p,
				JSON:        output.JSON,
				Out:         cmd.OutOrStdout(),
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
