package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mistakes/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"oops", "mistake"},
		Short:   "Add mistake",
		Example: `
mistakes add
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := persistence()
			if err != nil {
				return err
			}
			s := add.Add{
				JSON:        output.JSON,
				Persistence: p,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
