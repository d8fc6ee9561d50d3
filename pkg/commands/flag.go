package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mistakes/pkg/commands/options"
	"tableflip.dev/mistakes/pkg/runner/flags"
)

func addFlag(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "flag",
		Short: "Set, delete and list flags",
		Example: `
mistakes flag new
mistakes flag list
mistakes flag delete 2
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addFlagNew(cmd)
	addFlagDelete(cmd)
	addFlagList(cmd)

	topLevel.AddCommand(cmd)
}

func addFlagNew(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "new",
		Aliases: []string{"set"},
		Short:   "Set new flag date",
		Long:    "Start a new flag today. Only one flag can start on a given day.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := persistence()
			if err != nil {
				return err
			}
			s := flags.New{
				JSON:        output.JSON,
				Persistence: p,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

func addFlagDelete(topLevel *cobra.Command) {
	io := &options.IndexOptions{}

	cmd := &cobra.Command{
		Use:     "delete <index>",
		Aliases: []string{"rm"},
		Short:   "Delete this flag",
		Long:    "Delete a flag by index. The Total flag at index 0 can not be deleted.",
		Example: `
mistakes flag delete 1
`,
		Args: func(cmd *cobra.Command, args []string) error {
			return options.ParseIndexArg(args, io)
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return indexCompletions(cmd, toComplete, true), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := persistence()
			if err != nil {
				return err
			}
			s := flags.Delete{
				Index:       io.Index,
				JSON:        output.JSON,
				Persistence: p,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

func addFlagList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List flags and their mistake counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := persistence()
			if err != nil {
				return err
			}
			s := flags.List{
				JSON:        output.JSON,
				Persistence: p,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
