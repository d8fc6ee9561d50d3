package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mistakes/pkg/commands/options"
	"tableflip.dev/mistakes/pkg/ledger"
	"tableflip.dev/mistakes/pkg/runner/settings"
)

func addSettings(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Open the settings form",
		Long: `Without a subcommand, open an interactive form to choose the display mode,
choose which flag is displayed, and delete flags.`,
		Example: `
mistakes settings
mistakes settings display-mode clean
mistakes settings display-from 1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := persistence()
			if err != nil {
				return err
			}
			s := settings.Form{Persistence: p}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	addDisplayMode(cmd)
	addDisplayFrom(cmd)

	topLevel.AddCommand(cmd)
}

func addDisplayMode(topLevel *cobra.Command) {
	modes := make([]string, 0, len(ledger.Modes()))
	for _, m := range ledger.Modes() {
		modes = append(modes, string(m))
	}

	cmd := &cobra.Command{
		Use:   "display-mode <" + strings.Join(modes, "|") + ">",
		Short: "Display mode",
		Long: `Display from a specific date i.e 9 mistakes since 1967-06-07 (since-date)
OR display without the date (clean).`,
		ValidArgs: modes,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := persistence()
			if err != nil {
				return err
			}
			s := settings.Mode{
				Mode:        args[0],
				JSON:        output.JSON,
				Persistence: p,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

func addDisplayFrom(topLevel *cobra.Command) {
	io := &options.IndexOptions{}

	cmd := &cobra.Command{
		Use:   "display-from <index>",
		Short: "Display from index",
		Long:  "Which flag to display mistakes from (0 = total, 1 = first flag, etc.)",
		Args: func(cmd *cobra.Command, args []string) error {
			return options.ParseIndexArg(args, io)
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return indexCompletions(cmd, toComplete, false), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := persistence()
			if err != nil {
				return err
			}
			s := settings.From{
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
