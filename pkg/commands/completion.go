package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/mistakes/pkg/commands/options"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(mistakes completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(mistakes completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletionV2(os.Stdout, true)
		},
	}

	topLevel.AddCommand(cmd)
}

func indexCompletions(cmd *cobra.Command, toComplete string, skipTotal bool) []string {
	p, err := persistence()
	if err != nil {
		return nil
	}
	s, err := p.Load(cmd.Context())
	if err != nil {
		return nil
	}
	return options.IndexCompletions(s, toComplete, skipTotal)
}
