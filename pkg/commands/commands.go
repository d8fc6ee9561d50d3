package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/mistakes/pkg/commands/options"
	"tableflip.dev/mistakes/pkg/store"
)

var (
	output  = &options.OutputOptions{}
	verbose bool
	config  store.Config
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "mistakes",
		Short: base.Wrap80("Count your mistakes since the day you started paying attention."),
		Long: base.Wrap80(`Keep a running count of mistakes. Every flag marks a day you started
over; recording a mistake counts it against the Total and every flag at once.
The status line shows the count of one chosen flag.`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			config, err = store.LoadConfig()
			if err != nil {
				return err
			}
			configureLogging(verbose || store.Verbose())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log debug details to stderr.")
	options.AddOutputArg(cmd, output)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addFlag(topLevel)
	addStatus(topLevel)
	addSettings(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

func persistence() (store.Persistence, error) {
	return store.Load(config)
}
