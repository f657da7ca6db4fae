package terminal

import (
	"io"
	"os"

	"github.com/finova-data/finova-client/pkg/runtime/terminal/commands"
	"github.com/finova-data/finova-client/pkg/runtime/terminal/export"

	"github.com/finova-data/finova-client/pkg/services/config"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Env
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry config.Registry
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		env: &commands.Env{
			Registry: opts.Registry,
			Reporter: export.NewReporter(opts.Output),
			Output:   opts.Output,
		},
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finova",
		Short: "Finova data quality dashboard",
	}

	cmd.PersistentFlags().StringVar(&cli.env.Profile, "profile", config.DefaultProfile,
		"Configuration profile to use")

	cmd.AddCommand(commands.NewLoginCmd(cli.env))
	cmd.AddCommand(commands.NewRegisterCmd(cli.env))
	cmd.AddCommand(commands.NewLogoutCmd(cli.env))
	cmd.AddCommand(commands.NewWhoamiCmd(cli.env))
	cmd.AddCommand(commands.NewAnalyzeCmd(cli.env))
	cmd.AddCommand(commands.NewHistoryCmd(cli.env))
	cmd.AddCommand(commands.NewTrendCmd(cli.env))
	cmd.AddCommand(commands.NewChatCmd(cli.env))
	cmd.AddCommand(commands.NewHealthCmd(cli.env))

	return cmd
}
