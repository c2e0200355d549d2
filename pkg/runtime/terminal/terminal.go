package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sched-tools/ops-atlas/pkg/models/domain"
	"github.com/sched-tools/ops-atlas/pkg/runtime/terminal/commands"
	"github.com/sched-tools/ops-atlas/pkg/runtime/terminal/export"
	"github.com/sched-tools/ops-atlas/pkg/services/config"
	exportsvc "github.com/sched-tools/ops-atlas/pkg/services/export"
	"github.com/sched-tools/ops-atlas/pkg/services/report"
	"github.com/sched-tools/ops-atlas/pkg/store/reports"
	"github.com/sched-tools/ops-atlas/pkg/store/requests"
)

// CLI represents the command-line interface of the console.
type CLI struct {
	deps     commands.Dependencies
	requests requests.Store
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI.
type Options struct {
	Engine       *report.Engine
	Reports      reports.Store
	Requests     requests.Store
	Exporter     *exportsvc.Exporter
	Profile      config.Profile
	Snapshot     domain.Snapshot
	ExportDir    string
	HistoryLimit int
	Output       io.Writer
}

// NewCLI creates a new CLI instance.
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		requests: opts.Requests,
		deps: commands.Dependencies{
			Engine:       opts.Engine,
			Reports:      opts.Reports,
			Exporter:     opts.Exporter,
			Profile:      opts.Profile,
			Snapshot:     opts.Snapshot,
			ExportDir:    opts.ExportDir,
			HistoryLimit: opts.HistoryLimit,
			Output:       opts.Output,
		},
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Scheduling console reporting tool",
	}

	cmd.AddCommand(commands.NewRunCmd(cli.deps, cli.reporter))
	cmd.AddCommand(commands.NewTemplatesCmd(cli.deps))
	cmd.AddCommand(commands.NewHistoryCmd(cli.deps))
	cmd.AddCommand(commands.NewPurgeCmd(cli.deps))
	cmd.AddCommand(commands.NewSeedCmd(cli.deps, cli.requests))

	return cmd
}
