// Command todo runs the todo HTTP service.
//
//	todo serve     migrate the database, then serve HTTP (default)
//	todo migrate   apply pending migrations and exit
//
// Configuration comes from an optional YAML file (TODO_CONFIG_FILE or
// ./config.yaml) overlaid with TODO_* environment variables.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "todo",
		Short:         "Todo HTTP service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := newServeCmd()
	root.AddCommand(serve, newMigrateCmd())

	// running the binary without a subcommand serves
	root.RunE = serve.RunE

	return root
}
