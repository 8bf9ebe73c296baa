// Command mtl is a minimal demonstration front end for the engine: a
// render/parse/version CLI, explicitly not the globbing, multi-mode
// output front end spec.md §1 carves out of scope.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mtl",
		Short: "Render Metadata Template Language strings against a file",
	}
	root.AddCommand(newRenderCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mtl version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "mtl v%s\n", version)
			return nil
		},
	}
}
