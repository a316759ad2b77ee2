package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "pokedex %s\n", Version)
			_, _ = fmt.Fprintf(out, "  commit: %s\n", GitCommit)
			_, _ = fmt.Fprintf(out, "  built:  %s\n", BuildDate)
		},
	}
}
