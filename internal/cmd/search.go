package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/pokedex/internal/catalog"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var lf listFlags

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search loaded entries by name",
		Long: `Search entries by name, ignoring case.

Search filters the entries already loaded. With --policy client that is the
whole collection; with the default server policy it is the requested page.

Examples:
  pokedex search char --policy client   # charmander, charmeleon, charizard
  pokedex search saur --page 1          # matches on the first page
  pokedex search pika --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts, args[0], lf)
		},
	}
	cmd.Flags().IntVar(&lf.page, "page", 1, "page number, starting at 1")
	cmd.Flags().BoolVar(&lf.json, "json", false, "output as JSON")
	return cmd
}

func runSearch(cmd *cobra.Command, opts *rootOptions, term string, lf listFlags) error {
	rt, err := opts.buildRuntime(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	ps := catalog.NewPageState(rt.PageSize())
	ps.Search = strings.TrimSpace(term)
	return printPage(cmd, rt, ps, lf)
}
