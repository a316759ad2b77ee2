package cmd

import (
	"github.com/spf13/cobra"

	"github.com/five82/pokedex/internal/app"
	"github.com/five82/pokedex/internal/catalog"
)

type listFlags struct {
	page int
	json bool
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var lf listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the catalog",
		Long: `Print one page of the catalog as a table.

Examples:
  pokedex list                      # first page
  pokedex list --page 3 --limit 20  # entries 41-60
  pokedex list --policy client      # fetch the collection once, slice locally
  pokedex list --json               # machine-readable output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts, lf)
		},
	}
	cmd.Flags().IntVar(&lf.page, "page", 1, "page number, starting at 1")
	cmd.Flags().BoolVar(&lf.json, "json", false, "output as JSON")
	return cmd
}

func runList(cmd *cobra.Command, opts *rootOptions, lf listFlags) error {
	rt, err := opts.buildRuntime(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	ps := catalog.NewPageState(rt.PageSize())
	return printPage(cmd, rt, ps, lf)
}

// printPage loads the requested page of ps and prints it.
func printPage(cmd *cobra.Command, rt *app.Runtime, ps catalog.PageState, lf listFlags) error {
	orch := rt.Catalog
	policy := orch.Policy()

	// The page is set directly: SetPage clamps against a total that is not
	// known until the first load.
	ps.CurrentPage = max(lf.page, 1)
	res := orch.Load(cmd.Context(), ps)
	ps, _ = catalog.Reduce(ps, catalog.Loaded{Total: res.Total}, policy)

	view := orch.Display(ps)
	var suggestions []string
	if view.NoResults && ps.Search != "" {
		suggestions = orch.Suggest(ps.Search, 3)
	}

	if lf.json {
		return writeJSON(cmd.OutOrStdout(), newPageOutput(view, ps, policy, suggestions))
	}
	writePage(cmd.OutOrStdout(), view, ps, suggestions)
	return nil
}
