package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/pokedex/internal/pokeapi"
)

var statLabels = []struct{ key, label string }{
	{"hp", "HP"},
	{"attack", "Attack"},
	{"defense", "Defense"},
	{"special-attack", "Sp. Atk"},
	{"special-defense", "Sp. Def"},
	{"speed", "Speed"},
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <name|id|url>",
		Short: "Print the details of one entry",
		Long: `Fetch and print the full record of one entry.

Examples:
  pokedex show pikachu
  pokedex show 6
  pokedex show https://pokeapi.co/api/v2/pokemon/25/ --json   # the API body, unchanged`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, opts, args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the API response body")
	return cmd
}

func runShow(cmd *cobra.Command, opts *rootOptions, ref string, asJSON bool) error {
	rt, err := opts.buildRuntime(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	p, err := rt.Client.GetDetail(cmd.Context(), rt.Client.DetailURL(ref))
	if err != nil {
		return fmt.Errorf("show %s: %w", ref, err)
	}

	if asJSON {
		return writeRaw(cmd.OutOrStdout(), p)
	}
	writeDetail(cmd.OutOrStdout(), p)
	return nil
}

// writeRaw prints the response body as received, indented.
func writeRaw(w io.Writer, p pokeapi.Pokemon) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return fmt.Errorf("indent json: %w", err)
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}

func writeDetail(w io.Writer, p pokeapi.Pokemon) {
	abilities := p.AbilityNames()
	if len(abilities) == 0 {
		abilities = []string{"-"}
	}

	_, _ = fmt.Fprintf(w, "#%03d %s\n", p.ID, p.Name)
	_, _ = fmt.Fprintf(w, "  %-10s %s\n", "types", strings.Join(p.TypeNames(), ", "))
	_, _ = fmt.Fprintf(w, "  %-10s %.1f m\n", "height", p.HeightMeters())
	_, _ = fmt.Fprintf(w, "  %-10s %.1f kg\n", "weight", p.WeightKilograms())
	_, _ = fmt.Fprintf(w, "  %-10s %d\n", "base xp", p.BaseExperience)
	_, _ = fmt.Fprintf(w, "  %-10s %s\n", "abilities", strings.Join(abilities, ", "))
	for _, s := range statLabels {
		_, _ = fmt.Fprintf(w, "  %-10s %3d\n", s.label, p.Stat(s.key))
	}
	if p.Sprites.FrontDefault != "" {
		_, _ = fmt.Fprintf(w, "  %-10s %s\n", "sprite", p.Sprites.FrontDefault)
	}
}
