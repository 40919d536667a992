package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wagnerlima/glyco-studio/internal/structure"
)

// presetsCmd lists backbone presets
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List backbone placement presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSTEP\tRADIUS\tRISE\tATOMS/RES\tDESCRIPTION")
		for _, p := range structure.Presets() {
			name := p.Name
			if name == cfg.Preset {
				name += "*"
			}
			fmt.Fprintf(w, "%s\t%.0f\t%.1f\t%.1f\t%d\t%s\n", name, p.Step, p.Radius, p.Rise, p.AtomsPerResidue(), p.Description)
		}
		return w.Flush()
	},
}

// motifsCmd lists motifs in the candidate library
var motifsCmd = &cobra.Command{
	Use:   "motifs",
	Short: "List glycan motifs with library antibodies",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newStudio()
		if err != nil {
			return err
		}
		for _, m := range st.Motifs() {
			fmt.Fprintln(cmd.OutOrStdout(), m)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(motifsCmd)
}
