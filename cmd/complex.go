package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wagnerlima/glyco-studio/internal/studio"
)

var complexReq studio.ComplexRequest
var complexMotif, complexOut string

// complexCmd stacks carrier and antibody chains into one structure
var complexCmd = &cobra.Command{
	Use:   "complex",
	Short: "Combine a carrier (A) with heavy (H) and light (L) chains in one structure",
	Long: `Combine a carrier (A) with heavy (H) and light (L) chains in one structure.

Chains are stacked along Z so they never overlap. Pass --motif instead of
--heavy/--light to use the top-ranked antibody for that motif.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newStudio()
		if err != nil {
			return err
		}
		req := complexReq
		if req.Heavy == "" && req.Light == "" && complexMotif != "" {
			e, err := st.Engineer(complexMotif)
			if err != nil {
				return err
			}
			req.Heavy, req.Light = e.Candidate.Heavy, e.Candidate.Light
		}
		out, err := st.Combine(req)
		if err != nil {
			return err
		}
		return writeOutput(cmd, complexOut, out.Text)
	},
}

func init() {
	rootCmd.AddCommand(complexCmd)

	complexCmd.Flags().StringVarP(&complexReq.Carrier, "carrier", "c", "", "carrier protein sequence (chain A)")
	complexCmd.Flags().StringVar(&complexReq.Heavy, "heavy", "", "heavy chain sequence (chain H)")
	complexCmd.Flags().StringVar(&complexReq.Light, "light", "", "light chain sequence (chain L)")
	complexCmd.Flags().StringVarP(&complexMotif, "motif", "m", "", "engineer the antibody from this motif")
	complexCmd.Flags().StringVar(&complexReq.Name, "name", "complex", "model name")
	complexCmd.Flags().StringVar(&complexReq.Preset, "backbone", "", "backbone preset (default from --preset)")
	complexCmd.Flags().StringVarP(&complexReq.Format, "format", "f", "pdb", "output format: pdb or cif")
	complexCmd.Flags().StringVarP(&complexOut, "out", "o", "", "output file (default stdout)")

	complexCmd.MarkFlagRequired("carrier")
}
