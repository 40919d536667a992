package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wagnerlima/glyco-studio/internal/studio"
)

var antigenReq studio.AntigenRequest
var antigenOut string

// buildCmd builds an antigen model
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a synthetic backbone model of a glycan-carrier conjugate",
	Long: `Build a synthetic backbone model of a glycan-carrier conjugate.

The carrier is traced as chain A with the selected preset. Glycan and linker
SMILES are recorded in the header only; no glycan atoms are placed.`,
	Example: `  glyco-studio build --carrier MKTAYIAKQR --glycan "CC(=O)N[C@@H]1..." --out tn.pdb`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newStudio()
		if err != nil {
			return err
		}
		out, err := st.BuildAntigen(antigenReq)
		if err != nil {
			return err
		}
		slog.Debug("antigen built", "atoms", out.Atoms, "preset", out.Preset, "format", out.Format)
		return writeOutput(cmd, antigenOut, out.Text)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&antigenReq.Carrier, "carrier", "c", "", "carrier protein sequence")
	buildCmd.Flags().StringVarP(&antigenReq.Glycan, "glycan", "g", "", "glycan SMILES")
	buildCmd.Flags().StringVarP(&antigenReq.Linker, "linker", "l", "", "linker SMILES")
	buildCmd.Flags().StringVar(&antigenReq.Name, "name", "antigen", "model name")
	buildCmd.Flags().StringVar(&antigenReq.Preset, "backbone", "", "backbone preset (default from --preset)")
	buildCmd.Flags().StringVarP(&antigenReq.Format, "format", "f", "pdb", "output format: pdb or cif")
	buildCmd.Flags().StringVarP(&antigenOut, "out", "o", "", "output file (default stdout)")

	buildCmd.MarkFlagRequired("carrier")
}
