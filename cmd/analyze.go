package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wagnerlima/glyco-studio/internal/analysis"
)

var (
	hotAntibody, hotAntigen string
	hotCutoff               float64
	contactA, contactB      string
	contactCutoff           float64
	paraHeavy, paraLight    string
	paraCutoff              float64
)

// analyzeCmd groups structure analyses
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a PDB structure",
}

var hotspotsCmd = &cobra.Command{
	Use:   "hotspots <file.pdb>",
	Short: "Rank antibody residues by atom contacts with the antigen",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := analysis.HotSpots{
			Antibody: []byte(strings.ReplaceAll(hotAntibody, ",", "")),
			Antigen:  []byte(strings.ReplaceAll(hotAntigen, ",", "")),
			Cutoff:   hotCutoff,
		}
		return runAnalysis(cmd, args[0], a)
	},
}

var contactsCmd = &cobra.Command{
	Use:   "contacts <file.pdb>",
	Short: "List residues of chain A within a cutoff of chain B",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(contactA) != 1 || len(contactB) != 1 {
			return fmt.Errorf("--chain-a and --chain-b must each be one chain id")
		}
		return runAnalysis(cmd, args[0], analysis.Contacts{A: contactA[0], B: contactB[0], Cutoff: contactCutoff})
	},
}

var paratopeCmd = &cobra.Command{
	Use:     "paratope <file.pdb>",
	Short:   "List chain H and L residues touching the antigen, labelled by region",
	Example: `  glyco-studio analyze paratope complex.pdb --heavy-cdrs GFTFSRYT,ISSSGGST,ARTVRYGMDV --light-cdrs QSVSSY,DAS,QQRSSWPFT`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newStudio()
		if err != nil {
			return err
		}
		a, err := st.Paratope(splitList(paraHeavy), splitList(paraLight), paraCutoff)
		if err != nil {
			return err
		}
		return runAnalysis(cmd, args[0], a)
	},
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.AddCommand(hotspotsCmd)
	analyzeCmd.AddCommand(contactsCmd)
	analyzeCmd.AddCommand(paratopeCmd)

	hotspotsCmd.Flags().StringVar(&hotAntibody, "antibody", "HL", "antibody chain ids")
	hotspotsCmd.Flags().StringVar(&hotAntigen, "antigen", "AB", "antigen chain ids")
	hotspotsCmd.Flags().Float64Var(&hotCutoff, "cutoff", analysis.DefaultHotSpotCutoff, "contact distance in angstroms")

	contactsCmd.Flags().StringVarP(&contactA, "chain-a", "a", "H", "chain whose residues are reported")
	contactsCmd.Flags().StringVarP(&contactB, "chain-b", "b", "A", "partner chain")
	contactsCmd.Flags().Float64Var(&contactCutoff, "cutoff", analysis.DefaultContactCutoff, "contact distance in angstroms")

	paratopeCmd.Flags().StringVar(&paraHeavy, "heavy-cdrs", "", "comma-separated heavy CDR1,CDR2,CDR3 grafted into chain H")
	paratopeCmd.Flags().StringVar(&paraLight, "light-cdrs", "", "comma-separated light CDR1,CDR2,CDR3 grafted into chain L")
	paratopeCmd.Flags().Float64Var(&paraCutoff, "cutoff", analysis.DefaultParatopeCutoff, "contact distance in angstroms")
}

func runAnalysis(cmd *cobra.Command, path string, a analysis.Analyzer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	st, err := newStudio()
	if err != nil {
		return err
	}
	table, err := st.Analyze(cmd.Context(), string(data), a)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "# "+table.Title)
	fmt.Fprintln(w, strings.Join(table.Columns, "\t"))
	for _, row := range table.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}
