package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var graftHeavy, graftLight []string
var graftOut string

// graftCmd grafts CDRs into the trastuzumab frameworks
var graftCmd = &cobra.Command{
	Use:     "graft",
	Short:   "Graft CDRs into the trastuzumab frameworks and print FASTA",
	Example: `  glyco-studio graft --heavy GYTFTSYW,INPSNGGT,ARGGYDGSFDY --light QSLVHSNGNTY,KVS,SQSTHVPLT`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newStudio()
		if err != nil {
			return err
		}
		g, err := st.Graft(graftHeavy, graftLight)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "score %.2f (composition %.2f, length %.2f, moment %.2f)\n",
			g.Terms.Total, g.Terms.Composition, g.Terms.Length, g.Terms.Moment)
		return writeOutput(cmd, graftOut, g.FASTA)
	},
}

func init() {
	rootCmd.AddCommand(graftCmd)

	graftCmd.Flags().StringSliceVarP(&graftHeavy, "heavy", "H", nil, "heavy-chain CDR1,CDR2,CDR3")
	graftCmd.Flags().StringSliceVarP(&graftLight, "light", "L", nil, "light-chain CDR1,CDR2,CDR3")
	graftCmd.Flags().StringVarP(&graftOut, "out", "o", "", "FASTA output file (default stdout)")

	graftCmd.MarkFlagRequired("heavy")
	graftCmd.MarkFlagRequired("light")
}
