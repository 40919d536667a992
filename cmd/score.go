package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scoreHeavy, scoreLight []string

// scoreCmd scores a CDR set
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a CDR set by composition across all six CDRs and heavy CDR3 length and hydrophobicity",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newStudio()
		if err != nil {
			return err
		}
		t := st.Score(scoreHeavy, scoreLight)
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "composition\t%.2f\nlength\t%.2f\nmoment\t%.2f\ntotal\t%.2f\n",
			t.Composition, t.Length, t.Moment, t.Total)
		return err
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringSliceVarP(&scoreHeavy, "heavy", "H", nil, "heavy-chain CDRs; the third sets the length and hydrophobicity terms")
	scoreCmd.Flags().StringSliceVarP(&scoreLight, "light", "L", nil, "light-chain CDRs, counted in the composition term")

	scoreCmd.MarkFlagRequired("heavy")
}
