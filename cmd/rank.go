package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var rankShowSeq bool

// rankCmd ranks library candidates for a motif
var rankCmd = &cobra.Command{
	Use:   "rank <motif>",
	Short: "Rank library antibodies for a glycan motif",
	Long: `Graft and score every library antibody for a glycan motif and print them
best first. See "glyco-studio motifs" for the available motifs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newStudio()
		if err != nil {
			return err
		}
		ranked := st.Rank(args[0])
		if len(ranked) == 0 {
			return fmt.Errorf("no candidates for motif %q (known: %s)", args[0], strings.Join(st.Motifs(), ", "))
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tNAME\tSCORE\tH3")
		for i, c := range ranked {
			h3 := ""
			if len(c.HeavyCDRs) > 2 {
				h3 = c.HeavyCDRs[2]
			}
			fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\n", i+1, c.Name, c.Score, h3)
			if rankShowSeq {
				fmt.Fprintf(w, "\t  H\t\t%s\n\t  L\t\t%s\n", c.Heavy, c.Light)
			}
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().BoolVarP(&rankShowSeq, "sequences", "s", false, "print grafted heavy and light chains")
}
