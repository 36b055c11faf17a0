package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"prettyplots/internal/gallery"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently rendered figures",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := gallery.Open(galleryPath())
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no renders recorded yet")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "WHEN\tKIND\tRECIPE\tOUTPUT")
		for _, e := range entries {
			recipePath := e.RecipePath
			if recipePath == "" {
				recipePath = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				e.RenderedAt.Format("2006-01-02 15:04:05"), e.Kind, recipePath, e.Output)
		}
		return tw.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum entries to list")
}
