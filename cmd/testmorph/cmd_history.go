package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"testmorph/internal/render"
)

var (
	historyLimit    int
	historyMarkdown bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent detection results",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum records to show (0 = all)")
	historyCmd.Flags().BoolVar(&historyMarkdown, "markdown", false, "Render the table as Markdown")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.ListRecent(historyLimit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no detections recorded")
		return nil
	}

	mode := render.ASCII
	if historyMarkdown {
		mode = render.Markdown
	}
	tb := render.NewTable(mode)
	tb.Header("ID", "File", "Format", "Confidence", "When")
	tb.Columns(
		render.ColumnConfig{Number: 2, Align: render.AlignLeft, MaxWidth: 48},
		render.ColumnConfig{Number: 4, Align: render.AlignRight},
	)
	for _, r := range recs {
		tb.Row(r.ID, r.FileName, r.Format, render.Percent(r.Confidence), r.CreatedAt)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tb.String())
	return nil
}
