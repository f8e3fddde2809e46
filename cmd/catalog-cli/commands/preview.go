package commands

import (
	"os"

	"gamecatalog/lib/catalog/sink"
	"gamecatalog/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var (
	previewRows  int
	previewWidth int
)

func init() {
	previewCmd.Flags().IntVarP(&previewRows, "rows", "n", 10, "The number of rows to print, 0 for all.")
	previewCmd.Flags().IntVar(&previewWidth, "width", 40, "Truncate cells wider than this.")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview <path.csv>",
	Short: "Prints the first rows of a dataset produced by crawl.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file, err := os.Open(args[0])
		if err != nil {
			serviceutil.Fatal("failed to open csv", err)
		}
		defer file.Close()

		header, rows, err := sink.ReadCSV(file)
		if err != nil {
			serviceutil.Fatal("failed to read csv", err)
		}
		if previewRows > 0 && len(rows) > previewRows {
			rows = rows[:previewRows]
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(toRow(header))
		for _, row := range rows {
			t.AppendRow(toRow(row))
		}

		configs := make([]table.ColumnConfig, len(header))
		for i := range header {
			configs[i] = table.ColumnConfig{
				Number:           i + 1,
				WidthMax:         previewWidth,
				WidthMaxEnforcer: text.Trim,
			}
		}
		t.SetColumnConfigs(configs)
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, cell := range cells {
		row[i] = cell
	}
	return row
}
