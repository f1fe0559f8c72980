package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/edutrend-cli/internal/dataset"
	"github.com/KaramelBytes/edutrend-cli/internal/inspect"
)

var (
	insDataset    string
	insSheet      string
	insHeadRows   int
	insMaxColumns int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Print the head, columns and schema of a dataset",
	Long: `Load one dataset and print its first rows, its columns and a schema summary.

Without a file, --dataset picks one of the configured datasets (1 = performance,
2 = dropout); without either, the choice is read from standard input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			choice := dataset.Choice(insDataset)
			if choice == "" {
				choice, err = dataset.Prompt(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}
			catalog := dataset.Catalog{Performance: c.PerformancePath(), Dropout: c.DropoutPath()}
			if path, err = catalog.Resolve(choice); err != nil {
				return err
			}
		}
		sheet := c.Sheet
		if insSheet != "" {
			sheet = insSheet
		}
		t, err := dataset.Load(path, dataset.LoadOptions{Sheet: sheet})
		if err != nil {
			return err
		}
		disp := inspect.Display{HeadRows: c.HeadRows, MaxColumns: c.MaxColumns}
		if cmd.Flags().Changed("rows") {
			disp.HeadRows = insHeadRows
		}
		if cmd.Flags().Changed("max-columns") {
			disp.MaxColumns = insMaxColumns
		}
		out := cmd.OutOrStdout()
		inspect.Head(out, t, disp)
		inspect.Columns(out, t)
		inspect.Info(out, t)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&insDataset, "dataset", "", "dataset to load when no file is given: 1 (performance) | 2 (dropout)")
	inspectCmd.Flags().StringVar(&insSheet, "sheet", "", "XLSX: sheet name to read (default first sheet)")
	inspectCmd.Flags().IntVar(&insHeadRows, "rows", 5, "number of head rows to print")
	inspectCmd.Flags().IntVar(&insMaxColumns, "max-columns", 0, "maximum columns to print (0 = all)")
}
