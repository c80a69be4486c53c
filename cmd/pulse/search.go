package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/money-pulse/internal/cli"
	"github.com/Veraticus/money-pulse/internal/view"
)

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search transaction descriptions",
		Long: `Find transactions whose description contains the query,
case-insensitively. Matches keep their original table order.`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().Bool("save", false, "also write the results to the reports directory")
	cmd.Flags().String("file", "", "report filename (default derived from report name and time)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := args[0]
	save, _ := cmd.Flags().GetBool("save")
	file, _ := cmd.Flags().GetString("file")

	txns, closeStore, err := loadTable(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	results := view.SearchResults(txns, query)

	if len(results) == 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("No transactions match %q", query)))
	}
	if err := printJSON(results); err != nil {
		return err
	}

	if save && len(results) > 0 {
		path, err := reportWriter().Write("search", file, results)
		if err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess("Search results saved to " + path))
	}
	return nil
}
