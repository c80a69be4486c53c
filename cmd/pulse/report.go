package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/money-pulse/internal/cli"
	"github.com/Veraticus/money-pulse/internal/report"
	"github.com/Veraticus/money-pulse/internal/view"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate spending reports",
	}

	cmd.AddCommand(categoryReportCmd())

	return cmd
}

func categoryReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category <name>",
		Short: "Spending in a category over the trailing three months",
		Long: fmt.Sprintf(`List expense transactions in a category within the %d calendar
months ending at the reference date, both endpoints inclusive. The
window uses calendar-month subtraction, not a fixed day count.`, report.SpendingMonths),
		Args: cobra.ExactArgs(1),
		RunE: runCategoryReport,
	}

	cmd.Flags().String("date", "", `reference time, "2006-01-02 15:04:05" or "2006-01-02"`)
	cmd.Flags().Bool("save", false, "also write the report to the reports directory")
	cmd.Flags().String("file", "", "report filename (default derived from report name and time)")

	return cmd
}

func runCategoryReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	category := args[0]
	dateFlag, _ := cmd.Flags().GetString("date")
	save, _ := cmd.Flags().GetBool("save")
	file, _ := cmd.Flags().GetString("file")

	txns, closeStore, err := loadTable(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	ref := referenceTime(dateFlag, txns)
	rows := view.CategoryReport(txns, category, ref)

	if len(rows) == 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("No spending found for category %q", category)))
	}
	if err := printJSON(rows); err != nil {
		return err
	}

	if save && len(rows) > 0 {
		path, err := reportWriter().Write("category_spend", file, rows)
		if err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess("Category report saved to " + path))
	}
	return nil
}
