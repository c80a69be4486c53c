package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/money-pulse/internal/cli"
	"github.com/Veraticus/money-pulse/internal/quotes"
	"github.com/Veraticus/money-pulse/internal/settings"
	"github.com/Veraticus/money-pulse/internal/view"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the month-to-date dashboard",
		Long: `Build the main-page summary for the month of the reference date:
greeting, per-card spend and cashback, the five largest expenses, and
the currency rates and stock prices from your user settings.

Without --date the latest transaction date in the database is used, so
the dashboard reflects the imported data rather than an empty current
month.`,
		RunE: runDashboard,
	}

	cmd.Flags().String("date", "", `reference time, "2006-01-02 15:04:05" or "2006-01-02"`)
	cmd.Flags().Bool("save", false, "also write the response to the reports directory")
	cmd.Flags().String("file", "", "report filename (default derived from report name and time)")

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	dateFlag, _ := cmd.Flags().GetString("date")
	save, _ := cmd.Flags().GetBool("save")
	file, _ := cmd.Flags().GetString("file")

	txns, closeStore, err := loadTable(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	ref := referenceTime(dateFlag, txns)

	userSettings := settings.Load(viper.GetString("settings.path"))
	provider := quotes.NewClient(settings.LoadQuotesConfig())

	resp := view.MainPage(ctx, txns, ref, userSettings.Currencies, userSettings.Stocks, provider)

	if err := printJSON(resp); err != nil {
		return err
	}

	if save {
		path, err := reportWriter().Write("dashboard", file, resp)
		if err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess("Dashboard saved to " + path))
	}
	return nil
}
