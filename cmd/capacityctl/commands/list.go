package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
)

// ListCmd выводит площадки категории и счетчики по всем площадкам
func ListCmd(app *AppContext) *cobra.Command {
	var (
		date     string
		category string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List site capacity for a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDateFlag(date)
			if err != nil {
				return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
			}
			cat, err := domain.ParseCategory(category)
			if err != nil {
				return err
			}

			overview, err := app.API.GetOverview(app.Ctx, day, cat)
			if err != nil {
				return fmt.Errorf("failed to get capacity: %w", err)
			}
			app.Logger.Info("list: date=%s, category=%s, sites=%d", overview.Date, overview.Category, len(overview.Sites))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Site capacity for %s (%s)\n", overview.Date, overview.Category)
			printCounts(out, overview.Counts)
			fmt.Fprintln(out)
			return printSites(out, overview.Sites)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&category, "category", "all", "Category: all, ems, hospital, clinical_site")
	return cmd
}
