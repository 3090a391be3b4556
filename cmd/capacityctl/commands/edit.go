package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bhartnell/pmi-scheduler/internal/domain"
	"github.com/bhartnell/pmi-scheduler/internal/editor"
)

// EditCmd изменяет лимиты площадки через форму редактирования
// Не указанные флаги сохраняют текущие значения площадки
func EditCmd(app *AppContext) *cobra.Command {
	var (
		date           string
		maxPerDay      string
		maxPerRotation string
		notes          string
		dryRun         bool
	)

	cmd := &cobra.Command{
		Use:   "edit <source> <id>",
		Short: "Edit capacity limits of a site",
		Long: `Edit capacity limits of an agency or clinical site.
Source is "agency" or "clinical_site". Pass an empty --max-per-rotation or --notes to clear the value.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := domain.ParseSource(args[0])
			if err != nil {
				return err
			}
			key := domain.SiteKey{Source: source, ID: args[1]}

			day, err := parseDateFlag(date)
			if err != nil {
				return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
			}

			overview, err := app.API.GetOverview(app.Ctx, day, domain.CategoryAll)
			if err != nil {
				return fmt.Errorf("failed to get capacity: %w", err)
			}

			list := editor.NewSiteList(overview.Sites, nil)
			site, ok := list.Find(key)
			if !ok {
				return fmt.Errorf("site %s not found", key)
			}

			capability := domain.Capability{UserID: app.UserID, CanEdit: overview.CanEdit}
			form, err := editor.NewForm(site, capability, apiSaver{api: app.API, date: day}, list)
			if err != nil {
				return err
			}
			defer form.Close()

			if cmd.Flags().Changed("max-per-day") {
				form.SetMaxPerDay(maxPerDay)
			}
			if cmd.Flags().Changed("max-per-rotation") {
				form.SetMaxPerRotation(maxPerRotation)
			}
			if cmd.Flags().Changed("notes") {
				form.SetNotes(notes)
			}

			out := cmd.OutOrStdout()
			if dryRun {
				preview, err := form.Preview()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, "Preview (not saved):")
				printSite(out, &preview)
				return nil
			}

			if !form.CanSave() {
				return errors.New("maxPerDay is required")
			}

			updated, err := form.Submit(app.Ctx)
			if err != nil {
				app.Logger.Warn("edit: failed to save site=%s: %v", key, err)
				var saveErr *editor.SaveError
				if errors.As(err, &saveErr) {
					return errors.New(form.ErrorMessage())
				}
				return err
			}
			app.Logger.Info("edit: saved site=%s, maxPerDay=%d", key, updated.MaxPerDay)

			fmt.Fprintln(out, "Saved:")
			printSite(out, updated)
			printCounts(out, list.Counts())
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date used for the current student count, defaults to today")
	cmd.Flags().StringVar(&maxPerDay, "max-per-day", "", "Maximum students per day (>= 1)")
	cmd.Flags().StringVar(&maxPerRotation, "max-per-rotation", "", "Maximum students per rotation (>= 1, empty clears)")
	cmd.Flags().StringVar(&notes, "notes", "", "Capacity notes (empty clears)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the projected utilization without saving")
	return cmd
}
