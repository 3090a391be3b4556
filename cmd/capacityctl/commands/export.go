package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// ExportCmd скачивает выгрузку всех площадок в файл
func ExportCmd(app *AppContext) *cobra.Command {
	var (
		date   string
		format string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the capacity export (all sites)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDateFlag(date)
			if err != nil {
				return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
			}

			file, err := app.API.Export(app.Ctx, day, format)
			if err != nil {
				return fmt.Errorf("failed to export capacity: %w", err)
			}

			path := filepath.Join(outDir, filepath.Base(file.Filename))
			if err := os.WriteFile(path, file.Content, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			app.Logger.Info("export: wrote %d bytes to %s", len(file.Content), path)

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&format, "format", "csv", "File format: csv or xlsx")
	cmd.Flags().StringVarP(&outDir, "output-dir", "o", ".", "Directory to write the file to")
	return cmd
}
