package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/worktracker/internal/export"
	"github.com/Tiliavir/worktracker/internal/model"
)

var (
	exportFormat string
	exportOutput string
	exportMonth  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export completed days",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", export.FormatCSV, "Output format: "+strings.Join(export.Formats, ", "))
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file instead of stdout (required for xlsx)")
	exportCmd.Flags().StringVar(&exportMonth, "month", "", "Only export days of this month (YYYY-MM)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if !validFormat(exportFormat) {
		return fmt.Errorf("unknown format %q, use one of %s", exportFormat, strings.Join(export.Formats, ", "))
	}
	if export.Binary(exportFormat) && exportOutput == "" {
		return fmt.Errorf("--output is required for %s", exportFormat)
	}
	if exportMonth != "" {
		if _, err := time.Parse("2006-01", exportMonth); err != nil {
			return fmt.Errorf("invalid --month %q, use YYYY-MM", exportMonth)
		}
	}

	e := mustEnv(cmd)
	days, err := e.store.LoadAll()
	if err != nil {
		fatal(err)
	}
	days = filterMonth(days, exportMonth)

	if err := writeExport(cmd.OutOrStdout(), exportOutput, exportFormat, days); err != nil {
		fatal(err)
	}
	if exportOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d days to %s\n", len(days), exportOutput)
	}
	return nil
}

// writeExport encodes days to path, or to stdout when path is empty. The
// file is closed before returning so a failed final flush is reported.
func writeExport(stdout io.Writer, path, format string, days []model.WorkDay) error {
	if path == "" {
		return export.Write(stdout, format, days)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := export.Write(f, format, days); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func validFormat(format string) bool {
	for _, f := range export.Formats {
		if f == format {
			return true
		}
	}
	return false
}

func filterMonth(days []model.WorkDay, month string) []model.WorkDay {
	if month == "" {
		return days
	}
	var out []model.WorkDay
	for _, d := range days {
		if strings.HasPrefix(d.Date, month+"-") {
			out = append(out, d)
		}
	}
	return out
}
