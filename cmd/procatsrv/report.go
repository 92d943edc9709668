package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/procat-rse/procatsrv/internal/charging"
	"github.com/procat-rse/procatsrv/internal/config"
	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/tasks"
	"github.com/spf13/cobra"
)

var (
	flagReportMonth int
	flagReportYear  int
	flagReportOut   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the monthly charges report",
	Long:  "Regenerates charges for the given month, archives the journal CSV and writes it to a file or stdout. Defaults to last month.",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().IntVar(&flagReportMonth, "month", 0, "Report month (1-12)")
	reportCmd.Flags().IntVar(&flagReportYear, "year", 0, "Report year")
	reportCmd.Flags().StringVarP(&flagReportOut, "out", "o", "", "Output file (default charges_report_M-YYYY.csv, \"-\" for stdout)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if err := db.Init(ctx, config.Config().DB.DSN); err != nil {
		return err
	}

	now := time.Now()
	month := now.AddDate(0, -1, 0)
	if flagReportMonth != 0 || flagReportYear != 0 {
		if flagReportMonth < 1 || flagReportMonth > 12 {
			return fmt.Errorf("invalid month %d", flagReportMonth)
		}
		year := flagReportYear
		if year == 0 {
			year = now.Year()
		}
		month = time.Date(year, time.Month(flagReportMonth), 1, 0, 0, 0, 0, time.UTC)
	}

	ctx = db.ConnCtx(ctx)
	defer db.DB(ctx).Close(ctx)

	content, err := charging.GenerateReport(ctx, month, now)
	if err != nil {
		return err
	}
	if err := charging.ArchiveReport(ctx, month, content); err != nil {
		return err
	}

	if flagReportOut == "-" {
		_, err = os.Stdout.Write(content)
		return err
	}
	out := flagReportOut
	if out == "" {
		out = tasks.ChargesReportFilename(month)
	}
	if err := os.WriteFile(out, content, 0o644); err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
