package charging

import (
	"context"
	"time"

	"github.com/golang/snappy"
	"github.com/procat-rse/procatsrv/internal/analytics"
	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/db/models"
)

// ArchiveReport stores the rendered CSV for audit, snappy-compressed.
func ArchiveReport(ctx context.Context, month time.Time, content []byte) error {
	report := &models.ReportArchive{
		ReportMonth: analytics.MonthStart(month),
		Content:     snappy.Encode(nil, content),
	}
	if err := db.DB(ctx).SaveReport(ctx, report); err != nil {
		return ErrCharging.Err(err)
	}
	return nil
}

// LoadReport returns the archived CSV for the month, decompressed.
func LoadReport(ctx context.Context, month time.Time) ([]byte, error) {
	report, err := db.DB(ctx).GetReportForMonth(ctx, analytics.MonthStart(month))
	if err != nil {
		return nil, ErrNoReport.Err(err)
	}
	content, err := snappy.Decode(nil, report.Content)
	if err != nil {
		return nil, ErrCharging.Err(err)
	}
	return content, nil
}
