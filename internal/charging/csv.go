package charging

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/db/postgresql"
	"github.com/shopspring/decimal"
)

// Credit line of the journal: the RSE team account every charge is
// recharged to.
const (
	creditCostCentre = "ITPP"
	creditActivity   = "G80410"
	creditAnalysis   = "162104"
)

// HeaderBlock is the journal header of the CSV report: journal name,
// description and total, followed by the credit line and the column
// headings for the debit lines.
func HeaderBlock(month time.Time, total decimal.Decimal) [][]string {
	yearMonth := month.Format("2006-01")
	amount := total.StringFixed(2)
	return [][]string{
		{"Journal Name", fmt.Sprintf("RCS_MANAGER RSE %s", yearMonth), "", "", ""},
		{"Journal Description", fmt.Sprintf("RCS RSE Recharge for %s", yearMonth), "", "", ""},
		{"Journal Amount", amount, "", "", ""},
		{"", "", "", "", ""},
		{"Cost Centre", "Activity", "Analysis", "Credit", "Line Description"},
		{creditCostCentre, creditActivity, creditAnalysis, amount, fmt.Sprintf("RSE Projects: %s", month.Format("January 2006"))},
		{"", "", "", "", ""},
		{"Cost Centre", "Activity", "Analysis", "Debit", "Line Description"},
	}
}

// ChargesBlock is one debit row per monthly charge, in the funding
// account coordinates the charge is booked against.
func ChargesBlock(lines []postgresql.ChargeLine) [][]string {
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = []string{
			line.CostCentre,
			line.Activity,
			fmt.Sprintf("%d", line.AnalysisCode),
			line.Charge.Amount.StringFixed(2),
			line.Charge.Description,
		}
	}
	return rows
}

// WriteCSV writes the header and charges blocks as CSV rows.
func WriteCSV(w io.Writer, month time.Time, total decimal.Decimal, lines []postgresql.ChargeLine) error {
	writer := csv.NewWriter(w)
	for _, block := range [][][]string{HeaderBlock(month, total), ChargesBlock(lines)} {
		for _, row := range block {
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// BuildCSV renders the journal CSV for the month from the charges on
// record.
func BuildCSV(ctx context.Context, month time.Time) ([]byte, error) {
	total, err := db.DB(ctx).SumChargesForMonth(ctx, month)
	if err != nil {
		return nil, ErrCharging.Err(err)
	}
	lines, err := db.DB(ctx).ListChargesForMonth(ctx, month)
	if err != nil {
		return nil, ErrCharging.Err(err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, month, total, lines); err != nil {
		return nil, ErrCharging.Err(err)
	}
	return buf.Bytes(), nil
}
