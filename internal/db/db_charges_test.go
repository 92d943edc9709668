package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/procat-rse/procatsrv/internal/db/dberror"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/db/postgresql"
	"github.com/procat-rse/procatsrv/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chargeFixture creates a department, project, funding source and user
// for the charge and time entry tests, cleaned up in reverse order.
type chargeFixture struct {
	Project *models.Project
	Funding *models.Funding
	User    *models.User
}

func newChargeFixture(t *testing.T, ctx context.Context, prefix string, charging types.ChargingMethod) *chargeFixture {
	t.Helper()

	dept := testDepartment(t, ctx, prefix+" Dept")

	start := date(2026, time.January, 1)
	end := date(2026, time.December, 31)
	project := &models.Project{
		Name:         prefix + " Project",
		Nature:       types.NatureStandard,
		PI:           "Prof Example",
		DepartmentID: dept.DepartmentID,
		StartDate:    &start,
		EndDate:      &end,
		Status:       types.ProjectActive,
		Charging:     charging,
	}
	require.NoError(t, DB(ctx).CreateProject(ctx, project))
	t.Cleanup(func() { DB(ctx).DeleteProject(ctx, project.ProjectID) })

	expiry := date(2026, time.December, 31)
	funding := &models.Funding{
		ProjectID:  project.ProjectID,
		Source:     types.FundingInternal,
		CostCentre: "CC1",
		Activity:   "A1",
		ExpiryDate: &expiry,
		Budget:     decimal.New(1000000, -2),
		DailyRate:  models.DefaultDailyRate,
	}
	require.NoError(t, DB(ctx).CreateFunding(ctx, funding))

	user := &models.User{
		Username: prefix,
		Email:    prefix + "@example.ac.uk",
		FullName: "Fixture User",
	}
	require.NoError(t, DB(ctx).CreateUser(ctx, user))
	t.Cleanup(func() { DB(ctx).DeleteUser(ctx, user.UserID) })

	return &chargeFixture{Project: project, Funding: funding, User: user}
}

func TestTimeEntries(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	fx := newChargeFixture(t, ctx, "dbtimeentries", types.ChargingActual)

	entry := &models.TimeEntry{
		UserID:    fx.User.UserID,
		ProjectID: fx.Project.ProjectID,
		StartTime: time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, time.March, 2, 16, 0, 0, 0, time.UTC),
	}
	require.NoError(t, DB(ctx).CreateTimeEntry(ctx, entry))
	t.Cleanup(func() { DB(ctx).DeleteTimeEntry(ctx, entry.TimeEntryID) })

	// Upsert by Clockify ID: re-running the sync moves the entry rather
	// than duplicating it
	synced := &models.TimeEntry{
		UserID:     fx.User.UserID,
		ProjectID:  fx.Project.ProjectID,
		StartTime:  time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, time.March, 3, 12, 30, 0, 0, time.UTC),
		ClockifyID: "db-test-clockify-1",
	}
	require.NoError(t, DB(ctx).UpsertTimeEntry(ctx, synced))
	t.Cleanup(func() { DB(ctx).DeleteTimeEntry(ctx, synced.TimeEntryID) })
	firstID := synced.TimeEntryID

	synced.EndTime = time.Date(2026, time.March, 3, 14, 0, 0, 0, time.UTC)
	require.NoError(t, DB(ctx).UpsertTimeEntry(ctx, synced))
	assert.Equal(t, firstID, synced.TimeEntryID)

	entries, err := DB(ctx).ListTimeEntries(ctx, postgresql.TimeEntryFilter{
		UserID: fx.User.UserID,
		From:   date(2026, time.March, 1),
		To:     date(2026, time.April, 1),
	})
	assert.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 7.0, entries[0].Hours())
	assert.Equal(t, 5.0, entries[1].Hours())
	assert.Equal(t, "db-test-clockify-1", entries[1].ClockifyID)

	// Link the first entry to a charge and filter on unbilled
	charge := &models.MonthlyCharge{
		ProjectID:   fx.Project.ProjectID,
		FundingID:   fx.Funding.FundingID,
		Amount:      decimal.New(38900, -2),
		ChargeDate:  date(2026, time.March, 1),
		Description: fx.Project.Name + ": March 2026",
	}
	require.NoError(t, DB(ctx).CreateMonthlyCharge(ctx, charge))

	err = DB(ctx).LinkTimeEntriesToCharge(ctx, []uuid.UUID{entry.TimeEntryID}, charge.ChargeID)
	assert.NoError(t, err)

	unbilled, err := DB(ctx).ListTimeEntries(ctx, postgresql.TimeEntryFilter{
		UserID:       fx.User.UserID,
		UnbilledOnly: true,
	})
	assert.NoError(t, err)
	require.Len(t, unbilled, 1)
	assert.Equal(t, synced.TimeEntryID, unbilled[0].TimeEntryID)

	// Unlink by deleting the billed entry, then remove the charge so the
	// project can be deleted by the cleanup
	require.NoError(t, DB(ctx).DeleteTimeEntry(ctx, entry.TimeEntryID))
	require.NoError(t, DB(ctx).DeleteNonManualChargesForMonth(ctx, date(2026, time.March, 1)))
}

func TestMonthlyCharges(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	fx := newChargeFixture(t, ctx, "dbmonthlycharges", types.ChargingProRata)
	month := date(2026, time.May, 1)

	charge := &models.MonthlyCharge{
		ProjectID:   fx.Project.ProjectID,
		FundingID:   fx.Funding.FundingID,
		Amount:      decimal.New(83333, -2),
		ChargeDate:  month,
		Description: fx.Project.Name + ": May 2026",
	}
	require.NoError(t, DB(ctx).CreateMonthlyCharge(ctx, charge))
	t.Cleanup(func() { DB(ctx).DeleteNonManualChargesForMonth(ctx, month) })

	// One charge per (project, funding, month)
	dup := &models.MonthlyCharge{
		ProjectID:  fx.Project.ProjectID,
		FundingID:  fx.Funding.FundingID,
		Amount:     decimal.New(100, -2),
		ChargeDate: month,
	}
	err := DB(ctx).CreateMonthlyCharge(ctx, dup)
	assert.Error(t, err)
	assert.ErrorIs(t, err, dberror.ErrAlreadyExists)

	// The charge line carries the funding report fields for the CSV
	lines, err := DB(ctx).ListChargesForMonth(ctx, month)
	assert.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, fx.Project.Name, lines[0].ProjectName)
	assert.Equal(t, "CC1", lines[0].CostCentre)
	assert.Equal(t, "A1", lines[0].Activity)
	assert.True(t, lines[0].Charge.Amount.Equal(charge.Amount))
	assert.Equal(t, fx.Project.Name+": May 2026", lines[0].Charge.Description)

	total, err := DB(ctx).SumChargesForMonth(ctx, month)
	assert.NoError(t, err)
	assert.True(t, total.Equal(charge.Amount))

	total, err = DB(ctx).SumChargesForFunding(ctx, fx.Funding.FundingID)
	assert.NoError(t, err)
	assert.True(t, total.Equal(charge.Amount))

	totals, err := DB(ctx).MonthlyChargeTotals(ctx, month, month.AddDate(0, 1, 0))
	assert.NoError(t, err)
	require.Len(t, totals, 1)
	assert.True(t, totals[month].Equal(charge.Amount))

	// An empty month has no totals
	empty, err := DB(ctx).MonthlyChargeTotals(ctx, date(2019, time.January, 1), date(2019, time.February, 1))
	assert.NoError(t, err)
	assert.Empty(t, empty)

	// Regeneration deletes the month's non-Manual charges
	err = DB(ctx).DeleteNonManualChargesForMonth(ctx, month)
	assert.NoError(t, err)
	lines, err = DB(ctx).ListChargesForMonth(ctx, month)
	assert.NoError(t, err)
	assert.Empty(t, lines)
}

func TestReportArchive(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	month := date(2019, time.November, 1)
	require.NoError(t, DB(ctx).DeleteReportsForMonth(ctx, month))
	t.Cleanup(func() { DB(ctx).DeleteReportsForMonth(ctx, month) })

	// No report archived yet
	_, err := DB(ctx).GetReportForMonth(ctx, month)
	assert.ErrorIs(t, err, dberror.ErrNotFound)

	report := &models.ReportArchive{
		ReportMonth: month,
		Content:     []byte("compressed-csv"),
	}
	err = DB(ctx).SaveReport(ctx, report)
	assert.NoError(t, err)
	assert.False(t, report.GeneratedAt.IsZero())

	got, err := DB(ctx).GetReportForMonth(ctx, month)
	assert.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, report.Content, got.Content)

	// Regenerating keeps history; the latest row wins
	newer := &models.ReportArchive{
		ReportMonth: month,
		Content:     []byte("compressed-csv-v2"),
	}
	err = DB(ctx).SaveReport(ctx, newer)
	assert.NoError(t, err)

	got, err = DB(ctx).GetReportForMonth(ctx, month)
	assert.NoError(t, err)
	assert.Equal(t, newer.Content, got.Content)
}
