package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/procat-rse/procatsrv/internal/db/dbmanager"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/db/postgresql"
	"github.com/procat-rse/procatsrv/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ProCatDB is the interface to the database. One value is bound to a
// single pooled connection; obtain it per request or per job via DB(ctx).
type ProCatDB interface {
	// Departments
	CreateDepartment(ctx context.Context, department *models.Department) error
	GetDepartment(ctx context.Context, departmentID uuid.UUID) (*models.Department, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
	DeleteDepartment(ctx context.Context, departmentID uuid.UUID) error

	// Analysis codes
	CreateAnalysisCode(ctx context.Context, code *models.AnalysisCode) error
	GetAnalysisCode(ctx context.Context, code int) (*models.AnalysisCode, error)
	ListAnalysisCodes(ctx context.Context) ([]models.AnalysisCode, error)
	DeleteAnalysisCode(ctx context.Context, code int) error

	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetAdminUser(ctx context.Context) (*models.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error

	// Projects
	CreateProject(ctx context.Context, project *models.Project) error
	GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	GetProjectByName(ctx context.Context, name string) (*models.Project, error)
	UpdateProject(ctx context.Context, project *models.Project) error
	DeleteProject(ctx context.Context, projectID uuid.UUID) error
	ListProjects(ctx context.Context, limit, offset int) ([]models.Project, error)
	ListProjectsByStatus(ctx context.Context, statuses []types.ProjectStatus) ([]models.Project, error)
	// ListProjectsOverlapping returns dated projects whose [start, end)
	// span overlaps the given period, optionally excluding Manual charging.
	ListProjectsOverlapping(ctx context.Context, start, end time.Time, excludeManual bool) ([]models.Project, error)

	// Funding
	CreateFunding(ctx context.Context, funding *models.Funding) error
	GetFunding(ctx context.Context, fundingID uuid.UUID) (*models.Funding, error)
	UpdateFunding(ctx context.Context, funding *models.Funding) error
	DeleteFunding(ctx context.Context, fundingID uuid.UUID) error
	ListFunding(ctx context.Context, limit, offset int) ([]models.Funding, error)
	ListFundingForProject(ctx context.Context, projectID uuid.UUID) ([]models.Funding, error)
	// SumChargesForFunding totals every monthly charge booked against the
	// funding source, used to derive the funding left.
	SumChargesForFunding(ctx context.Context, fundingID uuid.UUID) (decimal.Decimal, error)

	// Capacities
	CreateCapacity(ctx context.Context, capacity *models.Capacity) error
	ListCapacities(ctx context.Context) ([]models.Capacity, error)
	DeleteCapacity(ctx context.Context, capacityID uuid.UUID) error
	// ListCapacityWindows resolves each capacity entry's end date to the
	// start of the user's next entry, or periodEnd when there is none.
	ListCapacityWindows(ctx context.Context, periodEnd time.Time) ([]models.CapacityWindow, error)

	// Time entries
	CreateTimeEntry(ctx context.Context, entry *models.TimeEntry) error
	UpsertTimeEntry(ctx context.Context, entry *models.TimeEntry) error
	ListTimeEntries(ctx context.Context, filter postgresql.TimeEntryFilter) ([]models.TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, timeEntryID uuid.UUID) error
	LinkTimeEntriesToCharge(ctx context.Context, entryIDs []uuid.UUID, chargeID uuid.UUID) error

	// Monthly charges
	CreateMonthlyCharge(ctx context.Context, charge *models.MonthlyCharge) error
	DeleteNonManualChargesForMonth(ctx context.Context, month time.Time) error
	ListChargesForMonth(ctx context.Context, month time.Time) ([]postgresql.ChargeLine, error)
	SumChargesForMonth(ctx context.Context, month time.Time) (decimal.Decimal, error)
	// MonthlyChargeTotals returns the total charged per month over
	// [from, to), keyed by the first of the month.
	MonthlyChargeTotals(ctx context.Context, from, to time.Time) (map[time.Time]decimal.Decimal, error)

	// Jobs
	InsertJob(ctx context.Context, job *models.Job) error
	ClaimJob(ctx context.Context, now time.Time) (*models.Job, error)
	CompleteJob(ctx context.Context, jobID uuid.UUID) error
	RetryJob(ctx context.Context, jobID uuid.UUID, runAt time.Time, lastError string) error
	FailJob(ctx context.Context, jobID uuid.UUID, lastError string) error
	ReclaimStaleJobs(ctx context.Context, staleBefore time.Time) (int, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error)
	ListJobs(ctx context.Context, limit, offset int) ([]models.Job, error)
	DeleteJob(ctx context.Context, jobID uuid.UUID) error

	// Report archive
	SaveReport(ctx context.Context, report *models.ReportArchive) error
	GetReportForMonth(ctx context.Context, month time.Time) (*models.ReportArchive, error)
	DeleteReportsForMonth(ctx context.Context, month time.Time) error

	// Close releases the underlying connection back to the pool.
	Close(ctx context.Context)
}

var pool dbmanager.Pool

// Init connects the package-wide pool. Must be called before Conn or
// ConnCtx.
func Init(ctx context.Context, dsn string) error {
	p, err := dbmanager.NewPool(ctx, dsn)
	if err != nil {
		return err
	}
	pool = p
	return nil
}

func Conn(ctx context.Context) dbmanager.Conn {
	if pool != nil {
		conn, err := pool.Conn(ctx)
		if err == nil {
			return conn
		}
		log.Ctx(ctx).Error().Err(err).Msg("unable to get db connection")
	}
	return nil
}

type ctxDbKeyType string

const ctxDbKey ctxDbKeyType = "ProCatDb"

// ConnCtx acquires a connection and stores it in the returned context.
func ConnCtx(ctx context.Context) context.Context {
	conn := Conn(ctx)
	return context.WithValue(ctx, ctxDbKey, conn)
}

// DB returns the database interface bound to the connection carried by
// the context.
func DB(ctx context.Context) ProCatDB {
	if conn, ok := ctx.Value(ctxDbKey).(dbmanager.Conn); ok {
		return postgresql.NewProCatDb(conn)
	}
	log.Ctx(ctx).Error().Msg("unable to get db connection from context")
	return nil
}
