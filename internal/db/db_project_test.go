package db

import (
	"context"
	"testing"
	"time"

	"github.com/procat-rse/procatsrv/internal/db/dberror"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDepartment(t *testing.T, ctx context.Context, name string) *models.Department {
	t.Helper()
	dept := &models.Department{Name: name, Faculty: types.FacultyEngineering}
	require.NoError(t, DB(ctx).CreateDepartment(ctx, dept))
	t.Cleanup(func() { DB(ctx).DeleteDepartment(ctx, dept.DepartmentID) })
	return dept
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProjectCRUD(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	dept := testDepartment(t, ctx, "DB Test Dept Projects")

	start := date(2026, time.January, 1)
	end := date(2026, time.December, 31)
	project := &models.Project{
		Name:         "DB Test Project",
		Nature:       types.NatureStandard,
		PI:           "Prof Example",
		DepartmentID: dept.DepartmentID,
		StartDate:    &start,
		EndDate:      &end,
		Status:       types.ProjectActive,
		Charging:     types.ChargingActual,
	}

	// Test successful project creation
	err := DB(ctx).CreateProject(ctx, project)
	assert.NoError(t, err)
	defer DB(ctx).DeleteProject(ctx, project.ProjectID)

	// Test trying to create a project with the same name (should return ErrAlreadyExists)
	dup := &models.Project{
		Name:         "DB Test Project",
		Nature:       types.NatureSupport,
		PI:           "Prof Example",
		DepartmentID: dept.DepartmentID,
		Status:       types.ProjectDraft,
		Charging:     types.ChargingManual,
	}
	err = DB(ctx).CreateProject(ctx, dup)
	assert.Error(t, err)
	assert.ErrorIs(t, err, dberror.ErrAlreadyExists)

	// Test retrieving the project by ID and by name
	got, err := DB(ctx).GetProject(ctx, project.ProjectID)
	assert.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, project.Name, got.Name)
	require.NotNil(t, got.StartDate)
	assert.True(t, got.StartDate.Equal(start))
	assert.Nil(t, got.LeadID)

	got, err = DB(ctx).GetProjectByName(ctx, "DB Test Project")
	assert.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, project.ProjectID, got.ProjectID)

	// Test updating the project
	project.Status = types.ProjectCompleted
	project.Charging = types.ChargingProRata
	err = DB(ctx).UpdateProject(ctx, project)
	assert.NoError(t, err)
	got, err = DB(ctx).GetProject(ctx, project.ProjectID)
	assert.NoError(t, err)
	assert.Equal(t, types.ProjectCompleted, got.Status)
	assert.Equal(t, types.ChargingProRata, got.Charging)

	// Test deleting the project, then retrieving it (should return ErrNotFound)
	err = DB(ctx).DeleteProject(ctx, project.ProjectID)
	assert.NoError(t, err)
	got, err = DB(ctx).GetProject(ctx, project.ProjectID)
	assert.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, dberror.ErrNotFound)

	// Updating a deleted project should return ErrNotFound
	err = DB(ctx).UpdateProject(ctx, project)
	assert.Error(t, err)
	assert.ErrorIs(t, err, dberror.ErrNotFound)
}

func TestListProjectsOverlapping(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	dept := testDepartment(t, ctx, "DB Test Dept Overlap")

	newProject := func(name string, start, end time.Time, charging types.ChargingMethod) *models.Project {
		p := &models.Project{
			Name:         name,
			Nature:       types.NatureStandard,
			PI:           "Prof Example",
			DepartmentID: dept.DepartmentID,
			StartDate:    &start,
			EndDate:      &end,
			Status:       types.ProjectActive,
			Charging:     charging,
		}
		require.NoError(t, DB(ctx).CreateProject(ctx, p))
		t.Cleanup(func() { DB(ctx).DeleteProject(ctx, p.ProjectID) })
		return p
	}

	inside := newProject("DB Overlap Inside", date(2026, time.March, 1), date(2026, time.September, 30), types.ChargingActual)
	manual := newProject("DB Overlap Manual", date(2026, time.March, 1), date(2026, time.September, 30), types.ChargingManual)
	before := newProject("DB Overlap Before", date(2025, time.January, 1), date(2025, time.December, 31), types.ChargingActual)

	start := date(2026, time.June, 1)
	end := date(2026, time.July, 1)

	projects, err := DB(ctx).ListProjectsOverlapping(ctx, start, end, false)
	assert.NoError(t, err)
	ids := make(map[string]bool)
	for i := range projects {
		ids[projects[i].Name] = true
	}
	assert.True(t, ids[inside.Name])
	assert.True(t, ids[manual.Name])
	assert.False(t, ids[before.Name])

	// Excluding Manual charging drops the manual project
	projects, err = DB(ctx).ListProjectsOverlapping(ctx, start, end, true)
	assert.NoError(t, err)
	ids = make(map[string]bool)
	for i := range projects {
		ids[projects[i].Name] = true
	}
	assert.True(t, ids[inside.Name])
	assert.False(t, ids[manual.Name])
}

func TestFundingCRUD(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	dept := testDepartment(t, ctx, "DB Test Dept Funding")
	start := date(2026, time.January, 1)
	end := date(2026, time.December, 31)
	project := &models.Project{
		Name:         "DB Test Funding Project",
		Nature:       types.NatureStandard,
		PI:           "Prof Example",
		DepartmentID: dept.DepartmentID,
		StartDate:    &start,
		EndDate:      &end,
		Status:       types.ProjectActive,
		Charging:     types.ChargingActual,
	}
	require.NoError(t, DB(ctx).CreateProject(ctx, project))
	defer DB(ctx).DeleteProject(ctx, project.ProjectID)

	late := date(2026, time.December, 31)
	early := date(2026, time.June, 30)
	f1 := &models.Funding{
		ProjectID:  project.ProjectID,
		Source:     types.FundingInternal,
		ExpiryDate: &late,
		Budget:     decimal.New(389000, -2),
		DailyRate:  models.DefaultDailyRate,
	}
	err := DB(ctx).CreateFunding(ctx, f1)
	assert.NoError(t, err)

	f2 := &models.Funding{
		ProjectID:   project.ProjectID,
		Source:      types.FundingExternal,
		FundingBody: "Example Council",
		ProjectCode: "EC-1",
		CostCentre:  "CC1",
		Activity:    "A1",
		ExpiryDate:  &early,
		Budget:      decimal.New(778000, -2),
		DailyRate:   models.DefaultDailyRate,
	}
	err = DB(ctx).CreateFunding(ctx, f2)
	assert.NoError(t, err)

	// Charging consumes funding in expiry order: the earlier expiry first
	funding, err := DB(ctx).ListFundingForProject(ctx, project.ProjectID)
	assert.NoError(t, err)
	require.Len(t, funding, 2)
	assert.Equal(t, f2.FundingID, funding[0].FundingID)
	assert.Equal(t, f1.FundingID, funding[1].FundingID)
	assert.Equal(t, int64(20), funding[0].Effort())

	// Test updating a funding source
	f1.Budget = decimal.New(500000, -2)
	err = DB(ctx).UpdateFunding(ctx, f1)
	assert.NoError(t, err)
	got, err := DB(ctx).GetFunding(ctx, f1.FundingID)
	assert.NoError(t, err)
	assert.True(t, got.Budget.Equal(f1.Budget))

	// No charges booked yet
	total, err := DB(ctx).SumChargesForFunding(ctx, f1.FundingID)
	assert.NoError(t, err)
	assert.True(t, total.IsZero())

	// Deleting the project cascades to its funding
	err = DB(ctx).DeleteProject(ctx, project.ProjectID)
	assert.NoError(t, err)
	got, err = DB(ctx).GetFunding(ctx, f1.FundingID)
	assert.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, dberror.ErrNotFound)
}

func TestListCapacityWindows(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	user := &models.User{
		Username: "dbtestcapacity",
		Email:    "dbtestcapacity@example.ac.uk",
		FullName: "DB Capacity User",
	}
	require.NoError(t, DB(ctx).CreateUser(ctx, user))
	defer DB(ctx).DeleteUser(ctx, user.UserID)

	// Two entries: the first one's window ends where the second starts
	c1 := &models.Capacity{
		UserID:    user.UserID,
		Value:     decimal.New(70, -2),
		StartDate: date(2026, time.January, 1),
	}
	require.NoError(t, DB(ctx).CreateCapacity(ctx, c1))
	defer DB(ctx).DeleteCapacity(ctx, c1.CapacityID)

	c2 := &models.Capacity{
		UserID:    user.UserID,
		Value:     decimal.New(50, -2),
		StartDate: date(2026, time.April, 1),
	}
	require.NoError(t, DB(ctx).CreateCapacity(ctx, c2))
	defer DB(ctx).DeleteCapacity(ctx, c2.CapacityID)

	periodEnd := date(2026, time.July, 1)
	windows, err := DB(ctx).ListCapacityWindows(ctx, periodEnd)
	assert.NoError(t, err)

	var w1, w2 *models.CapacityWindow
	for i := range windows {
		switch windows[i].CapacityID {
		case c1.CapacityID:
			w1 = &windows[i]
		case c2.CapacityID:
			w2 = &windows[i]
		}
	}
	require.NotNil(t, w1)
	require.NotNil(t, w2)

	// First window closes at the user's next entry, last runs to period end
	assert.True(t, w1.EndDate.Equal(c2.StartDate))
	assert.True(t, w2.EndDate.Equal(periodEnd))
}
