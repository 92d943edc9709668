package db

import (
	"context"
	"os"
	"testing"

	"github.com/procat-rse/procatsrv/internal/config"
	"github.com/procat-rse/procatsrv/internal/db/dberror"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	ctx := log.Logger.WithContext(context.Background())
	if err := Init(ctx, config.Config().DB.DSN); err != nil {
		log.Error().Err(err).Msg("unable to connect to test database")
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func newDb(c ...context.Context) context.Context {
	var ctx context.Context
	if len(c) > 0 {
		ctx = ConnCtx(c[0])
	} else {
		ctx = ConnCtx(context.Background())
	}
	return ctx
}

func TestCreateDepartment(t *testing.T) {
	// Initialize context with logger and database connection
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	dept := &models.Department{
		Name:    "DB Test Department",
		Faculty: types.FacultyEngineering,
	}

	// Test successful department creation
	err := DB(ctx).CreateDepartment(ctx, dept)
	assert.NoError(t, err)
	assert.NotEmpty(t, dept.DepartmentID)
	defer DB(ctx).DeleteDepartment(ctx, dept.DepartmentID)

	// Test trying to create a department with the same name (should return ErrAlreadyExists)
	dup := &models.Department{
		Name:    "DB Test Department",
		Faculty: types.FacultyOther,
	}
	err = DB(ctx).CreateDepartment(ctx, dup)
	assert.Error(t, err)
	assert.ErrorIs(t, err, dberror.ErrAlreadyExists)
}

func TestGetDepartment(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	dept := &models.Department{
		Name:    "DB Test Department Get",
		Faculty: types.FacultyMedicine,
	}
	err := DB(ctx).CreateDepartment(ctx, dept)
	assert.NoError(t, err)
	defer DB(ctx).DeleteDepartment(ctx, dept.DepartmentID)

	// Test successfully retrieving the created department
	got, err := DB(ctx).GetDepartment(ctx, dept.DepartmentID)
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, dept.Name, got.Name)
	assert.Equal(t, types.FacultyMedicine, got.Faculty)

	// Test trying to get a deleted department (should return ErrNotFound)
	err = DB(ctx).DeleteDepartment(ctx, dept.DepartmentID)
	assert.NoError(t, err)
	got, err = DB(ctx).GetDepartment(ctx, dept.DepartmentID)
	assert.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, dberror.ErrNotFound)

	// Deleting a department that does not exist should succeed without errors
	err = DB(ctx).DeleteDepartment(ctx, dept.DepartmentID)
	assert.NoError(t, err)
}

func TestAnalysisCodes(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	code := &models.AnalysisCode{
		Code:        999999,
		Description: "DB test analysis code",
		Notes:       "created by tests",
	}

	// Test successful analysis code creation
	err := DB(ctx).CreateAnalysisCode(ctx, code)
	assert.NoError(t, err)
	defer DB(ctx).DeleteAnalysisCode(ctx, code.Code)

	// Test trying to create the same code again (should return ErrAlreadyExists)
	err = DB(ctx).CreateAnalysisCode(ctx, code)
	assert.Error(t, err)
	assert.ErrorIs(t, err, dberror.ErrAlreadyExists)

	// Test successfully retrieving the created code
	got, err := DB(ctx).GetAnalysisCode(ctx, code.Code)
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "DB test analysis code", got.Description)

	// Test trying to get a non-existent code (should return ErrNotFound)
	got, err = DB(ctx).GetAnalysisCode(ctx, 999998)
	assert.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, dberror.ErrNotFound)
}

func TestUsers(t *testing.T) {
	ctx := log.Logger.WithContext(context.Background())
	ctx = newDb(ctx)
	defer DB(ctx).Close(ctx)

	user := &models.User{
		Username: "dbtestuser",
		Email:    "dbtestuser@example.ac.uk",
		FullName: "DB Test User",
	}

	// Test successful user creation
	err := DB(ctx).CreateUser(ctx, user)
	assert.NoError(t, err)
	defer DB(ctx).DeleteUser(ctx, user.UserID)

	// Test trying to create a user with the same username (should return ErrAlreadyExists)
	dup := &models.User{
		Username: "dbtestuser",
		Email:    "other@example.ac.uk",
	}
	err = DB(ctx).CreateUser(ctx, dup)
	assert.Error(t, err)
	assert.ErrorIs(t, err, dberror.ErrAlreadyExists)

	// Test retrieving the user by username
	got, err := DB(ctx).GetUserByUsername(ctx, "dbtestuser")
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, user.UserID, got.UserID)
	assert.False(t, got.IsAdmin)

	// Test trying to get a non-existent user (should return ErrNotFound)
	got, err = DB(ctx).GetUserByUsername(ctx, "nosuchuser")
	assert.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, dberror.ErrNotFound)
}
