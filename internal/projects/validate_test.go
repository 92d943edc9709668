package projects

import (
	"testing"

	"github.com/google/uuid"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateProject(t *testing.T) {
	lead := uuid.New()

	valid := func() models.Project {
		return models.Project{
			Name:      "Widget Analysis",
			Nature:    types.NatureStandard,
			Status:    types.ProjectActive,
			Charging:  types.ChargingActual,
			StartDate: datePtr(2025, 1, 1),
			EndDate:   datePtr(2025, 12, 31),
			LeadID:    &lead,
		}
	}

	tests := []struct {
		name     string
		mutate   func(*models.Project)
		expected error
	}{
		{
			name:   "valid active project",
			mutate: func(p *models.Project) {},
		},
		{
			name: "draft without dates or lead",
			mutate: func(p *models.Project) {
				p.Status = types.ProjectDraft
				p.StartDate = nil
				p.EndDate = nil
				p.LeadID = nil
			},
		},
		{
			name:     "active without end date",
			mutate:   func(p *models.Project) { p.EndDate = nil },
			expected: ErrMissingFields,
		},
		{
			name:     "active without lead",
			mutate:   func(p *models.Project) { p.LeadID = nil },
			expected: ErrMissingFields,
		},
		{
			name: "end date before start date",
			mutate: func(p *models.Project) {
				p.StartDate = datePtr(2025, 12, 31)
				p.EndDate = datePtr(2025, 1, 1)
			},
			expected: ErrDatesOutOfOrder,
		},
		{
			name: "draft with dates out of order",
			mutate: func(p *models.Project) {
				p.Status = types.ProjectDraft
				p.StartDate = datePtr(2025, 12, 31)
				p.EndDate = datePtr(2025, 1, 1)
			},
			expected: ErrDatesOutOfOrder,
		},
		{
			name:     "bad status",
			mutate:   func(p *models.Project) { p.Status = "Paused" },
			expected: ErrInvalidEnumeration,
		},
		{
			name:     "bad charging method",
			mutate:   func(p *models.Project) { p.Charging = "Hourly" },
			expected: ErrInvalidEnumeration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := valid()
			tt.mutate(&project)
			err := ValidateProject(&project)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestValidateFunding(t *testing.T) {
	code := 182130

	t.Run("internal source needs nothing else", func(t *testing.T) {
		funding := models.Funding{Source: types.FundingInternal}
		assert.NoError(t, ValidateFunding(&funding))
	})

	t.Run("external source fully specified", func(t *testing.T) {
		funding := models.Funding{
			Source:       types.FundingExternal,
			FundingBody:  "EPSRC",
			ProjectCode:  "EP/X012345/1",
			AnalysisCode: &code,
			ExpiryDate:   datePtr(2026, 3, 31),
		}
		assert.NoError(t, ValidateFunding(&funding))
	})

	t.Run("external source missing expiry", func(t *testing.T) {
		funding := models.Funding{
			Source:       types.FundingExternal,
			FundingBody:  "EPSRC",
			ProjectCode:  "EP/X012345/1",
			AnalysisCode: &code,
		}
		assert.ErrorIs(t, ValidateFunding(&funding), ErrMissingFunding)
	})

	t.Run("bad source", func(t *testing.T) {
		funding := models.Funding{Source: "Charity"}
		assert.ErrorIs(t, ValidateFunding(&funding), ErrInvalidEnumeration)
	})
}

func TestValidateCapacity(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{value: "0", valid: true},
		{value: "0.5", valid: true},
		{value: "1", valid: true},
		{value: "1.1", valid: false},
		{value: "-0.1", valid: false},
	}

	for _, tt := range tests {
		capacity := models.Capacity{Value: decimal.RequireFromString(tt.value)}
		err := ValidateCapacity(&capacity)
		if tt.valid {
			assert.NoError(t, err, "value %s", tt.value)
		} else {
			assert.ErrorIs(t, err, ErrInvalidCapacity, "value %s", tt.value)
		}
	}
}
