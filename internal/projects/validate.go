package projects

import (
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/types"
	"github.com/shopspring/decimal"
)

// ValidateProject enforces the Draft rule: unless the project is a Draft,
// start date, end date and lead are mandatory, and the end date must be
// after the start date. Enumerations are checked regardless of status.
func ValidateProject(project *models.Project) error {
	if !project.Status.IsValid() || !project.Charging.IsValid() || !project.Nature.IsValid() {
		return ErrInvalidEnumeration
	}

	if project.StartDate != nil && project.EndDate != nil && !project.EndDate.After(*project.StartDate) {
		return ErrDatesOutOfOrder
	}

	if project.Status == types.ProjectDraft {
		return nil
	}
	if project.StartDate == nil || project.EndDate == nil || project.LeadID == nil {
		return ErrMissingFields
	}
	return nil
}

// ValidateFunding enforces the Internal rule: unless the source is
// Internal, funding body, project code, analysis code and expiry date are
// mandatory.
func ValidateFunding(funding *models.Funding) error {
	if !funding.Source.IsValid() {
		return ErrInvalidEnumeration
	}
	if funding.Source == types.FundingInternal {
		return nil
	}
	if funding.FundingBody == "" || funding.ProjectCode == "" ||
		funding.AnalysisCode == nil || funding.ExpiryDate == nil {
		return ErrMissingFunding
	}
	return nil
}

// ValidateCapacity checks the capacity fraction is within [0, 1].
func ValidateCapacity(capacity *models.Capacity) error {
	if capacity.Value.LessThan(decimal.Zero) || capacity.Value.GreaterThan(decimal.NewFromInt(1)) {
		return ErrInvalidCapacity
	}
	return nil
}
