package seed

import (
	"context"
	"errors"

	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/db/dberror"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/rs/zerolog/log"
)

// AnalysisCodes are the default finance analysis codes charges can be
// booked against.
var AnalysisCodes = []models.AnalysisCode{
	{
		Code:        182130,
		Description: "FEC Directly Allocated EQP&FACILITIES",
		Notes: "FEC-like projects (typically UKRI, but could be others) at the " +
			"pre-award stage (DA) - P accounts only",
	},
	{
		Code:        165133,
		Description: "FACILITIES USAGE (DI FEC PROJECTS)",
		Notes: "FEC-like projects (typically UKRI, but could be others) when costs" +
			" were not budgeted (DI) - P accounts only",
	},
	{
		Code:        165134,
		Description: "CHG OUT FACILITY/NON-FEC",
		Notes: "Non-FEC projects (typically charities) in all cases (DI) - P accounts" +
			" only",
	},
	{
		Code:        165138,
		Description: "FACILITIES USAGE (Internal funds)",
		Notes:       "Used if charged to non-research accounts - NOT P accounts",
	},
}

// CreateAnalysisCodes inserts the default analysis codes, skipping any
// already present so seeding is idempotent.
func CreateAnalysisCodes(ctx context.Context) error {
	for i := range AnalysisCodes {
		err := db.DB(ctx).CreateAnalysisCode(ctx, &AnalysisCodes[i])
		if err != nil {
			if errors.Is(err, dberror.ErrAlreadyExists) {
				continue
			}
			return err
		}
		log.Ctx(ctx).Info().Int("code", AnalysisCodes[i].Code).Msg("created analysis code")
	}
	return nil
}

// DestroyAnalysisCodes removes the default analysis codes.
func DestroyAnalysisCodes(ctx context.Context) error {
	for i := range AnalysisCodes {
		if err := db.DB(ctx).DeleteAnalysisCode(ctx, AnalysisCodes[i].Code); err != nil {
			return err
		}
	}
	return nil
}
