package penalty

import (
	"context"
)

// PenaltyService defines the shift-absence penalty workflow
type PenaltyService interface {
	// ListAbsences clusters the date range's shifts into mega-shifts and
	// reports the clusters that have at least one absent user, most recent
	// date first. Shifts already flagged penalty-processed are excluded, as
	// are shifts that have not finished yet.
	ListAbsences(ctx context.Context, req ListAbsencesRequest) ([]AbsenceClusterResponse, error)

	// ApplyPenalty commits one absent user's penalty: an advance entry against
	// the absentee, proportional bonus entries for the selected present users,
	// and optionally the processed flag on the constituent shifts. Best-effort;
	// partial failures are reported, not rolled back.
	ApplyPenalty(ctx context.Context, req ApplyPenaltyRequest) (ApplyPenaltyResponse, error)
}
