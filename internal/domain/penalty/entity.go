package penalty

import (
	"time"

	"github.com/resto-ops/backoffice-go/internal/domain/schedule"
)

// EnhancedAssignedUser is an assigned user annotated with the length of the
// specific sub-shift they were assigned to, in hours. The duration is the
// sub-shift's, never the surrounding mega-shift span.
type EnhancedAssignedUser struct {
	schedule.AssignedUser
	AssignedDuration float64
}

// MegaShift is the synthetic union of one or more same-date shifts whose
// intervals transitively overlap. It is derived fresh on every computation and
// never persisted; OriginalShifts keeps the constituents for write-back of the
// penalty-processed flag.
type MegaShift struct {
	Date           string
	Label          string // constituent labels joined with " + "
	Start          time.Time
	End            time.Time
	TimeSlot       schedule.TimeSlot // min(start) .. max(end) across constituents
	OriginalShifts []schedule.AssignedShift
}

// ShiftIDs returns the ids of the constituent shifts.
func (m MegaShift) ShiftIDs() []string {
	ids := make([]string, 0, len(m.OriginalShifts))
	for _, s := range m.OriginalShifts {
		ids = append(ids, s.ID)
	}
	return ids
}

// AbsenceCluster is one mega-shift with its per-user absence classification.
// A user appears in at most one of the two sets: presence in any constituent
// sub-shift overrides absence in another.
type AbsenceCluster struct {
	MegaShift    MegaShift
	AbsentUsers  []EnhancedAssignedUser
	PresentUsers []EnhancedAssignedUser
}
