package penalty

import (
	"sort"
	"time"

	"github.com/resto-ops/backoffice-go/internal/domain/attendance"
	"github.com/resto-ops/backoffice-go/internal/domain/penalty"
)

// DetectAbsences classifies every assigned user of every cluster as present or
// absent as of asOf, and returns only the clusters with at least one absentee,
// most recent date first. asOf is explicit so that results near a shift
// boundary are reproducible.
//
// A user is present for the whole cluster as soon as any of their assigned
// sub-shifts overlaps one of their attendance sessions; presence in one
// sub-shift overrides absence in another. Sub-shifts that have not finished by
// asOf cannot be judged and are skipped entirely.
func DetectAbsences(clusters []Cluster, records []attendance.Record, asOf time.Time) []penalty.AbsenceCluster {
	sessions := sessionsByUser(records, asOf)

	var result []penalty.AbsenceCluster
	for _, cluster := range clusters {
		report := classifyCluster(cluster, sessions, asOf)
		if len(report.AbsentUsers) == 0 {
			continue
		}
		result = append(result, report)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].MegaShift.Date > result[j].MegaShift.Date
	})

	return result
}

func classifyCluster(cluster Cluster, sessions map[string][]Interval, asOf time.Time) penalty.AbsenceCluster {
	present := make(map[string]int)
	absent := make(map[string]int)
	var presentUsers, absentUsers []penalty.EnhancedAssignedUser
	// absent entries invalidated by presence in a later constituent shift
	removed := make(map[string]bool)

	for i, shift := range cluster.Shifts {
		iv := cluster.Intervals[i]
		if iv.End.After(asOf) {
			// Shift not finished yet: absence cannot be judged.
			continue
		}
		duration := iv.Duration()

		for _, assigned := range shift.AssignedUsers {
			if _, ok := present[assigned.UserID]; ok {
				continue
			}

			if overlapsAny(sessions[assigned.UserID], iv) {
				present[assigned.UserID] = len(presentUsers)
				presentUsers = append(presentUsers, penalty.EnhancedAssignedUser{
					AssignedUser:     assigned,
					AssignedDuration: duration,
				})
				if _, wasAbsent := absent[assigned.UserID]; wasAbsent {
					removed[assigned.UserID] = true
				}
				continue
			}

			if _, ok := absent[assigned.UserID]; !ok {
				absent[assigned.UserID] = len(absentUsers)
				absentUsers = append(absentUsers, penalty.EnhancedAssignedUser{
					AssignedUser:     assigned,
					AssignedDuration: duration,
				})
			}
		}
	}

	report := penalty.AbsenceCluster{
		MegaShift:    cluster.megaShift(),
		PresentUsers: presentUsers,
	}
	for _, u := range absentUsers {
		if removed[u.UserID] {
			continue
		}
		report.AbsentUsers = append(report.AbsentUsers, u)
	}
	return report
}

func sessionsByUser(records []attendance.Record, asOf time.Time) map[string][]Interval {
	sessions := make(map[string][]Interval)
	for _, r := range records {
		start, end := r.Interval(asOf)
		sessions[r.UserID] = append(sessions[r.UserID], Interval{Start: start, End: end})
	}
	return sessions
}

func overlapsAny(sessions []Interval, iv Interval) bool {
	for _, s := range sessions {
		if Overlaps(s, iv) {
			return true
		}
	}
	return false
}
