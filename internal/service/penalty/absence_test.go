package penalty

import (
	"testing"
	"time"

	"github.com/resto-ops/backoffice-go/internal/domain/attendance"
	"github.com/resto-ops/backoffice-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assigned(id, name string) schedule.AssignedUser {
	return schedule.AssignedUser{UserID: id, UserName: name, AssignedRole: "waiter"}
}

func session(userID string, checkIn, checkOut time.Time) attendance.Record {
	return attendance.Record{UserID: userID, CheckIn: checkIn, CheckOut: &checkOut}
}

func openSession(userID string, checkIn time.Time) attendance.Record {
	return attendance.Record{UserID: userID, CheckIn: checkIn}
}

var endOfDay = time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)

func TestDetectAbsences_AbsentWithoutSession(t *testing.T) {
	clusters := ClusterShifts([]schedule.AssignedShift{
		makeShift("A", "2024-01-01", "09:00", "17:00", assigned("u1", "An")),
	})

	reports := DetectAbsences(clusters, nil, endOfDay)
	require.Len(t, reports, 1)
	require.Len(t, reports[0].AbsentUsers, 1)
	assert.Equal(t, "u1", reports[0].AbsentUsers[0].UserID)
	assert.InDelta(t, 8.0, reports[0].AbsentUsers[0].AssignedDuration, 1e-9)
	assert.Empty(t, reports[0].PresentUsers)
}

func TestDetectAbsences_PresentWithOverlappingSession(t *testing.T) {
	clusters := ClusterShifts([]schedule.AssignedShift{
		makeShift("A", "2024-01-01", "09:00", "17:00", assigned("u1", "An")),
	})
	records := []attendance.Record{
		session("u1",
			time.Date(2024, 1, 1, 9, 5, 0, 0, time.UTC),
			time.Date(2024, 1, 1, 16, 30, 0, 0, time.UTC)),
	}

	reports := DetectAbsences(clusters, records, endOfDay)
	assert.Empty(t, reports, "clusters without absentees are dropped")
}

func TestDetectAbsences_PresenceOverridesAbsence(t *testing.T) {
	// u1 is assigned to both shifts of the cluster but only worked the
	// second; the whole cluster must classify them present. u2 never showed.
	clusters := ClusterShifts([]schedule.AssignedShift{
		makeShift("morning", "2024-01-01", "09:00", "13:00", assigned("u1", "An"), assigned("u2", "Binh")),
		makeShift("afternoon", "2024-01-01", "12:00", "16:00", assigned("u1", "An")),
	})
	records := []attendance.Record{
		session("u1",
			time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC)),
	}

	reports := DetectAbsences(clusters, records, endOfDay)
	require.Len(t, reports, 1)

	require.Len(t, reports[0].AbsentUsers, 1)
	assert.Equal(t, "u2", reports[0].AbsentUsers[0].UserID)

	require.Len(t, reports[0].PresentUsers, 1)
	assert.Equal(t, "u1", reports[0].PresentUsers[0].UserID)
	assert.InDelta(t, 4.0, reports[0].PresentUsers[0].AssignedDuration, 1e-9,
		"duration comes from the matched sub-shift, not the cluster span")
}

func TestDetectAbsences_FutureShiftExempt(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)
	clusters := ClusterShifts([]schedule.AssignedShift{
		makeShift("morning", "2024-01-01", "09:00", "13:00", assigned("u1", "An")),
		makeShift("evening", "2024-01-01", "12:00", "20:00", assigned("u2", "Binh")),
	})

	reports := DetectAbsences(clusters, nil, asOf)
	require.Len(t, reports, 1)

	// Only the finished morning shift is judged; the evening shift is still
	// running, so u2 cannot be marked absent.
	require.Len(t, reports[0].AbsentUsers, 1)
	assert.Equal(t, "u1", reports[0].AbsentUsers[0].UserID)
}

func TestDetectAbsences_OpenSessionEndsAtAsOf(t *testing.T) {
	asOf := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)
	clusters := ClusterShifts([]schedule.AssignedShift{
		makeShift("A", "2024-01-01", "09:00", "17:00", assigned("u1", "An")),
	})
	records := []attendance.Record{
		openSession("u1", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)),
	}

	reports := DetectAbsences(clusters, records, asOf)
	assert.Empty(t, reports)
}

func TestDetectAbsences_SortedMostRecentFirst(t *testing.T) {
	clusters := ClusterShifts([]schedule.AssignedShift{
		makeShift("A", "2024-01-01", "09:00", "17:00", assigned("u1", "An")),
		makeShift("B", "2024-01-02", "09:00", "11:00", assigned("u2", "Binh")),
	})

	reports := DetectAbsences(clusters, nil, endOfDay)
	require.Len(t, reports, 2)
	assert.Equal(t, "2024-01-02", reports[0].MegaShift.Date)
	assert.Equal(t, "2024-01-01", reports[1].MegaShift.Date)
}

func TestDetectAbsences_SessionTouchingShiftEndDoesNotCount(t *testing.T) {
	clusters := ClusterShifts([]schedule.AssignedShift{
		makeShift("A", "2024-01-01", "09:00", "17:00", assigned("u1", "An")),
	})
	records := []attendance.Record{
		session("u1",
			time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)),
	}

	reports := DetectAbsences(clusters, records, endOfDay)
	require.Len(t, reports, 1)
	assert.Equal(t, "u1", reports[0].AbsentUsers[0].UserID)
}
