package payroll

import (
	"testing"
	"time"

	"github.com/resto-ops/backoffice-go/internal/domain/attendance"
	"github.com/resto-ops/backoffice-go/internal/domain/payroll"
	"github.com/resto-ops/backoffice-go/internal/domain/schedule"
	"github.com/resto-ops/backoffice-go/internal/domain/user"
	"github.com/resto-ops/backoffice-go/internal/domain/violation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var calcAsOf = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func staff(id, name string, rate int64) user.User {
	return user.User{ID: id, Name: name, Role: user.RoleStaff, HourlyRate: decimal.NewFromInt(rate)}
}

func completedRecord(userID string, checkIn, checkOut time.Time, hours float64, salary int64) attendance.Record {
	s := decimal.NewFromInt(salary)
	return attendance.Record{
		UserID:     userID,
		CheckIn:    checkIn,
		CheckOut:   &checkOut,
		TotalHours: &hours,
		Salary:     &s,
	}
}

func publishedWeek(weekID string, shifts ...schedule.AssignedShift) schedule.Schedule {
	return schedule.Schedule{WeekID: weekID, Published: true, Shifts: shifts}
}

func staffShift(id, weekID, date, start, end string, userIDs ...string) schedule.AssignedShift {
	users := make([]schedule.AssignedUser, 0, len(userIDs))
	for _, uid := range userIDs {
		users = append(users, schedule.AssignedUser{UserID: uid, UserName: uid, AssignedRole: "waiter"})
	}
	return schedule.AssignedShift{
		ID:            id,
		WeekID:        weekID,
		Date:          date,
		Label:         id,
		TimeSlot:      schedule.TimeSlot{Start: start, End: end},
		AssignedUsers: users,
	}
}

func TestCalculate_AggregatesHoursAndSalary(t *testing.T) {
	sheet := Calculate(CalculationInput{
		MonthID: "2024-03",
		AsOf:    calcAsOf,
		Users:   []user.User{staff("u1", "An", 25000)},
		Records: []attendance.Record{
			completedRecord("u1",
				time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
				time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC), 8, 200000),
			completedRecord("u1",
				time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
				time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC), 4, 120000),
		},
	})

	record, ok := sheet.Records["u1"]
	require.True(t, ok)
	assert.InDelta(t, 12.0, record.TotalWorkingHours, 1e-9)
	assert.True(t, decimal.NewFromInt(320000).Equal(record.TotalSalary), "got %s", record.TotalSalary)

	// 320000 / 12 hours, not the configured rate.
	wantRate := decimal.NewFromInt(320000).Div(decimal.NewFromInt(12))
	assert.True(t, wantRate.Equal(record.AverageHourlyRate), "got %s", record.AverageHourlyRate)
}

func TestCalculate_OpenSessionNotCounted(t *testing.T) {
	sheet := Calculate(CalculationInput{
		MonthID: "2024-03",
		AsOf:    calcAsOf,
		Users:   []user.User{staff("u1", "An", 25000)},
		Records: []attendance.Record{
			{UserID: "u1", CheckIn: time.Date(2024, 3, 19, 9, 0, 0, 0, time.UTC)},
		},
	})

	record := sheet.Records["u1"]
	assert.Zero(t, record.TotalWorkingHours)
	assert.True(t, record.TotalSalary.IsZero())
}

func TestCalculate_AverageRateFallsBackToConfigured(t *testing.T) {
	sheet := Calculate(CalculationInput{
		MonthID: "2024-03",
		AsOf:    calcAsOf,
		Users:   []user.User{staff("u1", "An", 25000)},
	})

	record := sheet.Records["u1"]
	assert.True(t, decimal.NewFromInt(25000).Equal(record.AverageHourlyRate))
}

func TestCalculate_OwnerExcluded(t *testing.T) {
	owner := staff("boss", "Boss", 0)
	owner.Role = user.RoleOwner

	sheet := Calculate(CalculationInput{
		MonthID: "2024-03",
		AsOf:    calcAsOf,
		Users:   []user.User{owner, staff("u1", "An", 25000)},
	})

	assert.NotContains(t, sheet.Records, "boss")
	assert.Contains(t, sheet.Records, "u1")
}

func TestCalculate_UnpaidPenalties(t *testing.T) {
	sheet := Calculate(CalculationInput{
		MonthID: "2024-03",
		AsOf:    calcAsOf,
		Users:   []user.User{staff("u1", "An", 25000)},
		Violations: []violation.Violation{
			{UserID: "u1", Cost: decimal.NewFromInt(50000)},
			{UserID: "u1", Cost: decimal.NewFromInt(30000), Waived: true},
			{UserID: "u1", Cost: decimal.NewFromInt(20000), PenaltySubmitted: true},
			{UserID: "u1", Cost: decimal.NewFromInt(10000), PenaltyPhotoURLs: []string{"a.jpg"}},
			{UserID: "other", Cost: decimal.NewFromInt(99999)},
		},
	})

	record := sheet.Records["u1"]
	assert.True(t, decimal.NewFromInt(50000).Equal(record.TotalUnpaidPenalties),
		"got %s", record.TotalUnpaidPenalties)
}

func TestCalculate_ExpectedHoursAndAbsentShifts(t *testing.T) {
	schedules := []schedule.Schedule{
		publishedWeek("2024-W11",
			staffShift("worked", "2024-W11", "2024-03-11", "09:00", "17:00", "u1"),
			staffShift("missed", "2024-W11", "2024-03-12", "09:00", "17:00", "u1"),
			// Ends after asOf: counts toward expectations, never judged absent.
			staffShift("upcoming", "2024-W11", "2024-03-25", "09:00", "13:00", "u1"),
		),
	}
	records := []attendance.Record{
		completedRecord("u1",
			time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 11, 17, 0, 0, 0, time.UTC), 8, 200000),
	}

	sheet := Calculate(CalculationInput{
		MonthID:   "2024-03",
		AsOf:      calcAsOf,
		Users:     []user.User{staff("u1", "An", 25000)},
		Records:   records,
		Schedules: schedules,
	})

	record := sheet.Records["u1"]
	assert.InDelta(t, 20.0, record.TotalExpectedHours, 1e-9)
	require.Len(t, record.AbsentShifts, 1)
	assert.Equal(t, "missed", record.AbsentShifts[0].ShiftID)
	assert.Equal(t, "2024-W11", record.AbsentShifts[0].WeekID)
	assert.Equal(t, "2024-03-12", record.AbsentShifts[0].Date)
}

func TestCalculate_ShiftOutsideMonthIgnored(t *testing.T) {
	schedules := []schedule.Schedule{
		publishedWeek("2024-W09",
			// Boundary week: the February shift must not leak into March.
			staffShift("feb", "2024-W09", "2024-02-29", "09:00", "17:00", "u1"),
			staffShift("mar", "2024-W09", "2024-03-01", "09:00", "17:00", "u1"),
		),
	}

	sheet := Calculate(CalculationInput{
		MonthID:   "2024-03",
		AsOf:      calcAsOf,
		Users:     []user.User{staff("u1", "An", 25000)},
		Schedules: schedules,
	})

	record := sheet.Records["u1"]
	assert.InDelta(t, 8.0, record.TotalExpectedHours, 1e-9)
	require.Len(t, record.AbsentShifts, 1)
	assert.Equal(t, "mar", record.AbsentShifts[0].ShiftID)
}

func TestCalculate_LateMinutesGrace(t *testing.T) {
	schedules := []schedule.Schedule{
		publishedWeek("2024-W11",
			staffShift("s1", "2024-W11", "2024-03-11", "09:00", "17:00", "u1"),
			staffShift("s2", "2024-W11", "2024-03-12", "09:00", "17:00", "u1"),
		),
	}
	records := []attendance.Record{
		// 3 minutes late: inside the grace window, counts zero.
		completedRecord("u1",
			time.Date(2024, 3, 11, 9, 3, 0, 0, time.UTC),
			time.Date(2024, 3, 11, 17, 0, 0, 0, time.UTC), 7.95, 198750),
		// 6 minutes late: past the grace window, full minutes count.
		completedRecord("u1",
			time.Date(2024, 3, 12, 9, 6, 0, 0, time.UTC),
			time.Date(2024, 3, 12, 17, 0, 0, 0, time.UTC), 7.9, 197500),
	}

	sheet := Calculate(CalculationInput{
		MonthID:   "2024-03",
		AsOf:      calcAsOf,
		Users:     []user.User{staff("u1", "An", 25000)},
		Records:   records,
		Schedules: schedules,
	})

	assert.Equal(t, 6, sheet.Records["u1"].TotalLateMinutes)
}

func TestCalculate_RecomputePreservesMutables(t *testing.T) {
	input := CalculationInput{
		MonthID: "2024-03",
		AsOf:    calcAsOf,
		Users:   []user.User{staff("u1", "An", 25000)},
		Records: []attendance.Record{
			completedRecord("u1",
				time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
				time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC), 8, 200000),
		},
		Adjustments: []payroll.Adjustment{
			{ID: "adj-1", MonthID: "2024-03", UserID: "u1", Kind: payroll.AdjustmentKindBonus, Amount: decimal.NewFromInt(50000)},
		},
	}

	first := Calculate(input)
	record := first.Records["u1"]
	record.PaymentStatus = payroll.PaymentStatusPaid
	paidAt := calcAsOf
	record.PaidAt = &paidAt
	first.Records["u1"] = record

	input.Previous = &first
	second := Calculate(input)

	got := second.Records["u1"]
	assert.InDelta(t, record.TotalWorkingHours, got.TotalWorkingHours, 1e-9)
	assert.True(t, record.TotalSalary.Equal(got.TotalSalary))
	assert.True(t, decimal.NewFromInt(50000).Equal(got.Bonus), "got %s", got.Bonus)
	assert.Equal(t, payroll.PaymentStatusPaid, got.PaymentStatus)
	require.NotNil(t, got.PaidAt)
	assert.True(t, got.PaidAt.Equal(paidAt))
}
