package payroll

import (
	"sort"
	"strings"
	"time"

	"github.com/resto-ops/backoffice-go/internal/domain/attendance"
	"github.com/resto-ops/backoffice-go/internal/domain/payroll"
	"github.com/resto-ops/backoffice-go/internal/domain/schedule"
	"github.com/resto-ops/backoffice-go/internal/domain/user"
	"github.com/resto-ops/backoffice-go/internal/domain/violation"
	"github.com/resto-ops/backoffice-go/internal/service/penalty"
	"github.com/shopspring/decimal"
)

// lateGrace is how far past the shift start a check-in may fall before the
// full lateness counts.
const lateGrace = 5 * time.Minute

// CalculationInput carries everything one month's sheet is computed from.
// Callers pre-filter the collections: attendance overlapping the month,
// violations created within it, published schedules only, and the month's
// adjustment entries.
type CalculationInput struct {
	MonthID     string
	AsOf        time.Time
	Users       []user.User
	Records     []attendance.Record
	Violations  []violation.Violation
	Schedules   []schedule.Schedule
	Adjustments []payroll.Adjustment

	// Previous is the sheet from the last calculation, nil on first run.
	// Payment fields are carried over from it unchanged.
	Previous *payroll.MonthlySalarySheet
}

// Calculate builds one month's salary sheet. Computed fields are derived
// fresh from the inputs; payment status comes from the previous sheet and
// advance/bonus totals from the adjustment entries, so recalculating never
// loses a manual mutation.
func Calculate(in CalculationInput) payroll.MonthlySalarySheet {
	sheet := payroll.MonthlySalarySheet{
		MonthID:       in.MonthID,
		Records:       make(map[string]payroll.SalaryRecord, len(in.Users)),
		ScheduleWeeks: scheduleWeeks(in.Schedules),
		GeneratedAt:   in.AsOf,
	}

	recordsByUser := make(map[string][]attendance.Record)
	for _, r := range in.Records {
		recordsByUser[r.UserID] = append(recordsByUser[r.UserID], r)
	}

	shifts := monthShifts(in.Schedules, in.MonthID)

	for _, u := range in.Users {
		if u.IsOwner() {
			continue
		}
		record := calculateRecord(u, recordsByUser[u.ID], in.Violations, shifts, in.AsOf)
		applyAdjustments(&record, in.Adjustments)
		carryPayment(&record, in.Previous)
		sheet.Records[u.ID] = record
	}

	return sheet
}

func calculateRecord(u user.User, records []attendance.Record, violations []violation.Violation, shifts []schedule.AssignedShift, asOf time.Time) payroll.SalaryRecord {
	record := payroll.SalaryRecord{
		UserID:               u.ID,
		UserName:             u.Name,
		TotalSalary:          decimal.Zero,
		TotalUnpaidPenalties: decimal.Zero,
		SalaryAdvance:        decimal.Zero,
		Bonus:                decimal.Zero,
		PaymentStatus:        payroll.PaymentStatusUnpaid,
	}

	for _, r := range records {
		if r.CheckOut == nil {
			continue
		}
		hours := r.WorkedHours(asOf)
		if r.TotalHours != nil {
			hours = *r.TotalHours
		}
		salary := r.HourlyRate.Mul(decimal.NewFromFloat(hours))
		if r.Salary != nil {
			salary = *r.Salary
		}
		record.TotalWorkingHours += hours
		record.TotalSalary = record.TotalSalary.Add(salary)
	}

	if record.TotalWorkingHours > 0 {
		record.AverageHourlyRate = record.TotalSalary.Div(decimal.NewFromFloat(record.TotalWorkingHours))
	} else {
		record.AverageHourlyRate = u.HourlyRate
	}

	for _, v := range violations {
		if v.UserID == u.ID && v.Unpaid() {
			record.TotalUnpaidPenalties = record.TotalUnpaidPenalties.Add(v.Cost)
		}
	}

	for _, shift := range shifts {
		if !assignsUser(shift, u.ID) {
			continue
		}
		iv, err := penalty.ShiftInterval(shift.Date, shift.TimeSlot)
		if err != nil {
			continue
		}
		record.TotalExpectedHours += iv.Duration()

		// An unfinished shift cannot be judged absent yet.
		if !iv.End.After(asOf) && !anySessionOverlaps(records, iv, asOf) {
			record.AbsentShifts = append(record.AbsentShifts, payroll.AbsentShift{
				ShiftID: shift.ID,
				WeekID:  shift.WeekID,
				Date:    shift.Date,
				Label:   shift.Label,
			})
		}
	}

	record.TotalLateMinutes = totalLateMinutes(records, shifts)

	return record
}

func applyAdjustments(record *payroll.SalaryRecord, adjustments []payroll.Adjustment) {
	for _, adj := range adjustments {
		if adj.UserID != record.UserID {
			continue
		}
		switch adj.Kind {
		case payroll.AdjustmentKindAdvance:
			record.SalaryAdvance = record.SalaryAdvance.Add(adj.Amount)
			record.Advances = append(record.Advances, adj)
		case payroll.AdjustmentKindBonus:
			record.Bonus = record.Bonus.Add(adj.Amount)
			record.Bonuses = append(record.Bonuses, adj)
		}
	}
}

func carryPayment(record *payroll.SalaryRecord, previous *payroll.MonthlySalarySheet) {
	if previous == nil {
		return
	}
	prev, ok := previous.Records[record.UserID]
	if !ok {
		return
	}
	record.PaymentStatus = prev.PaymentStatus
	record.PaidAt = prev.PaidAt
	record.PaidAmount = prev.PaidAmount
}

// totalLateMinutes sums lateness over records whose check-in falls inside an
// assigned shift. A check-in inside two overlapping shifts counts against the
// one it is least late for. Lateness within the grace window counts zero.
func totalLateMinutes(records []attendance.Record, shifts []schedule.AssignedShift) int {
	total := 0
	for _, r := range records {
		best := time.Duration(-1)
		for _, shift := range shifts {
			if !assignsUser(shift, r.UserID) {
				continue
			}
			iv, err := penalty.ShiftInterval(shift.Date, shift.TimeSlot)
			if err != nil {
				continue
			}
			if r.CheckIn.Before(iv.Start) || r.CheckIn.After(iv.End) {
				continue
			}
			late := r.CheckIn.Sub(iv.Start)
			if best < 0 || late < best {
				best = late
			}
		}
		if best > lateGrace {
			total += int(best.Minutes())
		}
	}
	return total
}

func anySessionOverlaps(records []attendance.Record, iv penalty.Interval, asOf time.Time) bool {
	for _, r := range records {
		start, end := r.Interval(asOf)
		if penalty.Overlaps(penalty.Interval{Start: start, End: end}, iv) {
			return true
		}
	}
	return false
}

func assignsUser(shift schedule.AssignedShift, userID string) bool {
	for _, a := range shift.AssignedUsers {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

// monthShifts flattens the schedules to the shifts dated inside the month.
// Schedules span ISO weeks, so a week at a month boundary contributes only
// part of its shifts.
func monthShifts(schedules []schedule.Schedule, monthID string) []schedule.AssignedShift {
	var shifts []schedule.AssignedShift
	for _, sched := range schedules {
		for _, shift := range sched.Shifts {
			if !strings.HasPrefix(shift.Date, monthID) {
				continue
			}
			shifts = append(shifts, shift)
		}
	}
	return shifts
}

func scheduleWeeks(schedules []schedule.Schedule) []string {
	weeks := make([]string, 0, len(schedules))
	for _, sched := range schedules {
		weeks = append(weeks, sched.WeekID)
	}
	sort.Strings(weeks)
	return weeks
}
