package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resto-ops/backoffice-go/internal/domain/attendance"
	"github.com/resto-ops/backoffice-go/internal/domain/payroll"
)

// BackofficeJobs holds the recurring maintenance work: closing forgotten
// attendance sessions and refreshing the running month's salary sheet.
type BackofficeJobs struct {
	attendanceSvc attendance.AttendanceService
	payrollSvc    payroll.PayrollService
}

func NewBackofficeJobs(attendanceSvc attendance.AttendanceService, payrollSvc payroll.PayrollService) *BackofficeJobs {
	return &BackofficeJobs{
		attendanceSvc: attendanceSvc,
		payrollSvc:    payrollSvc,
	}
}

func (j *BackofficeJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("close_stale_attendance_sessions", 1*time.Hour, j.CloseStaleSessions)
	scheduler.AddJob("refresh_current_salary_sheet", 1*time.Hour, j.RefreshCurrentSalarySheet)
}

func (j *BackofficeJobs) CloseStaleSessions(ctx context.Context) error {
	closed, err := j.attendanceSvc.CloseStaleSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to close stale sessions: %w", err)
	}
	if closed > 0 {
		slog.Info("Cron: closed stale attendance sessions", "count", closed)
	}
	return nil
}

func (j *BackofficeJobs) RefreshCurrentSalarySheet(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	monthID := time.Now().UTC().Format("2006-01")
	if _, err := j.payrollSvc.CalculateSheet(ctx, monthID); err != nil {
		return fmt.Errorf("failed to refresh salary sheet for %s: %w", monthID, err)
	}

	slog.Info("Cron: refreshed salary sheet", "month", monthID)
	return nil
}
