package penalty

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/resto-ops/backoffice-go/internal/domain/penalty"
	"github.com/shopspring/decimal"
)

type IntentKind string

const (
	IntentAdvance       IntentKind = "advance"
	IntentBonus         IntentKind = "bonus"
	IntentMarkProcessed IntentKind = "mark_processed"
)

// WriteIntent is one discrete store mutation produced by a draft commit. The
// service dispatches intents sequentially; they carry everything needed so the
// dispatch layer stays dumb.
type WriteIntent struct {
	Kind     IntentKind
	MonthID  string
	UserID   string
	UserName string
	Amount   decimal.Decimal
	Note     string
	ShiftIDs []string // mark_processed only
}

// AllocationDraft stages one absent user's penalty before commit: the amount,
// the bonus recipients, and whether to flag the cluster handled. Decoupled
// from any transport so the staged state is testable on its own.
type AllocationDraft struct {
	Cluster       penalty.AbsenceCluster
	AbsentUser    penalty.EnhancedAssignedUser
	Amount        decimal.Decimal
	Recipients    []penalty.EnhancedAssignedUser
	MarkProcessed bool
}

// NewAllocationDraft builds a draft for one of the cluster's absent users.
// Recipients default to all present users and MarkProcessed to true.
func NewAllocationDraft(cluster penalty.AbsenceCluster, absentUserID string) (AllocationDraft, error) {
	var absentee *penalty.EnhancedAssignedUser
	for i := range cluster.AbsentUsers {
		if cluster.AbsentUsers[i].UserID == absentUserID {
			absentee = &cluster.AbsentUsers[i]
			break
		}
	}
	if absentee == nil {
		return AllocationDraft{}, penalty.ErrUserNotAbsent
	}

	recipients := make([]penalty.EnhancedAssignedUser, len(cluster.PresentUsers))
	copy(recipients, cluster.PresentUsers)

	return AllocationDraft{
		Cluster:       cluster,
		AbsentUser:    *absentee,
		Recipients:    recipients,
		MarkProcessed: true,
	}, nil
}

// SelectRecipients narrows the bonus recipients to the given present users.
func (d *AllocationDraft) SelectRecipients(userIDs []string) error {
	byID := make(map[string]penalty.EnhancedAssignedUser, len(d.Cluster.PresentUsers))
	for _, u := range d.Cluster.PresentUsers {
		byID[u.UserID] = u
	}

	selected := make([]penalty.EnhancedAssignedUser, 0, len(userIDs))
	for _, id := range userIDs {
		u, ok := byID[id]
		if !ok {
			return penalty.ErrRecipientNotPresent
		}
		selected = append(selected, u)
	}
	d.Recipients = selected
	return nil
}

// MonthID returns the salary-sheet month the penalty lands in, derived from
// the cluster date.
func (d AllocationDraft) MonthID() string {
	if len(d.Cluster.MegaShift.Date) < 7 {
		return d.Cluster.MegaShift.Date
	}
	return d.Cluster.MegaShift.Date[:7]
}

// IdempotencyKey derives a content-addressed key for the draft so a retried
// commit of the same cluster and absentee is detected and skipped.
func (d AllocationDraft) IdempotencyKey() string {
	shiftIDs := d.Cluster.MegaShift.ShiftIDs()
	sort.Strings(shiftIDs)

	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s", d.MonthID(), d.AbsentUser.UserID, strings.Join(shiftIDs, ","))
	return hex.EncodeToString(h.Sum(nil))
}

// BuildIntents expands the draft into discrete write intents: one advance
// against the absentee, one bonus per recipient, and optionally the processed
// flag for the constituent shifts. Also returns the undistributed residual.
func (d AllocationDraft) BuildIntents() ([]WriteIntent, decimal.Decimal, error) {
	if !d.Amount.IsPositive() {
		return nil, decimal.Zero, penalty.ErrInvalidPenaltyAmount
	}

	mega := d.Cluster.MegaShift
	monthID := d.MonthID()

	intents := []WriteIntent{{
		Kind:     IntentAdvance,
		MonthID:  monthID,
		UserID:   d.AbsentUser.UserID,
		UserName: d.AbsentUser.UserName,
		Amount:   d.Amount,
		Note:     fmt.Sprintf("Absence penalty: %s on %s", mega.Label, mega.Date),
	}}

	shares, residual := AllocateBonuses(d.Recipients, d.Amount)
	for _, share := range shares {
		intents = append(intents, WriteIntent{
			Kind:     IntentBonus,
			MonthID:  monthID,
			UserID:   share.UserID,
			UserName: share.UserName,
			Amount:   share.Amount,
			Note:     fmt.Sprintf("Shift coverage bonus (%s absent)", d.AbsentUser.UserName),
		})
	}

	if d.MarkProcessed {
		intents = append(intents, WriteIntent{
			Kind:     IntentMarkProcessed,
			MonthID:  monthID,
			ShiftIDs: mega.ShiftIDs(),
		})
	}

	return intents, residual, nil
}
