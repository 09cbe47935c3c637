package penalty

import (
	"testing"

	"github.com/resto-ops/backoffice-go/internal/domain/penalty"
	"github.com/resto-ops/backoffice-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCluster() penalty.AbsenceCluster {
	return penalty.AbsenceCluster{
		MegaShift: penalty.MegaShift{
			Date:  "2024-03-15",
			Label: "lunch + dinner",
			OriginalShifts: []schedule.AssignedShift{
				{ID: "shift-1", Date: "2024-03-15"},
				{ID: "shift-2", Date: "2024-03-15"},
			},
		},
		AbsentUsers: []penalty.EnhancedAssignedUser{
			{AssignedUser: schedule.AssignedUser{UserID: "absent-1", UserName: "An"}, AssignedDuration: 8},
		},
		PresentUsers: []penalty.EnhancedAssignedUser{
			{AssignedUser: schedule.AssignedUser{UserID: "p1", UserName: "Binh"}, AssignedDuration: 4},
			{AssignedUser: schedule.AssignedUser{UserID: "p2", UserName: "Chi"}, AssignedDuration: 4},
		},
	}
}

func TestNewAllocationDraft_Defaults(t *testing.T) {
	draft, err := NewAllocationDraft(sampleCluster(), "absent-1")
	require.NoError(t, err)

	assert.Equal(t, "absent-1", draft.AbsentUser.UserID)
	assert.Len(t, draft.Recipients, 2, "defaults to all present users")
	assert.True(t, draft.MarkProcessed)
	assert.Equal(t, "2024-03", draft.MonthID())
}

func TestNewAllocationDraft_UserNotAbsent(t *testing.T) {
	_, err := NewAllocationDraft(sampleCluster(), "p1")
	assert.ErrorIs(t, err, penalty.ErrUserNotAbsent)
}

func TestSelectRecipients(t *testing.T) {
	draft, err := NewAllocationDraft(sampleCluster(), "absent-1")
	require.NoError(t, err)

	require.NoError(t, draft.SelectRecipients([]string{"p2"}))
	require.Len(t, draft.Recipients, 1)
	assert.Equal(t, "p2", draft.Recipients[0].UserID)

	assert.ErrorIs(t, draft.SelectRecipients([]string{"absent-1"}), penalty.ErrRecipientNotPresent)
}

func TestBuildIntents(t *testing.T) {
	draft, err := NewAllocationDraft(sampleCluster(), "absent-1")
	require.NoError(t, err)
	draft.Amount = decimal.NewFromInt(100000)

	intents, residual, err := draft.BuildIntents()
	require.NoError(t, err)
	require.Len(t, intents, 4) // advance + 2 bonuses + mark processed
	assert.True(t, residual.IsZero())

	assert.Equal(t, IntentAdvance, intents[0].Kind)
	assert.Equal(t, "absent-1", intents[0].UserID)
	assert.True(t, intents[0].Amount.Equal(decimal.NewFromInt(100000)))
	assert.Contains(t, intents[0].Note, "lunch + dinner")
	assert.Contains(t, intents[0].Note, "2024-03-15")

	assert.Equal(t, IntentBonus, intents[1].Kind)
	assert.True(t, intents[1].Amount.Equal(decimal.NewFromInt(50000)))
	assert.Contains(t, intents[1].Note, "An")

	assert.Equal(t, IntentMarkProcessed, intents[3].Kind)
	assert.ElementsMatch(t, []string{"shift-1", "shift-2"}, intents[3].ShiftIDs)
}

func TestBuildIntents_NoMarkProcessed(t *testing.T) {
	draft, err := NewAllocationDraft(sampleCluster(), "absent-1")
	require.NoError(t, err)
	draft.Amount = decimal.NewFromInt(90000)
	draft.MarkProcessed = false

	intents, _, err := draft.BuildIntents()
	require.NoError(t, err)
	for _, intent := range intents {
		assert.NotEqual(t, IntentMarkProcessed, intent.Kind)
	}
}

func TestBuildIntents_RejectsNonPositiveAmount(t *testing.T) {
	draft, err := NewAllocationDraft(sampleCluster(), "absent-1")
	require.NoError(t, err)

	_, _, err = draft.BuildIntents()
	assert.ErrorIs(t, err, penalty.ErrInvalidPenaltyAmount)
}

func TestIdempotencyKey_StableAcrossShiftOrder(t *testing.T) {
	cluster := sampleCluster()
	draft, err := NewAllocationDraft(cluster, "absent-1")
	require.NoError(t, err)

	reordered := cluster
	reordered.MegaShift.OriginalShifts = []schedule.AssignedShift{
		cluster.MegaShift.OriginalShifts[1],
		cluster.MegaShift.OriginalShifts[0],
	}
	draft2, err := NewAllocationDraft(reordered, "absent-1")
	require.NoError(t, err)

	assert.Equal(t, draft.IdempotencyKey(), draft2.IdempotencyKey())
}

func TestIdempotencyKey_DistinguishesAbsentees(t *testing.T) {
	cluster := sampleCluster()
	cluster.AbsentUsers = append(cluster.AbsentUsers, penalty.EnhancedAssignedUser{
		AssignedUser: schedule.AssignedUser{UserID: "absent-2", UserName: "Dung"}, AssignedDuration: 4,
	})

	d1, err := NewAllocationDraft(cluster, "absent-1")
	require.NoError(t, err)
	d2, err := NewAllocationDraft(cluster, "absent-2")
	require.NoError(t, err)

	assert.NotEqual(t, d1.IdempotencyKey(), d2.IdempotencyKey())
}
