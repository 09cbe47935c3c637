package penalty

import (
	"testing"

	"github.com/resto-ops/backoffice-go/internal/domain/penalty"
	"github.com/resto-ops/backoffice-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipient(id string, hours float64) penalty.EnhancedAssignedUser {
	return penalty.EnhancedAssignedUser{
		AssignedUser:     schedule.AssignedUser{UserID: id, UserName: id},
		AssignedDuration: hours,
	}
}

func TestSuggestPenalty(t *testing.T) {
	got := SuggestPenalty(8, decimal.NewFromInt(25000))
	assert.True(t, got.Equal(decimal.NewFromInt(200000)), "got %s", got)

	// Fractional products floor down.
	got = SuggestPenalty(7.5, decimal.NewFromInt(25001))
	assert.True(t, got.Equal(decimal.NewFromInt(187507)), "got %s", got)
}

func TestAllocateBonuses_Proportional(t *testing.T) {
	recipients := []penalty.EnhancedAssignedUser{
		recipient("a", 4), recipient("b", 4), recipient("c", 2),
	}

	shares, residual := AllocateBonuses(recipients, decimal.NewFromInt(100000))
	require.Len(t, shares, 3)

	assert.True(t, shares[0].Amount.Equal(decimal.NewFromInt(40000)), "got %s", shares[0].Amount)
	assert.True(t, shares[1].Amount.Equal(decimal.NewFromInt(40000)), "got %s", shares[1].Amount)
	assert.True(t, shares[2].Amount.Equal(decimal.NewFromInt(20000)), "got %s", shares[2].Amount)
	assert.True(t, residual.IsZero(), "got residual %s", residual)
}

func TestAllocateBonuses_ResidualNotRedistributed(t *testing.T) {
	recipients := []penalty.EnhancedAssignedUser{
		recipient("a", 3), recipient("b", 3), recipient("c", 3),
	}

	shares, residual := AllocateBonuses(recipients, decimal.NewFromInt(100000))
	require.Len(t, shares, 3)

	for _, s := range shares {
		assert.True(t, s.Amount.Equal(decimal.NewFromInt(33333)), "got %s", s.Amount)
	}
	assert.True(t, residual.Equal(decimal.NewFromInt(1)), "got residual %s", residual)
}

func TestAllocateBonuses_DegenerateInputs(t *testing.T) {
	recipients := []penalty.EnhancedAssignedUser{recipient("a", 4)}

	shares, residual := AllocateBonuses(nil, decimal.NewFromInt(100000))
	assert.Empty(t, shares)
	assert.True(t, residual.IsZero())

	shares, residual = AllocateBonuses(recipients, decimal.Zero)
	assert.Empty(t, shares)
	assert.True(t, residual.IsZero())

	shares, residual = AllocateBonuses(recipients, decimal.NewFromInt(-500))
	assert.Empty(t, shares)
	assert.True(t, residual.IsZero())

	shares, residual = AllocateBonuses([]penalty.EnhancedAssignedUser{recipient("a", 0)}, decimal.NewFromInt(100000))
	assert.Empty(t, shares)
	assert.True(t, residual.IsZero())
}

func TestAllocateBonuses_SingleRecipientTakesAll(t *testing.T) {
	shares, residual := AllocateBonuses([]penalty.EnhancedAssignedUser{recipient("a", 6)}, decimal.NewFromInt(150000))
	require.Len(t, shares, 1)
	assert.True(t, shares[0].Amount.Equal(decimal.NewFromInt(150000)))
	assert.True(t, residual.IsZero())
}
