package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendgate/internal/scoring"
	"lendgate/pkg/platform/sentinel"
)

func baseResult() scoring.Result {
	return scoring.Result{
		Score:          700,
		Decision:       scoring.DecisionApproved,
		MaxDeviceValue: 500_000,
		MinDownPayment: 75_000, // 25% of 300k
		AllowedTenure:  []int{3, 6, 9},
		InterestRate:   0.030,
		CreditRating:   scoring.RatingGood,
	}
}

func TestClamp(t *testing.T) {
	const price = 300_000.0

	t.Run("policy tightens max value", func(t *testing.T) {
		pol := MerchantPolicy{MaxDeviceValue: 200_000}
		clamped := Clamp(baseResult(), pol, price)
		assert.Equal(t, 200_000.0, clamped.MaxDeviceValue)
	})

	t.Run("looser policy max keeps scoring max", func(t *testing.T) {
		pol := MerchantPolicy{MaxDeviceValue: 2_000_000}
		clamped := Clamp(baseResult(), pol, price)
		assert.Equal(t, 500_000.0, clamped.MaxDeviceValue)
	})

	t.Run("tenure intersection preserves scoring order", func(t *testing.T) {
		pol := MerchantPolicy{AllowedTenures: []int{9, 3, 24}}
		clamped := Clamp(baseResult(), pol, price)
		assert.Equal(t, []int{3, 9}, clamped.AllowedTenure)
	})

	t.Run("disjoint tenures yield empty set", func(t *testing.T) {
		pol := MerchantPolicy{AllowedTenures: []int{18, 24}}
		clamped := Clamp(baseResult(), pol, price)
		assert.Empty(t, clamped.AllowedTenure)
	})

	t.Run("higher policy down payment wins", func(t *testing.T) {
		pol := MerchantPolicy{MinDownPaymentPercent: 0.40}
		clamped := Clamp(baseResult(), pol, price)
		assert.InDelta(t, 120_000.0, clamped.MinDownPayment, 0.001)
	})

	t.Run("lower policy down payment keeps scoring figure", func(t *testing.T) {
		pol := MerchantPolicy{MinDownPaymentPercent: 0.10}
		clamped := Clamp(baseResult(), pol, price)
		assert.Equal(t, 75_000.0, clamped.MinDownPayment)
	})

	t.Run("zero-value policy changes nothing", func(t *testing.T) {
		clamped := Clamp(baseResult(), MerchantPolicy{}, price)
		assert.Equal(t, baseResult(), clamped)
	})
}

// Clamping can only tighten: across a grid of policies, the clamped bounds
// must always be within the unclamped result's bounds.
func TestClampNeverLoosens(t *testing.T) {
	const price = 300_000.0
	base := baseResult()

	policies := []MerchantPolicy{
		{},
		{MaxDeviceValue: 100_000},
		{MaxDeviceValue: 900_000},
		{AllowedTenures: []int{3}},
		{AllowedTenures: []int{3, 6, 9, 12, 18, 24}},
		{MinDownPaymentPercent: 0.05},
		{MinDownPaymentPercent: 0.50},
		{MaxDeviceValue: 150_000, AllowedTenures: []int{6, 12}, MinDownPaymentPercent: 0.45},
	}

	baseTenures := make(map[int]bool)
	for _, tn := range base.AllowedTenure {
		baseTenures[tn] = true
	}

	for i, pol := range policies {
		clamped := Clamp(base, pol, price)

		assert.LessOrEqual(t, clamped.MaxDeviceValue, base.MaxDeviceValue, "policy %d", i)
		assert.GreaterOrEqual(t, clamped.MinDownPayment, base.MinDownPayment, "policy %d", i)
		for _, tn := range clamped.AllowedTenure {
			assert.True(t, baseTenures[tn], "policy %d introduced tenure %d", i, tn)
		}

		// Untouched terms pass through.
		assert.Equal(t, base.InterestRate, clamped.InterestRate)
		assert.Equal(t, base.CreditRating, clamped.CreditRating)
		assert.Equal(t, base.Score, clamped.Score)
	}
}

func TestInMemoryStore(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "unknown")
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	store.Put(MerchantPolicy{
		MerchantID:     "merchant-1",
		MaxDeviceValue: 200_000,
		RiskTolerance:  RiskToleranceConservative,
	})

	pol, err := store.Get(ctx, "merchant-1")
	require.NoError(t, err)
	assert.Equal(t, 200_000.0, pol.MaxDeviceValue)
}
