package l3_service

import (
	"testing"
	"trendalgo/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSelectTarget(t *testing.T) {
	cases := []struct {
		isBull   bool
		macro    float64
		expected string
	}{
		{isBull: true, macro: 1, expected: "SPY"},
		{isBull: true, macro: -1, expected: "SPY"},
		{isBull: false, macro: 1, expected: "SPY"},
		{isBull: false, macro: -1, expected: "SHY"},
		{isBull: false, macro: 0, expected: "SHY"},
	}
	for _, c := range cases {
		target, _ := SelectTarget(c.isBull, c.macro, "SPY", "SHY")
		require.Equal(t, c.expected, target, "isBull=%v macro=%v", c.isBull, c.macro)
	}
}

func TestComputeAllocation(t *testing.T) {
	priceMap := map[string]decimal.Decimal{
		"SPY": decimal.RequireFromString("333.33"),
		"SHY": decimal.RequireFromString("82.10"),
	}

	t.Run("quantity is floored", func(t *testing.T) {
		result, err := ComputeAllocation(ComputeAllocationInput{
			MarketSymbol:   "SPY",
			CashSymbol:     "SHY",
			IsBull:         true,
			PortfolioValue: decimal.NewFromInt(10000),
			PriceMap:       priceMap,
		})
		require.NoError(t, err)

		expected := []domain.AllocationTarget{
			{Symbol: "SPY", Action: domain.ActionBuy, Quantity: decimal.NewFromInt(30)},
		}
		require.Equal(t, "", cmp.Diff(expected, result))
	})

	t.Run("sells unwanted positions first", func(t *testing.T) {
		result, err := ComputeAllocation(ComputeAllocationInput{
			MarketSymbol:      "SPY",
			CashSymbol:        "SHY",
			IsBull:            false,
			MacroYearOverYear: -2.5,
			PortfolioValue:    decimal.NewFromInt(10000),
			PriceMap:          priceMap,
			Positions: []domain.Position{
				{Symbol: "SPY", Quantity: decimal.RequireFromString("29.5")},
				{Symbol: "SHY", Quantity: decimal.NewFromInt(3)},
				{Symbol: "SPY", Quantity: decimal.Zero},
			},
		})
		require.NoError(t, err)

		expected := []domain.AllocationTarget{
			{Symbol: "SPY", Action: domain.ActionSell, Quantity: decimal.RequireFromString("29.5")},
			{Symbol: "SHY", Action: domain.ActionBuy, Quantity: decimal.NewFromInt(121)},
		}
		require.Equal(t, "", cmp.Diff(expected, result))
	})

	t.Run("weight scales the buy", func(t *testing.T) {
		result, err := ComputeAllocation(ComputeAllocationInput{
			MarketSymbol:      "SPY",
			CashSymbol:        "SHY",
			MacroYearOverYear: 0.4,
			PortfolioValue:    decimal.NewFromInt(10000),
			Weight:            decimal.RequireFromString("0.5"),
			PriceMap:          priceMap,
		})
		require.NoError(t, err)
		require.Len(t, result, 1)
		require.True(t, result[0].Quantity.Equal(decimal.NewFromInt(15)))
	})

	t.Run("missing price", func(t *testing.T) {
		_, err := ComputeAllocation(ComputeAllocationInput{
			MarketSymbol:   "SPY",
			CashSymbol:     "SHY",
			IsBull:         true,
			PortfolioValue: decimal.NewFromInt(10000),
			PriceMap:       map[string]decimal.Decimal{"SHY": decimal.NewFromInt(80)},
		})
		require.Error(t, err)
	})

	t.Run("non-positive price", func(t *testing.T) {
		_, err := ComputeAllocation(ComputeAllocationInput{
			MarketSymbol:   "SPY",
			CashSymbol:     "SHY",
			IsBull:         true,
			PortfolioValue: decimal.NewFromInt(10000),
			PriceMap:       map[string]decimal.Decimal{"SPY": decimal.Zero},
		})
		require.Error(t, err)
	})

	t.Run("negative portfolio value", func(t *testing.T) {
		_, err := ComputeAllocation(ComputeAllocationInput{
			MarketSymbol:   "SPY",
			CashSymbol:     "SHY",
			IsBull:         true,
			PortfolioValue: decimal.NewFromInt(-1),
			PriceMap:       priceMap,
		})
		require.Error(t, err)
	})

	t.Run("missing symbols", func(t *testing.T) {
		_, err := ComputeAllocation(ComputeAllocationInput{
			CashSymbol:     "SHY",
			PortfolioValue: decimal.NewFromInt(10000),
			PriceMap:       priceMap,
		})
		require.Error(t, err)
	})
}
