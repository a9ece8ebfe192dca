package l3_service

import (
	"fmt"
	"trendalgo/internal/domain"

	"github.com/shopspring/decimal"
)

type ComputeAllocationInput struct {
	MarketSymbol      string
	CashSymbol        string
	IsBull            bool
	MacroYearOverYear float64
	PortfolioValue    decimal.Decimal
	// fraction of the portfolio to put in the target; zero means 1
	Weight   decimal.Decimal
	PriceMap map[string]decimal.Decimal
	// open broker positions, nil when not trading live
	Positions []domain.Position
}

// SelectTarget is invested in the market whenever either signal is
// positive, otherwise in cash
func SelectTarget(isBull bool, macroYearOverYear float64, marketSymbol, cashSymbol string) (string, string) {
	if macroYearOverYear > 0 || isBull {
		return marketSymbol, cashSymbol
	}
	return cashSymbol, marketSymbol
}

// ComputeAllocation turns the signals into the ordered list of orders
// for the run: every open position in the unwanted instrument is sold
// first, then the target is bought with the whole weighted portfolio.
func ComputeAllocation(in ComputeAllocationInput) ([]domain.AllocationTarget, error) {
	if in.MarketSymbol == "" || in.CashSymbol == "" {
		return nil, fmt.Errorf("market and cash symbols are required")
	}
	if in.MarketSymbol == in.CashSymbol {
		return nil, fmt.Errorf("market and cash symbols must differ, got %s", in.MarketSymbol)
	}
	if in.PortfolioValue.IsNegative() {
		return nil, fmt.Errorf("cannot compute allocation with portfolio value %s", in.PortfolioValue.String())
	}

	weight := in.Weight
	if weight.IsZero() {
		weight = decimal.NewFromInt(1)
	}
	if weight.IsNegative() || weight.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("weight must be in (0, 1], got %s", weight.String())
	}

	target, unwanted := SelectTarget(in.IsBull, in.MacroYearOverYear, in.MarketSymbol, in.CashSymbol)

	price, ok := in.PriceMap[target]
	if !ok {
		return nil, fmt.Errorf("priceMap does not have %s", target)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("price for %s must be > 0, got %s", target, price.String())
	}

	quantity := in.PortfolioValue.Mul(weight).Div(price).Floor()

	out := []domain.AllocationTarget{}
	for _, p := range in.Positions {
		if p.Symbol != unwanted || !p.Quantity.IsPositive() {
			continue
		}
		out = append(out, domain.AllocationTarget{
			Symbol:   p.Symbol,
			Action:   domain.ActionSell,
			Quantity: p.Quantity,
		})
	}

	out = append(out, domain.AllocationTarget{
		Symbol:   target,
		Action:   domain.ActionBuy,
		Quantity: quantity,
	})

	return out, nil
}
