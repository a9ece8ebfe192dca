package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// AllocationTarget is one position change the decision engine wants
// executed. Targets are produced in execution order.
type AllocationTarget struct {
	Symbol   string
	Action   Action
	Quantity decimal.Decimal
}

func (a AllocationTarget) String() string {
	return fmt.Sprintf("%s: %s (%s)", a.Symbol, a.Quantity.String(), a.Action)
}

// Position is an open position as reported by the broker
type Position struct {
	Symbol   string
	Quantity decimal.Decimal
}

type Account struct {
	Equity decimal.Decimal
}
