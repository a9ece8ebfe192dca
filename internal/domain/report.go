package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MarketSignal struct {
	Symbol       string
	AsOf         time.Time
	LatestClose  decimal.Decimal
	Mean         decimal.Decimal
	Observations int
	IsBull       bool
}

func (m MarketSignal) Condition() string {
	if m.IsBull {
		return "Bull"
	}
	return "Bear"
}

type MacroSignal struct {
	IndicatorID  string
	AsOf         time.Time
	YearOverYear float64
}

type OrderStatus string

const (
	OrderStatusSimulated    OrderStatus = "simulated"
	OrderStatusSubmitted    OrderStatus = "submitted"
	OrderStatusFailed       OrderStatus = "failed"
	OrderStatusNotSubmitted OrderStatus = "not_submitted"
)

type ExecutedTarget struct {
	Target  AllocationTarget
	Status  OrderStatus
	OrderID *string
	Error   *string
}

// RunReport summarizes one decision run. It is rendered into the
// report email and logged.
type RunReport struct {
	RunID          uuid.UUID
	Date           time.Time
	Live           bool
	PortfolioValue decimal.Decimal
	Market         MarketSignal
	Macro          MacroSignal
	TargetSymbol   string
	Targets        []ExecutedTarget
}
