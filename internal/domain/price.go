package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInsufficientData means a signal could not be computed because the
// required observations are missing. Runs must abort on it.
var ErrInsufficientData = errors.New("insufficient data")

// Bar is a single daily close as returned by a market data provider
type Bar struct {
	Date  time.Time
	Close decimal.Decimal
}

type AssetPrice struct {
	Symbol string
	Close  decimal.Decimal
	Date   time.Time
}

type MacroObservation struct {
	Date  time.Time
	Value float64
}
