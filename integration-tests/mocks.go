package integration_tests

import (
	"fmt"
	"sync"
	"trendalgo/internal/repository"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaperBroker fills every order instantly against an in-memory account.
// It stands in for alpaca when TREND_ENV=test and in the end to end tests.
type PaperBroker struct {
	mu        sync.Mutex
	Equity    decimal.Decimal
	Positions map[string]decimal.Decimal
	Orders    []repository.AlpacaPlaceOrderRequest
	// orders for these symbols are rejected
	Reject map[string]bool
}

func NewMockAlpacaRepositoryForTests() repository.AlpacaRepository {
	return NewPaperBroker(decimal.NewFromInt(10000), nil)
}

func NewPaperBroker(equity decimal.Decimal, positions map[string]decimal.Decimal) *PaperBroker {
	if positions == nil {
		positions = map[string]decimal.Decimal{}
	}
	return &PaperBroker{
		Equity:    equity,
		Positions: positions,
		Reject:    map[string]bool{},
	}
}

func (m *PaperBroker) GetAccount() (*alpaca.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &alpaca.Account{Equity: m.Equity}, nil
}

func (m *PaperBroker) GetPositions() ([]alpaca.Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []alpaca.Position{}
	for symbol, qty := range m.Positions {
		if qty.IsZero() {
			continue
		}
		out = append(out, alpaca.Position{
			Symbol: symbol,
			Qty:    qty,
		})
	}
	return out, nil
}

func (m *PaperBroker) PlaceOrder(req repository.AlpacaPlaceOrderRequest) (*alpaca.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Reject[req.Symbol] {
		return nil, fmt.Errorf("order for %s rejected", req.Symbol)
	}
	m.Orders = append(m.Orders, req)

	qty := m.Positions[req.Symbol]
	if req.Side == alpaca.Sell {
		qty = qty.Sub(req.Quantity)
	} else {
		qty = qty.Add(req.Quantity)
	}
	m.Positions[req.Symbol] = qty

	return &alpaca.Order{
		ID:            uuid.NewString(),
		ClientOrderID: req.ClientOrderID.String(),
		Symbol:        req.Symbol,
		Side:          req.Side,
		Qty:           &req.Quantity,
		FilledQty:     req.Quantity,
		Status:        "filled",
	}, nil
}

func (m *PaperBroker) IsMarketOpen() (bool, error) {
	return true, nil
}
