package l1_service

import (
	"context"
	"fmt"
	"trendalgo/internal/domain"
	"trendalgo/internal/logger"
	"trendalgo/internal/repository"
	"trendalgo/internal/util"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/google/uuid"
)

type TradeService interface {
	GetAccount(ctx context.Context) (*domain.Account, error)
	GetPositions(ctx context.Context) ([]domain.Position, error)
	Execute(ctx context.Context, targets []domain.AllocationTarget, live bool) ([]domain.ExecutedTarget, error)
}

type tradeServiceHandler struct {
	AlpacaRepository repository.AlpacaRepository
}

func NewTradeService(alpacaRepository repository.AlpacaRepository) TradeService {
	return tradeServiceHandler{
		AlpacaRepository: alpacaRepository,
	}
}

func (h tradeServiceHandler) GetAccount(ctx context.Context) (*domain.Account, error) {
	account, err := h.AlpacaRepository.GetAccount()
	if err != nil {
		return nil, err
	}
	return &domain.Account{
		Equity: account.Equity,
	}, nil
}

func (h tradeServiceHandler) GetPositions(ctx context.Context) ([]domain.Position, error) {
	positions, err := h.AlpacaRepository.GetPositions()
	if err != nil {
		return nil, err
	}

	out := []domain.Position{}
	for _, p := range positions {
		out = append(out, domain.Position{
			Symbol:   p.Symbol,
			Quantity: p.Qty,
		})
	}
	return out, nil
}

func sideFromAction(action domain.Action) (alpaca.Side, error) {
	switch action {
	case domain.ActionBuy:
		return alpaca.Buy, nil
	case domain.ActionSell:
		return alpaca.Sell, nil
	}
	return "", fmt.Errorf("unknown action %q", action)
}

// Execute submits the targets in order. Outside live mode nothing is sent
// and every target is reported as simulated. Submission stops at the
// first failed order; the targets after it are reported as not submitted.
// Targets with no shares to trade are skipped without counting as failures.
// Live orders are only sent once the broker clock answers; a closed market
// is logged and the orders queue for the next session.
func (h tradeServiceHandler) Execute(ctx context.Context, targets []domain.AllocationTarget, live bool) ([]domain.ExecutedTarget, error) {
	log := logger.FromContext(ctx)

	out := []domain.ExecutedTarget{}
	if !live {
		for _, target := range targets {
			log.Infof("simulated order %s", target.String())
			out = append(out, domain.ExecutedTarget{
				Target: target,
				Status: domain.OrderStatusSimulated,
			})
		}
		return out, nil
	}

	var failure error
	if len(targets) > 0 {
		open, err := h.AlpacaRepository.IsMarketOpen()
		if err != nil {
			failure = fmt.Errorf("failed to read market clock: %w", err)
			log.Error(failure)
		} else if !open {
			log.Warnf("market is closed, %d orders will queue for the next session", len(targets))
		}
	}

	for _, target := range targets {
		if failure != nil {
			out = append(out, domain.ExecutedTarget{
				Target: target,
				Status: domain.OrderStatusNotSubmitted,
			})
			continue
		}

		if !target.Quantity.IsPositive() {
			log.Warnf("not submitting %s: nothing to trade", target.String())
			out = append(out, domain.ExecutedTarget{
				Target: target,
				Status: domain.OrderStatusNotSubmitted,
			})
			continue
		}

		order, err := h.placeOrder(target)
		if err != nil {
			failure = fmt.Errorf("failed to submit %s: %w", target.String(), err)
			log.Error(failure)
			out = append(out, domain.ExecutedTarget{
				Target: target,
				Status: domain.OrderStatusFailed,
				Error:  util.StringPointer(err.Error()),
			})
			continue
		}

		log.Infof("submitted order %s as %s", target.String(), order.ID)
		out = append(out, domain.ExecutedTarget{
			Target:  target,
			Status:  domain.OrderStatusSubmitted,
			OrderID: util.StringPointer(order.ID),
		})
	}

	return out, failure
}

func (h tradeServiceHandler) placeOrder(target domain.AllocationTarget) (*alpaca.Order, error) {
	side, err := sideFromAction(target.Action)
	if err != nil {
		return nil, err
	}
	return h.AlpacaRepository.PlaceOrder(repository.AlpacaPlaceOrderRequest{
		ClientOrderID: uuid.New(),
		Quantity:      target.Quantity,
		Symbol:        target.Symbol,
		Side:          side,
	})
}
