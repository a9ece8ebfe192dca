package l2_service

import (
	"context"
	"fmt"
	"time"
	"trendalgo/internal/calculator"
	"trendalgo/internal/domain"
	"trendalgo/internal/logger"
	"trendalgo/internal/repository"
	"trendalgo/internal/util"
)

type SignalService interface {
	IsBullMarket(ctx context.Context, ticker string, trailingWindowDays int) (*domain.MarketSignal, error)
	MacroYearOverYear(ctx context.Context, indicatorID string, lookbackDays int) (*domain.MacroSignal, error)
	LatestPrice(ctx context.Context, ticker string, withinDays int) (*domain.AssetPrice, error)
}

type signalServiceHandler struct {
	PriceObservationRepository repository.PriceObservationRepository
	MacroRepository            repository.MacroRepository

	now func() time.Time
}

func NewSignalService(
	priceObservationRepository repository.PriceObservationRepository,
	macroRepository repository.MacroRepository,
) SignalService {
	return signalServiceHandler{
		PriceObservationRepository: priceObservationRepository,
		MacroRepository:            macroRepository,
		now:                        time.Now,
	}
}

// IsBullMarket compares the latest stored close against the mean close of
// the trailing window
func (h signalServiceHandler) IsBullMarket(ctx context.Context, ticker string, trailingWindowDays int) (*domain.MarketSignal, error) {
	if trailingWindowDays <= 0 {
		return nil, fmt.Errorf("trailing window must be > 0, got %d", trailingWindowDays)
	}

	since := util.AddDays(h.now(), -trailingWindowDays)
	prices, err := h.PriceObservationRepository.List(nil, ticker, since)
	if err != nil {
		return nil, err
	}

	result, err := calculator.TrendSignal(prices)
	if err != nil {
		return nil, fmt.Errorf("failed to compute trend for %s since %s: %w", ticker, util.FormatDate(since), err)
	}

	signal := &domain.MarketSignal{
		Symbol:       ticker,
		AsOf:         result.AsOf,
		LatestClose:  result.LatestClose,
		Mean:         result.Mean,
		Observations: result.Observations,
		IsBull:       result.IsBull,
	}

	logger.FromContext(ctx).Infow(
		"computed market signal",
		"ticker", ticker,
		"latest", signal.LatestClose.String(),
		"mean", signal.Mean.StringFixed(4),
		"stdev", result.Stdev,
		"observations", signal.Observations,
		"condition", signal.Condition(),
	)

	return signal, nil
}

func (h signalServiceHandler) MacroYearOverYear(ctx context.Context, indicatorID string, lookbackDays int) (*domain.MacroSignal, error) {
	end := util.DateOnly(h.now())
	start := util.AddDays(end, -lookbackDays)

	series, err := h.MacroRepository.GetSeries(ctx, indicatorID, start, end)
	if err != nil {
		return nil, err
	}

	asOf := time.Time{}
	for _, o := range series {
		if o.Date.After(asOf) {
			asOf = o.Date
		}
	}

	delta, err := calculator.YearOverYear(series, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s year over year: %w", indicatorID, err)
	}

	logger.FromContext(ctx).Infow(
		"computed macro signal",
		"indicator", indicatorID,
		"asOf", util.FormatDate(asOf),
		"yearOverYear", delta,
	)

	return &domain.MacroSignal{
		IndicatorID:  indicatorID,
		AsOf:         util.DateOnly(asOf),
		YearOverYear: delta,
	}, nil
}

// LatestPrice returns the most recent stored close no older than withinDays
func (h signalServiceHandler) LatestPrice(ctx context.Context, ticker string, withinDays int) (*domain.AssetPrice, error) {
	since := util.AddDays(h.now(), -withinDays)
	prices, err := h.PriceObservationRepository.List(nil, ticker, since)
	if err != nil {
		return nil, err
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w: no close for %s since %s", domain.ErrInsufficientData, ticker, util.FormatDate(since))
	}

	latest := prices[0]
	for _, p := range prices {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	return &latest, nil
}
