package app

import (
	"context"
	"errors"
	"fmt"
	"time"
	"trendalgo/internal/config"
	"trendalgo/internal/db/models/postgres/public/model"
	"trendalgo/internal/domain"
	"trendalgo/internal/logger"
	"trendalgo/internal/metrics"
	"trendalgo/internal/repository"
	"trendalgo/internal/service"
	l1_service "trendalgo/internal/service/l1"
	l2_service "trendalgo/internal/service/l2"
	l3_service "trendalgo/internal/service/l3"
	"trendalgo/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TrendAlgoApp runs the monthly decision: refresh prices, compute the
// market and macro signals, pick market or cash, execute and report.
type TrendAlgoApp interface {
	Ingest(ctx context.Context) ([]l1_service.IngestResult, error)
	Run(ctx context.Context, input RunInput) (*domain.RunReport, error)
	History(ctx context.Context, ticker string, days int) ([]domain.AssetPrice, error)
}

type RunInput struct {
	Live       bool
	SendEmail  bool
	SkipIngest bool
	// used instead of the broker equity when set
	PortfolioValue *decimal.Decimal
}

type trendAlgoAppHandler struct {
	Model       config.Model
	ToAddresses []string

	IngestionService           l1_service.IngestionService
	TradeService               l1_service.TradeService
	SignalService              l2_service.SignalService
	EmailService               service.EmailService
	PriceObservationRepository repository.PriceObservationRepository
	Metrics                    *metrics.Recorder

	now func() time.Time
}

// NewTrendAlgoApp wires the run. tradeService may be nil when no broker
// is configured, emailService when email is disabled, recorder when
// metrics are off.
func NewTrendAlgoApp(
	modelConfig config.Model,
	toAddresses []string,
	ingestionService l1_service.IngestionService,
	tradeService l1_service.TradeService,
	signalService l2_service.SignalService,
	emailService service.EmailService,
	priceObservationRepository repository.PriceObservationRepository,
	recorder *metrics.Recorder,
) TrendAlgoApp {
	return &trendAlgoAppHandler{
		Model:                      modelConfig,
		ToAddresses:                toAddresses,
		IngestionService:           ingestionService,
		TradeService:               tradeService,
		SignalService:              signalService,
		EmailService:               emailService,
		PriceObservationRepository: priceObservationRepository,
		Metrics:                    recorder,
		now:                        time.Now,
	}
}

func (h *trendAlgoAppHandler) Ingest(ctx context.Context) ([]l1_service.IngestResult, error) {
	inputs := []l1_service.IngestInput{}
	for _, ticker := range []string{h.Model.Market, h.Model.Cash} {
		inputs = append(inputs, l1_service.IngestInput{
			Ticker:       ticker,
			Type:         model.InstrumentType_Etf,
			LookbackDays: h.Model.LookbackDays,
		})
	}

	results, err := h.IngestionService.IngestAll(ctx, inputs)
	if h.Metrics != nil {
		for _, r := range results {
			if r.Error != nil {
				h.Metrics.RecordIngestError(r.Ticker)
				continue
			}
			if r.ProviderError != nil {
				h.Metrics.RecordProviderError(r.Ticker)
			}
			h.Metrics.RecordIngest(r.Ticker, r.Inserted, r.Skipped)
		}
	}

	return results, err
}

func (h *trendAlgoAppHandler) portfolioValue(ctx context.Context, input RunInput) (decimal.Decimal, error) {
	if input.PortfolioValue != nil {
		return *input.PortfolioValue, nil
	}
	if h.TradeService == nil {
		return decimal.Zero, fmt.Errorf("no broker configured and no portfolio value given")
	}
	account, err := h.TradeService.GetAccount(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Equity, nil
}

// Run aborts before any order when a signal can't be computed. When an
// order fails the report is still built and sent, and the order error is
// returned alongside it.
func (h *trendAlgoAppHandler) Run(ctx context.Context, input RunInput) (*domain.RunReport, error) {
	start := h.now()
	log := logger.FromContext(ctx)

	if input.Live && h.TradeService == nil {
		return nil, fmt.Errorf("live run requires a broker")
	}
	if input.SendEmail && h.EmailService == nil {
		return nil, fmt.Errorf("email requested but no email service is configured")
	}

	if !input.SkipIngest {
		if _, err := h.Ingest(ctx); err != nil {
			// whatever is already stored is still usable
			log.Errorf("ingestion failed, continuing with stored prices: %v", err)
		}
	}

	market, err := h.SignalService.IsBullMarket(ctx, h.Model.Market, h.Model.TailingWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to compute market signal: %w", err)
	}

	macro, err := h.SignalService.MacroYearOverYear(ctx, h.Model.MacroIndicator, h.Model.MacroLookbackDays)
	if err != nil {
		return nil, fmt.Errorf("failed to compute macro signal: %w", err)
	}

	targetSymbol, _ := l3_service.SelectTarget(market.IsBull, macro.YearOverYear, h.Model.Market, h.Model.Cash)
	price, err := h.SignalService.LatestPrice(ctx, targetSymbol, h.Model.TailingWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to get price for %s: %w", targetSymbol, err)
	}

	portfolioValue, err := h.portfolioValue(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio value: %w", err)
	}

	var positions []domain.Position
	if input.Live {
		positions, err = h.TradeService.GetPositions(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get positions: %w", err)
		}
	}

	targets, err := l3_service.ComputeAllocation(l3_service.ComputeAllocationInput{
		MarketSymbol:      h.Model.Market,
		CashSymbol:        h.Model.Cash,
		IsBull:            market.IsBull,
		MacroYearOverYear: macro.YearOverYear,
		PortfolioValue:    portfolioValue,
		Weight:            decimal.NewFromFloat(h.Model.Weight),
		PriceMap:          map[string]decimal.Decimal{targetSymbol: price.Close},
		Positions:         positions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute allocation: %w", err)
	}

	var executed []domain.ExecutedTarget
	var executionErr error
	if h.TradeService != nil {
		executed, executionErr = h.TradeService.Execute(ctx, targets, input.Live)
	} else {
		executed = simulate(targets)
	}

	report := &domain.RunReport{
		RunID:          uuid.New(),
		Date:           start.UTC(),
		Live:           input.Live,
		PortfolioValue: portfolioValue,
		Market:         *market,
		Macro:          *macro,
		TargetSymbol:   targetSymbol,
		Targets:        executed,
	}

	errs := []error{}
	if executionErr != nil {
		errs = append(errs, fmt.Errorf("failed to execute allocation: %w", executionErr))
	}

	if h.EmailService != nil {
		_, _, plain, err := h.EmailService.GenerateReportEmail(*report)
		if err == nil {
			log.Infof("run report\n%s", plain)
		}
		if input.SendEmail {
			if err := h.EmailService.SendReportEmail(ctx, *report, h.ToAddresses); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if h.Metrics != nil {
		h.Metrics.RecordSignals(market.IsBull, macro.YearOverYear)
		for _, e := range executed {
			h.Metrics.RecordOrder(e.Target.Symbol, string(e.Target.Action), string(e.Status))
		}
		h.Metrics.RecordRun(h.now().Sub(start).Seconds())
	}

	log.Infow(
		"completed run",
		"runId", report.RunID.String(),
		"live", report.Live,
		"target", targetSymbol,
		"portfolioValue", portfolioValue.String(),
	)

	return report, errors.Join(errs...)
}

func simulate(targets []domain.AllocationTarget) []domain.ExecutedTarget {
	out := []domain.ExecutedTarget{}
	for _, t := range targets {
		out = append(out, domain.ExecutedTarget{
			Target: t,
			Status: domain.OrderStatusSimulated,
		})
	}
	return out
}

func (h *trendAlgoAppHandler) History(ctx context.Context, ticker string, days int) ([]domain.AssetPrice, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be > 0, got %d", days)
	}
	return h.PriceObservationRepository.List(nil, ticker, util.AddDays(h.now(), -days))
}
