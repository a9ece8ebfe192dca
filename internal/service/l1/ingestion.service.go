package l1_service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"trendalgo/internal/db"
	"trendalgo/internal/db/models/postgres/public/model"
	"trendalgo/internal/domain"
	"trendalgo/internal/logger"
	"trendalgo/internal/repository"
	"trendalgo/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// market data is only trusted once it is two days old
const settlementLag = 48 * time.Hour

type IngestionService interface {
	Ingest(ctx context.Context, input IngestInput) (*IngestResult, error)
	IngestAll(ctx context.Context, inputs []IngestInput) ([]IngestResult, error)
}

type IngestInput struct {
	Ticker       string
	Name         *string
	Type         model.InstrumentType
	LookbackDays int
}

type IngestResult struct {
	Ticker       string
	InstrumentID uuid.UUID
	Start        time.Time
	End          time.Time
	Fetched      int
	Inserted     int64
	Skipped      int
	// set when the provider failed; the ingestion itself still succeeds
	ProviderError *string
	Error         *string
}

type ingestionServiceHandler struct {
	TxRunner                   db.TxRunner
	InstrumentRepository       repository.InstrumentRepository
	PriceObservationRepository repository.PriceObservationRepository
	MarketDataRepository       repository.MarketDataRepository

	now func() time.Time
}

func NewIngestionService(
	txRunner db.TxRunner,
	instrumentRepository repository.InstrumentRepository,
	priceObservationRepository repository.PriceObservationRepository,
	marketDataRepository repository.MarketDataRepository,
) IngestionService {
	return ingestionServiceHandler{
		TxRunner:                   txRunner,
		InstrumentRepository:       instrumentRepository,
		PriceObservationRepository: priceObservationRepository,
		MarketDataRepository:       marketDataRepository,
		now:                        time.Now,
	}
}

func (in IngestInput) validate() error {
	if in.Ticker == "" {
		return fmt.Errorf("ticker is required")
	}
	if in.LookbackDays <= 0 {
		return fmt.Errorf("lookback days must be > 0, got %d", in.LookbackDays)
	}
	return nil
}

// ingestionWindow returns the inclusive range of days still missing from
// the store. start is after end when there is nothing to fetch.
func ingestionWindow(latest *model.PriceObservation, lookbackDays int, now time.Time) (time.Time, time.Time) {
	end := util.DateOnly(now.Add(-settlementLag))
	if latest == nil {
		return util.AddDays(now, -lookbackDays), end
	}
	return util.AddDays(latest.Date, 1), end
}

// observationsFromBars converts provider bars into rows, dropping bars
// that are outside the window, priced at or below zero, or repeated
func observationsFromBars(log *zap.SugaredLogger, instrumentID uuid.UUID, bars []domain.Bar, start, end time.Time) ([]model.PriceObservation, int) {
	out := []model.PriceObservation{}
	skipped := 0
	seen := map[time.Time]bool{}

	for _, bar := range bars {
		date := util.DateOnly(bar.Date)
		switch {
		case !bar.Close.IsPositive():
			log.Warnf("skipping bar on %s: close %s is not positive", util.FormatDate(date), bar.Close.String())
		case date.Before(start) || date.After(end):
			log.Warnf("skipping bar on %s: outside %s to %s", util.FormatDate(date), util.FormatDate(start), util.FormatDate(end))
		case seen[date]:
			log.Warnf("skipping duplicate bar on %s", util.FormatDate(date))
		default:
			seen[date] = true
			out = append(out, model.PriceObservation{
				InstrumentID: instrumentID,
				Date:         date,
				Close:        bar.Close,
			})
			continue
		}
		skipped++
	}

	return out, skipped
}

// Ingest appends every missing daily close for one instrument. The
// instrument and the latest stored day are read first, bars are fetched
// with no transaction open, and the batch is written in one transaction.
// Provider failures are logged and leave the store unchanged; storage
// failures are returned.
func (h ingestionServiceHandler) Ingest(ctx context.Context, input IngestInput) (*IngestResult, error) {
	if err := input.validate(); err != nil {
		return nil, fmt.Errorf("invalid ingest input: %w", err)
	}
	log := logger.FromContext(ctx).With("ticker", input.Ticker)

	instrument, err := h.InstrumentRepository.GetOrCreate(nil, model.Instrument{
		Ticker: input.Ticker,
		Name:   input.Name,
		Type:   input.Type,
	})
	if err != nil {
		return nil, err
	}

	latest, err := h.PriceObservationRepository.GetLatest(nil, instrument.InstrumentID)
	if err != nil {
		return nil, err
	}

	start, end := ingestionWindow(latest, input.LookbackDays, h.now())
	result := &IngestResult{
		Ticker:       input.Ticker,
		InstrumentID: instrument.InstrumentID,
		Start:        start,
		End:          end,
	}

	if start.After(end) {
		log.Infof("prices up to date through %s", util.FormatDate(end))
		return result, nil
	}

	bars, err := h.MarketDataRepository.GetDailyBars(ctx, input.Ticker, start, end)
	if err != nil {
		log.Warnf("failed to fetch bars from %s to %s: %v", util.FormatDate(start), util.FormatDate(end), err)
		result.ProviderError = util.StringPointer(err.Error())
		bars = nil
	}
	result.Fetched = len(bars)

	observations, skipped := observationsFromBars(log, instrument.InstrumentID, bars, start, end)
	result.Skipped = skipped
	if len(observations) == 0 {
		return result, nil
	}

	err = h.TxRunner.WithTx(ctx, func(tx *sql.Tx) error {
		inserted, err := h.PriceObservationRepository.AddMany(tx, observations)
		if err != nil {
			return err
		}
		result.Inserted = inserted
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Infow(
		"ingested prices",
		"start", util.FormatDate(start),
		"end", util.FormatDate(end),
		"fetched", result.Fetched,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
	)

	return result, nil
}

// IngestAll ingests each instrument on its own; one failure doesn't stop
// the rest. Every instrument gets a result and the failures are joined.
func (h ingestionServiceHandler) IngestAll(ctx context.Context, inputs []IngestInput) ([]IngestResult, error) {
	results := []IngestResult{}
	errs := []error{}

	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := h.Ingest(ctx, in)
		if err != nil {
			err = fmt.Errorf("failed to ingest %s: %w", in.Ticker, err)
			logger.FromContext(ctx).Error(err)
			errs = append(errs, err)
			results = append(results, IngestResult{
				Ticker: in.Ticker,
				Error:  util.StringPointer(err.Error()),
			})
			continue
		}
		results = append(results, *result)
	}

	return results, errors.Join(errs...)
}
