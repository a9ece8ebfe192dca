package repository

import (
	"database/sql"
	"fmt"
	"time"
	"trendalgo/internal/db/models/postgres/public/model"
	. "trendalgo/internal/db/models/postgres/public/table"
	"trendalgo/internal/domain"

	. "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

type PriceObservationRepository interface {
	// GetLatest returns nil when the instrument has no observations
	GetLatest(tx *sql.Tx, instrumentID uuid.UUID) (*model.PriceObservation, error)
	// AddMany returns the number of rows actually inserted. Rows for an
	// (instrument, date) pair that already exists are left untouched.
	AddMany(tx *sql.Tx, observations []model.PriceObservation) (int64, error)
	List(tx *sql.Tx, ticker string, since time.Time) ([]domain.AssetPrice, error)
}

type priceObservationRepositoryHandler struct {
	Db *sql.DB
}

func NewPriceObservationRepository(db *sql.DB) PriceObservationRepository {
	return priceObservationRepositoryHandler{Db: db}
}

func (h priceObservationRepositoryHandler) queryable(tx *sql.Tx) qrm.DB {
	if tx != nil {
		return tx
	}
	return h.Db
}

func (h priceObservationRepositoryHandler) GetLatest(tx *sql.Tx, instrumentID uuid.UUID) (*model.PriceObservation, error) {
	query := PriceObservation.
		SELECT(PriceObservation.AllColumns).
		WHERE(PriceObservation.InstrumentID.EQ(UUID(instrumentID))).
		ORDER_BY(PriceObservation.Date.DESC()).
		LIMIT(1)

	out := []model.PriceObservation{}
	err := query.Query(h.queryable(tx), &out)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest observation for %s: %w", instrumentID.String(), err)
	}
	if len(out) == 0 {
		return nil, nil
	}

	return &out[0], nil
}

func (h priceObservationRepositoryHandler) AddMany(tx *sql.Tx, observations []model.PriceObservation) (int64, error) {
	if len(observations) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	for i := range observations {
		observations[i].CreatedAt = now
	}

	query := PriceObservation.
		INSERT(PriceObservation.MutableColumns).
		MODELS(observations).
		ON_CONFLICT(PriceObservation.InstrumentID, PriceObservation.Date).
		DO_NOTHING()

	result, err := query.Exec(h.queryable(tx))
	if err != nil {
		return 0, fmt.Errorf("failed to add price observations to db: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count inserted price observations: %w", err)
	}

	return inserted, nil
}

// List returns the closes for ticker on or after since, oldest first
func (h priceObservationRepositoryHandler) List(tx *sql.Tx, ticker string, since time.Time) ([]domain.AssetPrice, error) {
	query := PriceObservation.
		SELECT(
			PriceObservation.AllColumns,
			Instrument.Ticker,
		).
		FROM(PriceObservation.INNER_JOIN(
			Instrument,
			Instrument.InstrumentID.EQ(PriceObservation.InstrumentID),
		)).
		WHERE(AND(
			Instrument.Ticker.EQ(String(ticker)),
			PriceObservation.Date.GT_EQ(DateT(since)),
		)).
		ORDER_BY(PriceObservation.Date.ASC())

	results := []struct {
		model.PriceObservation
		model.Instrument
	}{}
	err := query.Query(h.queryable(tx), &results)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices for %s since %s: %w", ticker, since.Format(time.DateOnly), err)
	}

	out := []domain.AssetPrice{}
	for _, r := range results {
		out = append(out, domain.AssetPrice{
			Symbol: r.Instrument.Ticker,
			Close:  r.PriceObservation.Close,
			Date:   r.PriceObservation.Date.UTC(),
		})
	}

	return out, nil
}
