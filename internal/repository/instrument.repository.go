package repository

import (
	"database/sql"
	"fmt"
	"time"
	"trendalgo/internal/db/models/postgres/public/model"
	"trendalgo/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

type InstrumentRepository interface {
	Get(tx *sql.Tx, ticker string) (*model.Instrument, error)
	GetOrCreate(tx *sql.Tx, instrument model.Instrument) (*model.Instrument, error)
}

type instrumentRepositoryHandler struct {
	Db *sql.DB
}

func NewInstrumentRepository(db *sql.DB) InstrumentRepository {
	return instrumentRepositoryHandler{Db: db}
}

func (h instrumentRepositoryHandler) queryable(tx *sql.Tx) qrm.Queryable {
	if tx != nil {
		return tx
	}
	return h.Db
}

// Get returns nil when the ticker has never been ingested
func (h instrumentRepositoryHandler) Get(tx *sql.Tx, ticker string) (*model.Instrument, error) {
	query := table.Instrument.
		SELECT(table.Instrument.AllColumns).
		WHERE(table.Instrument.Ticker.EQ(postgres.String(ticker)))

	out := []model.Instrument{}
	err := query.Query(h.queryable(tx), &out)
	if err != nil {
		return nil, fmt.Errorf("failed to get instrument %s: %w", ticker, err)
	}
	if len(out) == 0 {
		return nil, nil
	}

	return &out[0], nil
}

// getOrCreateStatement upserts on ticker. A nil name or an empty type
// never overwrites what is already stored; a new row with no type is a
// stock.
func getOrCreateStatement(instrument model.Instrument) postgres.Statement {
	updates := []postgres.ColumnAssigment{
		table.Instrument.Name.SET(
			postgres.StringExp(postgres.COALESCE(table.Instrument.EXCLUDED.Name, table.Instrument.Name)),
		),
	}
	if instrument.Type == "" {
		instrument.Type = model.InstrumentType_Stock
	} else {
		updates = append(updates, table.Instrument.Type.SET(table.Instrument.EXCLUDED.Type))
	}

	return table.Instrument.
		INSERT(table.Instrument.MutableColumns).
		MODEL(instrument).
		ON_CONFLICT(table.Instrument.Ticker).DO_UPDATE(
		postgres.SET(updates...),
	).RETURNING(table.Instrument.AllColumns)
}

// GetOrCreate inserts the instrument if the ticker is new. For an existing
// ticker only the fields that were given are refreshed.
func (h instrumentRepositoryHandler) GetOrCreate(tx *sql.Tx, instrument model.Instrument) (*model.Instrument, error) {
	if instrument.Ticker == "" {
		return nil, fmt.Errorf("failed to insert instrument: ticker is required")
	}
	instrument.CreatedAt = time.Now().UTC()

	out := model.Instrument{}
	err := getOrCreateStatement(instrument).Query(h.queryable(tx), &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert instrument %s: %w", instrument.Ticker, err)
	}

	return &out, nil
}
