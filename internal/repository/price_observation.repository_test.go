package repository

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"
	"trendalgo/internal/db"
	"trendalgo/internal/db/models/postgres/public/model"
	"trendalgo/internal/util"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func openTestDb(t *testing.T) *sql.DB {
	dbConn, err := util.NewTestDb()
	require.NoError(t, err)
	if err := dbConn.Ping(); err != nil {
		t.Skipf("test db unavailable: %v", err)
	}
	require.NoError(t, db.Migrate(context.Background(), dbConn))
	t.Cleanup(func() { dbConn.Close() })
	return dbConn
}

func Test_priceObservationRepositoryHandler(t *testing.T) {
	dbConn := openTestDb(t)
	instrumentRepository := NewInstrumentRepository(dbConn)
	priceObservationRepository := NewPriceObservationRepository(dbConn)

	t.Run("insert is idempotent per day", func(t *testing.T) {
		tx, err := dbConn.Begin()
		require.NoError(t, err)
		defer tx.Rollback()

		ticker := "TST" + uuid.NewString()[:8]
		instrument, err := instrumentRepository.GetOrCreate(tx, model.Instrument{
			Ticker: ticker,
			Type:   model.InstrumentType_Etf,
		})
		require.NoError(t, err)

		latest, err := priceObservationRepository.GetLatest(tx, instrument.InstrumentID)
		require.NoError(t, err)
		require.Nil(t, latest)

		day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
		observations := []model.PriceObservation{
			{InstrumentID: instrument.InstrumentID, Date: day(2), Close: decimal.NewFromInt(10)},
			{InstrumentID: instrument.InstrumentID, Date: day(3), Close: decimal.NewFromInt(11)},
			{InstrumentID: instrument.InstrumentID, Date: day(4), Close: decimal.NewFromInt(12)},
		}
		inserted, err := priceObservationRepository.AddMany(tx, observations)
		require.NoError(t, err)
		require.Equal(t, int64(3), inserted)

		inserted, err = priceObservationRepository.AddMany(tx, []model.PriceObservation{
			{InstrumentID: instrument.InstrumentID, Date: day(4), Close: decimal.NewFromInt(99)},
			{InstrumentID: instrument.InstrumentID, Date: day(5), Close: decimal.NewFromInt(13)},
		})
		require.NoError(t, err)
		require.Equal(t, int64(1), inserted)

		latest, err = priceObservationRepository.GetLatest(tx, instrument.InstrumentID)
		require.NoError(t, err)
		require.True(t, util.SameDay(day(5), latest.Date))

		prices, err := priceObservationRepository.List(tx, ticker, day(3))
		require.NoError(t, err)
		require.Len(t, prices, 3)
		require.True(t, prices[1].Close.Equal(decimal.NewFromInt(12)))
		require.Equal(t, ticker, prices[0].Symbol)
	})

	t.Run("empty batch", func(t *testing.T) {
		inserted, err := priceObservationRepository.AddMany(nil, nil)
		require.NoError(t, err)
		require.Equal(t, int64(0), inserted)
	})
}

func Test_instrumentRepositoryHandler_GetOrCreate(t *testing.T) {
	dbConn := openTestDb(t)
	instrumentRepository := NewInstrumentRepository(dbConn)

	tx, err := dbConn.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	ticker := "TST" + uuid.NewString()[:8]
	created, err := instrumentRepository.GetOrCreate(tx, model.Instrument{Ticker: ticker})
	require.NoError(t, err)
	require.Nil(t, created.Name)
	require.Equal(t, model.InstrumentType_Stock, created.Type)

	updated, err := instrumentRepository.GetOrCreate(tx, model.Instrument{
		Ticker: ticker,
		Name:   util.StringPointer("Test Fund"),
		Type:   model.InstrumentType_Etf,
	})
	require.NoError(t, err)
	require.Equal(t, created.InstrumentID, updated.InstrumentID)
	require.Equal(t, "Test Fund", *updated.Name)
	require.Equal(t, model.InstrumentType_Etf, updated.Type)

	// a nil name doesn't erase a known one
	again, err := instrumentRepository.GetOrCreate(tx, model.Instrument{Ticker: ticker, Type: model.InstrumentType_Etf})
	require.NoError(t, err)
	require.Equal(t, "Test Fund", *again.Name)

	// an empty type doesn't reset a known one to stock
	untyped, err := instrumentRepository.GetOrCreate(tx, model.Instrument{Ticker: ticker})
	require.NoError(t, err)
	require.Equal(t, model.InstrumentType_Etf, untyped.Type)

	got, err := instrumentRepository.Get(tx, ticker)
	require.NoError(t, err)
	require.Equal(t, created.InstrumentID, got.InstrumentID)

	missing, err := instrumentRepository.Get(tx, "NOPE"+uuid.NewString()[:8])
	require.NoError(t, err)
	require.Nil(t, missing)
}

func Test_getOrCreateStatement(t *testing.T) {
	t.Run("empty type inserts stock and keeps a stored type", func(t *testing.T) {
		query := strings.ToLower(getOrCreateStatement(model.Instrument{Ticker: "SPY"}).DebugSql())
		require.Contains(t, query, "'stock'")
		require.NotRegexp(t, `excluded\."?type"?`, query)
	})

	t.Run("given type replaces the stored one", func(t *testing.T) {
		query := strings.ToLower(getOrCreateStatement(model.Instrument{Ticker: "SPY", Type: model.InstrumentType_Etf}).DebugSql())
		require.Contains(t, query, "'etf'")
		require.Regexp(t, `excluded\."?type"?`, query)
	})
}
