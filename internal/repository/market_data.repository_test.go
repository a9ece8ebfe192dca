package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
	"trendalgo/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCsvMarketDataRepository_GetDailyBars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.csv")
	contents := `date,symbol,close
2024-01-01,SPY,470.10
2024-01-02,SPY,472.65
2024-01-02,SHY,81.90
2024-01-03,spy,468.00
2024-01-04,SPY,467.25
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	repo := NewCsvMarketDataRepository(path)

	t.Run("happy path", func(t *testing.T) {
		bars, err := repo.GetDailyBars(
			context.Background(),
			"SPY",
			time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		expected := []domain.Bar{
			{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: decimal.RequireFromString("472.65")},
			{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Close: decimal.RequireFromString("468.00")},
		}
		require.Equal(t, "", cmp.Diff(expected, bars))
	})

	t.Run("reversed window", func(t *testing.T) {
		_, err := repo.GetDailyBars(
			context.Background(),
			"SPY",
			time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		)
		require.Error(t, err)
	})

	t.Run("missing symbol", func(t *testing.T) {
		_, err := repo.GetDailyBars(context.Background(), " ", time.Now(), time.Now())
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewCsvMarketDataRepository(filepath.Join(t.TempDir(), "nope.csv")).
			GetDailyBars(context.Background(), "SPY", time.Now(), time.Now())
		require.Error(t, err)
	})
}

func TestBarsFromCsv(t *testing.T) {
	t.Run("invalid close", func(t *testing.T) {
		_, err := BarsFromCsv(
			[]CsvBar{{Date: "2024-01-02", Symbol: "SPY", Close: "abc"}},
			"SPY",
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		)
		require.Error(t, err)
	})
}
