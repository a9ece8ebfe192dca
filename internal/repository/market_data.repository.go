package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"trendalgo/internal/domain"
	"trendalgo/internal/util"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/gocarina/gocsv"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"
)

// MarketDataRepository returns daily closes for a symbol between start
// and end, inclusive. Bars are dated by UTC calendar day.
type MarketDataRepository interface {
	GetDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error)
}

func validateBarsRequest(symbol string, start, end time.Time) error {
	if strings.TrimSpace(symbol) == "" {
		return fmt.Errorf("symbol is required")
	}
	if end.Before(start) {
		return fmt.Errorf("end %s is before start %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return nil
}

type alpacaMarketDataRepositoryHandler struct {
	MdClient *marketdata.Client
	Feed     string
}

func NewAlpacaMarketDataRepository(apiKey, apiSecret, feed string) MarketDataRepository {
	mdClient := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return alpacaMarketDataRepositoryHandler{
		MdClient: mdClient,
		Feed:     feed,
	}
}

func (h alpacaMarketDataRepositoryHandler) GetDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error) {
	if err := validateBarsRequest(symbol, start, end); err != nil {
		return nil, err
	}

	bars, err := h.MdClient.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     util.DateOnly(start),
		// include every bar stamped on the end day
		End:  util.AddDays(util.DateOnly(end), 1).Add(-time.Second),
		Feed: marketdata.Feed(h.Feed),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get alpaca bars for %s: %w", symbol, err)
	}

	out := []domain.Bar{}
	for _, bar := range bars {
		out = append(out, domain.Bar{
			Date:  util.DateOnly(bar.Timestamp),
			Close: decimal.NewFromFloat(bar.Close),
		})
	}

	return out, nil
}

type yahooMarketDataRepositoryHandler struct{}

func NewYahooMarketDataRepository() MarketDataRepository {
	return yahooMarketDataRepositoryHandler{}
}

func (h yahooMarketDataRepositoryHandler) GetDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error) {
	if err := validateBarsRequest(symbol, start, end); err != nil {
		return nil, err
	}

	s := util.DateOnly(start)
	e := util.AddDays(util.DateOnly(end), 1)
	params := &chart.Params{
		Start:    datetime.New(&s),
		End:      datetime.New(&e),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	out := []domain.Bar{}
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, domain.Bar{
			Date:  util.DateOnly(time.Unix(int64(iter.Bar().Timestamp), 0)),
			Close: iter.Bar().Close,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get yahoo prices for %s: %w", symbol, err)
	}

	return out, nil
}

// CsvBar is one row of a daily close file
type CsvBar struct {
	Date   string `csv:"date"`
	Symbol string `csv:"symbol"`
	Close  string `csv:"close"`
}

type csvMarketDataRepositoryHandler struct {
	Path string
}

// NewCsvMarketDataRepository reads bars from a file with date,symbol,close
// columns. Used for offline backfills and fixtures.
func NewCsvMarketDataRepository(path string) MarketDataRepository {
	return csvMarketDataRepositoryHandler{Path: path}
}

func (h csvMarketDataRepositoryHandler) GetDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error) {
	if err := validateBarsRequest(symbol, start, end); err != nil {
		return nil, err
	}

	f, err := os.Open(h.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bars file: %w", err)
	}
	defer f.Close()

	rows := []CsvBar{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse bars file %s: %w", h.Path, err)
	}

	return BarsFromCsv(rows, symbol, start, end)
}

// BarsFromCsv keeps the rows for symbol dated within [start, end]
func BarsFromCsv(rows []CsvBar, symbol string, start, end time.Time) ([]domain.Bar, error) {
	start, end = util.DateOnly(start), util.DateOnly(end)

	out := []domain.Bar{}
	for _, row := range rows {
		if !strings.EqualFold(strings.TrimSpace(row.Symbol), symbol) {
			continue
		}
		date, err := time.Parse(time.DateOnly, strings.TrimSpace(row.Date))
		if err != nil {
			return nil, fmt.Errorf("invalid date %q for %s: %w", row.Date, row.Symbol, err)
		}
		if date.Before(start) || date.After(end) {
			continue
		}
		closePrice, err := decimal.NewFromString(strings.TrimSpace(row.Close))
		if err != nil {
			return nil, fmt.Errorf("invalid close %q for %s on %s: %w", row.Close, row.Symbol, row.Date, err)
		}
		out = append(out, domain.Bar{
			Date:  date,
			Close: closePrice,
		})
	}

	return out, nil
}
