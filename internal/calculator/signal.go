package calculator

import (
	"fmt"
	"sort"
	"time"
	"trendalgo/internal/domain"
	"trendalgo/internal/util"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

type TrendSignalResult struct {
	AsOf         time.Time
	LatestClose  decimal.Decimal
	Mean         decimal.Decimal
	// population standard deviation of the closes, for reporting only
	Stdev        float64
	Observations int
	IsBull       bool
}

// TrendSignal compares the most recent close against the mean of every
// close given, the most recent one included. The market is bullish only
// when the latest close is strictly above the mean. The comparison is
// exact: latest*n > sum.
func TrendSignal(prices []domain.AssetPrice) (*TrendSignalResult, error) {
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w: no closes in window", domain.ErrInsufficientData)
	}

	sorted := make([]domain.AssetPrice, len(prices))
	copy(sorted, prices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	sum := decimal.Zero
	data := []float64{}
	for _, p := range sorted {
		sum = sum.Add(p.Close)
		data = append(data, p.Close.InexactFloat64())
	}
	n := decimal.NewFromInt(int64(len(sorted)))

	stdev, err := stats.StandardDeviationPopulation(data)
	if err != nil {
		return nil, fmt.Errorf("failed to compute close deviation: %w", err)
	}

	latest := sorted[len(sorted)-1]

	return &TrendSignalResult{
		AsOf:         latest.Date,
		LatestClose:  latest.Close,
		Mean:         sum.Div(n),
		Stdev:        stdev,
		Observations: len(sorted),
		IsBull:       latest.Close.Mul(n).GreaterThan(sum),
	}, nil
}

// DailySeries expands observations onto every calendar day from the
// earliest observation through the given day, carrying the last known
// value forward. When two observations share a day the later one in the
// input wins.
func DailySeries(series []domain.MacroObservation, through time.Time) ([]domain.MacroObservation, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: empty series", domain.ErrInsufficientData)
	}

	byDay := map[time.Time]float64{}
	for _, o := range series {
		byDay[util.DateOnly(o.Date)] = o.Value
	}
	days := []time.Time{}
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	through = util.DateOnly(through)
	if through.Before(days[0]) {
		return nil, fmt.Errorf(
			"%w: %s is before the first observation on %s",
			domain.ErrInsufficientData,
			util.FormatDate(through),
			util.FormatDate(days[0]),
		)
	}

	out := []domain.MacroObservation{}
	last := byDay[days[0]]
	for d := days[0]; !d.After(through); d = d.AddDate(0, 0, 1) {
		if v, ok := byDay[d]; ok {
			last = v
		}
		out = append(out, domain.MacroObservation{
			Date:  d,
			Value: last,
		})
	}

	return out, nil
}

// YearOverYear returns the forward-filled value on asOf minus the
// forward-filled value one year earlier. A zero asOf means the date of
// the latest observation.
func YearOverYear(series []domain.MacroObservation, asOf time.Time) (float64, error) {
	if len(series) == 0 {
		return 0, fmt.Errorf("%w: empty series", domain.ErrInsufficientData)
	}

	if asOf.IsZero() {
		for _, o := range series {
			if o.Date.After(asOf) {
				asOf = o.Date
			}
		}
	}
	asOf = util.DateOnly(asOf)

	daily, err := DailySeries(series, asOf)
	if err != nil {
		return 0, err
	}

	start := daily[0].Date
	yearAgo := asOf.AddDate(-1, 0, 0)
	if yearAgo.Before(start) {
		return 0, fmt.Errorf(
			"%w: need observations from %s, series starts %s",
			domain.ErrInsufficientData,
			util.FormatDate(yearAgo),
			util.FormatDate(start),
		)
	}

	current := daily[len(daily)-1].Value
	previous := daily[daysBetween(start, yearAgo)].Value

	return current - previous, nil
}

func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
