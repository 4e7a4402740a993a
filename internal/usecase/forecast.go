package usecase

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/shopsight/backend/internal/domain"
)

const (
	defaultForecastHorizon   = 30
	defaultSeasonalityPeriod = 7
)

// Forecaster fits an additive trend+seasonality model to daily revenue and
// projects it forward. The trend is a least-squares line over day offsets;
// the seasonal component is the mean residual per position in the seasonal
// cycle (weekly by default).
type Forecaster struct {
	horizon int
	period  int
}

// NewForecaster creates a forecaster. Non-positive arguments fall back to a
// 30-day horizon and a weekly cycle.
func NewForecaster(horizon, period int) *Forecaster {
	if horizon <= 0 {
		horizon = defaultForecastHorizon
	}
	if period <= 0 {
		period = defaultSeasonalityPeriod
	}
	return &Forecaster{horizon: horizon, period: period}
}

// Forecast aggregates line totals by calendar day and predicts the next
// horizon days of revenue. The result has exactly horizon points on
// consecutive dates starting the day after the last observed date.
func (f *Forecaster) Forecast(transactions []domain.Transaction) ([]domain.ForecastPoint, error) {
	series := AggregateDaily(transactions)
	if len(series) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 observed days, got %d", domain.ErrForecastFit, len(series))
	}

	first := series[0].Date
	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, day := range series {
		xs[i] = dayOffset(first, day.Date)
		ys[i] = day.Revenue.InexactFloat64()
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || math.IsNaN(beta) || math.IsInf(beta, 0) {
		return nil, fmt.Errorf("%w: degenerate trend fit", domain.ErrForecastFit)
	}

	seasonal := f.seasonalComponents(xs, ys, alpha, beta)

	last := series[len(series)-1].Date
	points := make([]domain.ForecastPoint, 0, f.horizon)
	for k := 1; k <= f.horizon; k++ {
		date := last.AddDate(0, 0, k)
		x := dayOffset(first, date)
		points = append(points, domain.ForecastPoint{
			Date:  date,
			Value: alpha + beta*x + seasonal[int(x)%f.period],
		})
	}
	return points, nil
}

// seasonalComponents averages the trend residuals per cycle position.
// Positions never observed keep a zero component.
func (f *Forecaster) seasonalComponents(xs, ys []float64, alpha, beta float64) []float64 {
	sums := make([]float64, f.period)
	counts := make([]int, f.period)
	for i := range xs {
		pos := int(xs[i]) % f.period
		sums[pos] += ys[i] - (alpha + beta*xs[i])
		counts[pos]++
	}

	seasonal := make([]float64, f.period)
	for pos := range seasonal {
		if counts[pos] > 0 {
			seasonal[pos] = sums[pos] / float64(counts[pos])
		}
	}
	return seasonal
}

// AggregateDaily sums line totals per calendar day (UTC), returning the
// series in ascending date order. Days without sales do not appear.
func AggregateDaily(transactions []domain.Transaction) []domain.DailyRevenue {
	totals := make(map[time.Time]decimal.Decimal)
	for _, tx := range transactions {
		day := calendarDay(tx.InvoiceDate)
		totals[day] = totals[day].Add(tx.LineTotal)
	}

	series := make([]domain.DailyRevenue, 0, len(totals))
	for day, revenue := range totals {
		series = append(series, domain.DailyRevenue{Date: day, Revenue: revenue})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series
}

// calendarDay truncates a timestamp to its UTC calendar date.
func calendarDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dayOffset is the whole number of days from first to date.
func dayOffset(first, date time.Time) float64 {
	return math.Round(date.Sub(first).Hours() / 24)
}
