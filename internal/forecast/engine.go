//-------------------------------------------------------------------------
//
// Petshop Insights Dashboard
//
// Portions copyright (c) 2025 - 2026, Breno Aliotti
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package forecast fits a seasonal time-series model to the monthly revenue
// series and predicts future months with uncertainty bounds, deriving a
// stock-quantity estimate from the historical average unit price.
package forecast

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sartorproj/goarima/arima"
	"github.com/sartorproj/goarima/sarima"
	"github.com/sartorproj/goarima/timeseries"

	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/aggregate"
	"github.com/Breno-Aliotti/Petshop-Insights-Dashboard/internal/logging"
)

// MinHistoryMonths is the minimum number of monthly observations required
// before a forecast is attempted.
const MinHistoryMonths = 12

var (
	// ErrInsufficientData reports too few monthly observations to fit.
	ErrInsufficientData = errors.New("insufficient data for forecast")

	// ErrDegeneratePrice reports a zero historical quantity, which makes the
	// average unit price undefined. Only quantity estimates are affected.
	ErrDegeneratePrice = errors.New("average unit price undefined: zero total quantity")

	// ErrQuantityUnavailable reports a source with no quantity column.
	ErrQuantityUnavailable = errors.New("quantity column unavailable in source")

	// ErrUnavailable reports a model fit or prediction failure. Numerical
	// detail never escapes the engine.
	ErrUnavailable = errors.New("forecast unavailable")
)

// Config holds forecast parameters.
type Config struct {
	// Horizon is the number of future months to predict, 1 to 24.
	Horizon int

	// Confidence is the prediction interval level; defaults to 0.95.
	Confidence float64
}

// Point is one forecast month.
type Point struct {
	PeriodStart time.Time
	Revenue     float64
	Lower       float64
	Upper       float64

	// EstimatedQuantity is Revenue divided by the historical average unit
	// price; NaN when quantity data is unavailable or degenerate.
	EstimatedQuantity float64
}

// Result is a completed forecast run.
type Result struct {
	// Points holds exactly Horizon future months, chronologically after the
	// last historical month.
	Points []Point

	// Fitted holds the model's one-step fitted values aligned with the input
	// buckets, NaN where the model defines none. Used for plotting history
	// against fit.
	Fitted []float64

	// AvgUnitPrice is total historical revenue over total historical
	// quantity; NaN when quantity is unavailable.
	AvgUnitPrice float64

	// QuantityIssue is non-nil when quantity estimates are disabled, and
	// carries the reason (missing column or degenerate price). The revenue
	// forecast itself is unaffected.
	QuantityIssue error

	// Model names the fitted model order.
	Model string
}

// Run fits the revenue series and predicts cfg.Horizon months ahead.
//
// The quantity estimate is a linear back-conversion through one global
// average unit price, not a second model fit. It tracks revenue swings even
// when unit economics shift; that is a known limitation of the design.
func Run(buckets []aggregate.MonthlyBucket, hasQuantity bool, cfg Config) (*Result, error) {
	if cfg.Horizon < 1 || cfg.Horizon > 24 {
		return nil, fmt.Errorf("horizon must be between 1 and 24 months, got %d", cfg.Horizon)
	}
	if cfg.Confidence <= 0 || cfg.Confidence >= 1 {
		cfg.Confidence = 0.95
	}

	n := len(buckets)
	if n < MinHistoryMonths {
		return nil, fmt.Errorf("%w: %d monthly observations, need at least %d",
			ErrInsufficientData, n, MinHistoryMonths)
	}

	timestamps := make([]time.Time, n)
	revenue := make([]float64, n)
	for i, b := range buckets {
		timestamps[i] = b.PeriodStart
		revenue[i] = b.Revenue
	}

	series, err := timeseries.NewWithTimestamps(timestamps, revenue)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	result, err := fitAndPredict(series, n, cfg)
	if err != nil {
		return nil, err
	}

	lastMonth := buckets[n-1].PeriodStart
	for i := range result.Points {
		result.Points[i].PeriodStart = lastMonth.AddDate(0, i+1, 0)
		result.Points[i].EstimatedQuantity = math.NaN()
	}

	result.AvgUnitPrice = math.NaN()
	attachQuantity(result, buckets, hasQuantity)

	logging.Debug().
		Str("model", result.Model).
		Int("history_months", n).
		Int("horizon", cfg.Horizon).
		Msg("Forecast complete")

	return result, nil
}

// fitAndPredict picks a model order by history length: the seasonal order
// needs several seasonal cycles to estimate, so short histories fall back to
// a plain first-difference fit.
func fitAndPredict(series *timeseries.Series, n int, cfg Config) (*Result, error) {
	if n >= 48 {
		return fitSeasonal(series, cfg)
	}

	p := 1
	if n < 13 {
		// At the 12-month minimum only the smallest order fits.
		p = 0
	}
	return fitPlain(series, p, cfg)
}

func fitSeasonal(series *timeseries.Series, cfg Config) (*Result, error) {
	m := sarima.New(1, 1, 1, 0, 1, 1, 12)
	if err := m.Fit(series); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	points, lower, upper, err := m.PredictWithInterval(cfg.Horizon, cfg.Confidence)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	result := &Result{
		Points: assemble(points, lower, upper),
		// One non-seasonal plus one seasonal difference.
		Fitted: fittedOnOriginalScale(series.Values, m.Residuals(), 1+12),
		Model:  "SARIMA(1,1,1)(0,1,1)[12]",
	}
	if err := checkFinite(result.Points); err != nil {
		return nil, err
	}
	return result, nil
}

func fitPlain(series *timeseries.Series, p int, cfg Config) (*Result, error) {
	m := arima.New(p, 1, 1)
	if err := m.Fit(series); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	points, err := m.Predict(cfg.Horizon)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// The plain model predicts points only; build intervals from the
	// residual variance with horizon growth, the same construction the
	// seasonal model uses for an integrated series.
	z := normalQuantile((1 + cfg.Confidence) / 2)
	lower := make([]float64, len(points))
	upper := make([]float64, len(points))
	for h := range points {
		se := math.Sqrt(m.Variance) * math.Sqrt(float64(h+1))
		lower[h] = points[h] - z*se
		upper[h] = points[h] + z*se
	}

	result := &Result{
		Points: assemble(points, lower, upper),
		Fitted: fittedOnOriginalScale(series.Values, m.Residuals(), 1),
		Model:  fmt.Sprintf("ARIMA(%d,1,1)", p),
	}
	if err := checkFinite(result.Points); err != nil {
		return nil, err
	}
	return result, nil
}

func assemble(points, lower, upper []float64) []Point {
	out := make([]Point, len(points))
	for i := range points {
		out[i] = Point{Revenue: points[i], Lower: lower[i], Upper: upper[i]}
	}
	return out
}

// fittedOnOriginalScale converts one-step residuals on the differenced scale
// back to fitted values on the revenue scale. Differencing is linear, so a
// one-step residual is the same on both scales: fitted = actual - residual.
// Positions consumed by differencing carry NaN.
func fittedOnOriginalScale(actual, residuals []float64, offset int) []float64 {
	fitted := make([]float64, len(actual))
	for i := range fitted {
		fitted[i] = math.NaN()
	}
	for i, r := range residuals {
		j := i + offset
		if j < len(actual) {
			fitted[j] = actual[j] - r
		}
	}
	return fitted
}

// attachQuantity derives the average unit price over the entire history and
// back-converts each forecast point into an estimated unit quantity. The
// price is one global scalar, not a per-month value.
func attachQuantity(result *Result, buckets []aggregate.MonthlyBucket, hasQuantity bool) {
	if !hasQuantity {
		result.QuantityIssue = ErrQuantityUnavailable
		logging.Warn().Msg("Quantity estimates disabled: no quantity data")
		return
	}

	var totalRevenue float64
	var totalQuantity int
	for _, b := range buckets {
		totalRevenue += b.Revenue
		totalQuantity += b.Quantity
	}

	if totalQuantity == 0 {
		result.QuantityIssue = ErrDegeneratePrice
		logging.Warn().Msg("Quantity estimates disabled: zero total quantity")
		return
	}

	price := totalRevenue / float64(totalQuantity)
	result.AvgUnitPrice = price
	for i := range result.Points {
		result.Points[i].EstimatedQuantity = result.Points[i].Revenue / price
	}
}

func checkFinite(points []Point) error {
	for _, p := range points {
		if math.IsNaN(p.Revenue) || math.IsInf(p.Revenue, 0) ||
			math.IsNaN(p.Lower) || math.IsInf(p.Lower, 0) ||
			math.IsNaN(p.Upper) || math.IsInf(p.Upper, 0) {
			return fmt.Errorf("%w: model produced non-finite values", ErrUnavailable)
		}
	}
	return nil
}

// normalQuantile returns the z-value for a given probability, by the
// Abramowitz-Stegun rational approximation.
func normalQuantile(p float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}
	if p < 0.5 {
		return -normalQuantile(1 - p)
	}

	t := math.Sqrt(-2 * math.Log(1-p))
	c0, c1, c2 := 2.515517, 0.802853, 0.010328
	d1, d2, d3 := 1.432788, 0.189269, 0.001308

	return t - (c0+c1*t+c2*t*t)/(1+d1*t+d2*t*t+d3*t*t*t)
}
