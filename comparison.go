package main

import (
	"errors"
	"fmt"
)

// ComparisonRequest is one comparison run: a symbol pair plus the knobs the
// user can turn. Params arrive clamped and validated (see loadComparison).
type ComparisonRequest struct {
	SymbolA  string `json:"symbol_a"`
	SymbolB  string `json:"symbol_b"`
	Timespan int    `json:"timespan"`
	Window   int    `json:"window"`
	Metric   string `json:"metric"`
}

func (r ComparisonRequest) CacheKey() string {
	return fmt.Sprintf("comparison/%s/%s/%d/%d/%s", r.SymbolA, r.SymbolB, r.Timespan, r.Window, r.Metric)
}

// ComparisonData is the fully derived artifact for one comparison request,
// everything the compare page and API need. All series are value-semantic and
// read-only once built; a new request rebuilds from scratch. Sections that
// could not be computed stay empty with a user-facing note, so templates
// degrade to placeholders instead of erroring.
type ComparisonData struct {
	Request            ComparisonRequest   `json:"request"`
	TickerA            Ticker              `json:"ticker_a"`
	TickerB            Ticker              `json:"ticker_b"`
	Aligned            []AlignedPoint      `json:"aligned"`
	Returns            []ReturnPoint       `json:"returns"`
	Correlations       []CorrelationPoint  `json:"correlations"`
	Regression         RegressionStats     `json:"regression"`
	HasRegression      bool                `json:"has_regression"`
	RatioExtrema       *Extrema            `json:"ratio_extrema,omitempty"`
	CorrelationExtrema *Extrema            `json:"correlation_extrema,omitempty"`
	MetricExtrema      *Extrema            `json:"metric_extrema,omitempty"`
	FiscalRatios       []AlignedRatioPoint `json:"fiscal_ratios"`
	Notes              []string            `json:"notes,omitempty"`
}

// buildComparisonData runs the whole derivation pipeline over already-fetched
// inputs: align, ratio, returns, rolling correlation, regression, extrema, and
// the independent fiscal-ratio alignment. Pure and synchronous; every fetch
// and cache concern lives with the caller. Engine error states become notes on
// the result rather than failing the page.
func buildComparisonData(request ComparisonRequest, tickerA, tickerB Ticker,
	pricesA, pricesB []PricePoint, ratiosA, ratiosB []FiscalRatioRecord) ComparisonData {

	data := ComparisonData{
		Request:      request,
		TickerA:      tickerA,
		TickerB:      tickerB,
		Aligned:      []AlignedPoint{},
		Returns:      []ReturnPoint{},
		Correlations: []CorrelationPoint{},
		FiscalRatios: alignFiscalRatios(ratiosA, ratiosB, request.Metric),
	}
	if len(data.FiscalRatios) == 0 {
		data.addNote(fmt.Sprintf("No fiscal years where both %s and %s report %s", request.SymbolA, request.SymbolB, request.Metric))
	} else if extrema, err := locateExtrema(data.FiscalRatios, func(p AlignedRatioPoint) float64 {
		value, _ := p.RecordA.Metric(request.Metric)
		return value
	}); err == nil {
		data.MetricExtrema = &extrema
	}

	aligned, err := alignPriceSeries(pricesA, pricesB)
	if err != nil {
		data.addNote(fmt.Sprintf("Price histories for %s/%s could not be aligned: %s", request.SymbolA, request.SymbolB, noteForEngineErr(err)))
		return data
	}
	data.Aligned = aligned
	if len(aligned) == 0 {
		data.addNote(fmt.Sprintf("%s and %s have no overlapping trading days in this period", request.SymbolA, request.SymbolB))
		return data
	}
	if extrema, err := locateExtrema(aligned, func(p AlignedPoint) float64 { return p.Ratio }); err == nil {
		data.RatioExtrema = &extrema
	}

	returns, err := calcPairedReturns(aligned)
	if err != nil {
		data.addNote(fmt.Sprintf("Daily returns could not be computed: %s", noteForEngineErr(err)))
		return data
	}
	data.Returns = returns

	correlations, err := rollingCorrelation(returns, request.Window)
	if err != nil {
		data.addNote(fmt.Sprintf("Rolling correlation could not be computed: %s", noteForEngineErr(err)))
	} else {
		data.Correlations = correlations
		if len(correlations) == 0 {
			data.addNote(fmt.Sprintf("Not enough overlapping days for a %d-day correlation window", request.Window))
		} else if extrema, err := locateExtrema(correlations, func(p CorrelationPoint) float64 { return p.Correlation }); err == nil {
			data.CorrelationExtrema = &extrema
		}
	}

	regression, err := fitReturnsRegression(returns)
	if err != nil {
		data.addNote(fmt.Sprintf("Regression could not be fit: %s", noteForEngineErr(err)))
	} else {
		data.Regression = regression
		data.HasRegression = true
	}

	return data
}

func (d *ComparisonData) addNote(note string) {
	d.Notes = append(d.Notes, note)
}

func noteForEngineErr(err error) string {
	switch {
	case errors.Is(err, errInsufficientData):
		return "not enough data"
	case errors.Is(err, errDegenerateInput):
		return "the data is degenerate (a zero price or flat series)"
	default:
		return err.Error()
	}
}
