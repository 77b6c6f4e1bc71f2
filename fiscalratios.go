package main

import (
	"math"
	"sort"
)

// FiscalRatioRecord is one entity's annual fundamental-ratio report: a fiscal
// year key plus a bag of named metrics, any of which may be missing or null.
type FiscalRatioRecord struct {
	Date         string              `json:"date"`
	CalendarYear string              `json:"calendar_year"`
	Metrics      map[string]*float64 `json:"metrics"`
}

// FiscalYear derives the record's year key: the reported calendar year when
// present, otherwise the year part of the report date. Records carrying
// neither are unusable and key to "".
func (r FiscalRatioRecord) FiscalYear() string {
	if r.CalendarYear != "" {
		return r.CalendarYear
	}
	if len(r.Date) >= 4 {
		return r.Date[:4]
	}
	return ""
}

// Metric returns the named metric value, reporting false for metrics that are
// missing, null, or non-finite.
func (r FiscalRatioRecord) Metric(name string) (float64, bool) {
	value, ok := r.Metrics[name]
	if !ok || value == nil {
		return 0, false
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		return 0, false
	}
	return *value, true
}

// AlignedRatioPoint pairs both entities' records for one shared fiscal year.
type AlignedRatioPoint struct {
	Year    string            `json:"year"`
	RecordA FiscalRatioRecord `json:"record_a"`
	RecordB FiscalRatioRecord `json:"record_b"`
}

// alignFiscalRatios intersects two entities' annual records by fiscal year and
// keeps only years where the selected metric is finite and non-null on both
// sides, ascending by year. Years are 4-digit strings, so the string sort is
// the numeric one. Fewer than two surviving years is a valid short result;
// deciding whether that is worth charting belongs to the caller.
func alignFiscalRatios(recordsA, recordsB []FiscalRatioRecord, metric string) []AlignedRatioPoint {
	byYearA := make(map[string]FiscalRatioRecord, len(recordsA))
	for _, record := range recordsA {
		if year := record.FiscalYear(); year != "" {
			byYearA[year] = record
		}
	}
	byYearB := make(map[string]FiscalRatioRecord, len(recordsB))
	for _, record := range recordsB {
		if year := record.FiscalYear(); year != "" {
			byYearB[year] = record
		}
	}

	years := make([]string, 0, len(byYearA))
	for year := range byYearA {
		if _, ok := byYearB[year]; ok {
			years = append(years, year)
		}
	}
	sort.Strings(years)

	points := make([]AlignedRatioPoint, 0, len(years))
	for _, year := range years {
		recordA, recordB := byYearA[year], byYearB[year]
		if _, ok := recordA.Metric(metric); !ok {
			continue
		}
		if _, ok := recordB.Metric(metric); !ok {
			continue
		}
		points = append(points, AlignedRatioPoint{Year: year, RecordA: recordA, RecordB: recordB})
	}
	return points
}
