package main

import (
	"fmt"
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// chartHandlerFiscalRatioBars draws the selected fundamental ratio for both
// companies side by side, one bar pair per shared fiscal year.
func chartHandlerFiscalRatioBars(deps *Dependencies, data ComparisonData) template.HTML {
	nonce := deps.nonce

	years := len(data.FiscalRatios)
	if years == 0 {
		return ""
	}
	metric := data.Request.Metric

	symbolA := data.TickerA.TickerSymbol
	symbolB := data.TickerB.TickerSymbol

	periodStrs := make([]string, 0, years)
	barsA := make([]opts.BarData, 0, years)
	barsB := make([]opts.BarData, 0, years)
	for _, point := range data.FiscalRatios {
		valueA, _ := point.RecordA.Metric(metric)
		valueB, _ := point.RecordB.Metric(metric)
		periodStrs = append(periodStrs, "FY"+point.Year)
		barsA = append(barsA, opts.BarData{Name: symbolA, Value: valueA})
		barsB = append(barsB, opts.BarData{Name: symbolB, Value: valueB})
	}

	barChart := charts.NewBar()
	barChart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:      "880px",
			Height:     "400px",
			Theme:      types.ThemeVintage,
			AssetsHost: chartAssetsHost(deps),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s - %s vs %s", metricLabel(metric), symbolA, symbolB),
			Subtitle: "by fiscal year",
			Target:   nonce, // crazy hack to get nonce into scripts
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Data:   []string{symbolA, symbolB},
			Orient: "horizontal",
			Left:   "center",
			Top:    "bottom",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "Fiscal Year",
			Type:      "category",
			Show:      opts.Bool(true),
			Data:      periodStrs,
			AxisLabel: &opts.AxisLabel{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "value",
			Name:      metricLabel(metric),
			AxisLabel: &opts.AxisLabel{Show: opts.Bool(true)},
		}),
	)

	marksA := []opts.MarkPointNameCoordItem{}
	if data.MetricExtrema != nil {
		highValue, _ := data.FiscalRatios[data.MetricExtrema.MaxIndex].RecordA.Metric(metric)
		lowValue, _ := data.FiscalRatios[data.MetricExtrema.MinIndex].RecordA.Metric(metric)
		marksA = append(marksA,
			opts.MarkPointNameCoordItem{
				Name:       "high",
				Coordinate: []interface{}{periodStrs[data.MetricExtrema.MaxIndex], highValue},
			},
			opts.MarkPointNameCoordItem{
				Name:       "low",
				Coordinate: []interface{}{periodStrs[data.MetricExtrema.MinIndex], lowValue},
			},
		)
	}

	barChart.SetXAxis(periodStrs).
		AddSeries(symbolA, barsA,
			charts.WithBarChartOpts(opts.BarChart{Type: "bar", BarGap: "5%", BarCategoryGap: "25%"}),
			charts.WithMarkPointNameCoordItemOpts(marksA...)).
		AddSeries(symbolB, barsB,
			charts.WithBarChartOpts(opts.BarChart{Type: "bar", BarGap: "5%", BarCategoryGap: "25%"}))

	barChart.Renderer = newSnippetRenderer(barChart, barChart.Validate)

	return renderToHtml(deps, barChart)
}
