package main

import (
	"fmt"
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// chartHandlerCorrelationLine draws the rolling correlation of daily returns,
// pinned to the [-1, 1] band with a zero line, markers on the most and least
// correlated windows.
func chartHandlerCorrelationLine(deps *Dependencies, data ComparisonData) template.HTML {
	nonce := deps.nonce

	days := len(data.Correlations)
	if days == 0 {
		return ""
	}

	x_axis := make([]string, 0, days)
	corrData := make([]opts.LineData, 0, days)
	for x := 0; x < days; x++ {
		point := data.Correlations[x]
		x_axis = append(x_axis, point.Date.Format(dateKeyFormat)[5:10])
		corrData = append(corrData, opts.LineData{Value: point.Correlation})
	}

	symbolA := data.TickerA.TickerSymbol
	symbolB := data.TickerB.TickerSymbol

	lineChart := charts.NewLine()
	lineChart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:      "880px",
			Height:     "300px",
			Theme:      types.ThemeVintage,
			AssetsHost: chartAssetsHost(deps),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s vs %s rolling correlation", symbolA, symbolB),
			Subtitle: fmt.Sprintf("%d-day window over daily returns", data.Request.Window),
			Target:   nonce, // crazy hack to get nonce into scripts
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: 45},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Min: -1,
			Max: 1,
		}),
	)

	corrMarks := []opts.MarkPointNameCoordItem{}
	if data.CorrelationExtrema != nil {
		high := data.Correlations[data.CorrelationExtrema.MaxIndex]
		low := data.Correlations[data.CorrelationExtrema.MinIndex]
		corrMarks = append(corrMarks,
			opts.MarkPointNameCoordItem{
				Name:       "most correlated",
				Coordinate: []interface{}{x_axis[data.CorrelationExtrema.MaxIndex], high.Correlation},
			},
			opts.MarkPointNameCoordItem{
				Name:       "least correlated",
				Coordinate: []interface{}{x_axis[data.CorrelationExtrema.MinIndex], low.Correlation},
			},
		)
	}

	lineChart.SetXAxis(x_axis).
		AddSeries("correlation", corrData,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithMarkPointNameCoordItemOpts(corrMarks...),
			charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{Name: "zero", YAxis: 0}),
		)

	lineChart.Renderer = newSnippetRenderer(lineChart, lineChart.Validate)

	return renderToHtml(deps, lineChart)
}
