package main

import (
	"fmt"
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// chartHandlerCompareLines draws both price histories indexed to 100 at the
// first shared trading day, with the A/B price ratio on its own right-hand
// axis. The ratio's best and worst days get markers.
func chartHandlerCompareLines(deps *Dependencies, data ComparisonData) template.HTML {
	nonce := deps.nonce

	days := len(data.Aligned)
	if days == 0 {
		return ""
	}

	baseA := data.Aligned[0].PriceA
	baseB := data.Aligned[0].PriceB

	x_axis := make([]string, 0, days)
	indexedA := make([]opts.LineData, 0, days)
	indexedB := make([]opts.LineData, 0, days)
	ratioData := make([]opts.LineData, 0, days)
	for x := 0; x < days; x++ {
		point := data.Aligned[x]
		x_axis = append(x_axis, point.Date.Format(dateKeyFormat)[5:10])
		indexedA = append(indexedA, opts.LineData{Value: point.PriceA / baseA * 100})
		indexedB = append(indexedB, opts.LineData{Value: point.PriceB / baseB * 100})
		ratioData = append(ratioData, opts.LineData{Value: point.Ratio})
	}

	symbolA := data.TickerA.TickerSymbol
	symbolB := data.TickerB.TickerSymbol
	ratioName := fmt.Sprintf("%s/%s ratio", symbolA, symbolB)

	lineChart := charts.NewLine()
	lineChart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:      "880px",
			Height:     "400px",
			Theme:      types.ThemeVintage,
			AssetsHost: chartAssetsHost(deps),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s vs %s", symbolA, symbolB),
			Subtitle: fmt.Sprintf("indexed to 100 at %s", data.Aligned[0].Date.Format(dateKeyFormat)),
			Target:   nonce, // crazy hack to get nonce into scripts
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Data:   []string{symbolA, symbolB, ratioName},
			Orient: "horizontal",
			Left:   "right",
			Top:    "top",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: 45},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "indexed",
			Scale: opts.Bool(true),
		}),
	)
	lineChart.ExtendYAxis(opts.YAxis{
		Name:  "ratio",
		Type:  "value",
		Scale: opts.Bool(true),
	})

	lineChart.SetXAxis(x_axis).
		AddSeries(symbolA, indexedA,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)})).
		AddSeries(symbolB, indexedB,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	ratioMarks := []opts.MarkPointNameCoordItem{}
	if data.RatioExtrema != nil {
		high := data.Aligned[data.RatioExtrema.MaxIndex]
		low := data.Aligned[data.RatioExtrema.MinIndex]
		ratioMarks = append(ratioMarks,
			opts.MarkPointNameCoordItem{
				Name:       "ratio high",
				Coordinate: []interface{}{x_axis[data.RatioExtrema.MaxIndex], high.Ratio},
			},
			opts.MarkPointNameCoordItem{
				Name:       "ratio low",
				Coordinate: []interface{}{x_axis[data.RatioExtrema.MinIndex], low.Ratio},
			},
		)
	}
	lineChart.AddSeries(ratioName, ratioData,
		charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1, Smooth: opts.Bool(true)}),
		charts.WithMarkPointNameCoordItemOpts(ratioMarks...),
	)

	lineChart.Renderer = newSnippetRenderer(lineChart, lineChart.Validate)

	return renderToHtml(deps, lineChart)
}
