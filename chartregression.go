package main

import (
	"fmt"
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// chartHandlerRegressionScatter draws each shared trading day as a point in
// return space, B's return horizontal and A's vertical, with the fitted
// regression line across the full range of B's returns.
func chartHandlerRegressionScatter(deps *Dependencies, data ComparisonData) template.HTML {
	nonce := deps.nonce

	if !data.HasRegression || len(data.Returns) == 0 {
		return ""
	}

	scatterData := make([]opts.ScatterData, 0, len(data.Returns))
	minX, maxX := data.Returns[0].ReturnB, data.Returns[0].ReturnB
	for _, point := range data.Returns {
		scatterData = append(scatterData, opts.ScatterData{
			Value:      []interface{}{point.ReturnB, point.ReturnA},
			SymbolSize: 6,
		})
		if point.ReturnB < minX {
			minX = point.ReturnB
		}
		if point.ReturnB > maxX {
			maxX = point.ReturnB
		}
	}

	regression := data.Regression
	fitData := []opts.LineData{
		{Value: []interface{}{minX, regression.Alpha + regression.Beta*minX}},
		{Value: []interface{}{maxX, regression.Alpha + regression.Beta*maxX}},
	}

	symbolA := data.TickerA.TickerSymbol
	symbolB := data.TickerB.TickerSymbol

	subtitle := fmt.Sprintf("beta %.4f  alpha %.4f  r-squared %.4f  (n=%d)",
		regression.Beta, regression.Alpha, regression.RSquared, regression.N)
	if regression.HasStdErrors {
		subtitle = fmt.Sprintf("beta %.4f (se %.4f)  alpha %.4f (se %.4f)  r-squared %.4f  (n=%d)",
			regression.Beta, regression.StdErrorBeta, regression.Alpha, regression.StdErrorAlpha,
			regression.RSquared, regression.N)
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:      "880px",
			Height:     "400px",
			Theme:      types.ThemeVintage,
			AssetsHost: chartAssetsHost(deps),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s daily return vs %s daily return", symbolA, symbolB),
			Subtitle: subtitle,
			Target:   nonce, // crazy hack to get nonce into scripts
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:  fmt.Sprintf("%s return %%", symbolB),
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  fmt.Sprintf("%s return %%", symbolA),
			Type:  "value",
			Scale: opts.Bool(true),
		}),
	)

	scatter.AddSeries("daily returns", scatterData)

	fitLine := charts.NewLine()
	fitLine.AddSeries("fit", fitData,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	scatter.Overlap(fitLine)

	scatter.Renderer = newSnippetRenderer(scatter, scatter.Validate)

	return renderToHtml(deps, scatter)
}
