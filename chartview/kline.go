package chartview

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samber/lo"

	"klinechart/chart"
	"klinechart/model"
)

// BuildCandleChart : 래스터 차트와 같은 Window 를 go-echarts Kline 으로
// go-echarts Kline은 [open, close, low, high] 순서가 표준
func BuildCandleChart(title string, w chart.Window, palette chart.Palette) *charts.Kline {
	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
			Show:  opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: palette.Background,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale:    opts.Bool(true),
			Position: "right",
		}),
	)
	if w.Empty() {
		return kline // 데이터 없으면 빈
	}

	xVals := lo.Map(w.Candles, func(c model.Candle, _ int) string {
		return c.Time.Format("01/02 15:04")
	})
	kValues := lo.Map(w.Candles, func(c model.Candle, _ int) opts.KlineData {
		return opts.KlineData{Value: [4]float64{c.Open, c.Close, c.Low, c.High}}
	})

	kline.SetXAxis(xVals).
		AddSeries("KLine", kValues).
		SetSeriesOptions(charts.WithItemStyleOpts(opts.ItemStyle{
			Color:        palette.Bullish, // 양봉 내부색
			Color0:       palette.Bearish, // 음봉 내부색
			BorderColor:  palette.Bullish,
			BorderColor0: palette.Bearish,
		}))
	return kline
}

// RenderPage : 단일 Kline 페이지 HTML
func RenderPage(out io.Writer, title string, w chart.Window, palette chart.Palette) error {
	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(BuildCandleChart(title, w, palette))
	return page.Render(out)
}
