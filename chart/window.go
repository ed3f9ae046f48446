package chart

import (
	"github.com/samber/lo"

	"klinechart/model"
)

// Window : 그리기 직전마다 새로 만들어지는 읽기 전용 뷰
// 빈 Window 는 XMin/YMin = +Inf, XMax/YMax = -Inf
type Window struct {
	Candles model.Candles `json:"candles"`
	XMin    float64       `json:"xMin"`
	XMax    float64       `json:"xMax"`
	YMin    float64       `json:"yMin"`
	YMax    float64       `json:"yMax"`
}

// NewWindow : 전체 시리즈에서 마지막 DisplayAmount 개와 축 범위를 계산
// 매번 O(window) 로 전부 다시 계산하며 입력 시리즈는 변경하지 않음
func NewWindow(series model.Candles, cfg PlotConfig) Window {
	visible := series.LastValues(cfg.DisplayAmount)
	candles := make(model.Candles, len(visible))
	copy(candles, visible)

	prices := lo.FlatMap(candles, func(c model.Candle, _ int) []float64 {
		return c.Prices()
	})
	times := lo.Map(candles, func(c model.Candle, _ int) float64 {
		return c.TimeValue()
	})

	yMin, yMax := model.Bounds(prices)
	xMin, xMax := model.Bounds(times)
	return Window{
		Candles: candles,
		XMin:    xMin,
		XMax:    xMax,
		YMin:    yMin,
		YMax:    yMax,
	}
}

func (w Window) Empty() bool {
	return len(w.Candles) == 0
}

func (w Window) Len() int {
	return len(w.Candles)
}
