package chart

import "math"

// Geometry : 현재 Window 의 min/max 범위를 픽셀 좌표로 옮기는 순수 매핑
type Geometry struct {
	cfg                    PlotConfig
	xMin, xMax, yMin, yMax float64
}

func NewGeometry(cfg PlotConfig, w Window) Geometry {
	return Geometry{
		cfg:  cfg,
		xMin: w.XMin,
		xMax: w.XMax,
		yMin: w.YMin,
		yMax: w.YMax,
	}
}

// AxisX : 플롯 영역과 가격 라벨 칸을 나누는 세로축의 x
func (g Geometry) AxisX() float64 {
	return g.cfg.Width - g.cfg.Margin.Right - g.cfg.AxisLabelWidth
}

// AxisLength : 좌우 여백과 라벨 칸을 뺀 가로 길이 (봉 너비 계산용)
func (g Geometry) AxisLength() float64 {
	return g.cfg.Width - g.cfg.Margin.Left - g.cfg.Margin.Right - g.cfg.AxisLabelWidth
}

// PlotWidth : 시간 매핑에 쓰이는 가로 길이, 오른쪽 TimeAxisOffset 만큼 비워둠
func (g Geometry) PlotWidth() float64 {
	return g.AxisLength() - g.cfg.TimeAxisOffset
}

func (g Geometry) PlotHeight() float64 {
	return g.cfg.Height - g.cfg.Margin.Top - g.cfg.Margin.Bottom
}

// MapTime : [xMin, xMax] -> [marginLeft, marginLeft + plotWidth]
// 범위가 퇴화하면 플롯 가로 중앙
func (g Geometry) MapTime(t float64) float64 {
	width := g.PlotWidth()
	pos, err := interpolate(t, g.xMin, g.xMax, width)
	if err != nil {
		pos = width / 2
	}
	return pos + g.cfg.Margin.Left
}

// MapPrice : [yMin, yMax] -> [marginTop + plotHeight, marginTop]
// 가격은 위로, 픽셀 행은 아래로 증가하므로 뒤집음. 범위가 퇴화하면 플롯 세로 중앙
func (g Geometry) MapPrice(p float64) float64 {
	height := g.PlotHeight()
	pos, err := interpolate(p, g.yMin, g.yMax, height)
	if err != nil {
		pos = height / 2
	}
	return height - pos + g.cfg.Margin.Top
}

func interpolate(v, min, max, length float64) (float64, error) {
	span := max - min
	if span == 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return 0, ErrDegenerateBounds
	}
	return (v - min) / span * length, nil
}
