package chart

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"klinechart/interfaces"
	"klinechart/model"
)

// Renderer : 한 번 호출에 한 프레임 전체를 고정 순서로 다시 그림 (부분 갱신 없음)
type Renderer struct {
	cfg PlotConfig
}

func NewRenderer(cfg PlotConfig) *Renderer {
	return &Renderer{cfg: cfg}
}

// Glyph : 봉 하나를 그리기 위한 픽셀 사각형 두 개(몸통, 꼬리)와 색
type Glyph struct {
	BodyX, BodyY, BodyW, BodyH float64
	WickX, WickY, WickW, WickH float64
	Color                      string
}

// Render : 배경 -> 세로축 -> 가격 눈금 -> 봉 순서
func (r *Renderer) Render(s interfaces.Surface, w Window) {
	geo := NewGeometry(r.cfg, w)

	r.drawBackground(s)
	r.drawAxis(s, geo)
	if w.Empty() {
		// 빈 Window 는 범위가 무한대라 눈금/봉을 건너뜀
		return
	}
	r.drawTicks(s, geo, w)

	boxWidth := r.BoxWidth(geo, w.Len())
	for _, c := range w.Candles {
		g := r.Glyph(geo, c, boxWidth)
		s.SetFillStyle(g.Color)
		s.FillRect(g.BodyX, g.BodyY, g.BodyW, g.BodyH)
		s.FillRect(g.WickX, g.WickY, g.WickW, g.WickH)
	}
}

func (r *Renderer) drawBackground(s interfaces.Surface) {
	s.SetFillStyle(r.cfg.Palette.Background)
	s.FillRect(0, 0, r.cfg.Width, r.cfg.Height)
}

func (r *Renderer) drawAxis(s interfaces.Surface, geo Geometry) {
	x := geo.AxisX()
	s.SetStrokeStyle(r.cfg.Palette.Axis)
	s.SetLineWidth(r.cfg.AxisLineWidth)
	s.BeginPath()
	s.MoveTo(x, 0)
	s.LineTo(x, r.cfg.Height)
	s.Stroke()
}

func (r *Renderer) drawTicks(s interfaces.Surface, geo Geometry, w Window) {
	ticks := TickValues(w.YMin, w.YMax, r.cfg.TickCount)
	if len(ticks) == 0 {
		return
	}
	s.SetFillStyle(r.cfg.Palette.Tick)
	s.SetFont(r.cfg.FontSize)
	s.SetTextBaseline("middle")

	tickX := geo.AxisX()
	for _, tick := range ticks {
		tickY := geo.MapPrice(tick)
		s.FillText(FormatPrice(tick, r.cfg.LabelPrecision), tickX+r.cfg.TickWidth+2, tickY)
		s.BeginPath()
		s.MoveTo(tickX, tickY)
		s.LineTo(tickX+r.cfg.TickWidth, tickY)
		s.Stroke()
	}
}

// TickValues : yMin 부터 yMax 까지 count 개의 균등 간격 값
// count == 1 이면 yMin 하나, count <= 0 이거나 범위/간격이 유한하지 않으면 없음
func TickValues(yMin, yMax float64, count int) []float64 {
	if count <= 0 || !isFinite(yMin) || !isFinite(yMax) {
		return nil
	}
	var unit float64
	if count > 1 {
		unit = (yMax - yMin) / float64(count-1)
	}
	if !isFinite(unit) {
		return nil
	}
	ticks := make([]float64, count)
	for i := range ticks {
		ticks[i] = yMin + unit*float64(i)
	}
	return ticks
}

// FormatPrice : 고정 소수 자릿수 라벨
// decimal 은 NaN/Inf 를 받지 못하므로 그 경우 strconv 로 그대로 표기
func FormatPrice(v float64, precision int) string {
	if !isFinite(v) {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(int32(precision))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// BoxWidth : 가용 폭 / 봉 개수, 최소 MinBoxWidth 보장 후 BoxGap 만큼 간격
func (r *Renderer) BoxWidth(geo Geometry, n int) float64 {
	if n <= 0 {
		n = 1
	}
	return math.Max(geo.AxisLength()/float64(n), r.cfg.MinBoxWidth) - r.cfg.BoxGap
}

// Glyph : 봉 하나의 다섯 좌표를 매핑해 몸통/꼬리 사각형 계산
// OHLC 순서가 잘못된 입력도 그대로 그려짐 (음수 높이 없이)
func (r *Renderer) Glyph(geo Geometry, c model.Candle, boxWidth float64) Glyph {
	x := geo.MapTime(c.TimeValue())
	openY := geo.MapPrice(c.Open)
	highY := geo.MapPrice(c.High)
	lowY := geo.MapPrice(c.Low)
	closeY := geo.MapPrice(c.Close)

	color := r.cfg.Palette.Bearish
	if closeY < openY {
		// 화면상 종가가 시가보다 위 = 상승
		color = r.cfg.Palette.Bullish
	}

	return Glyph{
		BodyX: x,
		BodyY: math.Min(openY, closeY),
		BodyW: boxWidth,
		BodyH: math.Abs(closeY - openY),
		WickX: x + boxWidth/2 - r.cfg.WickWidth/2,
		WickY: math.Min(highY, lowY),
		WickW: r.cfg.WickWidth,
		WickH: math.Abs(lowY - highY),
		Color: color,
	}
}
