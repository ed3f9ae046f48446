package chart

import (
	"klinechart/interfaces"
	"klinechart/model"
)

// Controller : 시리즈를 소유하고 Init/Update 마다 Renderer 를 구동
type Controller struct {
	cfg       PlotConfig
	series    model.Candles
	surface   interfaces.Surface
	renderer  *Renderer
	scheduler interfaces.FrameRequester

	// OnDraw : 프레임을 다 그린 뒤 호출 (PNG 발행 등)
	OnDraw func(w Window)
}

// NewController : 생성 직후 빈 프레임을 한 번 그림
func NewController(surface interfaces.Surface, scheduler interfaces.FrameRequester, opts ...Option) *Controller {
	cfg := NewConfig(opts...)
	c := &Controller{
		cfg:       cfg,
		series:    model.Candles{},
		surface:   surface,
		renderer:  NewRenderer(cfg),
		scheduler: scheduler,
	}
	c.Draw()
	return c
}

func (c *Controller) Config() PlotConfig {
	return c.cfg
}

// Init : 시리즈를 통째로 교체하고 즉시 그림
func (c *Controller) Init(candles []model.Candle) {
	series := make(model.Candles, len(candles))
	copy(series, candles)
	c.series = series
	c.Draw()
}

// Update : 마지막 봉과 같은 시간이면 교체, 아니면 추가 후 다음 프레임에 그리기 예약
func (c *Controller) Update(candle model.Candle) error {
	if c.series.Length() == 0 {
		return ErrUninitialized
	}
	c.series = c.series.Merge(candle)
	c.scheduler.Request(c.Draw)
	return nil
}

// Draw : 현재 시리즈로 Window 를 새로 만들어 전체를 다시 그림
func (c *Controller) Draw() {
	w := NewWindow(c.series, c.cfg)
	c.renderer.Render(c.surface, w)
	if c.OnDraw != nil {
		c.OnDraw(w)
	}
}

// Series : 현재 시리즈 복사본
func (c *Controller) Series() model.Candles {
	out := make(model.Candles, len(c.series))
	copy(out, c.series)
	return out
}

// Window : 현재 시리즈 기준 Window
func (c *Controller) Window() Window {
	return NewWindow(c.series, c.cfg)
}
