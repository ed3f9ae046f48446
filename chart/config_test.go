package chart

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, float64(DefaultWidth), cfg.Width)
	assert.Equal(t, float64(DefaultHeight), cfg.Height)
	assert.Equal(t, Margin{Top: 30, Left: 30, Bottom: 30, Right: 30}, cfg.Margin)
	assert.Equal(t, DefaultDisplayAmount, cfg.DisplayAmount)
}

func TestWithMargin_ZeroIsApplied(t *testing.T) {
	cfg := NewConfig(WithMargin(Margin{Top: 5}))
	assert.Equal(t, Margin{Top: 5}, cfg.Margin)
}

func TestWithMarginPatch(t *testing.T) {
	cfg := NewConfig(WithMarginPatch(MarginPatch{Left: lo.ToPtr(0.0), Right: lo.ToPtr(12.0)}))
	assert.Equal(t, Margin{Top: 30, Left: 0, Bottom: 30, Right: 12}, cfg.Margin)

	geo := NewGeometry(cfg, NewWindow(nil, cfg))
	assert.Equal(t, cfg.Width-12-cfg.AxisLabelWidth, geo.AxisX())
}
