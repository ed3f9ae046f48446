package chart

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"klinechart/model"
)

func candleAt(ms int64, o, h, l, c float64) model.Candle {
	return model.Candle{Time: time.UnixMilli(ms), Open: o, High: h, Low: l, Close: c}
}

func makeSeries(n int) model.Candles {
	series := make(model.Candles, n)
	for i := range series {
		base := float64(100 + i)
		series[i] = candleAt(int64(i)*60_000, base, base+2, base-1, base+1)
	}
	return series
}

func TestNewWindow_NeverExceedsDisplayAmount(t *testing.T) {
	cfg := NewConfig(WithDisplayAmount(5))
	for _, n := range []int{0, 1, 4, 5, 6, 50} {
		w := NewWindow(makeSeries(n), cfg)
		assert.LessOrEqual(t, w.Len(), 5)
		assert.Equal(t, min(n, 5), w.Len())
	}
}

func TestNewWindow_Bounds(t *testing.T) {
	series := model.Candles{
		candleAt(1000, 10, 12, 9, 11),
		candleAt(2000, 11, 15, 10, 14),
		candleAt(3000, 14, 14, 7, 8),
	}
	w := NewWindow(series, NewConfig(WithDisplayAmount(2)))

	require.Equal(t, 2, w.Len())
	assert.Equal(t, series[1:], w.Candles)
	assert.Equal(t, 2000.0, w.XMin)
	assert.Equal(t, 3000.0, w.XMax)
	assert.Equal(t, 7.0, w.YMin)
	assert.Equal(t, 15.0, w.YMax)
}

func TestNewWindow_Empty(t *testing.T) {
	w := NewWindow(nil, DefaultConfig())

	assert.True(t, w.Empty())
	assert.True(t, math.IsInf(w.YMax, -1))
	assert.True(t, math.IsInf(w.YMin, 1))
	assert.True(t, math.IsInf(w.XMax, -1))
	assert.True(t, math.IsInf(w.XMin, 1))
}

func TestNewWindow_DoesNotAliasSeries(t *testing.T) {
	series := makeSeries(3)
	w := NewWindow(series, DefaultConfig())
	w.Candles[0].Open = -1

	assert.Equal(t, 100.0, series[0].Open)
}
