package consumer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"klinechart/chart"
	"klinechart/mocks"
	"klinechart/model"
)

func TestDataFeedConsumer(t *testing.T) {
	surface := mocks.NewMockSurface(chart.DefaultWidth, chart.DefaultHeight)
	scheduler := chart.NewFrameScheduler()
	ctrl := chart.NewController(surface, scheduler)
	frames := make(chan chart.Window, 8)
	ctrl.OnDraw = func(w chart.Window) { frames <- w }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop := chart.NewLoop(ctrl, scheduler, time.Millisecond)
	go loop.Run(ctx)

	c := NewDataFeedConsumer(loop)
	history := []model.Candle{
		{Time: time.Unix(0, 0), Open: 1, High: 2, Low: 0.5, Close: 1.5},
		{Time: time.Unix(60, 0), Open: 1.5, High: 2, Low: 1, Close: 1.8},
	}
	require.NoError(t, c.OnPreload(ctx, history))
	w := <-frames
	assert.Equal(t, 2, w.Len())

	c.OnCandle(model.Candle{Time: time.Unix(60, 0), Open: 1.5, High: 2.5, Low: 1, Close: 2.4})
	select {
	case w = <-frames:
		require.Equal(t, 2, w.Len())
		assert.Equal(t, 2.4, w.Candles[1].Close)
	case <-time.After(time.Second):
		t.Fatal("update frame not drawn")
	}
}
