package chart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"klinechart/mocks"
)

func TestLoop_InitThenUpdate(t *testing.T) {
	surface := mocks.NewMockSurface(DefaultWidth, DefaultHeight)
	scheduler := NewFrameScheduler()
	ctrl := NewController(surface, scheduler)

	frames := make(chan Window, 16)
	ctrl.OnDraw = func(w Window) { frames <- w }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop := NewLoop(ctrl, scheduler, time.Millisecond)
	go loop.Run(ctx)

	require.NoError(t, loop.Init(ctx, makeSeries(3)))
	select {
	case w := <-frames:
		assert.Equal(t, 3, w.Len())
	case <-time.After(time.Second):
		t.Fatal("init frame not drawn")
	}

	loop.Enqueue(candleAt(10_000_000, 1, 2, 0.5, 1.5))
	select {
	case w := <-frames:
		assert.Equal(t, 4, w.Len())
	case <-time.After(time.Second):
		t.Fatal("update frame not drawn")
	}

	cancel()
	select {
	case <-loop.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestLoop_InitWithoutRun(t *testing.T) {
	scheduler := NewFrameScheduler()
	ctrl := NewController(mocks.NewMockSurface(DefaultWidth, DefaultHeight), scheduler)
	loop := NewLoop(ctrl, scheduler, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, loop.Init(ctx, makeSeries(2)), context.DeadlineExceeded)
	assert.Empty(t, ctrl.Series())
}
