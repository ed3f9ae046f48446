package exchange

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomWalk(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	closed, stream := RandomWalk(start, time.Minute, 5, 3, 100, 42)

	require.Len(t, closed, 5)
	require.Len(t, stream, 15)
	for i, c := range closed {
		assert.Equal(t, start.Add(time.Duration(i)*time.Minute), c.Time)
		assert.GreaterOrEqual(t, c.High, c.Open)
		assert.GreaterOrEqual(t, c.High, c.Close)
		assert.LessOrEqual(t, c.Low, c.Open)
		assert.LessOrEqual(t, c.Low, c.Close)
		assert.True(t, c.Complete)
		assert.Equal(t, c, stream[i*3+2])
	}
	assert.False(t, stream[0].Complete)
	assert.True(t, stream[0].Time.Equal(stream[1].Time))
}

func TestReplay(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	history, _ := RandomWalk(start, time.Minute, 10, 1, 100, 1)
	_, live := RandomWalk(start.Add(10*time.Minute), time.Minute, 2, 2, 100, 2)

	r := NewReplay(history, live, time.Millisecond)
	got, err := r.CandlesByLimit(context.Background(), "DEMO", "1m", 4)
	require.NoError(t, err)
	assert.Equal(t, history[6:], got)

	all, _ := r.CandlesByLimit(context.Background(), "DEMO", "1m", 0)
	assert.Len(t, all, 10)

	candleCh, _ := r.CandlesSubscription(context.Background(), "DEMO", "1m")
	var received int
	for range candleCh {
		received++
	}
	assert.Equal(t, len(live), received)
	r.Stop()
}
