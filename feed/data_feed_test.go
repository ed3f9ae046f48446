package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"klinechart/model"
)

type fakeFeeder struct {
	history    []model.Candle
	historyErr error
	live       []model.Candle
	liveErr    error

	mu         sync.Mutex
	subscribed []string
}

func (f *fakeFeeder) CandlesByLimit(_ context.Context, _, _ string, limit int) ([]model.Candle, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakeFeeder) CandlesSubscription(_ context.Context, pair, period string) (chan model.Candle, chan error) {
	f.mu.Lock()
	f.subscribed = append(f.subscribed, pair+"/"+period)
	f.mu.Unlock()

	candleCh := make(chan model.Candle, len(f.live))
	errCh := make(chan error, 1)
	for _, c := range f.live {
		candleCh <- c
	}
	if f.liveErr != nil {
		errCh <- f.liveErr
	}
	close(candleCh)
	close(errCh)
	return candleCh, errCh
}

func (f *fakeFeeder) Stop() {}

func at(minute int, complete bool) model.Candle {
	return model.Candle{Time: time.Unix(int64(minute)*60, 0), Open: 1, High: 2, Low: 0.5, Close: 1.5, Complete: complete}
}

func Test_Subscribe(t *testing.T) {
	dataFeed := NewDataFeed(&fakeFeeder{})

	dataFeed.Subscribe("btcusdt", "1m", func(model.Candle) {}, false)
	dataFeed.Subscribe("BTCUSDT", "5m", func(model.Candle) {}, true)

	_, ok := dataFeed.SubscriptionsByDataFeed["BTCUSDT_1m"]
	require.True(t, ok)
	_, ok = dataFeed.SubscriptionsByDataFeed["BTCUSDT_5m"]
	require.True(t, ok)
	assert.Equal(t, 2, dataFeed.Feeds.Length())
}

func Test_Preload(t *testing.T) {
	history := []model.Candle{at(0, true), at(1, true), at(2, false)}
	dataFeed := NewDataFeed(&fakeFeeder{history: history})

	var got []model.Candle
	dataFeed.SubscribePreload("BTCUSDT", "1m", func(_ context.Context, candles []model.Candle) error {
		got = candles
		return nil
	})

	require.NoError(t, dataFeed.Preload(context.Background(), "BTCUSDT", "1m", 3))
	// 차트 초기화용이라 진행중 봉도 포함
	assert.Equal(t, history, got)
}

func Test_PreloadError(t *testing.T) {
	fetchErr := errors.New("boom")
	dataFeed := NewDataFeed(&fakeFeeder{historyErr: fetchErr})
	called := false
	dataFeed.SubscribePreload("BTCUSDT", "1m", func(context.Context, []model.Candle) error {
		called = true
		return nil
	})

	err := dataFeed.Preload(context.Background(), "BTCUSDT", "1m", 3)
	assert.ErrorIs(t, err, fetchErr)
	assert.False(t, called)
}

func Test_StartFanOut(t *testing.T) {
	live := []model.Candle{at(3, false), at(3, true), at(4, false)}
	feeder := &fakeFeeder{live: live, liveErr: errors.New("stream hiccup")}
	dataFeed := NewDataFeed(feeder)

	var all, closed []model.Candle
	dataFeed.Subscribe("BTCUSDT", "1m", func(c model.Candle) { all = append(all, c) }, false)
	dataFeed.Subscribe("BTCUSDT", "1m", func(c model.Candle) { closed = append(closed, c) }, true)

	// 채널이 모두 닫히면 반환
	dataFeed.Start(context.Background(), true)
	dataFeed.Stop()

	assert.Equal(t, live, all)
	assert.Equal(t, []model.Candle{live[1]}, closed)
	assert.Equal(t, []string{"BTCUSDT/1m"}, feeder.subscribed)
}
