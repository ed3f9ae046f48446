package consumer

import (
	"context"

	"klinechart/chart"
	"klinechart/model"
)

// DataFeedConsumer : 피드 goroutine 에서 받은 봉을 차트 Loop 로 넘김
// 차트 상태는 Loop 만 건드림
type DataFeedConsumer struct {
	loop *chart.Loop
}

func NewDataFeedConsumer(loop *chart.Loop) *DataFeedConsumer {
	return &DataFeedConsumer{
		loop: loop,
	}
}

// OnPreload : 과거 봉으로 차트 초기화
func (c *DataFeedConsumer) OnPreload(ctx context.Context, candles []model.Candle) error {
	return c.loop.Init(ctx, candles)
}

// OnCandle : 실시간 봉 (진행중 봉 포함)
func (c *DataFeedConsumer) OnCandle(candle model.Candle) {
	c.loop.Enqueue(candle)
}
