package exchange

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"klinechart/model"
	"klinechart/utils/log"
)

// Replay : 네트워크 없이 미리 준비된 봉을 흘려보내는 DataFeeder
//   - history : CandlesByLimit 로 돌려줄 과거 봉
//   - live    : CandlesSubscription 으로 interval 마다 하나씩 전달
type Replay struct {
	history  []model.Candle
	live     []model.Candle
	interval time.Duration

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

func NewReplay(history, live []model.Candle, interval time.Duration) *Replay {
	ctx, cancel := context.WithCancel(context.Background())
	return &Replay{
		history:    history,
		live:       live,
		interval:   interval,
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

func (r *Replay) CandlesByLimit(_ context.Context, _, _ string, limit int) ([]model.Candle, error) {
	if limit <= 0 || limit > len(r.history) {
		limit = len(r.history)
	}
	out := make([]model.Candle, limit)
	copy(out, r.history[len(r.history)-limit:])
	return out, nil
}

func (r *Replay) CandlesSubscription(ctx context.Context, _, _ string) (chan model.Candle, chan error) {
	candleCh := make(chan model.Candle)
	errCh := make(chan error)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer close(candleCh)
		defer close(errCh)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for _, c := range r.live {
			select {
			case <-ctx.Done():
				return
			case <-r.ctx.Done():
				return
			case <-ticker.C:
			}
			select {
			case candleCh <- c:
			case <-ctx.Done():
				return
			case <-r.ctx.Done():
				return
			}
		}
		log.Info("[Replay] all candles sent")
	}()
	return candleCh, errCh
}

func (r *Replay) Stop() {
	r.cancelFunc()
	r.wg.Wait()
	log.Info("[Replay] stopped")
}

// RandomWalk : 데모용 봉 생성. 봉 하나당 ticks 개의 진행중 갱신(같은 Time)을 만들고 마지막 것만 Complete
// 반환값은 (완성봉 목록, 진행중 갱신까지 포함한 전체 스트림)
func RandomWalk(start time.Time, period time.Duration, count, ticks int, startPrice float64, seed int64) ([]model.Candle, []model.Candle) {
	if ticks <= 0 {
		ticks = 1
	}
	rnd := rand.New(rand.NewSource(seed))
	closed := make([]model.Candle, 0, count)
	stream := make([]model.Candle, 0, count*ticks)

	price := startPrice
	for i := 0; i < count; i++ {
		c := model.Candle{
			Pair:  "DEMO",
			Time:  start.Add(time.Duration(i) * period),
			Open:  price,
			High:  price,
			Low:   price,
			Close: price,
		}
		for j := 0; j < ticks; j++ {
			price = math.Max(0.01, price*(1+rnd.NormFloat64()*0.002))
			c.Close = price
			c.High = math.Max(c.High, price)
			c.Low = math.Min(c.Low, price)
			c.Volume += rnd.Float64()
			c.Complete = j == ticks-1
			stream = append(stream, c)
		}
		closed = append(closed, c)
	}
	return closed, stream
}
