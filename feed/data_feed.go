package feed

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/StudioSol/set"
	"github.com/samber/lo"

	"klinechart/interfaces"
	"klinechart/model"
	"klinechart/utils/log"
)

type DataFeedSubscription struct {
	exchange                interfaces.DataFeeder
	Feeds                   *set.LinkedHashSetString  // (pair_timeframe) 세트
	DataFeeds               map[string]*DataFeed      // key=(pair_timeframe), value=channel pair
	SubscriptionsByDataFeed map[string][]Subscription // key=(pair_timeframe), value=subscriber list
	PreloadsByDataFeed      map[string][]PreloadConsumer

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type DataFeed struct {
	Data chan model.Candle
	Err  chan error
}

type Subscription struct {
	onCandleClose bool // 봉이 완성된 경우에만 콜백을 하겠다는지 여부
	consumer      DataFeedConsumer
}

type DataFeedConsumer func(model.Candle)

// PreloadConsumer : 과거 봉 전체를 한 번에 받음 (차트 초기화)
type PreloadConsumer func(ctx context.Context, candles []model.Candle) error

// 전체적인 흐름 : New -> Subscribe -> Preload -> Start(Connect) -> Stop

func NewDataFeed(exchange interfaces.DataFeeder) *DataFeedSubscription {
	return &DataFeedSubscription{
		exchange:                exchange,
		Feeds:                   set.NewLinkedHashSetString(),
		DataFeeds:               make(map[string]*DataFeed),
		SubscriptionsByDataFeed: make(map[string][]Subscription),
		PreloadsByDataFeed:      make(map[string][]PreloadConsumer),
	}
}

// Subscribe : 구독 등록 (pair, period, consumer callback, onCandleClose)
func (d *DataFeedSubscription) Subscribe(
	pair, period string,
	consumer DataFeedConsumer,
	onCandleClose bool,
) {
	key := d.makeFeedKey(pair, period)

	d.Feeds.Add(key)

	d.SubscriptionsByDataFeed[key] = append(d.SubscriptionsByDataFeed[key], Subscription{
		onCandleClose: onCandleClose,
		consumer:      consumer,
	})
}

// SubscribePreload : Preload 시 과거 봉을 받을 consumer 등록
func (d *DataFeedSubscription) SubscribePreload(pair, period string, consumer PreloadConsumer) {
	key := d.makeFeedKey(pair, period)
	d.Feeds.Add(key)
	d.PreloadsByDataFeed[key] = append(d.PreloadsByDataFeed[key], consumer)
}

// Preload : REST 로 과거 봉을 읽어 preload 구독자에게 전달
// 조회 실패는 그대로 반환 (차트는 빈 상태로 남음)
func (d *DataFeedSubscription) Preload(ctx context.Context, pair, period string, limit int) error {
	key := d.makeFeedKey(pair, period)
	candles, err := d.exchange.CandlesByLimit(ctx, pair, period, limit)
	if err != nil {
		return fmt.Errorf("preload %s: %w", key, err)
	}
	log.Infof("[SETUP] preloading %d candles for %s-%s", len(candles), pair, period)
	for _, consumer := range d.PreloadsByDataFeed[key] {
		if err := consumer(ctx, candles); err != nil {
			return fmt.Errorf("preload consumer %s: %w", key, err)
		}
	}
	return nil
}

// Start : 고루틴을 띄워 candle/error 수신, 구독자에 전달
// 피드 에러는 여기서 로깅만 하고 구독자에게 전파하지 않음
func (d *DataFeedSubscription) Start(ctx context.Context, loadSync bool) {
	ctx, d.cancel = context.WithCancel(ctx)

	// 1) Connect 호출
	d.Connect(ctx)

	// 2) 모든 feed(key)에 대해 고루틴
	for key, feed := range d.DataFeeds {
		d.wg.Add(1)

		go func(key string, feed *DataFeed) {
			defer d.wg.Done()
			d.consume(ctx, key, feed)
		}(key, feed)
	}

	log.Infof("Data feed connected.")

	if loadSync {
		// loadSync==true면, 모든 feeder가 종료될 때까지 블록
		d.wg.Wait()
	}
}

func (d *DataFeedSubscription) consume(ctx context.Context, key string, feed *DataFeed) {
	data, errs := feed.Data, feed.Err
	for data != nil || errs != nil {
		select {
		case <-ctx.Done():
			return
		case candle, ok := <-data:
			if !ok {
				data = nil
				continue
			}
			// candle 들어옴 => 구독자들에게 브로드캐스트
			subs := lo.Filter(d.SubscriptionsByDataFeed[key], func(s Subscription, _ int) bool {
				return !s.onCandleClose || candle.Complete
			})
			for _, subscription := range subs {
				subscription.consumer(candle)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				log.Errorf("dataFeedSubscription/start %s: %v", key, err)
			}
		}
	}
	log.Infof("[Feed] %s closed", key)
}

// Connect : 실제 CandlesSubscription를 호출하여, (chan Candle, chan error)를 구성
func (d *DataFeedSubscription) Connect(ctx context.Context) {
	log.Infof("Connecting to the exchange data feed.")
	for feed := range d.Feeds.Iter() {
		pair, period := d.getPairPeriodFromKey(feed)

		cCandle, cErr := d.exchange.CandlesSubscription(ctx, pair, period)

		d.DataFeeds[feed] = &DataFeed{
			Data: cCandle,
			Err:  cErr,
		}
	}
}

// Stop : 수신 고루틴 종료 대기
func (d *DataFeedSubscription) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
	d.wg.Wait()
	log.Infof("Data feed stopped.")
}

// feedKey : (pair, period) => "pair_period"
func (d *DataFeedSubscription) makeFeedKey(pair, period string) string {
	return fmt.Sprintf("%s_%s", strings.ToUpper(pair), period)
}

// pairPeriodFromKey : "pair_period" => (pair, period)
func (d *DataFeedSubscription) getPairPeriodFromKey(key string) (string, string) {
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return key, ""
	}
	return parts[0], parts[1]
}
