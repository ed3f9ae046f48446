package chart

import (
	"context"
	"errors"
	"time"

	"klinechart/model"
	"klinechart/utils/log"
)

// DefaultRefreshInterval : 약 60Hz 디스플레이 갱신 주기
const DefaultRefreshInterval = 16 * time.Millisecond

// Loop : Controller 를 소유하는 단일 논리 스레드
// 피드 goroutine 들은 Init/Enqueue 로 채널에 넣기만 하고, 모든 변경과 그리기는 Run 안에서 일어남
type Loop struct {
	controller *Controller
	scheduler  *FrameScheduler
	interval   time.Duration

	initCh   chan []model.Candle
	updateCh chan model.Candle
	doneCh   chan struct{}
}

// NewLoop : scheduler 는 controller 에 넘긴 것과 같은 인스턴스여야 함
func NewLoop(controller *Controller, scheduler *FrameScheduler, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Loop{
		controller: controller,
		scheduler:  scheduler,
		interval:   interval,
		initCh:     make(chan []model.Candle),
		updateCh:   make(chan model.Candle, 256), // 피드 수신 블로킹 방지
		doneCh:     make(chan struct{}),
	}
}

// Init : 과거 캔들로 시리즈 초기화 요청
// Run 이 받아갈 때까지 블록하므로 이후 Enqueue 된 봉은 항상 초기화 뒤에 적용됨
func (l *Loop) Init(ctx context.Context, candles []model.Candle) error {
	select {
	case l.initCh <- candles:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.doneCh:
		return errors.New("chart loop stopped")
	}
}

// Enqueue : 실시간 캔들 한 개 전달
func (l *Loop) Enqueue(candle model.Candle) {
	select {
	case l.updateCh <- candle:
	case <-l.doneCh:
	}
}

// Done : Run 이 끝나면 닫힘
func (l *Loop) Done() <-chan struct{} {
	return l.doneCh
}

// Run : ctx 가 끝날 때까지 블록
func (l *Loop) Run(ctx context.Context) {
	defer close(l.doneCh)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("[ChartLoop] context canceled, stop")
			return
		case candles := <-l.initCh:
			l.controller.Init(candles)
			log.Infof("[ChartLoop] initialized with %d candles", len(candles))
		case candle := <-l.updateCh:
			if err := l.controller.Update(candle); err != nil {
				if errors.Is(err, ErrUninitialized) {
					log.Warnf("[ChartLoop] update dropped before init: %v", candle.Time)
					continue
				}
				log.Errorf("[ChartLoop] update: %v", err)
			}
		case <-ticker.C:
			l.scheduler.Tick()
		}
	}
}
