package bot

import (
	"context"
	"fmt"
	"time"

	"klinechart/chart"
	"klinechart/chartview"
	"klinechart/config"
	"klinechart/consumer"
	"klinechart/exchange"
	"klinechart/feed"
	"klinechart/interfaces"
	"klinechart/snapshot"
	"klinechart/surface"
	fiberhelpers "klinechart/utils/fiberhelper"
	"klinechart/utils/log"
	"klinechart/utils/tools"
	"klinechart/webserver"
)

const (
	replayHistory   = 120
	replayLive      = 600
	replayTicks     = 8
	replayTickEvery = 250 * time.Millisecond
)

// KlineBot : 피드 -> 차트 Loop -> 프레임 발행(HTTP, 스냅샷) 전체 구성
type KlineBot struct {
	cfg *config.Config

	exchange    interfaces.DataFeeder
	dataFeedSub *feed.DataFeedSubscription
	raster      *surface.Raster
	controller  *chart.Controller
	loop        *chart.Loop
	store       *chartview.FrameStore
	webServer   *webserver.WebServer
	exporter    *snapshot.Exporter

	cancel context.CancelFunc
}

// NewKlineBot : 구성만 하고 네트워크 연결은 Start 에서
func NewKlineBot(cfg *config.Config) (*KlineBot, error) {
	ex, err := newDataFeeder(cfg)
	if err != nil {
		return nil, err
	}

	b := &KlineBot{
		cfg:         cfg,
		exchange:    ex,
		dataFeedSub: feed.NewDataFeed(ex),
		store:       chartview.NewFrameStore(),
	}

	plot := chart.NewConfig(cfg.ChartOptions()...)
	b.raster = surface.NewRaster(int(plot.Width), int(plot.Height))
	scheduler := chart.NewFrameScheduler()
	b.controller = chart.NewController(b.raster, scheduler, cfg.ChartOptions()...)
	b.controller.OnDraw = b.publishFrame
	// 생성자에서 그린 빈 프레임은 OnDraw 이전이라 다시 발행
	b.controller.Draw()
	b.loop = chart.NewLoop(b.controller, scheduler, cfg.Chart.RefreshInterval)

	title := fmt.Sprintf("%s %s", cfg.Symbol, cfg.Interval)
	b.webServer = webserver.NewWebServer(b.store, title, plot.Palette, cfg.HTTP.PageRefresh)

	if cfg.Snapshot.Path != "" {
		b.exporter, err = snapshot.NewExporter(b.store, cfg.Snapshot.Path, cfg.Snapshot.Cron)
		if err != nil {
			return nil, err
		}
	}

	b.setupSubscriptions()
	return b, nil
}

func newDataFeeder(cfg *config.Config) (interfaces.DataFeeder, error) {
	switch cfg.Exchange {
	case config.ExchangeBinance:
		return exchange.NewBinance(exchange.WithBinanceEndpoints(cfg.Binance.RestURL, cfg.Binance.WsURL)), nil
	case config.ExchangeReplay:
		period, err := tools.ParseIntervalToDuration(cfg.Interval)
		if err != nil {
			return nil, err
		}
		total := replayHistory + replayLive
		start, err := tools.TruncateToInterval(time.Now().Add(-period*time.Duration(replayHistory)), cfg.Interval)
		if err != nil {
			return nil, err
		}
		closed, stream := exchange.RandomWalk(start, period, total, replayTicks, 100, time.Now().UnixNano())
		log.Infof("[SETUP] Using replay feed (%d history, %d live updates)", replayHistory, len(stream)-replayHistory*replayTicks)
		return exchange.NewReplay(closed[:replayHistory], stream[replayHistory*replayTicks:], replayTickEvery), nil
	default:
		return nil, fmt.Errorf("unknown exchange: %s", cfg.Exchange)
	}
}

// setupSubscriptions : 진행중 봉까지 모두 차트로 (onCandleClose = false)
func (b *KlineBot) setupSubscriptions() {
	dataFeedConsumer := consumer.NewDataFeedConsumer(b.loop)
	b.dataFeedSub.SubscribePreload(b.cfg.Symbol, b.cfg.Interval, dataFeedConsumer.OnPreload)
	b.dataFeedSub.Subscribe(b.cfg.Symbol, b.cfg.Interval, dataFeedConsumer.OnCandle, false)
}

// publishFrame : Loop goroutine 안에서 호출됨
func (b *KlineBot) publishFrame(w chart.Window) {
	png, err := b.raster.PNG()
	if err != nil {
		log.Errorf("[KlineBot] encode frame: %v", err)
		return
	}
	b.store.Publish(png, w)
}

// Start : Loop -> Preload -> 피드 -> 웹서버 -> 스냅샷 순
// Preload 실패 시 차트는 빈 상태로 남고 실시간 봉은 초기화 전까지 버려짐
func (b *KlineBot) Start(ctx context.Context) {
	log.Infof("KlineBot starting... (%s %s via %s)", b.cfg.Symbol, b.cfg.Interval, b.cfg.Exchange)
	ctx, b.cancel = context.WithCancel(ctx)

	go b.loop.Run(ctx)

	if err := b.dataFeedSub.Preload(ctx, b.cfg.Symbol, b.cfg.Interval, b.cfg.PreloadLimit); err != nil {
		log.Errorf("[Preload] %v", err)
	}

	b.dataFeedSub.Start(ctx, false)

	go func() {
		if err := b.webServer.Start(b.cfg.HTTP.Addr); err != nil {
			log.Errorf("[WebServer] %v", err)
		}
	}()

	if b.exporter != nil {
		b.exporter.Start()
	}
	log.Infof("KlineBot started. chart page on %s", fiberhelpers.ListenAddress(b.cfg.HTTP.Addr))
}

// Stop : 시작 역순으로 정리
func (b *KlineBot) Stop() {
	log.Infof("KlineBot stopping...")

	if b.exporter != nil {
		b.exporter.Stop()
	}
	if err := b.webServer.Shutdown(); err != nil {
		log.Errorf("[WebServer] shutdown: %v", err)
	}
	b.dataFeedSub.Stop()
	b.exchange.Stop()
	if b.cancel != nil {
		b.cancel()
		<-b.loop.Done()
	}

	log.Infof("KlineBot stopped.")
}
