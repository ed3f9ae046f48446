package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"

	"klinechart/model"
	"klinechart/utils/collection"
	"klinechart/utils/log"
	"klinechart/utils/resty"
)

const (
	binanceBaseREST = "https://api.binance.com"
	binanceBaseWS   = "wss://stream.binance.com:9443"
	klinesPath      = "/api/v3/klines"

	DefaultKlineLimit     = 500
	DefaultReconnectDelay = 3 * time.Second
)

var ErrInvalidKline = errors.New("invalid kline payload")

// Binance : 공개 시세 API (인증 불필요)
//   - REST /api/v3/klines : 과거 봉
//   - WS <symbol>@kline_<interval> : 실시간 봉 (진행중 봉 포함)
type Binance struct {
	ctx        context.Context
	cancelFunc context.CancelFunc

	baseREST       string
	baseWS         string
	resty          resty.RestyClient
	dialer         *websocket.Dialer
	reconnectDelay time.Duration

	connMtx sync.Mutex
	conns   map[*websocket.Conn]struct{}
	wg      sync.WaitGroup
}

type BinanceOption func(*Binance)

// WithBinanceEndpoints : 테스트 서버 등으로 교체
func WithBinanceEndpoints(rest, ws string) BinanceOption {
	return func(b *Binance) {
		if rest != "" {
			b.baseREST = strings.TrimRight(rest, "/")
		}
		if ws != "" {
			b.baseWS = strings.TrimRight(ws, "/")
		}
	}
}

func WithBinanceRestyClient(client resty.RestyClient) BinanceOption {
	return func(b *Binance) {
		b.resty = client
	}
}

func WithReconnectDelay(d time.Duration) BinanceOption {
	return func(b *Binance) {
		b.reconnectDelay = d
	}
}

func NewBinance(opts ...BinanceOption) *Binance {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Binance{
		ctx:            ctx,
		cancelFunc:     cancel,
		baseREST:       binanceBaseREST,
		baseWS:         binanceBaseWS,
		resty:          resty.NewDefaultRestyClientWithRetryCount(false, 2, 10*time.Second),
		dialer:         websocket.DefaultDialer,
		reconnectDelay: DefaultReconnectDelay,
		conns:          make(map[*websocket.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	log.Infof("[SETUP] Using Binance public market data (rest=%s, ws=%s)", b.baseREST, b.baseWS)
	return b
}

// -----------------------------------------------------------------------------
// REST : 과거 봉
// -----------------------------------------------------------------------------

// CandlesByLimit : 가장 최근 limit 개 봉, 시간 오름차순
func (b *Binance) CandlesByLimit(ctx context.Context, pair, period string, limit int) ([]model.Candle, error) {
	if limit <= 0 {
		limit = DefaultKlineLimit
	}
	resp, err := b.resty.
		MakeRequest(ctx, nil, nil).
		Get(b.baseREST+klinesPath,
			resty.QueryParam{Key: "symbol", Value: strings.ToUpper(pair)},
			resty.QueryParam{Key: "interval", Value: period},
			resty.QueryParam{Key: "limit", Value: limit},
		)
	if err != nil {
		return nil, fmt.Errorf("binance klines request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("binance klines status %d: %s", resp.StatusCode(), resp.String())
	}

	var rows [][]json.RawMessage
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("binance klines parse: %w", err)
	}

	candles := make([]model.Candle, 0, len(rows))
	for i, row := range rows {
		c, err := parseRESTKline(row)
		if err != nil {
			return nil, fmt.Errorf("binance kline #%d: %w", i, err)
		}
		c.Pair = strings.ToUpper(pair)
		// 마지막 행은 진행중 봉
		c.Complete = i < len(rows)-1
		candles = append(candles, c)
	}
	return candles, nil
}

// parseRESTKline : [openTime, "open", "high", "low", "close", "volume", closeTime, ...]
func parseRESTKline(row []json.RawMessage) (model.Candle, error) {
	if len(row) < 6 {
		return model.Candle{}, fmt.Errorf("%w: %d fields", ErrInvalidKline, len(row))
	}
	var openTime int64
	if err := json.Unmarshal(row[0], &openTime); err != nil {
		return model.Candle{}, fmt.Errorf("%w: open time: %v", ErrInvalidKline, err)
	}
	raw := make([]string, 5)
	for i := range raw {
		if err := json.Unmarshal(row[i+1], &raw[i]); err != nil {
			return model.Candle{}, fmt.Errorf("%w: field %d: %v", ErrInvalidKline, i+1, err)
		}
	}
	values, err := parseDecimals(raw)
	if err != nil {
		return model.Candle{}, err
	}
	return model.Candle{
		Time:   time.UnixMilli(openTime),
		Open:   values[0],
		High:   values[1],
		Low:    values[2],
		Close:  values[3],
		Volume: values[4],
	}, nil
}

func parseDecimals(raw []string) ([]float64, error) {
	var parseErr error
	values := collection.Map(raw, func(s string) float64 {
		d, err := decimal.NewFromString(s)
		if err != nil {
			parseErr = fmt.Errorf("%w: %q: %v", ErrInvalidKline, s, err)
			return 0
		}
		return d.InexactFloat64()
	})
	return values, parseErr
}

// -----------------------------------------------------------------------------
// WebSocket : 실시간 봉
// -----------------------------------------------------------------------------

type wsCombined struct {
	Stream string  `json:"stream"`
	Data   wsKline `json:"data"`
}

type wsKline struct {
	EventType string `json:"e"`
	Symbol    string `json:"s"`
	Kline     struct {
		StartTime int64  `json:"t"`
		Interval  string `json:"i"`
		Open      string `json:"o"`
		High      string `json:"h"`
		Low       string `json:"l"`
		Close     string `json:"c"`
		Volume    string `json:"v"`
		Closed    bool   `json:"x"`
	} `json:"k"`
}

// ParseStreamKline : combined stream 메시지 -> model.Candle
func ParseStreamKline(msg []byte) (model.Candle, error) {
	var raw wsCombined
	if err := json.Unmarshal(msg, &raw); err != nil {
		return model.Candle{}, fmt.Errorf("%w: %v", ErrInvalidKline, err)
	}
	if raw.Data.EventType != "kline" {
		return model.Candle{}, fmt.Errorf("%w: event %q", ErrInvalidKline, raw.Data.EventType)
	}
	k := raw.Data.Kline
	values, err := parseDecimals([]string{k.Open, k.High, k.Low, k.Close, k.Volume})
	if err != nil {
		return model.Candle{}, err
	}
	return model.Candle{
		Pair:     raw.Data.Symbol,
		Time:     time.UnixMilli(k.StartTime),
		Open:     values[0],
		High:     values[1],
		Low:      values[2],
		Close:    values[3],
		Volume:   values[4],
		Complete: k.Closed,
	}, nil
}

func streamName(pair, period string) string {
	return fmt.Sprintf("%s@kline_%s", strings.ToLower(pair), period)
}

// CandlesSubscription : 구독마다 별도 연결, 끊기면 reconnectDelay 후 재연결
// ctx 또는 Stop 으로 종료되면 두 채널 모두 닫힘
func (b *Binance) CandlesSubscription(ctx context.Context, pair, period string) (chan model.Candle, chan error) {
	candleCh := make(chan model.Candle, 64)
	errCh := make(chan error, 8)
	url := fmt.Sprintf("%s/stream?streams=%s", b.baseWS, streamName(pair, period))

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer close(candleCh)
		defer close(errCh)

		for {
			err := b.runStream(ctx, url, candleCh)
			if b.done(ctx) {
				return
			}
			if err != nil {
				b.sendErr(errCh, err)
			}
			select {
			case <-ctx.Done():
				return
			case <-b.ctx.Done():
				return
			case <-time.After(b.reconnectDelay):
				log.Infof("[BinanceWS] reconnecting %s", url)
			}
		}
	}()
	return candleCh, errCh
}

func (b *Binance) done(ctx context.Context) bool {
	return ctx.Err() != nil || b.ctx.Err() != nil
}

func (b *Binance) sendErr(errCh chan error, err error) {
	select {
	case errCh <- err:
	default:
		log.Warnf("[BinanceWS] error channel full, drop: %v", err)
	}
}

func (b *Binance) runStream(ctx context.Context, url string, candleCh chan model.Candle) error {
	conn, _, err := b.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("websocket dial fail: %w", err)
	}
	b.track(conn)
	defer b.untrack(conn)
	log.Infof("[BinanceWS] connected %s", url)

	// ctx 종료 시 ReadMessage 블록 해제
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-b.ctx.Done():
		case <-stop:
			return
		}
		_ = conn.Close()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if b.done(ctx) {
				return nil
			}
			return fmt.Errorf("websocket read fail: %w", err)
		}
		candle, err := ParseStreamKline(msg)
		if err != nil {
			log.Warnf("[BinanceWS] skip message: %v", err)
			continue
		}
		select {
		case candleCh <- candle:
		case <-ctx.Done():
			return nil
		case <-b.ctx.Done():
			return nil
		}
	}
}

func (b *Binance) track(conn *websocket.Conn) {
	b.connMtx.Lock()
	defer b.connMtx.Unlock()
	b.conns[conn] = struct{}{}
}

func (b *Binance) untrack(conn *websocket.Conn) {
	b.connMtx.Lock()
	defer b.connMtx.Unlock()
	delete(b.conns, conn)
	_ = conn.Close()
}

// Stop : 모든 구독 연결 종료 후 goroutine 대기
func (b *Binance) Stop() {
	b.cancelFunc()
	b.connMtx.Lock()
	for conn := range b.conns {
		_ = conn.Close()
	}
	b.connMtx.Unlock()
	b.wg.Wait()
	log.Info("[Binance] stopped")
}
