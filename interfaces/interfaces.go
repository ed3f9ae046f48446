package interfaces

import (
	"context"

	"klinechart/model"
)

// DataFeeder : 과거 캔들 조회 + 실시간 캔들 구독
type DataFeeder interface {
	CandlesByLimit(ctx context.Context, pair, period string, limit int) ([]model.Candle, error)
	CandlesSubscription(ctx context.Context, pair, period string) (chan model.Candle, chan error)
	Stop()
}

// Surface : 2D 래스터 캔버스 기본 그리기 명령
// 좌표는 픽셀 단위, 원점은 좌상단
type Surface interface {
	SetFillStyle(hex string)
	SetStrokeStyle(hex string)
	SetLineWidth(width float64)
	FillRect(x, y, w, h float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
	SetFont(size float64)
	// SetTextBaseline : "top", "middle", "alphabetic"
	SetTextBaseline(baseline string)
	FillText(text string, x, y float64)
}

// FrameRequester : 다음 디스플레이 갱신 시점에 그리기를 예약
type FrameRequester interface {
	Request(draw func())
}
