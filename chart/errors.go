package chart

import "errors"

var (
	// ErrUninitialized : Init 전에 Update 호출
	ErrUninitialized = errors.New("chart: series is not initialized, call Init first")
	// ErrDegenerateBounds : 도메인 폭이 0이거나 유한하지 않음. 매핑 내부에서만 쓰이고 중앙 좌표로 대체됨
	ErrDegenerateBounds = errors.New("chart: degenerate domain bounds")
)
