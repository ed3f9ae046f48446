package model

import "time"

// Candle : 한 구간(time bucket)의 OHLC 가격 기록
// high >= max(open, close), low <= min(open, close) 는 검증하지 않음
type Candle struct {
	Pair     string    `json:"pair,omitempty"`
	Time     time.Time `json:"time"`
	Open     float64   `json:"open"`
	Close    float64   `json:"close"`
	Low      float64   `json:"low"`
	High     float64   `json:"high"`
	Volume   float64   `json:"volume"`
	Complete bool      `json:"complete"`
}

// TimeValue : x축 매핑에 쓰이는 숫자 시간(Unix milliseconds)
func (c Candle) TimeValue() float64 {
	return float64(c.Time.UnixMilli())
}

// Prices : open, high, low, close 순서의 가격 값
func (c Candle) Prices() Series[float64] {
	return Series[float64]{c.Open, c.High, c.Low, c.Close}
}

// SameBucket : 같은 시간 구간의 봉인지 (진행중 봉 교체 판단용)
func (c Candle) SameBucket(other Candle) bool {
	return c.Time.Equal(other.Time)
}
