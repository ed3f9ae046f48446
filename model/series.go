package model

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Series is a time series of values
type Series[T constraints.Ordered] []T

// Values returns the values of the series
func (s Series[T]) Values() []T {
	return s
}

// Length returns the number of values in the series
func (s Series[T]) Length() int {
	return len(s)
}

// Last returns the last value of the series given a past index position
func (s Series[T]) Last(position int) T {
	return s[len(s)-1-position]
}

// LastValues returns the last values of the series given a size
func (s Series[T]) LastValues(size int) []T {
	if l := len(s); l > size {
		return s[l-size:]
	}
	return s
}

// Max returns the largest value of the series and false when the series is empty
func (s Series[T]) Max() (T, bool) {
	var result T
	for i, v := range s {
		if i == 0 || v > result {
			result = v
		}
	}
	return result, len(s) > 0
}

// Min returns the smallest value of the series and false when the series is empty
func (s Series[T]) Min() (T, bool) {
	var result T
	for i, v := range s {
		if i == 0 || v < result {
			result = v
		}
	}
	return result, len(s) > 0
}

// Bounds returns min and max of a float series, (+Inf, -Inf) when empty
func Bounds(s Series[float64]) (low, high float64) {
	low, okLow := s.Min()
	high, okHigh := s.Max()
	if !okLow || !okHigh {
		return math.Inf(1), math.Inf(-1)
	}
	return low, high
}

// Candles is the ordered candle history of one pair
type Candles []Candle

// Length returns the number of candles
func (c Candles) Length() int {
	return len(c)
}

// LastValues returns the last candles given a size. size <= 0 returns an empty slice.
func (c Candles) LastValues(size int) Candles {
	if size <= 0 {
		return Candles{}
	}
	if l := len(c); l > size {
		return c[l-size:]
	}
	return c
}

// Last returns the most recent candle and false when empty
func (c Candles) Last() (Candle, bool) {
	if len(c) == 0 {
		return Candle{}, false
	}
	return c[len(c)-1], true
}

// Merge : 마지막 봉과 같은 시간이면 교체, 아니면 뒤에 추가한 새 Candles 반환
// 마지막 원소 외의 과거 봉은 건드리지 않음
func (c Candles) Merge(candle Candle) Candles {
	if last, ok := c.Last(); ok && last.SameBucket(candle) {
		out := make(Candles, len(c))
		copy(out, c)
		out[len(out)-1] = candle
		return out
	}
	return append(c, candle)
}
