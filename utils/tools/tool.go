package tools

import (
	"fmt"
	"time"
)

// ParseIntervalToDuration : 바이낸스 kline interval -> 봉 길이
// 1M 은 30일로 근사
func ParseIntervalToDuration(interval string) (time.Duration, error) {
	switch interval {
	case "1s":
		return time.Second, nil
	case "1m":
		return time.Minute, nil
	case "3m":
		return 3 * time.Minute, nil
	case "5m":
		return 5 * time.Minute, nil
	case "15m":
		return 15 * time.Minute, nil
	case "30m":
		return 30 * time.Minute, nil
	case "1h":
		return time.Hour, nil
	case "2h":
		return 2 * time.Hour, nil
	case "4h":
		return 4 * time.Hour, nil
	case "6h":
		return 6 * time.Hour, nil
	case "8h":
		return 8 * time.Hour, nil
	case "12h":
		return 12 * time.Hour, nil
	case "1d":
		return 24 * time.Hour, nil
	case "3d":
		return 3 * 24 * time.Hour, nil
	case "1w":
		return 7 * 24 * time.Hour, nil
	case "1M":
		return 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unsupported interval: %s", interval)
	}
}

// TruncateToInterval : t 가 속한 봉의 시작 시각 (UTC 기준)
func TruncateToInterval(t time.Time, interval string) (time.Time, error) {
	d, err := ParseIntervalToDuration(interval)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC().Truncate(d), nil
}
