package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"klinechart/chart"
	"klinechart/utils/tools"
)

const (
	ExchangeBinance = "binance"
	ExchangeReplay  = "replay"
)

// Config : 애플리케이션 전체 설정
type Config struct {
	Exchange string `yaml:"exchange"`
	Symbol   string `yaml:"symbol"`
	Interval string `yaml:"interval"`
	// PreloadLimit : 시작 시 REST 로 가져올 과거 봉 수
	PreloadLimit int `yaml:"preload_limit"`

	Binance struct {
		RestURL string `yaml:"rest_url"`
		WsURL   string `yaml:"ws_url"`
	} `yaml:"binance"`

	Chart struct {
		// 생략된(nil) 항목은 차트 기본값 사용
		Width          *int               `yaml:"width"`
		Height         *int               `yaml:"height"`
		Margin         *chart.MarginPatch `yaml:"margin"`
		AxisLabelWidth *float64           `yaml:"axis_label_width"`
		DisplayAmount  *int               `yaml:"display_amount"`
		TickCount      *int               `yaml:"tick_count"`
		LabelPrecision *int               `yaml:"label_precision"`
		// RefreshInterval : 프레임 스케줄러 tick 주기
		RefreshInterval time.Duration `yaml:"refresh_interval"`
	} `yaml:"chart"`

	HTTP struct {
		Addr string `yaml:"addr"`
		// PageRefresh : 브라우저가 /chart.png 를 다시 읽는 주기
		PageRefresh time.Duration `yaml:"page_refresh"`
	} `yaml:"http"`

	Snapshot struct {
		Path string `yaml:"path"`
		Cron string `yaml:"cron"`
	} `yaml:"snapshot"`

	LogLevel string `yaml:"log_level"`
}

// Load : YAML 파일을 읽은 뒤 환경변수로 덮어쓰고 기본값을 채움
// 파일이 없으면 환경변수와 기본값만 사용
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if v := os.Getenv("KLINE_EXCHANGE"); v != "" {
		cfg.Exchange = v
	}
	if v := os.Getenv("KLINE_SYMBOL"); v != "" {
		cfg.Symbol = v
	}
	if v := os.Getenv("KLINE_INTERVAL"); v != "" {
		cfg.Interval = v
	}
	if v := os.Getenv("KLINE_PRELOAD_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("KLINE_PRELOAD_LIMIT: %w", err)
		}
		cfg.PreloadLimit = n
	}
	if v := os.Getenv("KLINE_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("KLINE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("KLINE_SNAPSHOT_PATH"); v != "" {
		cfg.Snapshot.Path = v
	}
	if v := os.Getenv("KLINE_SNAPSHOT_CRON"); v != "" {
		cfg.Snapshot.Cron = v
	}

	// Defaults
	if cfg.Exchange == "" {
		cfg.Exchange = ExchangeBinance
	}
	if cfg.Symbol == "" {
		cfg.Symbol = "BTCUSDT"
	}
	if cfg.Interval == "" {
		cfg.Interval = "1m"
	}
	if cfg.PreloadLimit == 0 {
		cfg.PreloadLimit = 500
	}
	if cfg.Chart.RefreshInterval == 0 {
		cfg.Chart.RefreshInterval = chart.DefaultRefreshInterval
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = "8080"
	}
	if cfg.HTTP.PageRefresh == 0 {
		cfg.HTTP.PageRefresh = time.Second
	}
	if cfg.Snapshot.Cron == "" {
		cfg.Snapshot.Cron = "*/30 * * * * *"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Validate : 필수값과 형식 확인
func (c *Config) Validate() error {
	if c.Exchange != ExchangeBinance && c.Exchange != ExchangeReplay {
		return fmt.Errorf("exchange must be %q or %q, got %q", ExchangeBinance, ExchangeReplay, c.Exchange)
	}
	if c.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if _, err := tools.ParseIntervalToDuration(c.Interval); err != nil {
		return fmt.Errorf("interval: %w", err)
	}
	if c.PreloadLimit < 0 || c.PreloadLimit > 1000 {
		return fmt.Errorf("preload_limit must be in [0, 1000], got %d", c.PreloadLimit)
	}
	if c.Chart.Width != nil && *c.Chart.Width <= 0 {
		return fmt.Errorf("chart.width must be positive")
	}
	if c.Chart.Height != nil && *c.Chart.Height <= 0 {
		return fmt.Errorf("chart.height must be positive")
	}
	if c.Chart.AxisLabelWidth != nil && *c.Chart.AxisLabelWidth < 0 {
		return fmt.Errorf("chart.axis_label_width must not be negative")
	}
	if c.Chart.DisplayAmount != nil && *c.Chart.DisplayAmount <= 0 {
		return fmt.Errorf("chart.display_amount must be positive")
	}
	if c.Chart.LabelPrecision != nil && *c.Chart.LabelPrecision < 0 {
		return fmt.Errorf("chart.label_precision must not be negative")
	}
	if c.Chart.RefreshInterval < 0 {
		return fmt.Errorf("chart.refresh_interval must not be negative")
	}
	if c.Snapshot.Path != "" {
		if _, err := cron.NewParser(snapshotCronFields).Parse(c.Snapshot.Cron); err != nil {
			return fmt.Errorf("snapshot.cron: %w", err)
		}
	}
	return nil
}

// snapshot.Exporter 의 cron.WithSeconds 와 같은 형식
const snapshotCronFields = cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor

// ChartOptions : chart 섹션 중 지정된 값만 각각 Option 으로 변환
func (c *Config) ChartOptions() []chart.Option {
	var opts []chart.Option
	if c.Chart.Width != nil {
		opts = append(opts, chart.WithSize(float64(*c.Chart.Width), 0))
	}
	if c.Chart.Height != nil {
		opts = append(opts, chart.WithSize(0, float64(*c.Chart.Height)))
	}
	if c.Chart.Margin != nil {
		opts = append(opts, chart.WithMarginPatch(*c.Chart.Margin))
	}
	if c.Chart.AxisLabelWidth != nil {
		opts = append(opts, chart.WithAxisLabelWidth(*c.Chart.AxisLabelWidth))
	}
	if c.Chart.DisplayAmount != nil {
		opts = append(opts, chart.WithDisplayAmount(*c.Chart.DisplayAmount))
	}
	if c.Chart.TickCount != nil {
		opts = append(opts, chart.WithTickCount(*c.Chart.TickCount))
	}
	if c.Chart.LabelPrecision != nil {
		opts = append(opts, chart.WithLabelPrecision(*c.Chart.LabelPrecision))
	}
	return opts
}
