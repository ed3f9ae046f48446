package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"klinechart/chart"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ExchangeBinance, cfg.Exchange)
	assert.Equal(t, "BTCUSDT", cfg.Symbol)
	assert.Equal(t, "1m", cfg.Interval)
	assert.Equal(t, 500, cfg.PreloadLimit)
	assert.Equal(t, chart.DefaultRefreshInterval, cfg.Chart.RefreshInterval)
	assert.Equal(t, "8080", cfg.HTTP.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.ChartOptions())
}

func TestLoad_YAMLAndEnv(t *testing.T) {
	path := writeConfig(t, `
exchange: replay
symbol: ethusdt
interval: 5m
chart:
  width: 1200
  height: 700
  margin:
    top: 10
    left: 12
    bottom: 14
    right: 16
  display_amount: 50
  tick_count: 6
  refresh_interval: 32ms
snapshot:
  path: out/chart.png
`)
	t.Setenv("KLINE_SYMBOL", "SOLUSDT")
	t.Setenv("KLINE_HTTP_ADDR", "127.0.0.1:9090")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ExchangeReplay, cfg.Exchange)
	assert.Equal(t, "SOLUSDT", cfg.Symbol)
	assert.Equal(t, "5m", cfg.Interval)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.Addr)
	assert.Equal(t, 32*time.Millisecond, cfg.Chart.RefreshInterval)
	assert.Equal(t, "out/chart.png", cfg.Snapshot.Path)

	pc := chart.NewConfig(cfg.ChartOptions()...)
	assert.Equal(t, 1200.0, pc.Width)
	assert.Equal(t, 700.0, pc.Height)
	assert.Equal(t, chart.Margin{Top: 10, Left: 12, Bottom: 14, Right: 16}, pc.Margin)
	assert.Equal(t, 50, pc.DisplayAmount)
	assert.Equal(t, 6, pc.TickCount)
	assert.Equal(t, float64(chart.DefaultAxisLabelWidth), pc.AxisLabelWidth)
}

func TestChartOptions_Independent(t *testing.T) {
	path := writeConfig(t, `
chart:
  width: 1200
  margin:
    left: 0
  label_precision: 0
  tick_count: 0
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	pc := chart.NewConfig(cfg.ChartOptions()...)
	assert.Equal(t, 1200.0, pc.Width)
	assert.Equal(t, float64(chart.DefaultHeight), pc.Height)
	assert.Equal(t, chart.Margin{Top: chart.DefaultMargin, Left: 0, Bottom: chart.DefaultMargin, Right: chart.DefaultMargin}, pc.Margin)
	assert.Equal(t, 0, pc.LabelPrecision)
	assert.Equal(t, 0, pc.TickCount)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "chart: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func(t *testing.T) *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	cfg := base(t)
	cfg.Exchange = "upbit"
	assert.Error(t, cfg.Validate())

	cfg = base(t)
	cfg.Interval = "7m"
	assert.Error(t, cfg.Validate())

	cfg = base(t)
	cfg.Chart.Height = lo.ToPtr(0)
	assert.Error(t, cfg.Validate())

	cfg = base(t)
	cfg.PreloadLimit = 5000
	assert.Error(t, cfg.Validate())

	cfg = base(t)
	cfg.Snapshot.Path = "chart.png"
	cfg.Snapshot.Cron = "every now and then"
	assert.Error(t, cfg.Validate())
}
