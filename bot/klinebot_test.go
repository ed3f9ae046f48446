package bot

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"klinechart/config"
)

func replayConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Exchange = config.ExchangeReplay
	cfg.Symbol = "DEMO"
	cfg.Interval = "1m"
	cfg.HTTP.Addr = "127.0.0.1:0"
	cfg.Snapshot.Path = filepath.Join(t.TempDir(), "chart.png")
	cfg.Chart.Width, cfg.Chart.Height = lo.ToPtr(320), lo.ToPtr(200)
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestNewKlineBot_PublishesEmptyFrame(t *testing.T) {
	b, err := NewKlineBot(replayConfig(t))
	require.NoError(t, err)

	frame, err := b.store.Latest()
	require.NoError(t, err)
	assert.NotEmpty(t, frame.PNG)
	assert.True(t, frame.Window.Empty())
}

func TestKlineBot_StartStop(t *testing.T) {
	b, err := NewKlineBot(replayConfig(t))
	require.NoError(t, err)

	b.Start(context.Background())
	defer b.Stop()

	assert.Eventually(t, func() bool {
		frame, err := b.store.Latest()
		return err == nil && !frame.Window.Empty()
	}, 2*time.Second, 10*time.Millisecond)

	written, err := b.exporter.Export()
	require.NoError(t, err)
	assert.True(t, written)
}

func TestNewKlineBot_BadSnapshotCron(t *testing.T) {
	cfg := replayConfig(t)
	cfg.Snapshot.Cron = "bad"
	_, err := NewKlineBot(cfg)
	assert.Error(t, err)
}
