package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/robfig/cron/v3"

	"klinechart/chartview"
	"klinechart/utils/log"
)

// Exporter : cron 스케줄마다 최신 프레임 PNG 를 파일로 저장
// 이전 저장 이후 새 프레임이 없으면 건너뜀
type Exporter struct {
	Cron  *cron.Cron
	store *chartview.FrameStore
	path  string

	mu      sync.Mutex
	lastSeq uint64
}

// NewExporter : spec 은 초 단위 포함 6필드 cron 식 (예: "*/30 * * * * *")
func NewExporter(store *chartview.FrameStore, path, spec string) (*Exporter, error) {
	e := &Exporter{
		Cron:  cron.New(cron.WithSeconds()),
		store: store,
		path:  path,
	}
	if _, err := e.Cron.AddFunc(spec, e.exportTask); err != nil {
		return nil, fmt.Errorf("register snapshot task %q: %w", spec, err)
	}
	return e, nil
}

func (e *Exporter) exportTask() {
	written, err := e.Export()
	if err != nil {
		log.Errorf("[Snapshot] export: %v", err)
		return
	}
	if written {
		log.Debugf("[Snapshot] wrote %s", e.path)
	}
}

// Export : 새 프레임이 있으면 임시 파일에 쓴 뒤 rename. 썼으면 true
func (e *Exporter) Export() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	frame, err := e.store.Latest()
	if errors.Is(err, chartview.ErrNoFrame) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if frame.Sequence == e.lastSeq {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(e.path), 0o755); err != nil {
		return false, fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp := e.path + ".tmp"
	if err := os.WriteFile(tmp, frame.PNG, 0o644); err != nil {
		return false, fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, e.path); err != nil {
		return false, fmt.Errorf("rename snapshot: %w", err)
	}
	e.lastSeq = frame.Sequence
	return true, nil
}

func (e *Exporter) Start() {
	e.Cron.Start()
	log.Infof("[Snapshot] exporter started -> %s", e.path)
}

// Stop : 실행 중인 작업이 끝날 때까지 대기
func (e *Exporter) Stop() {
	<-e.Cron.Stop().Done()
	log.Info("[Snapshot] exporter stopped")
}
