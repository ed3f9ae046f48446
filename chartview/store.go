package chartview

import (
	"errors"
	"sync"
	"time"

	"klinechart/chart"
)

var ErrNoFrame = errors.New("no frame rendered yet")

// Frame : 한 번 그린 결과 (PNG + 그 때의 Window)
type Frame struct {
	PNG      []byte
	Window   chart.Window
	Sequence uint64
	DrawnAt  time.Time
}

// FrameStore : 차트 Loop 가 쓰고 HTTP/스냅샷이 읽는 최신 프레임 저장소
type FrameStore struct {
	mu    sync.RWMutex
	frame *Frame
	seq   uint64
}

func NewFrameStore() *FrameStore {
	return &FrameStore{}
}

// Publish : 새 프레임 저장. png 는 호출 이후 수정하면 안 됨
func (fs *FrameStore) Publish(png []byte, w chart.Window) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.seq++
	fs.frame = &Frame{
		PNG:      png,
		Window:   w,
		Sequence: fs.seq,
		DrawnAt:  time.Now(),
	}
}

// Latest : 마지막 프레임 복사본
func (fs *FrameStore) Latest() (Frame, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if fs.frame == nil {
		return Frame{}, ErrNoFrame
	}
	return *fs.frame, nil
}
