package chart

// FrameScheduler : 다음 갱신 tick 에 그리기를 한 번만 실행
// dirty 플래그 + 대기 중 콜백 하나. tick 전에 들어온 요청은 모두 하나로 합쳐짐
// Request/Tick 은 같은 goroutine(Loop) 에서만 호출됨
type FrameScheduler struct {
	dirty   bool
	pending func()
}

func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// Request : 마지막 요청의 콜백이 남음
func (f *FrameScheduler) Request(draw func()) {
	f.pending = draw
	f.dirty = true
}

// Pending : 아직 실행되지 않은 요청이 있는지
func (f *FrameScheduler) Pending() bool {
	return f.dirty
}

// Tick : 디스플레이 갱신 시점. 대기 중 그리기가 있으면 실행하고 true
func (f *FrameScheduler) Tick() bool {
	if !f.dirty {
		return false
	}
	draw := f.pending
	f.dirty = false
	f.pending = nil
	if draw != nil {
		draw()
	}
	return true
}
