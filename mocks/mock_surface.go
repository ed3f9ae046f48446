package mocks

import (
	"fmt"
	"math"

	"klinechart/interfaces"
)

var _ interfaces.Surface = (*MockSurface)(nil)

// Call : Surface 에 들어온 그리기 명령 하나
type Call struct {
	Op   string
	Args []float64
	Text string
}

// MockSurface 는 interfaces.Surface 를 흉내내며 호출 순서를 그대로 기록합니다.
// - 테스트에서 그리기 순서/좌표/색을 검증할 때 사용
type MockSurface struct {
	Width, Height int
	Calls         []Call

	// 현재 상태
	FillStyle   string
	StrokeStyle string
}

func NewMockSurface(width, height int) *MockSurface {
	return &MockSurface{Width: width, Height: height}
}

func (m *MockSurface) record(op string, text string, args ...float64) {
	m.Calls = append(m.Calls, Call{Op: op, Args: args, Text: text})
}

func (m *MockSurface) SetFillStyle(hex string) {
	m.FillStyle = hex
	m.record("fillStyle", hex)
}

func (m *MockSurface) SetStrokeStyle(hex string) {
	m.StrokeStyle = hex
	m.record("strokeStyle", hex)
}

func (m *MockSurface) SetLineWidth(width float64) {
	m.record("lineWidth", "", width)
}

func (m *MockSurface) FillRect(x, y, w, h float64) {
	m.record("fillRect", m.FillStyle, x, y, w, h)
}

func (m *MockSurface) BeginPath() {
	m.record("beginPath", "")
}

func (m *MockSurface) MoveTo(x, y float64) {
	m.record("moveTo", "", x, y)
}

func (m *MockSurface) LineTo(x, y float64) {
	m.record("lineTo", "", x, y)
}

func (m *MockSurface) Stroke() {
	m.record("stroke", m.StrokeStyle)
}

func (m *MockSurface) SetFont(size float64) {
	m.record("font", "", size)
}

func (m *MockSurface) SetTextBaseline(baseline string) {
	m.record("textBaseline", baseline)
}

func (m *MockSurface) FillText(text string, x, y float64) {
	m.record("fillText", text, x, y)
}

// Reset : 기록 초기화
func (m *MockSurface) Reset() {
	m.Calls = nil
}

// CallsOf : 특정 op 호출만
func (m *MockSurface) CallsOf(op string) []Call {
	var out []Call
	for _, c := range m.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// CheckFinite : 모든 좌표 인자가 유한한지 확인. NaN/Inf 가 있으면 해당 호출 설명
func (m *MockSurface) CheckFinite() error {
	for i, c := range m.Calls {
		for _, a := range c.Args {
			if math.IsNaN(a) || math.IsInf(a, 0) {
				return fmt.Errorf("call #%d %s has non-finite arg %v", i, c.Op, c.Args)
			}
		}
	}
	return nil
}
