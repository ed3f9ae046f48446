package surface

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"klinechart/interfaces"
)

var _ interfaces.Surface = (*Raster)(nil)

var (
	fontOnce sync.Once
	fontData *truetype.Font
	fontErr  error
)

func parsedFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		fontData, fontErr = truetype.Parse(goregular.TTF)
	})
	return fontData, fontErr
}

// Raster : gg 컨텍스트 위의 interfaces.Surface 구현
// gg 는 색 상태가 하나라 fill/stroke 색을 따로 들고 있다가 명령 직전에 적용
type Raster struct {
	dc          *gg.Context
	fillStyle   string
	strokeStyle string
	baseline    string
	faces       map[float64]font.Face
}

func NewRaster(width, height int) *Raster {
	return &Raster{
		dc:          gg.NewContext(width, height),
		fillStyle:   "#000000",
		strokeStyle: "#000000",
		baseline:    "alphabetic",
		faces:       make(map[float64]font.Face),
	}
}

// Size : 이미지 픽셀 크기
func (r *Raster) Size() (int, int) {
	return r.dc.Width(), r.dc.Height()
}

func (r *Raster) SetFillStyle(hex string) {
	r.fillStyle = hex
}

func (r *Raster) SetStrokeStyle(hex string) {
	r.strokeStyle = hex
}

func (r *Raster) SetLineWidth(width float64) {
	r.dc.SetLineWidth(width)
}

// FillRect : 좌표가 유한하지 않은 사각형은 건너뜀
func (r *Raster) FillRect(x, y, w, h float64) {
	for _, v := range [...]float64{x, y, w, h} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
	}
	r.dc.SetHexColor(r.fillStyle)
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Fill()
}

func (r *Raster) BeginPath() {
	r.dc.NewSubPath()
}

func (r *Raster) MoveTo(x, y float64) {
	r.dc.MoveTo(x, y)
}

func (r *Raster) LineTo(x, y float64) {
	r.dc.LineTo(x, y)
}

func (r *Raster) Stroke() {
	r.dc.SetHexColor(r.strokeStyle)
	r.dc.Stroke()
}

// SetFont : 크기별 face 캐시. 폰트 파싱 실패 시 gg 기본 face 유지
func (r *Raster) SetFont(size float64) {
	if face, ok := r.faces[size]; ok {
		r.dc.SetFontFace(face)
		return
	}
	f, err := parsedFont()
	if err != nil {
		return
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size})
	r.faces[size] = face
	r.dc.SetFontFace(face)
}

func (r *Raster) SetTextBaseline(baseline string) {
	r.baseline = baseline
}

func (r *Raster) FillText(text string, x, y float64) {
	r.dc.SetHexColor(r.fillStyle)
	switch r.baseline {
	case "middle":
		r.dc.DrawStringAnchored(text, x, y, 0, 0.5)
	case "top":
		r.dc.DrawStringAnchored(text, x, y, 0, 1)
	default:
		r.dc.DrawString(text, x, y)
	}
}

// Image : 현재 프레임
func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// PNG : 현재 프레임을 PNG 바이트로
func (r *Raster) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
