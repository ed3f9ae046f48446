package chart

// Margin : 캔버스 가장자리 여백 (px)
type Margin struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// MarginPatch : 일부 면만 지정할 때 사용 (nil = 기본값 유지)
type MarginPatch struct {
	Top    *float64 `yaml:"top"`
	Left   *float64 `yaml:"left"`
	Bottom *float64 `yaml:"bottom"`
	Right  *float64 `yaml:"right"`
}

// Palette : 고정 색상 (#RRGGBB)
type Palette struct {
	Background string
	Axis       string
	Tick       string
	Bullish    string
	Bearish    string
}

const (
	DefaultWidth          = 960
	DefaultHeight         = 600
	DefaultMargin         = 30
	DefaultAxisLabelWidth = 60
	DefaultDisplayAmount  = 100

	DefaultTickCount      = 10
	DefaultTickWidth      = 8
	DefaultLabelPrecision = 2
	DefaultFontSize       = 14
	DefaultAxisLineWidth  = 2
	DefaultTimeAxisOffset = 20
	DefaultMinBoxWidth    = 4
	DefaultBoxGap         = 2
	DefaultWickWidth      = 1
)

// DefaultPalette : 다크 배경 + 녹색(상승)/적색(하락)
var DefaultPalette = Palette{
	Background: "#14151A",
	Axis:       "#26292F",
	Tick:       "#505760",
	Bullish:    "#5EBA89",
	Bearish:    "#CE3D4E",
}

// PlotConfig : 생성 시 고정되는 차트 설정. Controller만 소유하고 나머지는 읽기만 함
type PlotConfig struct {
	Width          float64
	Height         float64
	Margin         Margin
	AxisLabelWidth float64
	DisplayAmount  int

	TickCount      int
	TickWidth      float64
	LabelPrecision int
	FontSize       float64
	AxisLineWidth  float64
	// TimeAxisOffset : x축 오른쪽 끝에 남겨두는 여유 폭 (마지막 봉이 축에 붙지 않도록)
	TimeAxisOffset float64
	MinBoxWidth    float64
	BoxGap         float64
	WickWidth      float64
	Palette        Palette
}

type Option func(*PlotConfig)

// DefaultConfig : 모든 옵션이 생략됐을 때의 설정
func DefaultConfig() PlotConfig {
	return PlotConfig{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Margin: Margin{
			Top:    DefaultMargin,
			Left:   DefaultMargin,
			Bottom: DefaultMargin,
			Right:  DefaultMargin,
		},
		AxisLabelWidth: DefaultAxisLabelWidth,
		DisplayAmount:  DefaultDisplayAmount,
		TickCount:      DefaultTickCount,
		TickWidth:      DefaultTickWidth,
		LabelPrecision: DefaultLabelPrecision,
		FontSize:       DefaultFontSize,
		AxisLineWidth:  DefaultAxisLineWidth,
		TimeAxisOffset: DefaultTimeAxisOffset,
		MinBoxWidth:    DefaultMinBoxWidth,
		BoxGap:         DefaultBoxGap,
		WickWidth:      DefaultWickWidth,
		Palette:        DefaultPalette,
	}
}

// NewConfig : 기본값 위에 옵션 적용
func NewConfig(opts ...Option) PlotConfig {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithSize : 0 이하 값은 기본값 유지
func WithSize(width, height float64) Option {
	return func(c *PlotConfig) {
		if width > 0 {
			c.Width = width
		}
		if height > 0 {
			c.Height = height
		}
	}
}

// WithMargin : 네 면 모두 교체 (0 도 그대로 적용)
func WithMargin(m Margin) Option {
	return func(c *PlotConfig) {
		c.Margin = m
	}
}

// WithMarginPatch : nil 이 아닌 면만 덮어쓰고 나머지는 기존 값 유지
func WithMarginPatch(p MarginPatch) Option {
	return func(c *PlotConfig) {
		if p.Top != nil {
			c.Margin.Top = *p.Top
		}
		if p.Left != nil {
			c.Margin.Left = *p.Left
		}
		if p.Bottom != nil {
			c.Margin.Bottom = *p.Bottom
		}
		if p.Right != nil {
			c.Margin.Right = *p.Right
		}
	}
}

// WithAxisLabelWidth : 음수는 무시
func WithAxisLabelWidth(width float64) Option {
	return func(c *PlotConfig) {
		if width >= 0 {
			c.AxisLabelWidth = width
		}
	}
}

func WithDisplayAmount(n int) Option {
	return func(c *PlotConfig) {
		if n > 0 {
			c.DisplayAmount = n
		}
	}
}

// WithTickCount : 0 이면 눈금을 그리지 않음
func WithTickCount(n int) Option {
	return func(c *PlotConfig) {
		c.TickCount = n
	}
}

func WithLabelPrecision(digits int) Option {
	return func(c *PlotConfig) {
		if digits >= 0 {
			c.LabelPrecision = digits
		}
	}
}

func WithTimeAxisOffset(offset float64) Option {
	return func(c *PlotConfig) {
		c.TimeAxisOffset = offset
	}
}

func WithMinBoxWidth(width float64) Option {
	return func(c *PlotConfig) {
		c.MinBoxWidth = width
	}
}

func WithPalette(p Palette) Option {
	return func(c *PlotConfig) {
		c.Palette = p
	}
}
