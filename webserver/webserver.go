package webserver

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"klinechart/chart"
	"klinechart/chartview"
	"klinechart/model"
	fiberhelpers "klinechart/utils/fiberhelper"
	"klinechart/utils/fiberhelper/middleware"
	"klinechart/utils/fiberhelper/response"
	"klinechart/utils/log"
)

// WebServer : 최신 프레임을 HTTP 로 노출
//   - /          : PNG 를 주기적으로 다시 불러오는 페이지
//   - /chart.png : 최신 래스터 프레임
//   - /kline     : 같은 Window 의 go-echarts 페이지
//   - /window    : 현재 Window JSON
//   - /health
type WebServer struct {
	app     *fiber.App
	store   *chartview.FrameStore
	title   string
	palette chart.Palette
	refresh time.Duration
}

// CandleData : 캔들 OHLC 형식
type CandleData struct {
	X int64   `json:"x"`
	O float64 `json:"o"`
	H float64 `json:"h"`
	L float64 `json:"l"`
	C float64 `json:"c"`

	Volume   float64 `json:"volume,omitempty"`
	Complete bool    `json:"complete,omitempty"`
}

// WindowResponse : 빈 Window 의 무한대 범위는 null
type WindowResponse struct {
	Sequence uint64       `json:"sequence"`
	DrawnAt  time.Time    `json:"drawnAt"`
	XMin     *float64     `json:"xMin"`
	XMax     *float64     `json:"xMax"`
	YMin     *float64     `json:"yMin"`
	YMax     *float64     `json:"yMax"`
	Candles  []CandleData `json:"candles"`
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8" />
  <title>{{.Title}}</title>
  <style>body { background: {{.Background}}; color: #ccc; font-family: sans-serif; }</style>
</head>
<body>
  <h3>{{.Title}}</h3>
  <img id="chart" src="/chart.png" />
  <p><a href="/kline">interactive kline</a></p>
  <script>
    setInterval(function () {
      document.getElementById('chart').src = '/chart.png?t=' + Date.now();
    }, {{.RefreshMillis}});
  </script>
</body>
</html>
`))

func NewWebServer(store *chartview.FrameStore, title string, palette chart.Palette, refresh time.Duration) *WebServer {
	if refresh <= 0 {
		refresh = time.Second
	}
	ws := &WebServer{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ErrorHandler:          fiberhelpers.DefaultErrorHandler,
		}),
		store:   store,
		title:   title,
		palette: palette,
		refresh: refresh,
	}
	ws.app.Use(fiberhelpers.NewRecover())
	ws.app.Use(middleware.LogMiddleware("/chart.png", "/health"))

	ws.app.Get("/", ws.indexHandler)
	ws.app.Get("/chart.png", ws.pngHandler)
	ws.app.Get("/kline", ws.klineHandler)
	ws.app.Get("/window", ws.windowHandler)
	ws.app.Get("/health", func(c *fiber.Ctx) error {
		return response.Ext{Ctx: c}.Ok(fiber.Map{"status": "ok"})
	})
	return ws
}

// App : 테스트용
func (ws *WebServer) App() *fiber.App {
	return ws.app
}

func (ws *WebServer) indexHandler(c *fiber.Ctx) error {
	var buf bytes.Buffer
	err := indexTemplate.Execute(&buf, map[string]interface{}{
		"Title":         ws.title,
		"Background":    template.CSS(ws.palette.Background),
		"RefreshMillis": ws.refresh.Milliseconds(),
	})
	if err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func (ws *WebServer) pngHandler(c *fiber.Ctx) error {
	frame, err := ws.store.Latest()
	if err != nil {
		return response.Ext{Ctx: c}.Unavailable(err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	return c.Send(frame.PNG)
}

func (ws *WebServer) klineHandler(c *fiber.Ctx) error {
	frame, err := ws.store.Latest()
	if err != nil {
		return response.Ext{Ctx: c}.Unavailable(err)
	}
	var buf bytes.Buffer
	if err := chartview.RenderPage(&buf, ws.title, frame.Window, ws.palette); err != nil {
		return fmt.Errorf("render kline: %w", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func (ws *WebServer) windowHandler(c *fiber.Ctx) error {
	frame, err := ws.store.Latest()
	if err != nil {
		return response.Ext{Ctx: c}.Unavailable(err)
	}
	return response.Ext{Ctx: c}.Ok(NewWindowResponse(frame))
}

func NewWindowResponse(frame chartview.Frame) WindowResponse {
	w := frame.Window
	resp := WindowResponse{
		Sequence: frame.Sequence,
		DrawnAt:  frame.DrawnAt,
		Candles: lo.Map(w.Candles, func(c model.Candle, _ int) CandleData {
			return CandleData{
				X:        c.Time.UnixMilli(),
				O:        c.Open,
				H:        c.High,
				L:        c.Low,
				C:        c.Close,
				Volume:   c.Volume,
				Complete: c.Complete,
			}
		}),
	}
	if !w.Empty() {
		resp.XMin, resp.XMax = lo.ToPtr(w.XMin), lo.ToPtr(w.XMax)
		resp.YMin, resp.YMax = lo.ToPtr(w.YMin), lo.ToPtr(w.YMax)
	}
	return resp
}

// Start : 서버 구동, Shutdown 전까지 블록
func (ws *WebServer) Start(port string) error {
	address := fiberhelpers.ListenAddress(port)
	log.Infof("[WebServer] Listening on %s", address)
	if err := ws.app.Listen(address); err != nil {
		return fmt.Errorf("webserver listen %s: %w", address, err)
	}
	return nil
}

func (ws *WebServer) Shutdown() error {
	return ws.app.Shutdown()
}
