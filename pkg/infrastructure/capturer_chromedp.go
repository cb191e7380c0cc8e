package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"resume-builder/internal/render"
	"resume-builder/internal/usecase"
)

const (
	captureTimeout = 60 * time.Second
	viewportWidth  = 1280
	viewportHeight = 1024
)

// ChromedpCapturer loads preview HTML in headless Chrome and screenshots its
// page panels.
type ChromedpCapturer struct {
	chromePath string
	log        zerolog.Logger
}

func NewChromedpCapturer(chromePath string, log zerolog.Logger) *ChromedpCapturer {
	return &ChromedpCapturer{chromePath: chromePath, log: log}
}

func (c *ChromedpCapturer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(viewportWidth, viewportHeight),
	)
	if c.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(c.chromePath))
	}
	return opts
}

// Open starts a browser, loads html from a temporary file and counts the
// panels. The returned session owns the browser until Close.
func (c *ChromedpCapturer) Open(ctx context.Context, html string) (usecase.CaptureSession, error) {
	tmpDir, err := os.MkdirTemp("", "resume-")
	if err != nil {
		return nil, err
	}
	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		os.RemoveAll(tmpDir)
		return nil, err
	}

	timeoutCtx, cancelTimeout := context.WithTimeout(ctx, captureTimeout)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(timeoutCtx, c.allocatorOptions()...)
	cctx, cancelCtx := chromedp.NewContext(allocCtx)

	s := &chromedpSession{
		ctx:    cctx,
		tmpDir: tmpDir,
		cancel: func() { cancelCtx(); cancelAlloc(); cancelTimeout() },
	}

	countJS := fmt.Sprintf(`document.querySelectorAll(%q).length`, render.PanelSelector)
	err = chromedp.Run(cctx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(countJS, &s.panels),
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("load preview: %w", err)
	}
	c.log.Debug().Int("panels", s.panels).Msg("preview loaded")
	return s, nil
}

type chromedpSession struct {
	ctx    context.Context
	tmpDir string
	cancel func()
	panels int
}

type panelRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s *chromedpSession) PanelCount() int { return s.panels }

func panelJS(i int, body string) string {
	return fmt.Sprintf(`(() => { const p = document.querySelectorAll(%q)[%d]; if (!p) return null; %s })()`,
		render.PanelSelector, i, body)
}

func controlsJS(i int, visibility string) string {
	return panelJS(i, fmt.Sprintf(
		`p.querySelectorAll('button[aria-label^="Upload"]').forEach(b => { b.style.visibility = %q; }); return true;`,
		visibility))
}

// CapturePanel hides the panel's upload controls, screenshots the panel's
// box at scale and restores the controls.
func (s *chromedpSession) CapturePanel(ctx context.Context, i int, scale float64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if i < 0 || i >= s.panels {
		return nil, fmt.Errorf("panel %d out of range", i)
	}

	var hidden bool
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(controlsJS(i, "hidden"), &hidden)); err != nil {
		return nil, fmt.Errorf("hide controls: %w", err)
	}
	defer func() {
		var restored bool
		_ = chromedp.Run(s.ctx, chromedp.Evaluate(controlsJS(i, ""), &restored))
	}()

	var rect panelRect
	rectJS := panelJS(i, `const r = p.getBoundingClientRect();
		return {x: r.left + window.scrollX, y: r.top + window.scrollY, width: r.width, height: r.height};`)

	var buf []byte
	err := chromedp.Run(s.ctx,
		chromedp.Evaluate(rectJS, &rect),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if rect.Width <= 0 || rect.Height <= 0 {
				return errors.New("panel has no size")
			}
			var err error
			buf, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithCaptureBeyondViewport(true).
				WithClip(&page.Viewport{X: rect.X, Y: rect.Y, Width: rect.Width, Height: rect.Height, Scale: scale}).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *chromedpSession) Close() error {
	s.cancel()
	return os.RemoveAll(s.tmpDir)
}
