// Package driver provides the concrete ActionHandler and ImageProvider
// collaborators handed to a Lux agent.
//
// ChromeRelay drives an existing Chrome session over the DevTools protocol.
// Chrome must be started with --remote-debugging-port, e.g.:
//
//	google-chrome --remote-debugging-port=9222
package driver

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"github.com/openagi/lux-go/internal/oagi"
)

// DefaultDebugURL is the conventional DevTools endpoint.
const DefaultDebugURL = "http://localhost:9222"

// ChromeRelay attaches to a running Chrome instance and implements both
// oagi.ActionHandler and oagi.ImageProvider against it.
type ChromeRelay struct {
	mu          sync.Mutex
	debugURL    string
	allocCtx    context.Context
	allocCancel context.CancelFunc
	taskCtx     context.Context
	taskCancel  context.CancelFunc
}

// NewChromeRelay returns an unconnected relay for the given DevTools URL.
func NewChromeRelay(debugURL string) *ChromeRelay {
	if strings.TrimSpace(debugURL) == "" {
		debugURL = DefaultDebugURL
	}
	return &ChromeRelay{debugURL: debugURL}
}

// Connect attaches to Chrome. It must be called before Apply or Capture.
func (r *ChromeRelay) Connect(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taskCtx != nil {
		return nil
	}

	allocCtx, allocCancel := chromedp.NewRemoteAllocator(ctx, r.debugURL)
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)

	// Probe the connection so a missing Chrome fails here, not mid-task.
	if err := chromedp.Run(taskCtx); err != nil {
		taskCancel()
		allocCancel()
		return fmt.Errorf("connect to Chrome at %s (is it running with --remote-debugging-port?): %w", r.debugURL, err)
	}

	r.allocCtx, r.allocCancel = allocCtx, allocCancel
	r.taskCtx, r.taskCancel = taskCtx, taskCancel
	return nil
}

// Close detaches from Chrome. The browser itself keeps running.
func (r *ChromeRelay) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taskCancel != nil {
		r.taskCancel()
		r.taskCancel = nil
	}
	if r.allocCancel != nil {
		r.allocCancel()
		r.allocCancel = nil
	}
	r.taskCtx = nil
	r.allocCtx = nil
}

func (r *ChromeRelay) session() (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taskCtx == nil {
		return nil, fmt.Errorf("chrome relay is not connected")
	}
	return r.taskCtx, nil
}

// Apply implements oagi.ActionHandler.
func (r *ChromeRelay) Apply(ctx context.Context, action oagi.Action) error {
	taskCtx, err := r.session()
	if err != nil {
		return err
	}

	act, err := translate(action)
	if err != nil {
		return err
	}
	if act == nil {
		return nil
	}
	if err := chromedp.Run(taskCtx, act); err != nil {
		return fmt.Errorf("apply %s: %w", action.Type, err)
	}
	return ctx.Err()
}

// translate maps a model action onto a chromedp action.
func translate(action oagi.Action) (chromedp.Action, error) {
	switch strings.ToLower(strings.TrimSpace(action.Type)) {
	case "navigate":
		if action.Text == "" {
			return nil, fmt.Errorf("navigate action requires a URL")
		}
		return chromedp.Navigate(action.Text), nil
	case "click":
		return chromedp.MouseClickXY(float64(action.X), float64(action.Y)), nil
	case "double_click":
		return chromedp.MouseClickXY(float64(action.X), float64(action.Y), chromedp.ClickCount(2)), nil
	case "move":
		return chromedp.ActionFunc(func(ctx context.Context) error {
			return input.DispatchMouseEvent(input.MouseMoved, float64(action.X), float64(action.Y)).Do(ctx)
		}), nil
	case "type":
		return chromedp.KeyEvent(action.Text), nil
	case "key":
		chord, err := keyChord(action.Text)
		if err != nil {
			return nil, err
		}
		return chromedp.KeyEvent(chord), nil
	case "scroll":
		dx, dy := scrollDelta(action)
		return chromedp.Evaluate(fmt.Sprintf("window.scrollBy(%d, %d)", dx, dy), nil), nil
	case "wait":
		wait := time.Duration(action.DurationMs) * time.Millisecond
		if wait <= 0 {
			wait = 500 * time.Millisecond
		}
		return chromedp.Sleep(wait), nil
	case "done", "fail":
		// Terminal markers are handled by the agent loop, not the driver.
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported action type %q", action.Type)
	}
}

// scrollDelta converts direction/amount into pixel deltas. One scroll tick
// is 100px, matching common browser behavior.
func scrollDelta(action oagi.Action) (int, int) {
	amount := action.ScrollAmount
	if amount <= 0 {
		amount = 3
	}
	px := amount * 100
	switch strings.ToLower(action.ScrollDirection) {
	case "up":
		return 0, -px
	case "left":
		return -px, 0
	case "right":
		return px, 0
	default:
		return 0, px
	}
}

// keyChord maps a key name onto the chromedp/kb rune sequence.
func keyChord(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "enter", "return":
		return kb.Enter, nil
	case "tab":
		return kb.Tab, nil
	case "escape", "esc":
		return kb.Escape, nil
	case "backspace":
		return kb.Backspace, nil
	case "delete":
		return kb.Delete, nil
	case "arrowup", "up":
		return kb.ArrowUp, nil
	case "arrowdown", "down":
		return kb.ArrowDown, nil
	case "arrowleft", "left":
		return kb.ArrowLeft, nil
	case "arrowright", "right":
		return kb.ArrowRight, nil
	case "pageup":
		return kb.PageUp, nil
	case "pagedown":
		return kb.PageDown, nil
	case "home":
		return kb.Home, nil
	case "end":
		return kb.End, nil
	case "":
		return "", fmt.Errorf("key action requires a key name")
	default:
		if len([]rune(name)) == 1 {
			return name, nil
		}
		return "", fmt.Errorf("unsupported key %q", name)
	}
}

// Capture implements oagi.ImageProvider with a PNG screenshot of the
// attached tab.
func (r *ChromeRelay) Capture(ctx context.Context) (*oagi.Screenshot, error) {
	taskCtx, err := r.session()
	if err != nil {
		return nil, err
	}

	var buf []byte
	if err := chromedp.Run(taskCtx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	shot := &oagi.Screenshot{Data: buf, Format: "png"}
	if cfg, err := png.DecodeConfig(bytes.NewReader(buf)); err == nil {
		shot.Width = cfg.Width
		shot.Height = cfg.Height
	}
	return shot, nil
}
