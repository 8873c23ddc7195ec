// Package capture renders an HTML document to a PNG using a headless
// Chromium instance driven by chromedp.
package capture

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

// Default viewport and timeout for chart captures.
const (
	DefaultWidth      = 1200
	DefaultHeight     = 800
	DefaultTimeoutSec = 30
)

// Options defines parameters for a screenshot capture.
type Options struct {
	// HTMLPath is the local HTML document to render.
	HTMLPath string

	// OutputPath is where the PNG screenshot will be written.
	OutputPath string

	// Width and Height are the viewport dimensions in pixels. If zero,
	// DefaultWidth / DefaultHeight are used.
	Width  int
	Height int

	// Timeout bounds the entire capture operation.
	Timeout time.Duration
}

// PNG opens opts.HTMLPath in headless Chromium and writes a full-page
// screenshot to opts.OutputPath.
func PNG(parentCtx context.Context, opts Options) error {
	if opts.HTMLPath == "" {
		return fmt.Errorf("capture: HTMLPath is required")
	}
	if opts.OutputPath == "" {
		return fmt.Errorf("capture: OutputPath is required")
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeoutSec * time.Second
	}

	abs, err := filepath.Abs(opts.HTMLPath)
	if err != nil {
		return fmt.Errorf("capture: resolve %s: %w", opts.HTMLPath, err)
	}
	pageURL := url.URL{Scheme: "file", Path: abs}

	ctx, cancel := chromedp.NewContext(parentCtx)
	defer cancel()
	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	var png []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)),
		chromedp.Navigate(pageURL.String()),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Small extra delay to allow final paints.
		chromedp.Sleep(300 * time.Millisecond),
		chromedp.FullScreenshot(&png, 100),
	}
	if err := chromedp.Run(ctx, tasks); err != nil {
		return fmt.Errorf("capture: chromedp run failed: %w", err)
	}

	if err := os.WriteFile(opts.OutputPath, png, 0o644); err != nil {
		return fmt.Errorf("capture: write PNG: %w", err)
	}
	return nil
}
