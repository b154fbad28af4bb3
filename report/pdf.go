package report

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"listing-profiler/utils"
)

// PDFExporter prints an HTML report to PDF with headless Chrome.
type PDFExporter struct {
	ChromeBin string
	Timeout   time.Duration
	Retry     *utils.RetryConfig
	Logger    *utils.Logger
}

// NewPDFExporter returns an exporter that retries printing up to
// maxRetries times. An empty chromeBin is looked up on the system.
func NewPDFExporter(chromeBin string, maxRetries int, logger *utils.Logger) *PDFExporter {
	return &PDFExporter{
		ChromeBin: chromeBin,
		Timeout:   60 * time.Second,
		Retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		Logger: logger,
	}
}

// Export loads htmlPath in a browser tab and writes the printed page to
// pdfPath.
func (e *PDFExporter) Export(ctx context.Context, htmlPath, pdfPath string) error {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("report: resolve %s: %w", htmlPath, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	chromeBin := e.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	e.logf("[report] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	target := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()

	var buf []byte
	err = e.retry().Do(ctx, "print-pdf", func() error {
		tabCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
		defer cancel()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, e.timeout())
		defer cancelTimeout()

		return chromedp.Run(tabCtx,
			chromedp.Navigate(target),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.ActionFunc(func(ctx context.Context) error {
				var err error
				buf, _, err = page.PrintToPDF().
					WithPrintBackground(true).
					WithPaperWidth(8.27).
					WithPaperHeight(11.69).
					Do(ctx)
				return err
			}),
		)
	})
	if err != nil {
		return fmt.Errorf("report: print %s: %w", htmlPath, err)
	}

	if dir := filepath.Dir(pdfPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("report: create dir: %w", err)
		}
	}
	if err := os.WriteFile(pdfPath, buf, 0644); err != nil {
		return fmt.Errorf("report: write %s: %w", pdfPath, err)
	}
	e.logf("[report] PDF written to %s (%d bytes)", pdfPath, len(buf))
	return nil
}

func (e *PDFExporter) retry() *utils.RetryConfig {
	if e.Retry != nil {
		return e.Retry
	}
	return &utils.RetryConfig{MaxAttempts: 1, Logger: e.Logger}
}

func (e *PDFExporter) timeout() time.Duration {
	if e.Timeout > 0 {
		return e.Timeout
	}
	return 60 * time.Second
}

func (e *PDFExporter) logf(format string, args ...any) {
	if e.Logger != nil {
		e.Logger.Info(format, args...)
	}
}

// findChromeBinary locates a Chrome or Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	for _, name := range []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
