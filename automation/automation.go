// Package automation drives headless Chrome to print invoices as PDF.
package automation

import (
	"context"
	"fmt"
	"io"
	"time"

	"feriwala/config"

	"github.com/avast/retry-go/v4"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

const launchRetryDelay = 500 * time.Millisecond

// Chrome prints HTML through a locally installed Chrome or Chromium.
type Chrome struct {
	Bin      string
	Attempts uint
}

func NewChrome(cfg config.InvoiceConfig) *Chrome {
	return &Chrome{Bin: cfg.ChromeBin, Attempts: cfg.LaunchAttempts}
}

func (c *Chrome) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	return RenderPDF(ctx, html, c.Bin, c.Attempts)
}

// RenderPDF loads html into a fresh headless browser and returns the printed PDF.
// An empty chromeBin lets rod look up a browser on the machine. Launching is retried up to attempts times.
func RenderPDF(ctx context.Context, html, chromeBin string, attempts uint) ([]byte, error) {
	if attempts == 0 {
		attempts = 1
	}

	var l *launcher.Launcher
	controlURL, err := retry.DoWithData(
		func() (string, error) {
			l = launcher.New().Context(ctx).Headless(true).Leakless(false)
			if chromeBin != "" {
				l = l.Bin(chromeBin)
			}
			u, err := l.Launch()
			if err != nil {
				l.Kill()
			}
			return u, err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(launchRetryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			zap.S().Warnw("chrome launch failed, retrying", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("RenderPDF: launching chrome: %w", err)
	}
	defer func() {
		l.Kill()
		l.Cleanup()
	}()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("RenderPDF: connecting to chrome: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("RenderPDF: opening page: %w", err)
	}
	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("RenderPDF: loading invoice: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("RenderPDF: waiting for invoice: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{PrintBackground: true, PreferCSSPageSize: true})
	if err != nil {
		return nil, fmt.Errorf("RenderPDF: printing: %w", err)
	}
	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("RenderPDF: reading pdf stream: %w", err)
	}
	return pdf, nil
}
