package middleware

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ksysoev/docindex/pkg/core"
)

// blockedResourceTypes are skipped by the dynamic-render middleware so a
// rendered page loads faster and without side effects (§4.3.1).
var blockedResourceTypes = map[proto.NetworkResourceType]bool{
	proto.NetworkResourceTypeImage:      true,
	proto.NetworkResourceTypeFont:       true,
	proto.NetworkResourceTypeStylesheet: true,
	proto.NetworkResourceTypeMedia:      true,
}

// Renderer owns a single lazily-initialized headless-browser instance for
// the lifetime of one crawl, and must be explicitly closed at the end of the
// crawl (§4.3.1, §5 "Shared resources").
type Renderer struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewRenderer builds a Renderer. The browser process is not started until
// the first call to Render.
func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New().Headless(true)

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch headless browser: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to headless browser: %w", err)
	}

	r.launcher = l
	r.browser = browser

	return browser, nil
}

// Render loads pageURL in the headless browser, blocking
// image/font/stylesheet/media requests, and returns the post-JavaScript HTML.
func (r *Renderer) Render(ctx context.Context, pageURL string) (string, error) {
	browser, err := r.ensureBrowser()
	if err != nil {
		return "", err
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	router := page.HijackRequests()
	defer router.Stop()

	router.MustAdd("*", func(h *rod.Hijack) {
		if blockedResourceTypes[h.Request.Type()] {
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}

		_ = h.LoadResponse(nil, true)
	})

	go router.Run()

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait load: %w", err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("get rendered html: %w", err)
	}

	return html, nil
}

// Close tears down the headless-browser process. Safe to call even if the
// browser was never started.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}

	err := r.browser.Close()
	r.browser = nil

	if r.launcher != nil {
		r.launcher.Cleanup()
		r.launcher = nil
	}

	return err
}

// DynamicRenderStep returns a Step that replaces pc.Content with the
// post-JavaScript HTML for text/html pages when scrape mode requires it, and
// no-ops for the "fetch" mode (§4.3.1).
func DynamicRenderStep(r *Renderer) Step {
	return func(ctx context.Context, pc *core.ProcessingContext) error {
		if pc.ContentType != "text/html" {
			return nil
		}

		switch pc.Options.ScrapeMode {
		case core.ScrapeModePlaywright, core.ScrapeModeAuto:
		default:
			return nil
		}

		html, err := r.Render(ctx, pc.Source)
		if err != nil {
			return fmt.Errorf("dynamic render: %w", err)
		}

		pc.Content = []byte(html)

		return nil
	}
}
