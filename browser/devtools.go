package browser

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/cdp"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/tfkr-ae/sitefilter/domain"
)

var _ domain.Browser = (*DevTools)(nil)

const defaultTimeout = 5 * time.Second

// DevTools talks to a running Chrome through its remote debugging endpoint.
// It never launches or closes the browser.
type DevTools struct {
	addr    string
	timeout time.Duration
}

// NewDevTools returns a DevTools client for the debugging endpoint at addr,
// e.g. "127.0.0.1:9222" or a full ws:// URL.
func NewDevTools(addr string) *DevTools {
	return &DevTools{addr: addr, timeout: defaultTimeout}
}

// WithTimeout returns a copy that gives up on each call after d.
func (d *DevTools) WithTimeout(timeout time.Duration) *DevTools {
	return &DevTools{addr: d.addr, timeout: timeout}
}

// CurrentURL returns the URL of the tab the user is looking at.
// When no tab reports itself visible the first web page is used.
func (d *DevTools) CurrentURL(ctx context.Context) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	b, conn, err := d.connect(ctx)
	if err != nil {
		return "", false, err
	}
	defer conn.Close()

	pages, err := b.Pages()
	if err != nil {
		return "", false, fmt.Errorf("listing pages : %w", err)
	}

	tabs := make([]tab, 0, len(pages))
	for _, page := range pages {
		info, err := page.Info()
		if err != nil {
			continue
		}
		visible := false
		if res, err := page.Eval(`() => document.visibilityState === "visible"`); err == nil {
			visible = res.Value.Bool()
		}
		tabs = append(tabs, tab{URL: info.URL, Visible: visible})
	}

	current, ok := pickActive(tabs)
	return current, ok, nil
}

// Open creates a new tab showing target.
func (d *DevTools) Open(ctx context.Context, target string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	b, conn, err := d.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	if _, err := b.Page(proto.TargetCreateTarget{URL: target}); err != nil {
		return fmt.Errorf("creating tab : %w", err)
	}
	return nil
}

// connect attaches to the browser over a websocket owned by the caller.
// Closing the returned conn detaches without quitting Chrome.
func (d *DevTools) connect(ctx context.Context) (*rod.Browser, io.Closer, error) {
	controlURL, err := launcher.ResolveURL(d.addr)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving devtools endpoint %s : %w", d.addr, err)
	}

	ws := &cdp.WebSocket{}
	if err := ws.Connect(ctx, controlURL, nil); err != nil {
		return nil, nil, fmt.Errorf("dialing devtools at %s : %w", d.addr, err)
	}

	b := rod.New().Context(ctx).Client(cdp.New().Start(ws))
	if err := b.Connect(); err != nil {
		_ = ws.Close()
		return nil, nil, fmt.Errorf("connecting to devtools at %s : %w", d.addr, err)
	}
	return b, ws, nil
}

type tab struct {
	URL     string
	Visible bool
}

// pickActive chooses the first visible web tab, falling back to the first web tab.
func pickActive(tabs []tab) (string, bool) {
	fallback := ""
	for _, t := range tabs {
		if !isWebURL(t.URL) {
			continue
		}
		if t.Visible {
			return t.URL, true
		}
		if fallback == "" {
			fallback = t.URL
		}
	}
	return fallback, fallback != ""
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
