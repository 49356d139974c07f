package scraper

import (
	"context"
	"fmt"
	"log"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"pricescout/config"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/118 Safari/537.36"

// stealthScript hides the most common automation giveaways before any site
// script runs.
const stealthScript = `
	Object.defineProperty(navigator, 'webdriver', {
		get: () => undefined,
	});
	Object.defineProperty(navigator, 'languages', {
		get: () => ['en-US', 'en'],
	});
	Object.defineProperty(navigator, 'plugins', {
		get: () => [1, 2, 3, 4, 5],
	});
	window.chrome = window.chrome || { runtime: {} };
`

// BrowserSession owns one Chromium process for the duration of a single
// fetch cycle. Pages are created per store and are strictly nested inside
// the session's lifetime.
type BrowserSession struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// SessionManager launches and releases browser sessions. Callers must
// release every acquired session exactly once.
type SessionManager struct {
	cfg *config.BrowserConfig
}

// NewSessionManager creates a session manager for the given launch config.
func NewSessionManager(cfg *config.BrowserConfig) *SessionManager {
	return &SessionManager{cfg: cfg}
}

// Acquire launches a fresh Chromium process and connects to it.
func (sm *SessionManager) Acquire() (*BrowserSession, error) {
	l := launcher.New().
		Headless(sm.cfg.Headless).
		NoSandbox(sm.cfg.NoSandbox).
		Leakless(false).
		Set("disable-dev-shm-usage").
		Set("disable-setuid-sandbox")

	if sm.cfg.ExecutablePath != "" {
		l = l.Bin(sm.cfg.ExecutablePath)
		log.Printf("Using browser executable: %s", sm.cfg.ExecutablePath)
	} else {
		log.Printf("No browser executable configured, using launcher default")
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &BrowserSession{browser: browser, launcher: l}, nil
}

// Release closes the session best-effort. Close errors are logged and
// swallowed so cleanup on a crashed browser never fails the caller.
func (sm *SessionManager) Release(session *BrowserSession) {
	if session == nil {
		return
	}
	if session.browser != nil {
		if err := session.browser.Close(); err != nil {
			log.Printf("Failed closing browser: %v", err)
		}
	}
	if session.launcher != nil {
		session.launcher.Cleanup()
	}
}

// NewPage opens an isolated page bound to ctx, with the user agent,
// viewport and stealth overrides applied before any navigation.
func (s *BrowserSession) NewPage(ctx context.Context) (*rod.Page, error) {
	var page *rod.Page
	err := rod.Try(func() {
		page = s.browser.MustPage().Context(ctx)
		page.MustSetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: userAgent})
		page.MustSetViewport(1280, 720, 1, false)
		page.MustEvalOnNewDocument(stealthScript)
	})
	if err != nil {
		if page != nil {
			_ = page.Close()
		}
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return page, nil
}

// closePage closes a page best-effort on every extractor exit path.
func closePage(store string, page *rod.Page) {
	if page == nil {
		return
	}
	if err := page.Close(); err != nil {
		log.Printf("[%s] Failed closing page: %v", store, err)
	}
}
