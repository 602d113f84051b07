package fetch

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// stealthScript suppresses the obvious automation flags before any page
// script runs.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'languages', { get: () => ['de-DE', 'de', 'en'] });
Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3] });
window.chrome = window.chrome || { runtime: {} };
`

// Browser runs playwright sessions for JS-gated sites. Each WithPage call
// owns the full browser lifecycle and teardown is guaranteed on every
// exit path.
type Browser struct {
	navigationTimeoutMs float64
}

func NewBrowser() *Browser {
	return &Browser{navigationTimeoutMs: 45000}
}

// WithPage launches a sandboxed chromium, opens a single page on url and
// hands it to fn. The page, context and browser are closed when fn returns,
// whether it succeeds or not.
func (b *Browser) WithPage(ctx context.Context, url string, fn func(page playwright.Page) error) error {
	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("start playwright: %w", err)
	}
	defer pw.Stop()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--no-sandbox",
			"--disable-dev-shm-usage",
		},
	})
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	defer browser.Close()

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(browserUserAgent),
		Viewport:  &playwright.Size{Width: 1366, Height: 768},
		Locale:    playwright.String("de-DE"),
	})
	if err != nil {
		return fmt.Errorf("create browser context: %w", err)
	}
	defer browserCtx.Close()

	if err := browserCtx.AddInitScript(playwright.Script{Content: playwright.String(stealthScript)}); err != nil {
		return fmt.Errorf("add stealth script: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	defer page.Close()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(b.navigationTimeoutMs),
	}); err != nil {
		return &FetchError{URL: url, Kind: "network", Err: err}
	}

	return fn(page)
}
