package playwright

import (
	"fmt"
	"io"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/lookout/pkg/query"
)

// Default viewport for new sessions.
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
)

// Options configures a launched browser.
type Options struct {
	// Headless controls whether the browser runs without a visible window.
	Headless bool

	// ViewportWidth and ViewportHeight set the initial viewport size.
	// Zero means the defaults.
	ViewportWidth  int
	ViewportHeight int
}

// Driver owns one Playwright browser, context, and page.
type Driver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

// Launch installs and starts Playwright, launches a Chromium browser,
// and opens a page.
func Launch(opts Options) (*Driver, error) {
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(runOpts); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	width := opts.ViewportWidth
	if width <= 0 {
		width = DefaultViewportWidth
	}
	height := opts.ViewportHeight
	if height <= 0 {
		height = DefaultViewportHeight
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: width, Height: height},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &Driver{pw: pw, browser: browser, context: context, page: page}, nil
}

// Navigate loads the given URL in the driver's page.
func (d *Driver) Navigate(url string) error {
	if _, err := d.page.Goto(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

// URL returns the page's current URL.
func (d *Driver) URL() string {
	return d.page.URL()
}

// Root returns the page as a query surface for building sessions.
func (d *Driver) Root() query.Surface {
	return &pageSurface{page: d.page}
}

// Close tears down the page, context, browser, and Playwright itself.
func (d *Driver) Close() error {
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	record(d.context.Close())
	record(d.browser.Close())
	record(d.pw.Stop())
	return firstErr
}
