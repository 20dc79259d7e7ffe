package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"todo_automation/domain/entities"
	"todo_automation/domain/interfaces"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const (
	maximizedWidth  = 1920
	maximizedHeight = 1080
)

type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	logger  *logrus.Logger

	mu   sync.Mutex
	wait time.Duration
}

// NewPlaywrightSession - starts playwright and opens one page in the requested browser
func NewPlaywrightSession(opts Options, logger *logrus.Logger) (interfaces.BrowserSession, error) {
	if !opts.PlaywrightPreinstalled {
		if err := playwright.Install(); err != nil {
			return nil, fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browserType := pw.Chromium
	switch opts.Browser {
	case entities.BrowserFirefox:
		browserType = pw.Firefox
	case entities.BrowserWebKit:
		browserType = pw.WebKit
	}
	logger.Infof("Launching %s through playwright", opts.Browser)

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(float64(opts.SlowMo.Milliseconds())),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &playwrightSession{
		pw:      pw,
		browser: browser,
		context: bctx,
		page:    page,
		logger:  logger,
	}, nil
}

// Navigate - navigates to the specified URL
func (s *playwrightSession) Navigate(ctx context.Context, url string) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	})
	return err
}

// Maximize - playwright has no window management, so the viewport is enlarged instead
func (s *playwrightSession) Maximize(ctx context.Context) error {
	return s.page.SetViewportSize(maximizedWidth, maximizedHeight)
}

// SetImplicitWait - stores how long lookups wait for a match
func (s *playwrightSession) SetImplicitWait(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wait = d
	return nil
}

func (s *playwrightSession) implicitWait() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wait
}

// Refresh - reloads the page
func (s *playwrightSession) Refresh(ctx context.Context) error {
	_, err := s.page.Reload()
	return err
}

// FindElement - waits up to the implicit wait for the first match
func (s *playwrightSession) FindElement(ctx context.Context, by entities.Strategy, value string) (interfaces.Element, error) {
	selector, err := PlaywrightSelector(by, value)
	if err != nil {
		return nil, err
	}

	handle, err := s.waitAttached(selector)
	if err != nil {
		return nil, err
	}
	if handle == nil {
		return nil, entities.ErrElementAbsent
	}
	return &playwrightElement{handle: handle}, nil
}

// FindElements - waits up to the implicit wait for at least one match, then returns all of them
func (s *playwrightSession) FindElements(ctx context.Context, by entities.Strategy, value string) ([]interfaces.Element, error) {
	selector, err := PlaywrightSelector(by, value)
	if err != nil {
		return nil, err
	}

	if _, err := s.waitAttached(selector); err != nil {
		if errors.Is(err, entities.ErrElementAbsent) {
			return []interfaces.Element{}, nil
		}
		return nil, err
	}

	handles, err := s.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, classifyPlaywrightError(err)
	}
	elements := make([]interfaces.Element, 0, len(handles))
	for _, h := range handles {
		elements = append(elements, &playwrightElement{handle: h})
	}
	return elements, nil
}

// waitAttached waits for the first match. A zero timeout means "wait
// forever" to playwright, so without an implicit wait the page is queried once.
func (s *playwrightSession) waitAttached(selector string) (playwright.ElementHandle, error) {
	wait := s.implicitWait()
	if wait <= 0 {
		handle, err := s.page.QuerySelector(selector)
		if err != nil {
			return nil, classifyPlaywrightError(err)
		}
		if handle == nil {
			return nil, entities.ErrElementAbsent
		}
		return handle, nil
	}

	handle, err := s.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(max(wait.Milliseconds(), 1))),
	})
	if err != nil {
		return nil, classifyPlaywrightError(err)
	}
	return handle, nil
}

// Screenshot - takes a screenshot of the current page
func (s *playwrightSession) Screenshot(ctx context.Context) ([]byte, error) {
	return s.page.Screenshot()
}

// Quit - closes the page, context and browser and stops playwright
func (s *playwrightSession) Quit() error {
	var err error
	if s.context != nil {
		err = multierr.Append(err, ignoreClosed(s.context.Close()))
		s.context = nil
	}
	if s.browser != nil {
		err = multierr.Append(err, ignoreClosed(s.browser.Close()))
		s.browser = nil
	}
	if s.pw != nil {
		err = multierr.Append(err, s.pw.Stop())
		s.pw = nil
	}
	return err
}

func ignoreClosed(err error) error {
	if err == nil {
		return nil
	}
	errStr := err.Error()
	if strings.Contains(errStr, "closed") || strings.Contains(errStr, "target closed") {
		return nil
	}
	return err
}

// classifyPlaywrightError maps timeouts to absence and detached handles to staleness
func classifyPlaywrightError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %v", entities.ErrElementAbsent, err)
	}
	if strings.Contains(err.Error(), "not attached to the DOM") {
		return fmt.Errorf("%w: %v", entities.ErrStaleElement, err)
	}
	return err
}

type playwrightElement struct {
	handle playwright.ElementHandle
}

func (e *playwrightElement) Click(ctx context.Context) error {
	return classifyPlaywrightError(e.handle.Click())
}

func (e *playwrightElement) DoubleClick(ctx context.Context) error {
	return classifyPlaywrightError(e.handle.Dblclick())
}

func (e *playwrightElement) SendKeys(ctx context.Context, text string) error {
	return classifyPlaywrightError(e.handle.Type(text))
}

func (e *playwrightElement) Press(ctx context.Context, key entities.Key) error {
	return classifyPlaywrightError(e.handle.Press(string(key)))
}

func (e *playwrightElement) Hover(ctx context.Context) error {
	return classifyPlaywrightError(e.handle.Hover())
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	text, err := e.handle.InnerText()
	return text, classifyPlaywrightError(err)
}

func (e *playwrightElement) IsDisplayed(ctx context.Context) (bool, error) {
	visible, err := e.handle.IsVisible()
	return visible, classifyPlaywrightError(err)
}
