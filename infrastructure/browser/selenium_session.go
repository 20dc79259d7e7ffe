package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"todo_automation/domain/entities"
	"todo_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
	"go.uber.org/multierr"
)

type seleniumSession struct {
	wd      selenium.WebDriver
	service *selenium.Service
	logger  *logrus.Logger
}

// findDriver - finds the WebDriver executable for the browser
func findDriver(configured string, kind entities.BrowserKind) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
	}

	name := "chromedriver"
	if kind == entities.BrowserFirefox {
		name = "geckodriver"
	}

	commonPaths := []string{
		filepath.Join("/usr/local/bin", name),
		filepath.Join("/usr/bin", name),
		filepath.Join("/opt/homebrew/bin", name),
		filepath.Join(os.Getenv("HOME"), "bin", name),
	}
	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("%s not found. Please install it or set BROWSER_DRIVER_PATH environment variable", name)
}

// findChromeBinary - finds Chrome/Chromium browser executable path
func findChromeBinary(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	chromePaths := []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
	}
	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	return ""
}

// NewSeleniumSession - starts chromedriver or geckodriver and opens a WebDriver session
func NewSeleniumSession(opts Options, logger *logrus.Logger) (interfaces.BrowserSession, error) {
	kind := opts.Browser
	if kind == entities.BrowserWebKit {
		logger.Warn("WebKit is not available through selenium, using chrome")
		kind = entities.BrowserChrome
	}

	driverPath, err := findDriver(opts.DriverPath, kind)
	if err != nil {
		return nil, err
	}
	logger.Infof("Using WebDriver at: %s", driverPath)

	var service *selenium.Service
	caps := selenium.Capabilities{"browserName": string(kind)}

	if kind == entities.BrowserFirefox {
		service, err = selenium.NewGeckoDriverService(driverPath, opts.SeleniumPort)
		if err != nil {
			return nil, fmt.Errorf("failed to start geckodriver: %w", err)
		}
		ffCaps := firefox.Capabilities{}
		if opts.Headless {
			ffCaps.Args = append(ffCaps.Args, "-headless")
		}
		caps.AddFirefox(ffCaps)
	} else {
		service, err = selenium.NewChromeDriverService(driverPath, opts.SeleniumPort)
		if err != nil {
			return nil, fmt.Errorf("failed to start chromedriver: %w", err)
		}
		chromeCaps := chrome.Capabilities{
			Args: []string{
				"--disable-dev-shm-usage",
				"--no-sandbox",
			},
		}
		if opts.Headless {
			chromeCaps.Args = append(chromeCaps.Args, "--headless=new")
		}
		if binary := findChromeBinary(opts.ChromeBinary); binary != "" {
			logger.Infof("Using Chrome binary at: %s", binary)
			chromeCaps.Path = binary
		}
		caps.AddChrome(chromeCaps)
	}

	urlPrefix := fmt.Sprintf("http://localhost:%d", opts.SeleniumPort)
	if kind == entities.BrowserChrome {
		urlPrefix += "/wd/hub"
	}
	wd, err := selenium.NewRemote(caps, urlPrefix)
	if err != nil {
		service.Stop()
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found. Please install Google Chrome or set CHROME_BINARY_PATH environment variable. Error: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	return &seleniumSession{
		wd:      wd,
		service: service,
		logger:  logger,
	}, nil
}

// Navigate - navigates browser to specified URL
func (s *seleniumSession) Navigate(ctx context.Context, url string) error {
	s.logger.Debugf("Navigating to: %s", url)
	return s.wd.Get(url)
}

func (s *seleniumSession) Maximize(ctx context.Context) error {
	return s.wd.MaximizeWindow("")
}

func (s *seleniumSession) SetImplicitWait(d time.Duration) error {
	return s.wd.SetImplicitWaitTimeout(d)
}

func (s *seleniumSession) Refresh(ctx context.Context) error {
	return s.wd.Refresh()
}

func (s *seleniumSession) FindElement(ctx context.Context, by entities.Strategy, value string) (interfaces.Element, error) {
	using, err := SeleniumBy(by)
	if err != nil {
		return nil, err
	}
	element, err := s.wd.FindElement(using, value)
	if err != nil {
		return nil, classifySeleniumError(err)
	}
	return &seleniumElement{wd: s.wd, element: element}, nil
}

func (s *seleniumSession) FindElements(ctx context.Context, by entities.Strategy, value string) ([]interfaces.Element, error) {
	using, err := SeleniumBy(by)
	if err != nil {
		return nil, err
	}
	found, err := s.wd.FindElements(using, value)
	if err != nil {
		return nil, classifySeleniumError(err)
	}
	elements := make([]interfaces.Element, 0, len(found))
	for _, el := range found {
		elements = append(elements, &seleniumElement{wd: s.wd, element: el})
	}
	return elements, nil
}

// Screenshot - takes screenshot of current page
func (s *seleniumSession) Screenshot(ctx context.Context) ([]byte, error) {
	return s.wd.Screenshot()
}

// Quit - closes browser and stops the WebDriver service
func (s *seleniumSession) Quit() error {
	var err error
	if s.wd != nil {
		err = multierr.Append(err, s.wd.Quit())
		s.wd = nil
	}
	if s.service != nil {
		err = multierr.Append(err, s.service.Stop())
		s.service = nil
	}
	return err
}

// classifySeleniumError maps WebDriver error codes onto lookup sentinels
func classifySeleniumError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such element"):
		return fmt.Errorf("%w: %v", entities.ErrElementAbsent, err)
	case strings.Contains(msg, "stale element"):
		return fmt.Errorf("%w: %v", entities.ErrStaleElement, err)
	}
	return err
}

// seleniumErrorCode returns the WebDriver error code, or the raw message for
// errors that did not come from the remote end
func seleniumErrorCode(err error) string {
	var wdErr *selenium.Error
	if errors.As(err, &wdErr) {
		return wdErr.Err
	}
	return err.Error()
}

// isUnsupportedCommand reports whether the driver rejected a legacy JSON-wire
// command. geckodriver only serves W3C endpoints, so moveto and doubleclick fail.
func isUnsupportedCommand(err error) bool {
	if err == nil {
		return false
	}
	code := seleniumErrorCode(err)
	return strings.Contains(code, "unknown command") ||
		strings.Contains(code, "unknown method") ||
		strings.Contains(err.Error(), "did not match a known command")
}

// isNotInteractable reports whether a click was refused because the element
// is hidden or covered
func isNotInteractable(err error) bool {
	if err == nil {
		return false
	}
	code := seleniumErrorCode(err)
	return strings.Contains(code, "element not interactable") ||
		strings.Contains(code, "element not visible") ||
		strings.Contains(code, "element click intercepted")
}

const (
	scriptClick       = `arguments[0].click(); return true;`
	scriptDoubleClick = `
	(function(el) {
		el.dispatchEvent(new MouseEvent('dblclick', { bubbles: true, cancelable: true, view: window, detail: 2 }));
		return true;
	})(arguments[0]);
	`
	scriptHover = `
	(function(el) {
		['mouseover', 'mouseenter', 'mousemove'].forEach(function(type) {
			el.dispatchEvent(new MouseEvent(type, { bubbles: type !== 'mouseenter', view: window }));
		});
		return true;
	})(arguments[0]);
	`
)

type seleniumElement struct {
	wd      selenium.WebDriver
	element selenium.WebElement
}

// script - runs a snippet with the element as arguments[0]
func (e *seleniumElement) script(script string) error {
	_, err := e.wd.ExecuteScript(script, []interface{}{e.element})
	return classifySeleniumError(err)
}

// Click - falls back to a script click when the element is not interactable
func (e *seleniumElement) Click(ctx context.Context) error {
	err := e.element.Click()
	if isNotInteractable(err) {
		return e.script(scriptClick)
	}
	return classifySeleniumError(err)
}

// DoubleClick moves the pointer to the element's centre and double-clicks there.
// W3C-only drivers get a dispatched dblclick event instead.
func (e *seleniumElement) DoubleClick(ctx context.Context) error {
	err := e.moveToCentre()
	if err == nil {
		err = e.wd.DoubleClick()
	}
	if isUnsupportedCommand(err) {
		return e.script(scriptDoubleClick)
	}
	return classifySeleniumError(err)
}

func (e *seleniumElement) SendKeys(ctx context.Context, text string) error {
	return classifySeleniumError(e.element.SendKeys(text))
}

func (e *seleniumElement) Press(ctx context.Context, key entities.Key) error {
	var k string
	switch key {
	case entities.KeyEnter:
		k = selenium.EnterKey
	case entities.KeyBackspace:
		k = selenium.BackspaceKey
	default:
		return fmt.Errorf("unsupported key %q", key)
	}
	return classifySeleniumError(e.element.SendKeys(k))
}

func (e *seleniumElement) Hover(ctx context.Context) error {
	err := e.moveToCentre()
	if isUnsupportedCommand(err) {
		return e.script(scriptHover)
	}
	return classifySeleniumError(err)
}

func (e *seleniumElement) moveToCentre() error {
	size, err := e.element.Size()
	if err != nil {
		return err
	}
	return e.element.MoveTo(size.Width/2, size.Height/2)
}

func (e *seleniumElement) Text(ctx context.Context) (string, error) {
	text, err := e.element.Text()
	return text, classifySeleniumError(err)
}

func (e *seleniumElement) IsDisplayed(ctx context.Context) (bool, error) {
	visible, err := e.element.IsDisplayed()
	return visible, classifySeleniumError(err)
}
