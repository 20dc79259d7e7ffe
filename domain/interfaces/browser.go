package interfaces

import (
	"context"
	"time"

	"todo_automation/domain/entities"
)

// Element is a handle to a live DOM node. It is only valid until the next
// DOM mutation and may report entities.ErrStaleElement after that.
type Element interface {
	// Click clicks the element
	Click(ctx context.Context) error

	// DoubleClick dispatches a double-click gesture at the element
	DoubleClick(ctx context.Context) error

	// SendKeys appends text to the element's current input state
	SendKeys(ctx context.Context, text string) error

	// Press sends a single named key
	Press(ctx context.Context, key entities.Key) error

	// Hover moves the pointer over the element
	Hover(ctx context.Context) error

	// Text returns the rendered text of the element
	Text(ctx context.Context) (string, error)

	// IsDisplayed checks if the element is visible
	IsDisplayed(ctx context.Context) (bool, error)
}

// BrowserSession defines the interface for one automated browser window
type BrowserSession interface {
	// Navigate navigates to a URL
	Navigate(ctx context.Context, url string) error

	// Maximize enlarges the window to the largest supported size
	Maximize(ctx context.Context) error

	// SetImplicitWait sets how long lookups poll before reporting absence
	SetImplicitWait(d time.Duration) error

	// Refresh reloads the current page
	Refresh(ctx context.Context) error

	// FindElement returns the first match, entities.ErrElementAbsent if none
	FindElement(ctx context.Context, by entities.Strategy, value string) (Element, error)

	// FindElements returns every match, possibly none
	FindElements(ctx context.Context, by entities.Strategy, value string) ([]Element, error)

	// Screenshot takes a screenshot of the viewport
	Screenshot(ctx context.Context) ([]byte, error)

	// Quit closes the browser and releases the driver
	Quit() error
}
