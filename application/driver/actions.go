package driver

import (
	"context"
	"time"

	"todo_automation/domain/entities"
	"todo_automation/domain/interfaces"
)

// perform resolves the locator and runs fn against the element, logging and
// wrapping any failure as an *entities.ActionError.
func (d *Driver) perform(ctx context.Context, action entities.ActionType, locatorType, locator string, fn func(interfaces.Element) error) error {
	loc := entities.NewLocator(locatorType, locator)

	element, err := d.FindOne(ctx, locatorType, locator)
	if err == nil {
		err = fn(element)
	}
	if err != nil {
		d.log(loc).WithError(err).Warnf("Could not %s element", action)
		return actionError(action, loc, err)
	}
	return nil
}

// Click - clicks an element
func (d *Driver) Click(ctx context.Context, locatorType string, locator string) error {
	return d.perform(ctx, entities.ActionClick, locatorType, locator, func(el interfaces.Element) error {
		return el.Click(ctx)
	})
}

// DoubleClick - double-clicks an element
func (d *Driver) DoubleClick(ctx context.Context, locatorType string, locator string) error {
	return d.perform(ctx, entities.ActionDoubleClick, locatorType, locator, func(el interfaces.Element) error {
		return el.DoubleClick(ctx)
	})
}

// TypeText - appends text to an element without clearing it first
func (d *Driver) TypeText(ctx context.Context, text string, locatorType string, locator string) error {
	return d.perform(ctx, entities.ActionTypeText, locatorType, locator, func(el interfaces.Element) error {
		return el.SendKeys(ctx, text)
	})
}

// TypeTextAndSubmit - appends text to an element and presses Enter
func (d *Driver) TypeTextAndSubmit(ctx context.Context, text string, locatorType string, locator string) error {
	return d.perform(ctx, entities.ActionTypeText, locatorType, locator, func(el interfaces.Element) error {
		if err := el.SendKeys(ctx, text); err != nil {
			return err
		}
		return el.Press(ctx, entities.KeyEnter)
	})
}

// Backspace - sends count Backspace keys to an element, at least one
func (d *Driver) Backspace(ctx context.Context, locatorType string, locator string, count int) error {
	if count < 1 {
		count = 1
	}
	return d.perform(ctx, entities.ActionBackspace, locatorType, locator, func(el interfaces.Element) error {
		for i := 0; i < count; i++ {
			if err := el.Press(ctx, entities.KeyBackspace); err != nil {
				return err
			}
		}
		return nil
	})
}

// HoverOver - hovers over an element, then waits for settle (the driver's
// settle delay when zero) whether or not the hover succeeded. Only context
// cancellation cuts the wait short.
func (d *Driver) HoverOver(ctx context.Context, locatorType string, locator string, settle time.Duration) error {
	if settle <= 0 {
		settle = d.settleDelay
	}
	err := d.perform(ctx, entities.ActionHover, locatorType, locator, func(el interfaces.Element) error {
		return el.Hover(ctx)
	})
	if serr := sleep(ctx, settle); serr != nil && err == nil {
		err = serr
	}
	return err
}

// HoverUntil - hovers over an element and polls until the target element is
// displayed or timeout (the driver's settle delay when zero) elapses.
func (d *Driver) HoverUntil(ctx context.Context, locatorType string, locator string, targetType string, target string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = d.settleDelay
	}
	if err := d.perform(ctx, entities.ActionHover, locatorType, locator, func(el interfaces.Element) error {
		return el.Hover(ctx)
	}); err != nil {
		return err
	}

	by, err := d.resolver.Resolve(targetType)
	if err != nil {
		return lookupError(entities.NewLocator(targetType, target), err)
	}

	deadline := time.Now().Add(timeout)
	for {
		if d.revealed(ctx, by, target) {
			return nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			loc := entities.NewLocator(targetType, target)
			d.log(loc).WithField("timeout", timeout).Warn("Hover did not reveal element")
			return lookupError(loc, entities.ErrRevealTimeout)
		}
		if err := sleep(ctx, min(d.pollInterval, remaining)); err != nil {
			return err
		}
	}
}

// revealed checks visibility without going through FindOne so the poll does
// not log a diagnostic per attempt.
func (d *Driver) revealed(ctx context.Context, by entities.Strategy, target string) bool {
	element, err := d.session.FindElement(ctx, by, target)
	if err != nil || element == nil {
		return false
	}
	visible, err := element.IsDisplayed(ctx)
	return err == nil && visible
}

// ElementText - returns the text of the element, logging lookup failures
func (d *Driver) ElementText(ctx context.Context, locatorType string, locator string) (string, error) {
	element, err := d.FindOne(ctx, locatorType, locator)
	if err != nil {
		return "", err
	}
	text, err := element.Text(ctx)
	if err != nil {
		loc := entities.NewLocator(locatorType, locator)
		d.log(loc).WithError(err).Warn("Could not read element text")
		return "", lookupError(loc, err)
	}
	return text, nil
}
