package driver

import (
	"context"
	"errors"

	"todo_automation/domain/entities"
	"todo_automation/domain/interfaces"
)

// FindOne - returns the first element matching the locator.
// Zero matches yield entities.ErrElementAbsent, a lookup racing with a DOM
// mutation yields entities.ErrStaleElement. Both are logged.
func (d *Driver) FindOne(ctx context.Context, locatorType string, locator string) (interfaces.Element, error) {
	loc := entities.NewLocator(locatorType, locator)

	by, err := d.resolver.Resolve(locatorType)
	if err != nil {
		return nil, lookupError(loc, err)
	}

	element, err := d.session.FindElement(ctx, by, locator)
	if err == nil && element == nil {
		err = entities.ErrElementAbsent
	}
	if err != nil {
		d.logLookupFailure(loc, err)
		return nil, lookupError(loc, err)
	}

	return element, nil
}

// FindMany - returns every element matching the locator. No match is an
// empty slice, not an error.
func (d *Driver) FindMany(ctx context.Context, locatorType string, locator string) ([]interfaces.Element, error) {
	loc := entities.NewLocator(locatorType, locator)

	by, err := d.resolver.Resolve(locatorType)
	if err != nil {
		return []interfaces.Element{}, lookupError(loc, err)
	}

	elements, err := d.session.FindElements(ctx, by, locator)
	if errors.Is(err, entities.ErrElementAbsent) {
		return []interfaces.Element{}, nil
	}
	if err != nil {
		d.logLookupFailure(loc, err)
		return []interfaces.Element{}, lookupError(loc, err)
	}
	if elements == nil {
		elements = []interfaces.Element{}
	}

	return elements, nil
}

// GetElement - lenient FindOne: nil when the lookup failed
func (d *Driver) GetElement(ctx context.Context, locatorType string, locator string) interfaces.Element {
	element, _ := d.FindOne(ctx, locatorType, locator)
	return element
}

// GetElements - lenient FindMany: empty when the lookup failed
func (d *Driver) GetElements(ctx context.Context, locatorType string, locator string) []interfaces.Element {
	elements, _ := d.FindMany(ctx, locatorType, locator)
	return elements
}

// IsPresent - checks whether the locator currently resolves to an element
func (d *Driver) IsPresent(ctx context.Context, locatorType string, locator string) bool {
	_, err := d.FindOne(ctx, locatorType, locator)
	return err == nil
}

func (d *Driver) logLookupFailure(loc entities.Locator, err error) {
	entry := d.log(loc).WithError(err)
	switch {
	case errors.Is(err, entities.ErrElementAbsent):
		entry.Info("Element could not be found")
	case errors.Is(err, entities.ErrStaleElement):
		entry.Info("Element went stale during lookup")
	default:
		entry.Warn("Element lookup failed")
	}
}
