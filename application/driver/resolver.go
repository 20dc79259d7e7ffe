package driver

import (
	"fmt"
	"strings"

	"todo_automation/domain/entities"

	"github.com/sirupsen/logrus"
)

// Resolver maps locator tags to query strategies
type Resolver struct {
	logger *logrus.Logger
}

// NewResolver - creates new locator resolver
func NewResolver(logger *logrus.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve - returns the strategy for a locator tag, ignoring case
func (r *Resolver) Resolve(locatorType string) (entities.Strategy, error) {
	switch entities.LocatorType(strings.ToLower(locatorType)) {
	case entities.LocatorID:
		return entities.StrategyID, nil
	case entities.LocatorName:
		return entities.StrategyName, nil
	case entities.LocatorXPath:
		return entities.StrategyXPath, nil
	case entities.LocatorCSS:
		return entities.StrategyCSS, nil
	case entities.LocatorLinkText:
		return entities.StrategyLinkText, nil
	case entities.LocatorClass:
		return entities.StrategyClassName, nil
	}

	r.logger.WithField("locator_type", locatorType).Error("Locator type does not exist or is not supported")
	return entities.StrategyNone, fmt.Errorf("%q: %w", locatorType, entities.ErrUnknownLocatorType)
}
