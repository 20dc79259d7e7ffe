package entities

import (
	"fmt"
	"strings"
)

// LocatorType is the symbolic tag callers use to say how a locator string
// should be interpreted.
type LocatorType string

const (
	LocatorID       LocatorType = "id"
	LocatorName     LocatorType = "name"
	LocatorXPath    LocatorType = "xpath"
	LocatorCSS      LocatorType = "css"
	LocatorLinkText LocatorType = "linktext"
	LocatorClass    LocatorType = "class"
)

// LocatorTypes lists every recognised tag.
var LocatorTypes = []LocatorType{
	LocatorID,
	LocatorName,
	LocatorXPath,
	LocatorCSS,
	LocatorLinkText,
	LocatorClass,
}

// Strategy is the backend-neutral query strategy a LocatorType resolves to.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyID
	StrategyName
	StrategyXPath
	StrategyCSS
	StrategyLinkText
	StrategyClassName
)

func (s Strategy) String() string {
	switch s {
	case StrategyID:
		return "id"
	case StrategyName:
		return "name"
	case StrategyXPath:
		return "xpath"
	case StrategyCSS:
		return "css selector"
	case StrategyLinkText:
		return "link text"
	case StrategyClassName:
		return "class name"
	default:
		return "none"
	}
}

// Locator identifies zero or more DOM nodes at the moment it is evaluated.
type Locator struct {
	Type  LocatorType `json:"type"`
	Value string      `json:"value"`
}

// NewLocator - builds a locator, normalising the tag to lower case
func NewLocator(locatorType string, value string) Locator {
	return Locator{
		Type:  LocatorType(strings.ToLower(locatorType)),
		Value: value,
	}
}

func (l Locator) String() string {
	return fmt.Sprintf("%s: %s", l.Type, l.Value)
}
