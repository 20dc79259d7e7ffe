package browser

import (
	"fmt"
	"strings"

	"todo_automation/domain/entities"

	"github.com/tebeka/selenium"
)

// PlaywrightSelector translates a strategy and value into a playwright
// selector with an explicit engine prefix.
func PlaywrightSelector(by entities.Strategy, value string) (string, error) {
	switch by {
	case entities.StrategyID:
		return "id=" + value, nil
	case entities.StrategyName:
		return fmt.Sprintf("css=[name=%s]", cssString(value)), nil
	case entities.StrategyXPath:
		return "xpath=" + value, nil
	case entities.StrategyCSS:
		return "css=" + value, nil
	case entities.StrategyLinkText:
		return fmt.Sprintf("css=a:text-is(%s)", cssString(value)), nil
	case entities.StrategyClassName:
		return fmt.Sprintf("css=[class~=%s]", cssString(value)), nil
	}
	return "", fmt.Errorf("strategy %s: %w", by, entities.ErrUnknownLocatorType)
}

// SeleniumBy returns the WebDriver "using" value for a strategy.
func SeleniumBy(by entities.Strategy) (string, error) {
	switch by {
	case entities.StrategyID:
		return selenium.ByID, nil
	case entities.StrategyName:
		return selenium.ByName, nil
	case entities.StrategyXPath:
		return selenium.ByXPATH, nil
	case entities.StrategyCSS:
		return selenium.ByCSSSelector, nil
	case entities.StrategyLinkText:
		return selenium.ByLinkText, nil
	case entities.StrategyClassName:
		return selenium.ByClassName, nil
	}
	return "", fmt.Errorf("strategy %s: %w", by, entities.ErrUnknownLocatorType)
}

func cssString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
