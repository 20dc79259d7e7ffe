// Package browser opens BrowserSession implementations backed by
// playwright-go, tebeka/selenium or the in-memory simulator.
package browser

import (
	"context"
	"fmt"
	"time"

	"todo_automation/domain/entities"
	"todo_automation/domain/interfaces"
	"todo_automation/infrastructure/simulator"

	"github.com/sirupsen/logrus"
)

// Options describe the browser to launch
type Options struct {
	Browser  entities.BrowserKind
	Backend  entities.Backend
	Headless bool
	SlowMo   time.Duration

	DriverPath   string
	ChromeBinary string
	SeleniumPort int

	PlaywrightPreinstalled bool
}

// Launch - opens a session on the configured backend
func Launch(ctx context.Context, opts Options, logger *logrus.Logger) (interfaces.BrowserSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch opts.Backend {
	case entities.BackendSelenium:
		return NewSeleniumSession(opts, logger)
	case entities.BackendSimulator:
		logger.Info("Using in-memory TodoMVC simulator")
		return simulator.NewTodoMVC(), nil
	case entities.BackendPlaywright, "":
		return NewPlaywrightSession(opts, logger)
	}
	return nil, fmt.Errorf("unknown browser backend %q", opts.Backend)
}
