// Package driver wraps a browser session with locator resolution, tolerant
// element lookup and user-gesture actions.
//
// Every operation logs its failures and also returns them, so callers can
// ignore the error for best-effort behaviour or check it to fail fast.
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todo_automation/domain/entities"
	"todo_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// DefaultSettleDelay is how long a hover waits for hover-triggered UI to settle.
const DefaultSettleDelay = 500 * time.Millisecond

const defaultPollInterval = 50 * time.Millisecond

// Driver performs lookups and actions against one browser session
type Driver struct {
	session      interfaces.BrowserSession
	resolver     *Resolver
	logger       *logrus.Logger
	settleDelay  time.Duration
	pollInterval time.Duration
}

// Option configures a Driver
type Option func(*Driver)

// WithSettleDelay overrides the post-hover delay and reveal timeout.
func WithSettleDelay(d time.Duration) Option {
	return func(drv *Driver) {
		if d >= 0 {
			drv.settleDelay = d
		}
	}
}

// WithPollInterval overrides how often HoverUntil checks its target.
func WithPollInterval(d time.Duration) Option {
	return func(drv *Driver) {
		if d > 0 {
			drv.pollInterval = d
		}
	}
}

// New - creates new driver for the session
func New(session interfaces.BrowserSession, logger *logrus.Logger, opts ...Option) *Driver {
	drv := &Driver{
		session:      session,
		resolver:     NewResolver(logger),
		logger:       logger,
		settleDelay:  DefaultSettleDelay,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(drv)
	}
	return drv
}

// Session returns the underlying browser session
func (d *Driver) Session() interfaces.BrowserSession {
	return d.session
}

// SettleDelay returns the configured post-hover delay
func (d *Driver) SettleDelay() time.Duration {
	return d.settleDelay
}

func (d *Driver) log(loc entities.Locator) *logrus.Entry {
	return d.logger.WithFields(logrus.Fields{
		"locator_type": loc.Type,
		"locator":      loc.Value,
	})
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func actionError(action entities.ActionType, loc entities.Locator, err error) error {
	var ae *entities.ActionError
	if errors.As(err, &ae) {
		return err
	}
	return &entities.ActionError{Action: action, Locator: loc, Err: err}
}

func lookupError(loc entities.Locator, err error) error {
	return fmt.Errorf("%s: %w", loc, err)
}
