// Package scenario runs ordered, stateful cases against one shared browser
// session and reports their outcomes.
package scenario

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"todo_automation/application/driver"
	"todo_automation/application/pages"
	"todo_automation/domain/entities"
	"todo_automation/domain/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Case is one ordered step of a scenario
type Case struct {
	Order int
	Name  string
	Run   func(s *Step)
}

// SessionFactory opens the browser session a run uses
type SessionFactory func(ctx context.Context) (interfaces.BrowserSession, error)

// Options control a run
type Options struct {
	URL          string
	Browser      entities.BrowserKind
	Backend      entities.Backend
	ImplicitWait time.Duration
	SettleDelay  time.Duration
	FailFast     bool
	Screenshots  bool
	Todos        []string
}

// Runner executes cases in order against a single session
type Runner struct {
	open    SessionFactory
	storage interfaces.ReportStorage
	logger  *logrus.Logger
	opts    Options
}

// NewRunner - creates new scenario runner. storage may be nil.
func NewRunner(open SessionFactory, storage interfaces.ReportStorage, logger *logrus.Logger, opts Options) *Runner {
	if len(opts.Todos) == 0 {
		opts.Todos = DefaultTodos
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = driver.DefaultSettleDelay
	}
	return &Runner{
		open:    open,
		storage: storage,
		logger:  logger,
		opts:    opts,
	}
}

// Sorted returns a copy of cases ordered by Order, keeping declaration
// order for ties.
func Sorted(cases []Case) []Case {
	out := make([]Case, len(cases))
	copy(out, cases)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Run opens a session, runs the cases in order and always quits the session
// before returning. Failed cases do not make Run return an error; setup
// failures and cancellation do.
func (r *Runner) Run(ctx context.Context, cases []Case) (report *entities.RunReport, err error) {
	report = &entities.RunReport{
		ID:        uuid.NewString(),
		Browser:   r.opts.Browser,
		Backend:   r.opts.Backend,
		URL:       r.opts.URL,
		StartedAt: time.Now(),
	}
	log := r.logger.WithField("run_id", report.ID)

	defer func() {
		report.FinishedAt = time.Now()
		if err != nil {
			report.Error = err.Error()
		}
		r.save(log, report)
	}()

	session, err := r.open(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to open browser session: %w", err)
	}
	defer func() {
		if qerr := session.Quit(); qerr != nil {
			log.WithError(qerr).Warn("Failed to quit browser session")
		}
	}()

	if err := r.prepare(ctx, session); err != nil {
		return report, err
	}

	drv := driver.New(session, r.logger, driver.WithSettleDelay(r.opts.SettleDelay))
	page := pages.NewTodoPage(drv, r.logger)

	ordered := Sorted(cases)
	stop := false
	for _, c := range ordered {
		if !stop && ctx.Err() != nil {
			err = fmt.Errorf("run canceled: %w", ctx.Err())
			stop = true
		}
		if stop {
			report.Cases = append(report.Cases, entities.CaseResult{Order: c.Order, Name: c.Name, Status: entities.CaseStatusSkipped})
			continue
		}

		result := r.runCase(ctx, session, page, c)
		if result.Status == entities.CaseStatusFailed {
			if r.opts.Screenshots {
				result.Screenshot = r.screenshot(ctx, session, report.ID, c)
			}
			stop = r.opts.FailFast
		}
		report.Cases = append(report.Cases, result)

		entry := log.WithFields(logrus.Fields{
			"order":    c.Order,
			"case":     c.Name,
			"duration": result.Duration,
		})
		if result.Status == entities.CaseStatusFailed {
			entry.WithField("failures", strings.Join(result.Failures, "; ")).Error("Case failed")
		} else {
			entry.Info("Case passed")
		}
	}

	log.WithFields(logrus.Fields{
		"passed":  report.Count(entities.CaseStatusPassed),
		"failed":  report.Count(entities.CaseStatusFailed),
		"skipped": report.Count(entities.CaseStatusSkipped),
	}).Info("Scenario finished")

	return report, err
}

func (r *Runner) prepare(ctx context.Context, session interfaces.BrowserSession) error {
	if err := session.SetImplicitWait(r.opts.ImplicitWait); err != nil {
		return fmt.Errorf("failed to set implicit wait: %w", err)
	}
	if err := session.Maximize(ctx); err != nil {
		r.logger.WithError(err).Warn("Failed to maximize window")
	}
	if err := session.Navigate(ctx, r.opts.URL); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", r.opts.URL, err)
	}
	return nil
}

func (r *Runner) runCase(ctx context.Context, session interfaces.BrowserSession, page *pages.TodoPage, c Case) (result entities.CaseResult) {
	step := &Step{ctx: ctx, Page: page, Session: session, Todos: r.opts.Todos}
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			step.Errorf("panic: %v", p)
		}
		result = entities.CaseResult{
			Order:    c.Order,
			Name:     c.Name,
			Status:   entities.CaseStatusPassed,
			Duration: time.Since(start),
		}
		if step.Failed() {
			result.Status = entities.CaseStatusFailed
			result.Failures = step.failures
		}
	}()

	c.Run(step)
	return result
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9]+`)

func (r *Runner) screenshot(ctx context.Context, session interfaces.BrowserSession, runID string, c Case) string {
	if r.storage == nil {
		return ""
	}
	data, err := session.Screenshot(ctx)
	if err != nil {
		r.logger.WithError(err).Warn("Failed to take screenshot")
		return ""
	}
	name := fmt.Sprintf("%02d_%s", c.Order, strings.Trim(unsafeName.ReplaceAllString(c.Name, "_"), "_"))
	path, err := r.storage.SaveScreenshot(runID, name, data)
	if err != nil {
		r.logger.WithError(err).Warn("Failed to save screenshot")
		return ""
	}
	return path
}

func (r *Runner) save(log *logrus.Entry, report *entities.RunReport) {
	if r.storage == nil {
		return
	}
	if err := r.storage.SaveReport(report); err != nil {
		log.WithError(err).Warn("Failed to save run report")
	}
}
