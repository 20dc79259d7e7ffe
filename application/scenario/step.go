package scenario

import (
	"context"
	"fmt"

	"todo_automation/application/pages"
	"todo_automation/domain/interfaces"

	"github.com/stretchr/testify/assert"
)

// Step is what a case sees while it runs. It satisfies assert.TestingT so
// cases assert with testify; failures are collected instead of aborting.
type Step struct {
	ctx      context.Context
	Page     *pages.TodoPage
	Session  interfaces.BrowserSession
	Todos    []string
	failures []string
}

var _ assert.TestingT = (*Step)(nil)

// Context returns the context the run was started with
func (s *Step) Context() context.Context {
	return s.ctx
}

// Errorf records a failure
func (s *Step) Errorf(format string, args ...interface{}) {
	s.failures = append(s.failures, fmt.Sprintf(format, args...))
}

// Failed reports whether any failure was recorded
func (s *Step) Failed() bool {
	return len(s.failures) > 0
}

// Todo returns the n-th fixture item, 1-based
func (s *Step) Todo(n int) string {
	return s.Todos[n-1]
}

// Remaining reads the items-left counter, recording a failure if it cannot
func (s *Step) Remaining() int {
	n, err := s.Page.RemainingCount(s.ctx)
	if err != nil {
		s.Errorf("read items left: %v", err)
		return -1
	}
	return n
}

// Visible counts rendered rows, recording a failure if it cannot
func (s *Step) Visible() int {
	n, err := s.Page.VisibleCount(s.ctx)
	if err != nil {
		s.Errorf("count rows: %v", err)
		return -1
	}
	return n
}

// Text reads the label at position, recording a failure if it cannot
func (s *Step) Text(position int) string {
	text, err := s.Page.ItemText(s.ctx, position)
	if err != nil {
		s.Errorf("read item %d: %v", position, err)
		return ""
	}
	return text
}

// Do records err as a failure if it is not nil
func (s *Step) Do(err error) {
	if err != nil {
		s.Errorf("%v", err)
	}
}
