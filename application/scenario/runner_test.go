package scenario

import (
	"context"
	"errors"
	"testing"
	"time"

	"todo_automation/domain/entities"
	"todo_automation/domain/interfaces"
	"todo_automation/infrastructure/simulator"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	reports     []*entities.RunReport
	screenshots map[string][]byte
}

func (m *memoryStorage) SaveReport(report *entities.RunReport) error {
	m.reports = append(m.reports, report)
	return nil
}

func (m *memoryStorage) LoadLatestReport() (*entities.RunReport, error) {
	if len(m.reports) == 0 {
		return nil, errors.New("no reports")
	}
	return m.reports[len(m.reports)-1], nil
}

func (m *memoryStorage) SaveScreenshot(runID string, name string, data []byte) (string, error) {
	if m.screenshots == nil {
		m.screenshots = make(map[string][]byte)
	}
	path := runID + "/" + name + ".png"
	m.screenshots[path] = data
	return path, nil
}

func newRunner(t *testing.T, app *simulator.TodoMVC, opts Options) (*Runner, *memoryStorage) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	storage := &memoryStorage{}
	if opts.URL == "" {
		opts.URL = "http://todo.local/#/"
	}
	if opts.SettleDelay == 0 {
		opts.SettleDelay = 10 * time.Millisecond
	}
	open := func(ctx context.Context) (interfaces.BrowserSession, error) { return app, nil }
	return NewRunner(open, storage, logger, opts), storage
}

func TestTodoScenarioPassesAgainstSimulator(t *testing.T) {
	app := simulator.NewTodoMVC()
	runner, storage := newRunner(t, app, Options{Browser: entities.BrowserChrome, Backend: "simulator"})

	report, err := runner.Run(context.Background(), TodoScenario())
	require.NoError(t, err)

	for _, c := range report.Cases {
		assert.Equal(t, entities.CaseStatusPassed, c.Status, "%d %s: %v", c.Order, c.Name, c.Failures)
	}
	assert.Len(t, report.Cases, 15)
	assert.True(t, report.Passed())
	assert.True(t, app.Closed(), "session must be quit after the run")
	assert.Equal(t, 2, app.Visits(), "one navigation plus one refresh")
	require.Len(t, storage.reports, 1)
	assert.Same(t, report, storage.reports[0])
	assert.NotEmpty(t, report.ID)
	assert.False(t, report.FinishedAt.Before(report.StartedAt))
}

func TestCasesRunInOrder(t *testing.T) {
	runner, _ := newRunner(t, simulator.NewTodoMVC(), Options{})
	var got []int
	cases := []Case{
		{Order: 3, Name: "c", Run: func(s *Step) { got = append(got, 3) }},
		{Order: 1, Name: "a", Run: func(s *Step) { got = append(got, 1) }},
		{Order: 2, Name: "b", Run: func(s *Step) { got = append(got, 2) }},
	}

	report, err := runner.Run(context.Background(), cases)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, "a", report.Cases[0].Name)
}

func TestFailedCaseIsRecordedAndRunContinues(t *testing.T) {
	app := simulator.NewTodoMVC()
	runner, storage := newRunner(t, app, Options{Screenshots: true})
	cases := []Case{
		{Order: 1, Name: "fails", Run: func(s *Step) { assert.Equal(s, 1, 2) }},
		{Order: 2, Name: "passes", Run: func(s *Step) {}},
	}

	report, err := runner.Run(context.Background(), cases)
	require.NoError(t, err)
	require.Len(t, report.Cases, 2)
	assert.Equal(t, entities.CaseStatusFailed, report.Cases[0].Status)
	assert.NotEmpty(t, report.Cases[0].Failures)
	assert.Equal(t, report.ID+"/01_fails.png", report.Cases[0].Screenshot)
	assert.Len(t, storage.screenshots, 1)
	assert.Equal(t, entities.CaseStatusPassed, report.Cases[1].Status)
	assert.False(t, report.Passed())
}

func TestFailFastSkipsRemaining(t *testing.T) {
	runner, _ := newRunner(t, simulator.NewTodoMVC(), Options{FailFast: true})
	ran := false
	cases := []Case{
		{Order: 1, Name: "fails", Run: func(s *Step) { s.Errorf("boom") }},
		{Order: 2, Name: "never", Run: func(s *Step) { ran = true }},
	}

	report, err := runner.Run(context.Background(), cases)
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Equal(t, entities.CaseStatusSkipped, report.Cases[1].Status)
}

func TestPanicFailsOnlyThatCase(t *testing.T) {
	runner, _ := newRunner(t, simulator.NewTodoMVC(), Options{})
	cases := []Case{
		{Order: 1, Name: "panics", Run: func(s *Step) { panic("bad index") }},
		{Order: 2, Name: "passes", Run: func(s *Step) {}},
	}

	report, err := runner.Run(context.Background(), cases)
	require.NoError(t, err)
	assert.Equal(t, entities.CaseStatusFailed, report.Cases[0].Status)
	assert.Contains(t, report.Cases[0].Failures[0], "bad index")
	assert.Equal(t, entities.CaseStatusPassed, report.Cases[1].Status)
}

func TestCancellationSkipsRemainingAndQuits(t *testing.T) {
	app := simulator.NewTodoMVC()
	runner, _ := newRunner(t, app, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cases := []Case{
		{Order: 1, Name: "cancels", Run: func(s *Step) { cancel() }},
		{Order: 2, Name: "skipped", Run: func(s *Step) {}},
	}

	report, err := runner.Run(ctx, cases)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, entities.CaseStatusSkipped, report.Cases[1].Status)
	assert.NotEmpty(t, report.Error)
	assert.True(t, app.Closed())
}

func TestSessionFactoryErrorIsReported(t *testing.T) {
	logger, _ := test.NewNullLogger()
	storage := &memoryStorage{}
	open := func(ctx context.Context) (interfaces.BrowserSession, error) {
		return nil, errors.New("no browser")
	}
	runner := NewRunner(open, storage, logger, Options{URL: "http://x"})

	report, err := runner.Run(context.Background(), TodoScenario())
	require.Error(t, err)
	assert.Empty(t, report.Cases)
	assert.Contains(t, report.Error, "no browser")
	require.Len(t, storage.reports, 1)
}

func TestSortedIsStable(t *testing.T) {
	cases := []Case{{Order: 2, Name: "x"}, {Order: 1, Name: "y"}, {Order: 2, Name: "z"}}
	got := Sorted(cases)
	assert.Equal(t, []string{"y", "x", "z"}, []string{got[0].Name, got[1].Name, got[2].Name})
	assert.Equal(t, "x", cases[0].Name, "input must not be reordered")
}
