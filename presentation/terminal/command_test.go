package terminal

import (
	"bytes"
	"path/filepath"
	"testing"

	"todo_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunAgainstSimulator(t *testing.T) {
	t.Setenv("HOVER_SETTLE", "10ms")
	t.Setenv("LOG_LEVEL", "error")
	dir := t.TempDir()
	envFile := filepath.Join(dir, "missing.env")

	out, err := execute(t, "--env-file", envFile, "--backend", "simulator", "--browser", "firefox", "--report-dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "via simulator")
	assert.Contains(t, out, "15 passed, 0 failed, 0 skipped")

	out, err = execute(t, "report", "--env-file", envFile, "--report-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "firefox via simulator")
	assert.Contains(t, out, "PASSED  15 complete and clear all")
}

func TestMistypedBackendIsRejected(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "--env-file", filepath.Join(dir, "none.env"), "--backend", "selenum", "--report-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown browser backend "selenum"`)
}

func TestReportWithoutRuns(t *testing.T) {
	_, err := execute(t, "report", "--env-file", filepath.Join(t.TempDir(), "none.env"), "--report-dir", t.TempDir())
	assert.Error(t, err)
}

func TestListCases(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, " 1  todo list not visible\n")
	assert.Contains(t, out, "13  edit first active todo\n")
}

func TestPrintReportShowsFailures(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, &entities.RunReport{
		ID: "r1",
		Cases: []entities.CaseResult{
			{Order: 4, Name: "complete first todo", Status: entities.CaseStatusFailed, Failures: []string{"expected 1\nactual 2"}, Screenshot: "r1/04.png"},
			{Order: 5, Name: "uncheck first todo", Status: entities.CaseStatusSkipped},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "FAILED   4 complete first todo")
	assert.Contains(t, out, "            actual 2\n")
	assert.Contains(t, out, "screenshot: r1/04.png")
	assert.Contains(t, out, "0 passed, 1 failed, 1 skipped")
}
