package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"todo_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadLatestReport(t *testing.T) {
	dir := t.TempDir()
	store, err := NewReportStore(dir)
	require.NoError(t, err)

	_, err = store.LoadLatestReport()
	assert.Error(t, err)

	first := &entities.RunReport{ID: "run-1", Browser: entities.BrowserFirefox, StartedAt: time.Now().UTC()}
	second := &entities.RunReport{
		ID:      "run-2",
		Backend: entities.BackendSelenium,
		Cases: []entities.CaseResult{
			{Order: 1, Name: "a", Status: entities.CaseStatusFailed, Failures: []string{"boom"}, Duration: time.Second},
		},
	}
	require.NoError(t, store.SaveReport(first))
	require.NoError(t, store.SaveReport(second))

	latest, err := store.LoadLatestReport()
	require.NoError(t, err)
	assert.Equal(t, "run-2", latest.ID)
	assert.Equal(t, entities.BackendSelenium, latest.Backend)
	require.Len(t, latest.Cases, 1)
	assert.Equal(t, []string{"boom"}, latest.Cases[0].Failures)
	assert.Equal(t, time.Second, latest.Cases[0].Duration)

	assert.FileExists(t, filepath.Join(dir, "run-1.json"))
	assert.FileExists(t, filepath.Join(dir, "run-2.json"))
}

func TestSaveScreenshot(t *testing.T) {
	store, err := NewReportStore(t.TempDir())
	require.NoError(t, err)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	path, err := store.SaveScreenshot("run-1", "03_complete_first_todo", png)
	require.NoError(t, err)
	assert.Equal(t, "03_complete_first_todo.png", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, png, data)
}

func TestSaveTextCaptureKeepsTextExtension(t *testing.T) {
	store, err := NewReportStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.SaveScreenshot("run-1", "04_uncheck_first_todo", []byte("filter=All\n[x] Clean room\n"))
	require.NoError(t, err)
	assert.Equal(t, "04_uncheck_first_todo.txt", filepath.Base(path))
}
