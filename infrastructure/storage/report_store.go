package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"todo_automation/domain/entities"
	"todo_automation/domain/interfaces"

	"github.com/gabriel-vasile/mimetype"
)

const latestReportFile = "latest.json"

type reportStore struct {
	dir string
}

// DefaultReportDir - returns ~/.todo_automation/reports, or ./reports without a home directory
func DefaultReportDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "reports"
	}
	return filepath.Join(homeDir, ".todo_automation", "reports")
}

// NewReportStore - creates new report storage rooted at dir
func NewReportStore(dir string) (interfaces.ReportStorage, error) {
	if dir == "" {
		dir = DefaultReportDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	return &reportStore{dir: dir}, nil
}

// SaveReport - writes the report under its run id and as the latest report
func (s *reportStore) SaveReport(report *entities.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, report.ID+".json"), data, 0644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, latestReportFile), data, 0644)
}

// LoadLatestReport - loads the last saved report
func (s *reportStore) LoadLatestReport() (*entities.RunReport, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, latestReportFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no report has been saved in %s yet", s.dir)
		}
		return nil, err
	}

	var report entities.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}

	return &report, nil
}

// SaveScreenshot - writes a capture under the run's directory, named after its detected type
func (s *reportStore) SaveScreenshot(runID string, name string, data []byte) (string, error) {
	runDir := filepath.Join(s.dir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	ext := mimetype.Detect(data).Extension()
	if ext == "" {
		ext = ".bin"
	}
	path := filepath.Join(runDir, name+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
