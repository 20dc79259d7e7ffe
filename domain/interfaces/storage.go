package interfaces

import "todo_automation/domain/entities"

// ReportStorage persists scenario run reports and their artifacts
type ReportStorage interface {
	// SaveReport stores a finished run report
	SaveReport(report *entities.RunReport) error

	// LoadLatestReport loads the most recently saved report
	LoadLatestReport() (*entities.RunReport, error)

	// SaveScreenshot stores a screenshot for a case and returns its path
	SaveScreenshot(runID string, name string, data []byte) (string, error)
}
