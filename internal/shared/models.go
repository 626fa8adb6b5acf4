package shared

import "time"

// EventTypeBuild and EventTypeDeployment classify audit rows.
const (
	EventTypeBuild      = "build"
	EventTypeDeployment = "deployment"
)

// Submission is one audit row per update submitted to Jira. It records the
// outcome only; raw payloads and response bodies stay in the logs.
type Submission struct {
	ID            string `gorm:"primaryKey;size:36"`
	EventType     string `gorm:"size:16;index"`
	SiteURL       string
	CloudID       string `gorm:"size:64;index"`
	Succeeded     bool
	AcceptedCount int
	RejectedCount int
	ErrorMessage  string
	CreatedAt     time.Time
}
