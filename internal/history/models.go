package history

import "time"

// Status is the outcome of one build.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Record describes one build attempt.
type Record struct {
	BuildID       string    `json:"build_id"`
	BankID        string    `json:"bank_id"`
	BankDir       string    `json:"bank_dir"`
	ArchivePath   string    `json:"archive_path,omitempty"`
	TriggerCount  int       `json:"trigger_count"`
	ArchiveBytes  int64     `json:"archive_bytes"`
	ArchiveSHA256 string    `json:"archive_sha256,omitempty"`
	Status        Status    `json:"status"`
	Error         string    `json:"error,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}

// Duration returns the wall time of the build.
func (r Record) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Filter narrows List results. Zero values disable each condition.
type Filter struct {
	BankID string
	Status Status
	Limit  int
}
