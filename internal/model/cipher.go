package model

import "time"

// TimestampLayout is the storage format for all cipher timestamps:
// millisecond precision, UTC, literal Z suffix. Lexicographic comparison of
// values in this format is equivalent to chronological comparison, which the
// purge predicate relies on.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in TimestampLayout, normalizing to UTC first.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Cipher is a vault item as seen by the maintenance service. A non-empty
// DeletedAt means the item is soft-deleted and sitting in the trash.
type Cipher struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Data      string `json:"data"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	DeletedAt string `json:"deleted_at,omitempty"`
}

// PurgeResult reports the outcome of one purge invocation.
type PurgeResult struct {
	Purged   int64  `json:"purged"`
	Cutoff   string `json:"cutoff,omitempty"`
	Disabled bool   `json:"disabled"`
}

// PurgeRunInfo captures the last completed purge invocation for the status
// endpoint.
type PurgeRunInfo struct {
	At       string `json:"at"`
	Purged   int64  `json:"purged"`
	Disabled bool   `json:"disabled,omitempty"`
	Error    string `json:"error,omitempty"`
}

type PurgeStatus struct {
	RetentionDays    int           `json:"retention_days"`
	Disabled         bool          `json:"disabled"`
	Schedule         string        `json:"schedule,omitempty"`
	SchedulerRunning bool          `json:"scheduler_running"`
	NextRun          string        `json:"next_run,omitempty"`
	LastRun          *PurgeRunInfo `json:"last_run,omitempty"`
}
