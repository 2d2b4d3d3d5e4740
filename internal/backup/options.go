package backup

import "time"

// RestoreOptions configures restoration.
type RestoreOptions struct {
	MergeStrategy MergeStrategy
	DryRun        bool // Validate without writing
}

// MergeStrategy determines conflict resolution when a record already exists.
// Restore never deletes; records absent from the backup are left alone.
type MergeStrategy string

const (
	// MergeKeepBackup overwrites the local record with the backup copy.
	MergeKeepBackup MergeStrategy = "keep_backup"

	// MergeKeepLocal keeps the local record on conflict.
	MergeKeepLocal MergeStrategy = "keep_local"
)

// Valid returns true if the merge strategy is recognized.
func (s MergeStrategy) Valid() bool {
	switch s {
	case MergeKeepBackup, MergeKeepLocal:
		return true
	case "": // Empty means MergeKeepBackup
		return true
	default:
		return false
	}
}

// ExportResult contains the outcome of an export.
type ExportResult struct {
	Manifest Manifest      `json:"manifest"`
	Size     int64         `json:"size"`
	Checksum string        `json:"checksum"`
	Duration time.Duration `json:"duration"`
}

// RestoreResult contains the outcome of a restore operation.
type RestoreResult struct {
	Manifest Manifest       `json:"manifest"`
	Imported map[string]int `json:"imported"`
	Skipped  map[string]int `json:"skipped"`
	Errors   []RestoreError `json:"errors,omitempty"`
	Duration time.Duration  `json:"duration"`
}

// RestoreError describes a non-fatal error during restore.
type RestoreError struct {
	Collection string `json:"collection"`
	Line       int    `json:"line,omitempty"`
	Key        string `json:"key,omitempty"`
	Error      string `json:"error"`
}
