// Package backup exports the WeeklyBite collections to a zip archive of JSONL
// files and restores them.
package backup

import "github.com/weeklybite/weeklybite/internal/errors"

var (
	// ErrInvalidManifest indicates the manifest is missing or malformed.
	ErrInvalidManifest = errors.New("invalid or missing manifest")

	// ErrVersionMismatch indicates the backup version is not supported.
	ErrVersionMismatch = errors.New("backup version not supported")
)
