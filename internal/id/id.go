// Package id generates opaque identifiers for records that are not numbered
// by their collection, such as backups.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// BackupPrefix prefixes backup identifiers.
const BackupPrefix = "bak"

// Generate creates a prefixed NanoID, e.g. "bak-V1StGXR8_Z5jdHi6B-myT".
// It fails only when the system cannot supply secure randomness.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// NewBackupID returns a fresh backup identifier.
func NewBackupID() (string, error) {
	return Generate(BackupPrefix)
}
