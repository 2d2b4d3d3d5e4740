package backup

import (
	"archive/zip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/weeklybite/weeklybite/internal/backup/stream"
	"github.com/weeklybite/weeklybite/internal/errors"
	"github.com/weeklybite/weeklybite/internal/id"
	"github.com/weeklybite/weeklybite/internal/store"
)

// Exporter creates backup archives.
type Exporter struct {
	store  *store.Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() (string, error)
}

// NewExporter creates an Exporter.
func NewExporter(s *store.Store, logger *slog.Logger) *Exporter {
	return &Exporter{
		store:  s,
		logger: logger,
		now:    time.Now,
		newID:  id.NewBackupID,
	}
}

// countingWriter counts bytes passed through to w.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Export writes a backup archive of every collection to w.
func (e *Exporter) Export(ctx context.Context, w io.Writer) (*ExportResult, error) {
	start := time.Now()

	backupID, err := e.newID()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "unable to create backup")
	}

	hash := sha256.New()
	cw := &countingWriter{w: io.MultiWriter(w, hash)}
	zw := zip.NewWriter(cw)

	manifest := Manifest{
		Version:   FormatVersion,
		ID:        backupID,
		CreatedAt: e.now().UTC(),
	}

	steps := []struct {
		path string
		fn   func(context.Context, *stream.Writer) error
		dest *int
	}{
		{recipesFile, exportCollection(e.store.Recipes), &manifest.Counts.Recipes},
		{mealPlansFile, exportCollection(e.store.MealPlans), &manifest.Counts.MealPlans},
		{shoppingListsFile, exportCollection(e.store.ShoppingLists), &manifest.Counts.ShoppingLists},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sw, err := stream.NewWriter(zw, step.path)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", step.path, err)
		}
		if err := step.fn(ctx, sw); err != nil {
			e.logger.Error("backup export failed", "file", step.path, "error", err)
			return nil, errors.Surface(err, "unable to export "+step.path)
		}
		*step.dest = sw.Count()
	}

	// Manifest goes last so it carries the final counts.
	if err := writeManifest(zw, &manifest); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}

	result := &ExportResult{
		Manifest: manifest,
		Size:     cw.n,
		Checksum: hex.EncodeToString(hash.Sum(nil)),
		Duration: time.Since(start),
	}

	e.logger.Info("backup complete",
		"id", manifest.ID,
		"recipes", manifest.Counts.Recipes,
		"meal_plans", manifest.Counts.MealPlans,
		"shopping_lists", manifest.Counts.ShoppingLists,
		"size", result.Size,
		"duration", result.Duration)

	return result, nil
}

// ExportFile writes a backup archive to path. The file appears only once the
// archive is complete.
func (e *Exporter) ExportFile(ctx context.Context, path string) (*ExportResult, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create backup dir: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath) //#nosec G304 -- path is chosen by the operator
	if err != nil {
		return nil, fmt.Errorf("create backup file: %w", err)
	}
	defer os.Remove(tmpPath)
	defer f.Close()

	result, err := e.Export(ctx, f)
	if err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return nil, fmt.Errorf("rename backup: %w", err)
	}
	return result, nil
}

// exportCollection streams every record of c in key order.
func exportCollection[T any](c *store.Collection[T]) func(context.Context, *stream.Writer) error {
	return func(ctx context.Context, w *stream.Writer) error {
		for record, err := range c.List(ctx) {
			if err != nil {
				return err
			}
			if err := w.Write(record); err != nil {
				return fmt.Errorf("write %s record: %w", c.Name(), err)
			}
		}
		return nil
	}
}

func writeManifest(zw *zip.Writer, m *Manifest) error {
	w, err := zw.Create(manifestFile)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}
