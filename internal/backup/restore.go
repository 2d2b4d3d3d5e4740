package backup

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/weeklybite/weeklybite/internal/backup/stream"
	"github.com/weeklybite/weeklybite/internal/errors"
	"github.com/weeklybite/weeklybite/internal/store"
)

// Restorer restores collections from backup archives.
type Restorer struct {
	store  *store.Store
	logger *slog.Logger
}

// NewRestorer creates a Restorer.
func NewRestorer(s *store.Store, logger *slog.Logger) *Restorer {
	return &Restorer{store: s, logger: logger}
}

// Validate opens the archive and checks its manifest without importing.
func (r *Restorer) Validate(src io.ReaderAt, size int64) (*Manifest, error) {
	zr, err := zip.NewReader(src, size)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidation, "unable to open backup")
	}
	return readManifest(zr)
}

// Restore upserts every record of the archive into its collection. Records
// already in the store but absent from the archive are kept. Lines that fail
// to decode are reported in the result and skipped.
func (r *Restorer) Restore(ctx context.Context, src io.ReaderAt, size int64, opts RestoreOptions) (*RestoreResult, error) {
	start := time.Now()

	if !opts.MergeStrategy.Valid() {
		return nil, errors.Validationf("unknown merge strategy %q", opts.MergeStrategy)
	}

	zr, err := zip.NewReader(src, size)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidation, "unable to open backup")
	}

	manifest, err := readManifest(zr)
	if err != nil {
		return nil, err
	}

	r.logger.Info("starting restore",
		"id", manifest.ID,
		"created_at", manifest.CreatedAt,
		"merge_strategy", opts.MergeStrategy,
		"dry_run", opts.DryRun)

	if err := r.store.Init(ctx); err != nil {
		return nil, errors.Surface(err, "unable to restore backup")
	}

	result := &RestoreResult{
		Manifest: *manifest,
		Imported: make(map[string]int),
		Skipped:  make(map[string]int),
	}

	steps := []struct {
		name string
		path string
		fn   func(context.Context, *zip.Reader, string, RestoreOptions) (imported, skipped int, errs []RestoreError)
	}{
		{store.CollectionRecipes, recipesFile, importCollection(r.store.Recipes)},
		{store.CollectionMealPlans, mealPlansFile, importCollection(r.store.MealPlans)},
		{store.CollectionShoppingLists, shoppingListsFile, importCollection(r.store.ShoppingLists)},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := step.name
		imported, skipped, errs := step.fn(ctx, zr, step.path, opts)
		result.Imported[name] = imported
		result.Skipped[name] = skipped
		result.Errors = append(result.Errors, errs...)

		r.logger.Info("restored collection",
			"collection", name,
			"imported", imported,
			"skipped", skipped,
			"errors", len(errs))
	}

	result.Duration = time.Since(start)
	return result, nil
}

func readManifest(zr *zip.Reader) (*Manifest, error) {
	rc, err := stream.OpenFile(zr, manifestFile)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidManifest, errors.CodeValidation, "invalid backup")
	}
	defer rc.Close()

	var manifest Manifest
	if err := json.NewDecoder(rc).Decode(&manifest); err != nil {
		return nil, errors.Wrap(fmt.Errorf("%w: %v", ErrInvalidManifest, err), errors.CodeValidation, "invalid backup")
	}

	if manifest.Version != FormatVersion {
		err := fmt.Errorf("%w: got %s, want %s", ErrVersionMismatch, manifest.Version, FormatVersion)
		return nil, errors.Wrap(err, errors.CodeValidation, "invalid backup")
	}

	return &manifest, nil
}

// importCollection restores one JSONL file into c. A missing file imports
// nothing.
func importCollection[T any](c *store.Collection[T]) func(context.Context, *zip.Reader, string, RestoreOptions) (int, int, []RestoreError) {
	return func(ctx context.Context, zr *zip.Reader, path string, opts RestoreOptions) (imported, skipped int, errs []RestoreError) {
		rc, err := stream.OpenFile(zr, path)
		if err != nil {
			if errors.Is(err, stream.ErrFileNotFound) {
				return 0, 0, nil
			}
			errs = append(errs, RestoreError{Collection: c.Name(), Error: err.Error()})
			return
		}

		reader := stream.NewReader[T](rc)
		for record, err := range reader.All() {
			if err != nil {
				errs = append(errs, RestoreError{
					Collection: c.Name(),
					Line:       reader.Line(),
					Error:      fmt.Sprintf("parse error: %v", err),
				})
				continue
			}

			key := c.Key(record)
			if key == "" {
				errs = append(errs, RestoreError{
					Collection: c.Name(),
					Line:       reader.Line(),
					Error:      store.ErrMissingKey.Error(),
				})
				continue
			}

			if opts.MergeStrategy == MergeKeepLocal {
				_, err := c.Get(ctx, key)
				if err == nil {
					skipped++
					continue
				}
				if !errors.Is(err, store.ErrNotFound) {
					errs = append(errs, RestoreError{Collection: c.Name(), Key: key, Error: err.Error()})
					continue
				}
			}

			if opts.DryRun {
				imported++
				continue
			}

			if err := c.Set(ctx, record); err != nil {
				errs = append(errs, RestoreError{Collection: c.Name(), Key: key, Error: err.Error()})
				continue
			}
			imported++
		}
		return
	}
}
