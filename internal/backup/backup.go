// Package backup copies the stored application documents to object storage.
package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/mmynk/serralheria/internal/storage"
)

// Prefix is the top-level folder of every backup object.
const Prefix = "serralheria"

// Uploader stores one object under key.
type Uploader interface {
	Put(ctx context.Context, key string, body []byte) error
}

// Result lists the object keys written by a backup run.
type Result struct {
	Folder  string
	Objects []string
}

// Run uploads each stored document as <Prefix>/<timestamp>/<key>.json.
// Keys that disappear while the run is in progress are skipped.
func Run(ctx context.Context, store storage.Store, uploader Uploader, now time.Time) (Result, error) {
	keys, err := store.Keys(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list keys: %w", err)
	}

	result := Result{Folder: path.Join(Prefix, now.UTC().Format("20060102T150405Z"))}
	for _, key := range keys {
		value, err := store.Get(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			slog.Debug("Skipping missing key", "key", key)
			continue
		}
		if err != nil {
			return result, fmt.Errorf("failed to read %s: %w", key, err)
		}

		object := path.Join(result.Folder, key+".json")
		if err := uploader.Put(ctx, object, value); err != nil {
			return result, fmt.Errorf("failed to upload %s: %w", key, err)
		}
		result.Objects = append(result.Objects, object)
		slog.Info("Backed up document", "key", key, "object", object, "bytes", len(value))
	}
	return result, nil
}
