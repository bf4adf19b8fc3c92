package backup

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/serralheria/internal/config"
	"github.com/mmynk/serralheria/internal/storage/sqlite"
)

type memoryUploader struct {
	objects map[string][]byte
	failOn  string
}

func (u *memoryUploader) Put(_ context.Context, key string, body []byte) error {
	if key == u.failOn {
		return errors.New("bucket unavailable")
	}
	if u.objects == nil {
		u.objects = make(map[string][]byte)
	}
	u.objects[key] = append([]byte(nil), body...)
	return nil
}

func newStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "backup.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

var backupTime = time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)

func TestRun(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.PutAll(ctx, map[string][]byte{
		"serralheria_quotes":   []byte(`[{"id":"q-1"}]`),
		"serralheria_business": []byte(`{"companyName":"Silva"}`),
	}))

	uploader := &memoryUploader{}
	result, err := Run(ctx, store, uploader, backupTime)
	require.NoError(t, err)

	assert.Equal(t, "serralheria/20240510T143000Z", result.Folder)
	assert.Equal(t, []string{
		"serralheria/20240510T143000Z/serralheria_business.json",
		"serralheria/20240510T143000Z/serralheria_quotes.json",
	}, result.Objects)
	assert.JSONEq(t, `[{"id":"q-1"}]`, string(uploader.objects["serralheria/20240510T143000Z/serralheria_quotes.json"]))
}

func TestRunEmptyStore(t *testing.T) {
	uploader := &memoryUploader{}
	result, err := Run(context.Background(), newStore(t), uploader, backupTime)
	require.NoError(t, err)
	assert.Empty(t, result.Objects)
	assert.Empty(t, uploader.objects)
}

func TestRunUploadFailure(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.PutAll(ctx, map[string][]byte{
		"serralheria_business": []byte(`{}`),
		"serralheria_quotes":   []byte(`[]`),
	}))

	uploader := &memoryUploader{failOn: "serralheria/20240510T143000Z/serralheria_quotes.json"}
	result, err := Run(ctx, store, uploader, backupTime)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serralheria_quotes")
	assert.Len(t, result.Objects, 1, "documents before the failure are reported")
}

func TestNewS3UploaderRequiresBucket(t *testing.T) {
	_, err := NewS3Uploader(context.Background(), &config.Config{AWSRegion: "sa-east-1"})
	assert.ErrorIs(t, err, config.ErrBackupDisabled)
}

func TestNewS3UploaderStaticCredentials(t *testing.T) {
	uploader, err := NewS3Uploader(context.Background(), &config.Config{
		AWSRegion:          "sa-east-1",
		BackupBucket:       "orcamentos",
		AWSAccessKeyID:     "AKIAEXAMPLE",
		AWSSecretAccessKey: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "orcamentos", uploader.bucket)
}
