package backup

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	backupRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/backup"
)

type fakeBackupRepo struct {
	tables map[string][]map[string]interface{}
}

func (f *fakeBackupRepo) DumpTable(_ context.Context, table string) ([]map[string]interface{}, error) {
	return f.tables[table], nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(t *testing.T, maxSnapshots int) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	repo := &fakeBackupRepo{tables: map[string][]map[string]interface{}{
		"services": {{"id": int64(1), "name": "Regular Cleaning"}},
		"bookings": {{"id": int64(1), "customer_name": "Ana Cruz"}},
	}}
	return NewService(repo, fakeTxManager{}, dir, maxSnapshots, nopLogger{}), dir
}

func TestExport_OneKeyPerTable(t *testing.T) {
	svc, _ := newTestService(t, 5)

	doc, err := svc.Export(context.Background())
	require.NoError(t, err)

	// Все таблицы присутствуют в документе, даже пустые
	require.Len(t, doc, len(backupRepo.Tables))
	for _, table := range backupRepo.Tables {
		assert.Contains(t, doc, table)
	}
	require.Len(t, doc["services"], 1)
	assert.Equal(t, "Regular Cleaning", doc["services"][0]["name"])
}

func TestSnapshot_WritesFile(t *testing.T) {
	svc, dir := newTestService(t, 5)

	filename, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Regexp(t, `^backup_\d{8}_\d{6}\.json$`, filename)

	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)

	var doc map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "bookings")
}

func TestListSnapshots_SortedAndLimited(t *testing.T) {
	svc, dir := newTestService(t, 2)

	names := []string{
		"backup_20260801_100000.json",
		"backup_20260802_100000.json",
		"backup_20260803_100000.json",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}
	// Мусорный файл пропускается без ошибки
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	snapshots, err := svc.ListSnapshots()
	require.NoError(t, err)

	require.Len(t, snapshots, 2)
	assert.Equal(t, "backup_20260803_100000.json", snapshots[0].Filename)
	assert.Equal(t, "backup_20260802_100000.json", snapshots[1].Filename)
}

func TestListSnapshots_MissingDir(t *testing.T) {
	repo := &fakeBackupRepo{}
	svc := NewService(repo, fakeTxManager{}, filepath.Join(t.TempDir(), "missing"), 5, nopLogger{})

	snapshots, err := svc.ListSnapshots()
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}

func TestSnapshot_PrunesOldFiles(t *testing.T) {
	svc, dir := newTestService(t, 1)

	old := "backup_20200101_000000.json"
	require.NoError(t, os.WriteFile(filepath.Join(dir, old), []byte("{}"), 0o644))

	filename, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, old))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, filename))
	assert.NoError(t, err)
}
