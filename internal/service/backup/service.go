package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	backupRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/backup"
)

const (
	snapshotPrefix     = "backup_"
	snapshotExt        = ".json"
	snapshotTimeFormat = "20060102_150405"
)

// SnapshotInfo описание одного файла снапшота на диске
type SnapshotInfo struct {
	Filename  string `json:"filename"`
	CreatedAt string `json:"createdAt"`
	SizeBytes int64  `json:"sizeBytes"`
}

// Service сервис резервного копирования: выгрузка всех таблиц одним
// JSON документом и снапшоты на диске
type Service struct {
	repo         BackupRepository
	txManager    TransactionManager
	dir          string
	maxSnapshots int
	logger       Logger
}

// NewService создает новый экземпляр сервиса резервного копирования
func NewService(repo BackupRepository, txManager TransactionManager, dir string, maxSnapshots int, logger Logger) *Service {
	return &Service{
		repo:         repo,
		txManager:    txManager,
		dir:          dir,
		maxSnapshots: maxSnapshots,
		logger:       logger,
	}
}

// Export выгружает все таблицы одним документом, ключ на таблицу.
// Таблицы читаются в одной read-only транзакции, документ консистентен
// на момент начала выгрузки.
func (s *Service) Export(ctx context.Context) (map[string][]map[string]interface{}, error) {
	doc := make(map[string][]map[string]interface{}, len(backupRepo.Tables))

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		for _, table := range backupRepo.Tables {
			records, err := s.repo.DumpTable(txCtx, table)
			if err != nil {
				return err
			}
			doc[table] = records
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Export: failed to dump tables: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}

	return doc, nil
}

// Snapshot выгружает все таблицы и пишет документ в файл
// backup_<timestamp>.json в каталоге снапшотов. Возвращает имя файла.
// Снапшоты сверх лимита удаляются, начиная с самых старых.
func (s *Service) Snapshot(ctx context.Context) (string, error) {
	doc, err := s.Export(ctx)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.logger.Error("Snapshot: failed to marshal export: %v", err)
		return "", fmt.Errorf("%w: marshal: %v", ErrSnapshotIO, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error("Snapshot: failed to create snapshot dir %s: %v", s.dir, err)
		return "", fmt.Errorf("%w: mkdir: %v", ErrSnapshotIO, err)
	}

	filename := snapshotPrefix + time.Now().Format(snapshotTimeFormat) + snapshotExt
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error("Snapshot: failed to write %s: %v", path, err)
		return "", fmt.Errorf("%w: write: %v", ErrSnapshotIO, err)
	}

	s.logger.Info("Snapshot: wrote %s (%d bytes)", filename, len(data))
	s.pruneOldSnapshots()

	return filename, nil
}

// ListSnapshots возвращает снапшоты на диске от новых к старым,
// не больше настроенного лимита. Файлы с именем не по формату
// пропускаются с предупреждением в лог.
func (s *Service) ListSnapshots() ([]SnapshotInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SnapshotInfo{}, nil
		}
		s.logger.Error("ListSnapshots: failed to read dir %s: %v", s.dir, err)
		return nil, fmt.Errorf("%w: read dir: %v", ErrSnapshotIO, err)
	}

	snapshots := make([]SnapshotInfo, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		createdAt, ok := parseSnapshotName(entry.Name())
		if !ok {
			s.logger.Warn("ListSnapshots: skipping unrecognized file %s", entry.Name())
			continue
		}

		info, err := entry.Info()
		if err != nil {
			s.logger.Warn("ListSnapshots: failed to stat %s: %v", entry.Name(), err)
			continue
		}

		snapshots = append(snapshots, SnapshotInfo{
			Filename:  entry.Name(),
			CreatedAt: createdAt.Format("2006-01-02 15:04:05"),
			SizeBytes: info.Size(),
		})
	}

	// Имена содержат сортируемый timestamp
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Filename > snapshots[j].Filename
	})

	if len(snapshots) > s.maxSnapshots {
		snapshots = snapshots[:s.maxSnapshots]
	}

	return snapshots, nil
}

// pruneOldSnapshots удаляет файлы снапшотов сверх лимита, best-effort
func (s *Service) pruneOldSnapshots() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Warn("pruneOldSnapshots: failed to read dir %s: %v", s.dir, err)
		return
	}

	names := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := parseSnapshotName(entry.Name()); ok {
			names = append(names, entry.Name())
		}
	}

	if len(names) <= s.maxSnapshots {
		return
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	for _, name := range names[s.maxSnapshots:] {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			s.logger.Warn("pruneOldSnapshots: failed to remove %s: %v", name, err)
			continue
		}
		s.logger.Info("pruneOldSnapshots: removed %s", name)
	}
}

func parseSnapshotName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, snapshotExt) {
		return time.Time{}, false
	}

	stamp := strings.TrimSuffix(strings.TrimPrefix(name, snapshotPrefix), snapshotExt)
	createdAt, err := time.ParseInLocation(snapshotTimeFormat, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}

	return createdAt, true
}
