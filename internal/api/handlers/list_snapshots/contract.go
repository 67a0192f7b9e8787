package list_snapshots

import (
	backupService "github.com/Fuzuri/CleanIT/internal/service/backup"
)

type BackupService interface {
	ListSnapshots() ([]backupService.SnapshotInfo, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
