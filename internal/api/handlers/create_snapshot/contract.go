package create_snapshot

import "context"

type BackupService interface {
	Snapshot(ctx context.Context) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
