package export_backup

import "context"

type BackupService interface {
	Export(ctx context.Context) (map[string][]map[string]interface{}, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
