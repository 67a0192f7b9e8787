package backup

import "context"

// BackupRepository интерфейс репозитория выгрузки таблиц
type BackupRepository interface {
	DumpTable(ctx context.Context, table string) ([]map[string]interface{}, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
