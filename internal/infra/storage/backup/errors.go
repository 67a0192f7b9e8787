package backup

import "errors"

var (
	// ErrUnknownTable возвращается при попытке выгрузить таблицу не из списка
	ErrUnknownTable = errors.New("backup.repository: unknown table")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("backup.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("backup.repository: failed to scan row")
)
