package backup

import "errors"

var (
	// ErrExport возвращается при ошибке выгрузки данных из БД
	ErrExport = errors.New("backup service: failed to export data")

	// ErrSnapshotIO возвращается при ошибке записи или чтения файлов снапшотов
	ErrSnapshotIO = errors.New("backup service: snapshot io error")
)
