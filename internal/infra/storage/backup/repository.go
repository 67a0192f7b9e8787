package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/Fuzuri/CleanIT/pkg/dbmetrics"
)

// Tables логические таблицы, попадающие в выгрузку, в порядке следования в документе
var Tables = []string{
	"services",
	"service_pricing",
	"bookings",
	"booking_options",
	"payments",
}

// Repository выгружает таблицы целиком в плоские записи для резервной копии
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория выгрузки
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// DumpTable возвращает все строки таблицы как плоские записи поле-значение.
// Имя таблицы проверяется по списку Tables, значения не параметризуются.
func (r *Repository) DumpTable(ctx context.Context, table string) ([]map[string]interface{}, error) {
	if !knownTable(table) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, "SELECT * FROM "+table+" ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("%w: DumpTable %s: %v", ErrExecQuery, table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: DumpTable %s - columns: %v", ErrScanRow, table, err)
	}

	records := make([]map[string]interface{}, 0)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("%w: DumpTable %s - scan row: %v", ErrScanRow, table, err)
		}

		record := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			record[col] = normalizeValue(values[i])
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: DumpTable %s - rows error: %v", ErrScanRow, table, err)
	}

	return records, nil
}

func knownTable(table string) bool {
	for _, t := range Tables {
		if t == table {
			return true
		}
	}
	return false
}

// normalizeValue приводит драйверные типы к JSON-дружелюбным значениям
func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return v
	}
}
