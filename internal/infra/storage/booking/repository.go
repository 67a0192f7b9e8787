package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Fuzuri/CleanIT/internal/domain"
	"github.com/Fuzuri/CleanIT/pkg/dbmetrics"
	"github.com/Fuzuri/CleanIT/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"service_id",
	"pricing_id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"service_date",
	"bedroom_qty",
	"bath_qty",
	"hours",
	"notes",
	"total_price",
	"created_at",
}

// OptionView строка booking_options, соединенная с данными правила ценообразования.
// Используется админ-списком бронирований.
type OptionView struct {
	BookingID int64
	Label     string
	Price     float64
	Quantity  int
}

// Repository репозиторий бронирований (таблицы bookings и booking_options)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"service_id",
			"pricing_id",
			"customer_name",
			"customer_email",
			"customer_phone",
			"service_date",
			"bedroom_qty",
			"bath_qty",
			"hours",
			"notes",
			"total_price",
		).
		Values(
			b.ServiceID,
			b.PricingID,
			b.CustomerName,
			b.CustomerEmail,
			b.CustomerPhone,
			b.Date,
			b.BedroomQty,
			b.BathQty,
			b.Hours,
			b.Notes,
			b.TotalPrice,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	b.CreatedAt = createdAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// List возвращает все бронирования, новые первыми
func (r *Repository) List(ctx context.Context) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Recent возвращает последние limit бронирований для дашборда
func (r *Repository) Recent(ctx context.Context, limit uint64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Recent - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Recent - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountAll возвращает общее количество бронирований
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, psqlbuilder.Select("COUNT(*)").From("bookings"))
}

// CountCreatedSince возвращает количество бронирований, созданных не раньше указанного момента
func (r *Repository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	return r.count(ctx, psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.GtOrEq{"created_at": since}))
}

func (r *Repository) count(ctx context.Context, builder squirrel.SelectBuilder) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: count - build query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: count - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Update перезаписывает редактируемые поля бронирования
func (r *Repository) Update(ctx context.Context, id int64, b *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("customer_name", b.CustomerName).
		Set("customer_email", b.CustomerEmail).
		Set("customer_phone", b.CustomerPhone).
		Set("service_date", b.Date).
		Set("bedroom_qty", b.BedroomQty).
		Set("bath_qty", b.BathQty).
		Set("hours", b.Hours).
		Set("notes", b.Notes).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete удаляет бронирование.
// Связанные payments и booking_options должны быть удалены до вызова
// (см. каскадное удаление в сервисе бронирований).
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ListOptionViews возвращает все строки booking_options с названием и ценой правила
func (r *Repository) ListOptionViews(ctx context.Context) ([]OptionView, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"bo.booking_id",
		"sp.label",
		"sp.price",
		"bo.quantity",
	).
		From("booking_options bo").
		Join("service_pricing sp ON bo.pricing_id = sp.id").
		OrderBy("bo.booking_id ASC, bo.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOptionViews - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOptionViews - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	views := make([]OptionView, 0)
	for rows.Next() {
		var v OptionView
		if err := rows.Scan(&v.BookingID, &v.Label, &v.Price, &v.Quantity); err != nil {
			return nil, fmt.Errorf("%w: ListOptionViews - scan row: %v", ErrScanRow, err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOptionViews - rows error: %v", ErrScanRow, err)
	}

	return views, nil
}

// ListOptionsByBooking возвращает строки booking_options одного бронирования
func (r *Repository) ListOptionsByBooking(ctx context.Context, bookingID int64) ([]domain.BookingOption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "pricing_id", "quantity").
		From("booking_options").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOptionsByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOptionsByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	options := make([]domain.BookingOption, 0)
	for rows.Next() {
		var opt domain.BookingOption
		if err := rows.Scan(&opt.ID, &opt.BookingID, &opt.PricingID, &opt.Quantity); err != nil {
			return nil, fmt.Errorf("%w: ListOptionsByBooking - scan row: %v", ErrScanRow, err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOptionsByBooking - rows error: %v", ErrScanRow, err)
	}

	return options, nil
}

// DeleteOptionsByBooking удаляет строки booking_options бронирования.
// Отсутствие строк не является ошибкой.
func (r *Repository) DeleteOptionsByBooking(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_options").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteOptionsByBooking - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteOptionsByBooking - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// scanBooking сканирует одну строку бронирования
func scanBooking(row interface{ Scan(...interface{}) error }) (*domain.Booking, error) {
	var b domain.Booking
	var pricingID sql.NullInt64
	var notes sql.NullString
	var createdAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.ServiceID,
		&pricingID,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.Date,
		&b.BedroomQty,
		&b.BathQty,
		&b.Hours,
		&notes,
		&b.TotalPrice,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if pricingID.Valid {
		b.PricingID = &pricingID.Int64
	}
	b.Notes = notes.String
	b.CreatedAt = createdAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
