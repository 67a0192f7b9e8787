package payment

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

var paymentColumns = []string{
	"id",
	"booking_id",
	"street_address",
	"city",
	"province",
	"region",
	"payment_method",
	"payment_status",
	"amount",
	"paid_at",
	"created_at",
}

// Repository репозиторий платежей (таблица payments, booking_id уникален)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBookingID получает платеж бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan payment: %v", ErrScanRow, err)
	}

	return p, nil
}

// ListAll возвращает все платежи
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAll - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAll - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}

// Upsert сохраняет платежные данные бронирования одним атомарным запросом:
// вставка при отсутствии строки, иначе обновление на месте (ключ - booking_id).
// payment_status выставляется в 'pending' значением по умолчанию ТОЛЬКО при вставке;
// повторная отправка формы статус не трогает. Никакого check-then-act.
func (r *Repository) Upsert(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"booking_id",
			"street_address",
			"city",
			"province",
			"region",
			"payment_method",
			"amount",
		).
		Values(
			p.BookingID,
			p.StreetAddress,
			p.City,
			p.Province,
			p.Region,
			p.PaymentMethod,
			p.Amount,
		).
		Suffix(`ON CONFLICT (booking_id) DO UPDATE SET
			street_address = EXCLUDED.street_address,
			city = EXCLUDED.city,
			province = EXCLUDED.province,
			region = EXCLUDED.region,
			payment_method = EXCLUDED.payment_method,
			amount = EXCLUDED.amount
		RETURNING id, payment_status, paid_at, created_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var paidAt sql.NullTime
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.PaymentStatus,
		&paidAt,
		&createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	if paidAt.Valid {
		p.PaidAt = &paidAt.Time
	}
	p.CreatedAt = createdAt.Time

	return p, nil
}

// UpdateStatus перезаписывает статус платежа бронирования.
// paidAt проставляется при отметке paid и очищается для остальных статусов.
func (r *Repository) UpdateStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus, paidAt *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("payment_status", status).
		Set("paid_at", paidAt).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// DeleteByBookingID удаляет платеж бронирования.
// Отсутствие платежа не является ошибкой (бронирование могло не дойти до оплаты).
func (r *Repository) DeleteByBookingID(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByBookingID - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByBookingID - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// SumAmountByStatus возвращает сумму платежей в указанном статусе (выручка дашборда)
func (r *Repository) SumAmountByStatus(ctx context.Context, status domain.PaymentStatus) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(amount), 0)").
		From("payments").
		Where(squirrel.Eq{"payment_status": status}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SumAmountByStatus - build query: %v", ErrBuildQuery, err)
	}

	var sum float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%w: SumAmountByStatus - scan sum: %v", ErrScanRow, err)
	}

	return sum, nil
}

// scanPayment сканирует одну строку платежа
func scanPayment(row interface{ Scan(...interface{}) error }) (*domain.Payment, error) {
	var p domain.Payment
	var paidAt sql.NullTime
	var createdAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.StreetAddress,
		&p.City,
		&p.Province,
		&p.Region,
		&p.PaymentMethod,
		&p.PaymentStatus,
		&p.Amount,
		&paidAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if paidAt.Valid {
		p.PaidAt = &paidAt.Time
	}
	p.CreatedAt = createdAt.Time

	return &p, nil
}
