package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Fuzuri/CleanIT/internal/domain"
	"github.com/Fuzuri/CleanIT/pkg/dbmetrics"
	"github.com/Fuzuri/CleanIT/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"name",
	"description",
	"base_price",
	"image_url",
	"created_at",
}

var ruleColumns = []string{
	"id",
	"service_id",
	"rule_type",
	"room_type",
	"label",
	"price",
	"min_quantity",
	"max_quantity",
}

// Repository репозиторий каталога услуг (таблицы services и service_pricing)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll возвращает все услуги с вложенными правилами ценообразования.
// Правила группируются по service_id с сохранением порядка вставки.
// Услуга без правил возвращается с пустым списком, это не ошибка.
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build services query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute services query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services, err := scanServices(rows)
	if err != nil {
		return nil, err
	}

	rulesQuery, rulesArgs, err := psqlbuilder.Select(ruleColumns...).
		From("service_pricing").
		OrderBy("service_id ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build pricing query: %v", ErrBuildQuery, err)
	}

	ruleRows, err := executor.QueryContext(ctx, rulesQuery, rulesArgs...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute pricing query: %v", ErrExecQuery, err)
	}
	defer ruleRows.Close()

	rules, err := scanRules(ruleRows)
	if err != nil {
		return nil, err
	}

	byService := make(map[int64]*domain.Service, len(services))
	for _, svc := range services {
		byService[svc.ID] = svc
	}
	for _, rule := range rules {
		if svc, ok := byService[rule.ServiceID]; ok {
			svc.Pricing = append(svc.Pricing, rule)
		}
	}

	return services, nil
}

// GetByID возвращает услугу с её правилами ценообразования
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	svc, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	rulesQuery, rulesArgs, err := psqlbuilder.Select(ruleColumns...).
		From("service_pricing").
		Where(squirrel.Eq{"service_id": id}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build pricing query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, rulesQuery, rulesArgs...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute pricing query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules, err := scanRules(rows)
	if err != nil {
		return nil, err
	}
	svc.Pricing = rules

	return svc, nil
}

// CountServices возвращает количество услуг в каталоге
func (r *Repository) CountServices(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From("services").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountServices - build query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountServices - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountRulesByService возвращает количество правил ценообразования услуги
func (r *Repository) CountRulesByService(ctx context.Context, serviceID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("service_pricing").
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountRulesByService - build query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountRulesByService - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// ReplaceAll полностью заменяет каталог: удаляет обе таблицы и вставляет записи заново.
// Услуги вставляются с их собственными id из seed-источника, правила получают
// автоинкрементные id. Вызывать внутри транзакции.
func (r *Repository) ReplaceAll(ctx context.Context, services []domain.Service, rules []domain.PricingRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, table := range []string{"service_pricing", "services"} {
		query, args, err := psqlbuilder.Delete(table).ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceAll - build delete %s: %v", ErrBuildQuery, table, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceAll - delete %s: %v", ErrExecQuery, table, err)
		}
	}

	for i := range services {
		svc := &services[i]
		query, args, err := psqlbuilder.Insert("services").
			Columns("id", "name", "description", "base_price", "image_url").
			Values(svc.ID, svc.Name, svc.Description, svc.BasePrice, svc.ImageURL).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceAll - build insert service: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceAll - insert service id=%d: %v", ErrExecQuery, svc.ID, err)
		}
	}

	// Сдвигаем sequence после вставки явных id
	if len(services) > 0 {
		const fixSeq = "SELECT setval(pg_get_serial_sequence('services', 'id'), (SELECT MAX(id) FROM services))"
		if _, err := executor.ExecContext(ctx, fixSeq); err != nil {
			return fmt.Errorf("%w: ReplaceAll - fix services sequence: %v", ErrExecQuery, err)
		}
	}

	for i := range rules {
		rule := &rules[i]
		query, args, err := psqlbuilder.Insert("service_pricing").
			Columns("service_id", "rule_type", "room_type", "label", "price", "min_quantity", "max_quantity").
			Values(rule.ServiceID, rule.RuleType, rule.RoomType, rule.Label, rule.Price, rule.MinQuantity, rule.MaxQuantity).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceAll - build insert rule: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceAll - insert rule for service id=%d: %v", ErrExecQuery, rule.ServiceID, err)
		}
	}

	return nil
}

// CreateService добавляет новую услугу без правил ценообразования
func (r *Repository) CreateService(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns("name", "description", "base_price", "image_url").
		Values(svc.Name, svc.Description, svc.BasePrice, svc.ImageURL).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&svc.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateService - execute insert: %v", ErrExecQuery, err)
	}
	svc.CreatedAt = createdAt.Time

	return svc, nil
}

// CreateRule добавляет правило ценообразования к услуге
func (r *Repository) CreateRule(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_pricing").
		Columns("service_id", "rule_type", "room_type", "label", "price", "min_quantity", "max_quantity").
		Values(rule.ServiceID, rule.RuleType, rule.RoomType, rule.Label, rule.Price, rule.MinQuantity, rule.MaxQuantity).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateRule - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateRule - execute insert: %v", ErrExecQuery, err)
	}

	return rule, nil
}

// scan helpers

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var svc domain.Service
	var description, imageURL sql.NullString
	var createdAt sql.NullTime

	err := row.Scan(
		&svc.ID,
		&svc.Name,
		&description,
		&svc.BasePrice,
		&imageURL,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	svc.Description = description.String
	svc.ImageURL = imageURL.String
	svc.CreatedAt = createdAt.Time
	svc.Pricing = []domain.PricingRule{}

	return &svc, nil
}

func scanServices(rows *sql.Rows) ([]*domain.Service, error) {
	services := make([]*domain.Service, 0)

	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

func scanRules(rows *sql.Rows) ([]domain.PricingRule, error) {
	rules := make([]domain.PricingRule, 0)

	for rows.Next() {
		var rule domain.PricingRule
		err := rows.Scan(
			&rule.ID,
			&rule.ServiceID,
			&rule.RuleType,
			&rule.RoomType,
			&rule.Label,
			&rule.Price,
			&rule.MinQuantity,
			&rule.MaxQuantity,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRules - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}
