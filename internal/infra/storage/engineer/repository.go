package engineer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/AiroFix-BookingService/internal/domain"
	"github.com/m04kA/AiroFix-BookingService/pkg/psqlbuilder"
)

var engineerColumns = []string{
	"phone",
	"name",
	"location",
	"service_type",
	"notes",
	"is_active",
	"enabled",
	"created_at",
	"updated_at",
}

// Repository репозиторий инженеров (только чтение)
// Справочник ведется вне сервиса бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория инженеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает инженеров, отсортированных по имени
// onlyActive отбрасывает неактивных после нормализации флагов is_active/enabled
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]*domain.Engineer, error) {
	query, args, err := psqlbuilder.Select(engineerColumns...).
		From("engineers").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	engineers := make([]*domain.Engineer, 0)
	for rows.Next() {
		e, err := scanEngineer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		if onlyActive && !e.Active {
			continue
		}
		engineers = append(engineers, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return engineers, nil
}

// GetByPhone получает инженера по нормализованному телефону
func (r *Repository) GetByPhone(ctx context.Context, normalizedPhone string) (*domain.Engineer, error) {
	query, args, err := psqlbuilder.Select(engineerColumns...).
		From("engineers").
		Where(squirrel.Eq{"phone": normalizedPhone}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - build select query: %v", ErrBuildQuery, err)
	}

	e, err := scanEngineer(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEngineerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - scan engineer: %v", ErrScanRow, err)
	}

	return e, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanEngineer сводит is_active и enabled к одному полю Active
func scanEngineer(row rowScanner) (*domain.Engineer, error) {
	var (
		e                 domain.Engineer
		isActive, enabled sql.NullBool
	)

	err := row.Scan(
		&e.Phone,
		&e.Name,
		&e.Location,
		&e.ServiceType,
		&e.Notes,
		&isActive,
		&enabled,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Active = domain.ResolveActive(nullBoolPtr(isActive), nullBoolPtr(enabled))

	return &e, nil
}

func nullBoolPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	return &v.Bool
}
