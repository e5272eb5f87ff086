package directory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
	"github.com/lex4u/BSM-SchedulingService/pkg/dbmetrics"
	"github.com/lex4u/BSM-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий справочников: мастера, услуги, клиенты
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetStaffByID получает мастера по ID
func (r *Repository) GetStaffByID(ctx context.Context, id int64) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"active",
		"created_at",
		"updated_at",
	).
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffByID - build select query: %v", ErrBuildQuery, err)
	}

	var staff domain.Staff
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&staff.ID,
		&staff.Name,
		&staff.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffByID - scan staff: %v", ErrScanRow, err)
	}

	staff.CreatedAt = createdAt.Time
	staff.UpdatedAt = updatedAt.Time

	return &staff, nil
}

// ListActiveStaff получает всех активных мастеров
// Используется пикером бронирования
func (r *Repository) ListActiveStaff(ctx context.Context) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"active",
		"created_at",
		"updated_at",
	).
		From("staff").
		Where(squirrel.Eq{"active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staffList := make([]*domain.Staff, 0)
	for rows.Next() {
		var staff domain.Staff
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&staff.ID,
			&staff.Name,
			&staff.Active,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveStaff - scan row: %v", ErrScanRow, err)
		}

		staff.CreatedAt = createdAt.Time
		staff.UpdatedAt = updatedAt.Time
		staffList = append(staffList, &staff)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveStaff - rows error: %v", ErrScanRow, err)
	}

	return staffList, nil
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"price",
		"duration_minutes",
		"active",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Name,
		&service.Price,
		&service.DurationMinutes,
		&service.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}

// GetClientByID получает клиента по ID
func (r *Repository) GetClientByID(ctx context.Context, id int64) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"phone",
		"created_at",
		"updated_at",
	).
		From("clients").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetClientByID - build select query: %v", ErrBuildQuery, err)
	}

	var client domain.Client
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&client.ID,
		&client.Name,
		&client.Phone,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetClientByID - scan client: %v", ErrScanRow, err)
	}

	client.CreatedAt = createdAt.Time
	client.UpdatedAt = updatedAt.Time

	return &client, nil
}
