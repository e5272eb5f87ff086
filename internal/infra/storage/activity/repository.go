package activity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
	"github.com/lex4u/BSM-SchedulingService/pkg/dbmetrics"
	"github.com/lex4u/BSM-SchedulingService/pkg/psqlbuilder"
)

// Repository read-only репозиторий сессий чек-ина и продаж
// Эти таблицы пишет POS; сервис расписания только читает их
// для деривации канонического статуса
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSessionsByAppointment получает все сессии чек-ина записи
func (r *Repository) GetSessionsByAppointment(ctx context.Context, appointmentID int64) ([]domain.CheckInSession, error) {
	byAppointment, err := r.GetSessionsByAppointments(ctx, []int64{appointmentID})
	if err != nil {
		return nil, err
	}
	return byAppointment[appointmentID], nil
}

// GetSessionsByAppointments получает сессии чек-ина для набора записей
// одним запросом (для дневной повестки)
func (r *Repository) GetSessionsByAppointments(ctx context.Context, appointmentIDs []int64) (map[int64][]domain.CheckInSession, error) {
	result := make(map[int64][]domain.CheckInSession)
	if len(appointmentIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"appointment_id",
		"checked_in_at",
		"checked_out_at",
		"status",
		"created_at",
	).
		From("check_in_sessions").
		Where(squirrel.Eq{"appointment_id": appointmentIDs}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSessionsByAppointments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSessionsByAppointments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var session domain.CheckInSession
		var createdAt sql.NullTime

		err := rows.Scan(
			&session.ID,
			&session.AppointmentID,
			&session.CheckedInAt,
			&session.CheckedOutAt,
			&session.Status,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetSessionsByAppointments - scan row: %v", ErrScanRow, err)
		}

		session.CreatedAt = createdAt.Time
		result[session.AppointmentID] = append(result[session.AppointmentID], session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSessionsByAppointments - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// GetSalesByAppointment получает все записи продаж записи
func (r *Repository) GetSalesByAppointment(ctx context.Context, appointmentID int64) ([]domain.SaleRecord, error) {
	byAppointment, err := r.GetSalesByAppointments(ctx, []int64{appointmentID})
	if err != nil {
		return nil, err
	}
	return byAppointment[appointmentID], nil
}

// GetSalesByAppointments получает продажи для набора записей одним запросом
func (r *Repository) GetSalesByAppointments(ctx context.Context, appointmentIDs []int64) (map[int64][]domain.SaleRecord, error) {
	result := make(map[int64][]domain.SaleRecord)
	if len(appointmentIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"appointment_id",
		"status",
		"total",
		"created_at",
	).
		From("sales").
		Where(squirrel.Eq{"appointment_id": appointmentIDs}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSalesByAppointments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSalesByAppointments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var sale domain.SaleRecord
		var createdAt sql.NullTime

		err := rows.Scan(
			&sale.ID,
			&sale.AppointmentID,
			&sale.Status,
			&sale.Total,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetSalesByAppointments - scan row: %v", ErrScanRow, err)
		}

		sale.CreatedAt = createdAt.Time
		result[sale.AppointmentID] = append(result[sale.AppointmentID], sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSalesByAppointments - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
