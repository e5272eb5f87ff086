package scheduleconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/lex4u/BSM-SchedulingService/internal/domain"
	"github.com/lex4u/BSM-SchedulingService/pkg/dbmetrics"
	"github.com/lex4u/BSM-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий конфигурации расписания
// Таблица содержит одну актуальную строку (последняя по id)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает актуальную конфигурацию расписания
func (r *Repository) Get(ctx context.Context) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"open_time",
		"close_time",
		"slot_granularity_minutes",
		"min_booking_notice_minutes",
		"closed_weekdays",
		"created_at",
		"updated_at",
	).
		From("schedule_config").
		OrderBy("id DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.ScheduleConfig
	var closedWeekdays pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.OpenTime,
		&cfg.CloseTime,
		&cfg.SlotGranularityMinutes,
		&cfg.MinBookingNoticeMinutes,
		&closedWeekdays,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	cfg.ClosedWeekdays = make([]int, len(closedWeekdays))
	for i, d := range closedWeekdays {
		cfg.ClosedWeekdays[i] = int(d)
	}
	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// Update обновляет актуальную конфигурацию расписания
func (r *Repository) Update(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	closedWeekdays := make(pq.Int64Array, len(cfg.ClosedWeekdays))
	for i, d := range cfg.ClosedWeekdays {
		closedWeekdays[i] = int64(d)
	}

	query, args, err := psqlbuilder.Update("schedule_config").
		Set("open_time", cfg.OpenTime).
		Set("close_time", cfg.CloseTime).
		Set("slot_granularity_minutes", cfg.SlotGranularityMinutes).
		Set("min_booking_notice_minutes", cfg.MinBookingNoticeMinutes).
		Set("closed_weekdays", closedWeekdays).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": cfg.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	cfg.UpdatedAt = updatedAt.Time
	return cfg, nil
}

// Create создает новую конфигурацию расписания
func (r *Repository) Create(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	closedWeekdays := make(pq.Int64Array, len(cfg.ClosedWeekdays))
	for i, d := range cfg.ClosedWeekdays {
		closedWeekdays[i] = int64(d)
	}

	query, args, err := psqlbuilder.Insert("schedule_config").
		Columns(
			"open_time",
			"close_time",
			"slot_granularity_minutes",
			"min_booking_notice_minutes",
			"closed_weekdays",
		).
		Values(
			cfg.OpenTime,
			cfg.CloseTime,
			cfg.SlotGranularityMinutes,
			cfg.MinBookingNoticeMinutes,
			closedWeekdays,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}
