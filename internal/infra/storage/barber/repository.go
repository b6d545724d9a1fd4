package barber

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	"github.com/m04kA/SMC-BarbershopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarbershopService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

var barberColumns = []string{
	"id",
	"name",
	"email",
	"phone",
	"photo_url",
	"start_time",
	"end_time",
	"second_start_time",
	"second_end_time",
	"work_days",
	"active",
	"color",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с барберами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория барберов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает барбера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(barberColumns...).
		From("barbers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	barber, err := scanBarber(row)
	if err == sql.ErrNoRows {
		return nil, ErrBarberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan barber: %v", ErrScanRow, err)
	}

	return barber, nil
}

// ListActive получает всех активных барберов в стабильном порядке (по ID)
// Стабильный порядок важен для детерминизма поиска ближайших слотов
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(barberColumns...).
		From("barbers").
		Where(squirrel.Eq{"active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	barbers := make([]*domain.Barber, 0)
	for rows.Next() {
		barber, err := scanBarber(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		barbers = append(barbers, barber)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return barbers, nil
}

// scanner общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBarber(s scanner) (*domain.Barber, error) {
	var (
		barber          domain.Barber
		email           sql.NullString
		phone           sql.NullString
		photoURL        sql.NullString
		startTime       sql.NullString
		endTime         sql.NullString
		secondStartTime sql.NullString
		secondEndTime   sql.NullString
		workDays        pq.Int64Array
		createdAt       sql.NullTime
		updatedAt       sql.NullTime
	)

	err := s.Scan(
		&barber.ID,
		&barber.Name,
		&email,
		&phone,
		&photoURL,
		&startTime,
		&endTime,
		&secondStartTime,
		&secondEndTime,
		&workDays,
		&barber.Active,
		&barber.Color,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		barber.Email = &email.String
	}
	if phone.Valid {
		barber.Phone = &phone.String
	}
	if photoURL.Valid {
		barber.PhotoURL = &photoURL.String
	}
	if startTime.Valid {
		barber.StartTime = types.TimeString(startTime.String)
	}
	if endTime.Valid {
		barber.EndTime = types.TimeString(endTime.String)
	}
	if secondStartTime.Valid {
		ts := types.TimeString(secondStartTime.String)
		barber.SecondStartTime = &ts
	}
	if secondEndTime.Valid {
		ts := types.TimeString(secondEndTime.String)
		barber.SecondEndTime = &ts
	}

	barber.WorkDays = make([]int, len(workDays))
	for i, d := range workDays {
		barber.WorkDays[i] = int(d)
	}

	barber.CreatedAt = createdAt.Time
	barber.UpdatedAt = updatedAt.Time

	return &barber, nil
}
