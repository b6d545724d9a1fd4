package override

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	"github.com/m04kA/SMC-BarbershopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarbershopService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// Repository репозиторий для работы с исключениями из графика
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория исключений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetForBarberAndDate получает исключения, действующие на барбера в указанную дату:
// персональные (barber_id = barberID) и общие для барбершопа (barber_id IS NULL)
func (r *Repository) GetForBarberAndDate(ctx context.Context, barberID int64, date time.Time) ([]*domain.DayOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"override_date",
		"closed",
		"start_time",
		"end_time",
		"reason",
		"created_at",
	).
		From("day_overrides").
		Where(squirrel.Eq{"override_date": date}).
		Where(squirrel.Or{
			squirrel.Eq{"barber_id": barberID},
			squirrel.Eq{"barber_id": nil},
		}).
		OrderBy("barber_id ASC NULLS LAST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForBarberAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForBarberAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.DayOverride, 0)
	for rows.Next() {
		var (
			o         domain.DayOverride
			barberRef sql.NullInt64
			startTime sql.NullString
			endTime   sql.NullString
			reason    sql.NullString
			createdAt sql.NullTime
		)

		err := rows.Scan(
			&o.ID,
			&barberRef,
			&o.Date,
			&o.Closed,
			&startTime,
			&endTime,
			&reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetForBarberAndDate - scan row: %v", ErrScanRow, err)
		}

		if barberRef.Valid {
			o.BarberID = &barberRef.Int64
		}
		if startTime.Valid {
			ts := types.TimeString(startTime.String)
			o.StartTime = &ts
		}
		if endTime.Valid {
			ts := types.TimeString(endTime.String)
			o.EndTime = &ts
		}
		if reason.Valid {
			o.Reason = &reason.String
		}
		o.CreatedAt = createdAt.Time

		overrides = append(overrides, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetForBarberAndDate - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}
