package settings

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	"github.com/m04kA/SMC-BarbershopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarbershopService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

// Ключи настроек в таблице settings
const (
	keyOpeningTime       = "opening_time"
	keyClosingTime       = "closing_time"
	keySecondOpeningTime = "opening_time_2"
	keySecondClosingTime = "closing_time_2"
	keySlotInterval      = "slot_interval_minutes"
	keyMaxAdvanceDays    = "max_advance_days"
)

var settingsKeys = []string{
	keyOpeningTime,
	keyClosingTime,
	keySecondOpeningTime,
	keySecondClosingTime,
	keySlotInterval,
	keyMaxAdvanceDays,
}

// Repository репозиторий настроек барбершопа (таблица ключ-значение)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get читает настройки барбершопа
// Отсутствующие или нечитаемые значения заменяются дефолтами: настройки
// редактируются администратором, и кривое значение не должно ронять бронирование
func (r *Repository) Get(ctx context.Context) (*domain.BusinessSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("key", "value").
		From("settings").
		Where(squirrel.Eq{"key": settingsKeys}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Get - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%w: Get - scan row: %v", ErrScanRow, err)
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Get - rows error: %v", ErrScanRow, err)
	}

	return buildSettings(values), nil
}

func buildSettings(values map[string]string) *domain.BusinessSettings {
	settings := &domain.BusinessSettings{
		OpeningTime:         timeOrDefault(values[keyOpeningTime], domain.DefaultOpeningTime),
		ClosingTime:         timeOrDefault(values[keyClosingTime], domain.DefaultClosingTime),
		SlotIntervalMinutes: intOrDefault(values[keySlotInterval], domain.DefaultSlotIntervalMinutes),
		MaxAdvanceDays:      intOrDefault(values[keyMaxAdvanceDays], domain.DefaultMaxAdvanceDays),
	}

	// Вторая смена барбершопа - только если заданы обе границы
	secondOpen, openErr := types.NewTimeStringFromString(values[keySecondOpeningTime])
	secondClose, closeErr := types.NewTimeStringFromString(values[keySecondClosingTime])
	if openErr == nil && closeErr == nil {
		settings.SecondOpeningTime = &secondOpen
		settings.SecondClosingTime = &secondClose
	}

	return settings
}

func timeOrDefault(value, fallback string) types.TimeString {
	ts, err := types.NewTimeStringFromString(value)
	if err != nil {
		return types.TimeString(fallback)
	}
	return ts
}

func intOrDefault(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
