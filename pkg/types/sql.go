package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Scan реализует sql.Scanner
// Принимает строки ("09:00"), байты и time.Time. Значения вида "09:00:00"
// (колонки TIME в PostgreSQL) обрезаются до "HH:MM"
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		*t = truncateToHHMM(v)
		return nil
	case []byte:
		*t = truncateToHHMM(string(v))
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("types.TimeString: cannot scan %T", value)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

func truncateToHHMM(s string) TimeString {
	if len(s) > 5 {
		return TimeString(s[:5])
	}
	return TimeString(s)
}
