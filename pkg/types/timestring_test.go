package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_RoundTrip(t *testing.T) {
	tests := []struct {
		str     string
		minutes int
	}{
		{"00:00", 0},
		{"09:05", 545},
		{"12:30", 750},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.str)
			require.NoError(t, err)

			min, err := ts.Minutes()
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, min)

			back, err := NewTimeStringFromMinutes(min)
			require.NoError(t, err)
			assert.Equal(t, tt.str, back.String())
		})
	}
}

func TestNewTimeStringFromString_Invalid(t *testing.T) {
	for _, s := range []string{"", "9:00", "25:00", "12:60", "12-30", "12:30:00"} {
		t.Run(s, func(t *testing.T) {
			_, err := NewTimeStringFromString(s)
			assert.ErrorIs(t, err, ErrInvalidTimeFormat)
		})
	}
}

func TestNewTimeStringFromMinutes_OutOfRange(t *testing.T) {
	_, err := NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrMinutesOutOfRange)

	_, err = NewTimeStringFromMinutes(MinutesPerDay)
	assert.ErrorIs(t, err, ErrMinutesOutOfRange)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("10:45")

	result, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), result)

	// Выход за полночь - ошибка, интервалы не пересекают сутки
	_, err = TimeString("23:45").AddMinutes(30)
	assert.ErrorIs(t, err, ErrMinutesOutOfRange)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:30").IsAfter("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
}

func TestNewTimeString_FromTime(t *testing.T) {
	moment := time.Date(2026, 3, 1, 14, 7, 59, 0, time.UTC)
	assert.Equal(t, TimeString("14:07"), NewTimeString(moment))
}
