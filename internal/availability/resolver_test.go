package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarbershopService/internal/domain"
	"github.com/m04kA/SMC-BarbershopService/pkg/ptr"
	"github.com/m04kA/SMC-BarbershopService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Warn(format string, v ...interface{}) {}

func testSettings() *domain.BusinessSettings {
	return &domain.BusinessSettings{
		OpeningTime:         "09:00",
		ClosingTime:         "19:00",
		SlotIntervalMinutes: 30,
		MaxAdvanceDays:      30,
	}
}

func testBarber() *domain.Barber {
	return &domain.Barber{
		ID:       1,
		Name:     "Carlos",
		Active:   true,
		WorkDays: []int{1, 2, 3, 4, 5, 6}, // понедельник - суббота
	}
}

// 2026-09-07 - понедельник
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

// 2026-09-06 - воскресенье
var sunday = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

func TestResolve_InactiveBarberIsClosed(t *testing.T) {
	r := NewResolver(noopLogger{})
	barber := testBarber()
	barber.Active = false

	day := r.Resolve(barber, testSettings(), nil, monday)

	assert.True(t, day.Closed)
}

func TestResolve_NonWorkingWeekdayIsClosed(t *testing.T) {
	r := NewResolver(noopLogger{})

	day := r.Resolve(testBarber(), testSettings(), nil, sunday)

	assert.True(t, day.Closed)
}

func TestResolve_ShopDefaultsWhenBarberHasNoOwnHours(t *testing.T) {
	r := NewResolver(noopLogger{})

	day := r.Resolve(testBarber(), testSettings(), nil, monday)

	require.False(t, day.Closed)
	require.Len(t, day.Intervals, 1)
	assert.Equal(t, Interval{Start: 9 * 60, End: 19 * 60}, day.Intervals[0])
}

func TestResolve_BarberHoursOverrideShopDefaults(t *testing.T) {
	r := NewResolver(noopLogger{})
	barber := testBarber()
	barber.StartTime = "10:00"
	barber.EndTime = "18:00"

	day := r.Resolve(barber, testSettings(), nil, monday)

	require.False(t, day.Closed)
	require.Len(t, day.Intervals, 1)
	assert.Equal(t, Interval{Start: 10 * 60, End: 18 * 60}, day.Intervals[0])
}

func TestResolve_BarberSplitShift(t *testing.T) {
	r := NewResolver(noopLogger{})
	barber := testBarber()
	barber.StartTime = "10:00"
	barber.EndTime = "14:00"
	barber.SecondStartTime = ptr.Ptr(types.TimeString("15:00"))
	barber.SecondEndTime = ptr.Ptr(types.TimeString("20:00"))

	day := r.Resolve(barber, testSettings(), nil, monday)

	require.False(t, day.Closed)
	require.Len(t, day.Intervals, 2)
	assert.Equal(t, Interval{Start: 10 * 60, End: 14 * 60}, day.Intervals[0])
	assert.Equal(t, Interval{Start: 15 * 60, End: 20 * 60}, day.Intervals[1])
}

func TestResolve_ShopSecondShiftUsedWhenBarberHasNone(t *testing.T) {
	r := NewResolver(noopLogger{})
	settings := testSettings()
	settings.ClosingTime = "14:00"
	settings.SecondOpeningTime = ptr.Ptr(types.TimeString("16:00"))
	settings.SecondClosingTime = ptr.Ptr(types.TimeString("20:00"))

	day := r.Resolve(testBarber(), settings, nil, monday)

	require.False(t, day.Closed)
	require.Len(t, day.Intervals, 2)
	assert.Equal(t, Interval{Start: 16 * 60, End: 20 * 60}, day.Intervals[1])
}

func TestResolve_MalformedSecondShiftIsDropped(t *testing.T) {
	r := NewResolver(noopLogger{})
	barber := testBarber()
	barber.StartTime = "10:00"
	barber.EndTime = "14:00"

	tests := []struct {
		name  string
		start types.TimeString
		end   types.TimeString
	}{
		{"starts before primary ends", "13:00", "18:00"},
		{"starts exactly at primary end", "14:00", "18:00"},
		{"start not before end", "18:00", "16:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := *barber
			b.SecondStartTime = ptr.Ptr(tt.start)
			b.SecondEndTime = ptr.Ptr(tt.end)

			day := r.Resolve(&b, testSettings(), nil, monday)

			require.False(t, day.Closed)
			require.Len(t, day.Intervals, 1)
			assert.Equal(t, Interval{Start: 10 * 60, End: 14 * 60}, day.Intervals[0])
		})
	}
}

func TestResolve_ClosedOverrideWins(t *testing.T) {
	r := NewResolver(noopLogger{})
	overrides := []*domain.DayOverride{
		{Date: monday, Closed: true, BarberID: nil},
	}

	day := r.Resolve(testBarber(), testSettings(), overrides, monday)

	assert.True(t, day.Closed)
}

func TestResolve_OverrideReplacesPrimaryShiftOnly(t *testing.T) {
	r := NewResolver(noopLogger{})
	barber := testBarber()
	barber.StartTime = "09:00"
	barber.EndTime = "13:00"
	barber.SecondStartTime = ptr.Ptr(types.TimeString("15:00"))
	barber.SecondEndTime = ptr.Ptr(types.TimeString("20:00"))

	overrides := []*domain.DayOverride{
		{
			Date:      monday,
			BarberID:  ptr.Ptr(int64(1)),
			StartTime: ptr.Ptr(types.TimeString("11:00")),
			EndTime:   ptr.Ptr(types.TimeString("14:00")),
		},
	}

	day := r.Resolve(barber, testSettings(), overrides, monday)

	require.False(t, day.Closed)
	require.Len(t, day.Intervals, 2)
	// Первая смена заменена, вторая остаётся в силе
	assert.Equal(t, Interval{Start: 11 * 60, End: 14 * 60}, day.Intervals[0])
	assert.Equal(t, Interval{Start: 15 * 60, End: 20 * 60}, day.Intervals[1])
}

func TestResolve_BarberOverrideBeatsShopWideOverride(t *testing.T) {
	r := NewResolver(noopLogger{})
	overrides := []*domain.DayOverride{
		{Date: monday, BarberID: nil, Closed: true},
		{
			Date:      monday,
			BarberID:  ptr.Ptr(int64(1)),
			StartTime: ptr.Ptr(types.TimeString("12:00")),
			EndTime:   ptr.Ptr(types.TimeString("16:00")),
		},
	}

	day := r.Resolve(testBarber(), testSettings(), overrides, monday)

	require.False(t, day.Closed)
	require.Len(t, day.Intervals, 1)
	assert.Equal(t, Interval{Start: 12 * 60, End: 16 * 60}, day.Intervals[0])
}

func TestResolve_ShopWideOverrideAppliesToAllBarbers(t *testing.T) {
	r := NewResolver(noopLogger{})
	overrides := []*domain.DayOverride{
		{
			Date:      monday,
			BarberID:  nil,
			StartTime: ptr.Ptr(types.TimeString("10:00")),
			EndTime:   ptr.Ptr(types.TimeString("15:00")),
		},
	}

	day := r.Resolve(testBarber(), testSettings(), overrides, monday)

	require.False(t, day.Closed)
	require.Len(t, day.Intervals, 1)
	assert.Equal(t, Interval{Start: 10 * 60, End: 15 * 60}, day.Intervals[0])
}

func TestResolve_MalformedPrimaryShiftIsSkipped(t *testing.T) {
	r := NewResolver(noopLogger{})
	barber := testBarber()
	barber.StartTime = "19:00"
	barber.EndTime = "09:00"

	day := r.Resolve(barber, testSettings(), nil, monday)

	require.False(t, day.Closed)
	assert.Empty(t, day.Intervals)
}

func TestWeekdayOf_NoonAnchored(t *testing.T) {
	// Полуночная дата остаётся тем же днём недели вне зависимости от пояса
	loc, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)
	assert.Equal(t, time.Monday, WeekdayOf(date))

	// И для даты, распарсенной в UTC в полночь
	utcDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Monday, WeekdayOf(utcDate))
}

func TestFromBookings_SkipsInactive(t *testing.T) {
	bookings := []*domain.Booking{
		{StartTime: "10:00", EndTime: "10:30", Status: domain.StatusConfirmed},
		{StartTime: "11:00", EndTime: "11:30", Status: domain.StatusCancelled},
		{StartTime: "12:00", EndTime: "12:30", Status: domain.StatusNoShow},
		{StartTime: "13:00", EndTime: "13:30", Status: domain.StatusPending},
	}

	booked := FromBookings(bookings)

	require.Len(t, booked, 2)
	assert.Equal(t, BookedInterval{Start: 10 * 60, End: 10*60 + 30}, booked[0])
	assert.Equal(t, BookedInterval{Start: 13 * 60, End: 13*60 + 30}, booked[1])
}
