package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minutes(h, m int) int {
	return h*60 + m
}

func TestGenerate_FullDayNoBookings(t *testing.T) {
	// 09:00-19:00, шаг 30, услуга 30 минут -> 21 слот от 09:00 до 18:30
	slots := Generate(
		[]Interval{{Start: minutes(9, 0), End: minutes(19, 0)}},
		30, 30, nil, false, 0, 30,
	)

	require.Len(t, slots, 21)
	assert.Equal(t, minutes(9, 0), slots[0])
	assert.Equal(t, minutes(9, 30), slots[1])
	assert.Equal(t, minutes(18, 30), slots[len(slots)-1])
}

func TestGenerate_BookingExcludesSlot(t *testing.T) {
	booked := []BookedInterval{{Start: minutes(10, 0), End: minutes(10, 30)}}

	slots := Generate(
		[]Interval{{Start: minutes(9, 0), End: minutes(19, 0)}},
		30, 30, booked, false, 0, 30,
	)

	require.Len(t, slots, 20)
	assert.NotContains(t, slots, minutes(10, 0))
	assert.Contains(t, slots, minutes(9, 30))
	assert.Contains(t, slots, minutes(10, 30))
}

func TestGenerate_SplitShiftDoesNotBridgeGap(t *testing.T) {
	// Смены 10:00-14:00 и 15:00-20:00, услуга 60 минут, шаг 30:
	// последний утренний слот 13:00 (13:30 закончился бы в 14:30),
	// первый дневной 15:00, слота 14:30 нет
	intervals := []Interval{
		{Start: minutes(10, 0), End: minutes(14, 0)},
		{Start: minutes(15, 0), End: minutes(20, 0)},
	}

	slots := Generate(intervals, 60, 30, nil, false, 0, 30)

	assert.Contains(t, slots, minutes(13, 0))
	assert.NotContains(t, slots, minutes(13, 30))
	assert.NotContains(t, slots, minutes(14, 30))
	assert.Contains(t, slots, minutes(15, 0))

	// Ни один слот не пересекает разрыв между сменами
	for _, s := range slots {
		end := s + 60
		inFirst := s >= minutes(10, 0) && end <= minutes(14, 0)
		inSecond := s >= minutes(15, 0) && end <= minutes(20, 0)
		assert.True(t, inFirst || inSecond, "slot %d bridges the gap between shifts", s)
	}
}

func TestGenerate_LeadTimeToday(t *testing.T) {
	// Сейчас 14:40, буфер 30 минут: минимум 15:10, первый слот сетки - 15:30
	slots := Generate(
		[]Interval{{Start: minutes(9, 0), End: minutes(19, 0)}},
		30, 30, nil, true, minutes(14, 40), 30,
	)

	require.NotEmpty(t, slots)
	assert.Equal(t, minutes(15, 30), slots[0])

	for _, s := range slots {
		assert.GreaterOrEqual(t, s, minutes(14, 40)+30)
	}
}

func TestGenerate_IntervalShorterThanService(t *testing.T) {
	slots := Generate(
		[]Interval{{Start: minutes(9, 0), End: minutes(9, 20)}},
		30, 30, nil, false, 0, 30,
	)

	assert.Empty(t, slots)
}

func TestGenerate_SlotContainment(t *testing.T) {
	intervals := []Interval{
		{Start: minutes(10, 0), End: minutes(13, 45)},
		{Start: minutes(16, 15), End: minutes(21, 0)},
	}

	slots := Generate(intervals, 45, 15, nil, false, 0, 30)

	require.NotEmpty(t, slots)
	for _, s := range slots {
		end := s + 45
		contained := false
		for _, iv := range intervals {
			if s >= iv.Start && end <= iv.End {
				contained = true
			}
		}
		assert.True(t, contained, "slot %d-%d is not contained in any working interval", s, end)
	}
}

func TestGenerate_NoOverlapWithBookings(t *testing.T) {
	booked := []BookedInterval{
		{Start: minutes(9, 30), End: minutes(10, 15)},
		{Start: minutes(12, 0), End: minutes(13, 0)},
		{Start: minutes(17, 45), End: minutes(18, 30)},
	}

	slots := Generate(
		[]Interval{{Start: minutes(9, 0), End: minutes(19, 0)}},
		30, 15, booked, false, 0, 30,
	)

	require.NotEmpty(t, slots)
	for _, s := range slots {
		for _, b := range booked {
			assert.False(t, Overlaps(s, s+30, b.Start, b.End),
				"slot %d overlaps booking %d-%d", s, b.Start, b.End)
		}
	}
}

func TestGenerate_BoundaryTouchingBookingIsNotOverlap(t *testing.T) {
	// Бронирование 10:00-10:30: слоты, заканчивающиеся в 10:00 и
	// начинающиеся в 10:30, остаются доступными
	booked := []BookedInterval{{Start: minutes(10, 0), End: minutes(10, 30)}}

	slots := Generate(
		[]Interval{{Start: minutes(9, 0), End: minutes(12, 0)}},
		30, 30, booked, false, 0, 30,
	)

	assert.Contains(t, slots, minutes(9, 30))
	assert.Contains(t, slots, minutes(10, 30))
	assert.NotContains(t, slots, minutes(10, 0))
}

func TestGenerate_Deterministic(t *testing.T) {
	intervals := []Interval{
		{Start: minutes(9, 0), End: minutes(13, 0)},
		{Start: minutes(14, 0), End: minutes(19, 0)},
	}
	booked := []BookedInterval{{Start: minutes(11, 0), End: minutes(12, 0)}}

	first := Generate(intervals, 30, 30, booked, true, minutes(10, 5), 30)
	second := Generate(intervals, 30, 30, booked, true, minutes(10, 5), 30)

	assert.Equal(t, first, second)
}

func TestGenerate_SortedAscending(t *testing.T) {
	intervals := []Interval{
		{Start: minutes(9, 0), End: minutes(12, 0)},
		{Start: minutes(15, 0), End: minutes(18, 0)},
	}

	slots := Generate(intervals, 30, 30, nil, false, 0, 30)

	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1], slots[i])
	}
}

func TestGenerate_InvalidStepOrDuration(t *testing.T) {
	intervals := []Interval{{Start: minutes(9, 0), End: minutes(19, 0)}}

	assert.Empty(t, Generate(intervals, 0, 30, nil, false, 0, 30))
	assert.Empty(t, Generate(intervals, 30, 0, nil, false, 0, 30))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		a0, a1, b0, b1 int
		want           bool
	}{
		{"partial overlap", 690, 720, 680, 700, true},
		{"contained", 600, 660, 610, 620, true},
		{"touching end to start", 600, 630, 630, 660, false},
		{"touching start to end", 630, 660, 600, 630, false},
		{"disjoint", 600, 630, 700, 730, false},
		{"identical", 600, 630, 600, 630, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a0, tt.a1, tt.b0, tt.b1))
		})
	}
}
