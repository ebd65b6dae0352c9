package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocalTime(t *testing.T) {
	got, err := ParseLocalTime("09:30")
	require.NoError(t, err)
	assert.Equal(t, NewLocalTime(9, 30), got)
	assert.Equal(t, "09:30", got.String())

	got, err = ParseLocalTime("14:00:00")
	require.NoError(t, err)
	assert.Equal(t, NewLocalTime(14, 0), got)

	_, err = ParseLocalTime("25:00")
	assert.Error(t, err)

	_, err = ParseLocalTime("abc")
	assert.Error(t, err)
}

func TestLocalTimeArithmetic(t *testing.T) {
	start := NewLocalTime(17, 30)

	assert.Equal(t, NewLocalTime(18, 0), start.Add(30))
	assert.Equal(t, NewLocalTime(18, 30), start.Add(60))
	assert.True(t, start.Before(NewLocalTime(18, 0)))
	assert.True(t, NewLocalTime(18, 0).After(start))
}

func TestParseLocalDate(t *testing.T) {
	d, err := ParseLocalDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year)
	assert.Equal(t, "2026-03-15", d.String())

	_, err = ParseLocalDate("15/03/2026")
	assert.Error(t, err)
}

func TestIntervalOverlaps(t *testing.T) {
	base := Interval{Start: NewLocalTime(10, 0), End: NewLocalTime(11, 0)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", Interval{NewLocalTime(10, 0), NewLocalTime(11, 0)}, true},
		{"contained", Interval{NewLocalTime(10, 15), NewLocalTime(10, 45)}, true},
		{"partial left", Interval{NewLocalTime(9, 30), NewLocalTime(10, 30)}, true},
		{"partial right", Interval{NewLocalTime(10, 30), NewLocalTime(11, 30)}, true},
		{"touching before", Interval{NewLocalTime(9, 0), NewLocalTime(10, 0)}, false},
		{"touching after", Interval{NewLocalTime(11, 0), NewLocalTime(12, 0)}, false},
		{"disjoint", Interval{NewLocalTime(14, 0), NewLocalTime(15, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			// a regra é simétrica
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func defaultHours() BusinessHours {
	return BusinessHours{
		Open:  NewLocalTime(9, 0),
		Close: NewLocalTime(18, 0),
		Step:  30,
	}
}

func TestSlots_FullGridWhenFree(t *testing.T) {
	slots := defaultHours().Slots(30, nil)

	// 09:00 até 17:30, de 30 em 30
	require.Len(t, slots, 18)
	assert.Equal(t, NewLocalTime(9, 0), slots[0].Time)
	assert.Equal(t, NewLocalTime(17, 30), slots[17].Time)

	for _, s := range slots {
		assert.True(t, s.Available, "slot %s", s.Time)
	}
}

func TestSlots_LongServiceDropsTail(t *testing.T) {
	slots := defaultHours().Slots(60, nil)

	// 17:30 + 60min passaria das 18:00; último candidato é 17:00.
	// Terminar exatamente às 18:00 é permitido.
	require.Len(t, slots, 17)
	assert.Equal(t, NewLocalTime(17, 0), slots[len(slots)-1].Time)
}

func TestSlots_BusyIntervalBlocksOverlapping(t *testing.T) {
	busy := []Interval{
		{Start: NewLocalTime(10, 0), End: NewLocalTime(11, 0)},
	}

	slots := defaultHours().Slots(30, busy)
	require.Len(t, slots, 18)

	byTime := map[LocalTime]bool{}
	for _, s := range slots {
		byTime[s.Time] = s.Available
	}

	assert.True(t, byTime[NewLocalTime(9, 30)])
	assert.False(t, byTime[NewLocalTime(10, 0)])
	assert.False(t, byTime[NewLocalTime(10, 30)])
	assert.True(t, byTime[NewLocalTime(11, 0)])
}

func TestSlots_LongServiceBlockedByLaterBusy(t *testing.T) {
	// serviço de 60 min começando 09:30 invadiria o intervalo das 10:00
	busy := []Interval{
		{Start: NewLocalTime(10, 0), End: NewLocalTime(10, 30)},
	}

	slots := defaultHours().Slots(60, busy)

	byTime := map[LocalTime]bool{}
	for _, s := range slots {
		byTime[s.Time] = s.Available
	}

	assert.True(t, byTime[NewLocalTime(9, 0)])
	assert.False(t, byTime[NewLocalTime(9, 30)])
	assert.False(t, byTime[NewLocalTime(10, 0)])
	assert.True(t, byTime[NewLocalTime(10, 30)])
}

func TestSlots_Deterministic(t *testing.T) {
	busy := []Interval{
		{Start: NewLocalTime(14, 0), End: NewLocalTime(15, 0)},
	}

	first := defaultHours().Slots(30, busy)
	second := defaultHours().Slots(30, busy)

	assert.Equal(t, first, second)
}
