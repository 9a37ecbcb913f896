package service

import (
	"testing"
	"time"

	"garage-api/modules/shop/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-06-02 is a Monday.
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func weekHours(open, close string) entity.BusinessHours {
	hours := entity.BusinessHours{}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		hours[day] = entity.DayHours{Open: open, Close: close, Enabled: true}
	}
	return hours
}

func TestGenerate_FullDay(t *testing.T) {
	g := NewSlotGenerator()

	slots := g.Generate(weekHours("08:00", "17:00"), 60, 15, monday, nil)

	assert.Equal(t, []string{"08:00", "09:15", "10:30", "11:45", "13:00", "14:15", "15:30"}, slots)
}

func TestGenerate_Deterministic(t *testing.T) {
	g := NewSlotGenerator()
	hours := weekHours("09:00", "12:00")

	first := g.Generate(hours, 30, 0, monday, nil)
	second := g.Generate(hours, 30, 0, monday, nil)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestGenerate_SpacingInvariant(t *testing.T) {
	g := NewSlotGenerator()

	slots := g.Generate(weekHours("08:00", "18:00"), 45, 10, monday, nil)
	require.Greater(t, len(slots), 1)

	for i := 1; i < len(slots); i++ {
		prev, err := time.Parse("15:04", slots[i-1])
		require.NoError(t, err)
		cur, err := time.Parse("15:04", slots[i])
		require.NoError(t, err)
		assert.Equal(t, 55*time.Minute, cur.Sub(prev), "slots %s and %s", slots[i-1], slots[i])
	}
}

func TestGenerate_DisabledDay(t *testing.T) {
	g := NewSlotGenerator()
	hours := weekHours("08:00", "17:00")
	hours["monday"] = entity.DayHours{Open: "08:00", Close: "17:00", Enabled: false}

	assert.Empty(t, g.Generate(hours, 60, 0, monday, nil))
}

func TestGenerate_MissingWeekday(t *testing.T) {
	g := NewSlotGenerator()

	assert.Empty(t, g.Generate(entity.BusinessHours{}, 60, 0, monday, nil))
}

func TestGenerate_ExcludesBookedTimes(t *testing.T) {
	g := NewSlotGenerator()
	booked := map[string]struct{}{
		"09:15": {},
		"13:00": {},
	}

	slots := g.Generate(weekHours("08:00", "17:00"), 60, 15, monday, booked)

	assert.Equal(t, []string{"08:00", "10:30", "11:45", "14:15", "15:30"}, slots)
	assert.NotContains(t, slots, "09:15")
	assert.NotContains(t, slots, "13:00")
}

func TestGenerate_EdgeCases(t *testing.T) {
	g := NewSlotGenerator()

	tests := []struct {
		name     string
		open     string
		close    string
		duration int
		buffer   int
	}{
		{"open equals close", "09:00", "09:00", 30, 0},
		{"duration longer than window", "09:00", "10:00", 90, 0},
		{"zero duration", "09:00", "17:00", 0, 0},
		{"negative duration", "09:00", "17:00", -30, 0},
		{"malformed open", "9am", "17:00", 60, 0},
		{"malformed close", "09:00", "late", 60, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := g.Generate(weekHours(tt.open, tt.close), tt.duration, tt.buffer, monday, nil)
			assert.Empty(t, slots)
		})
	}
}

func TestGenerate_NegativeBufferTreatedAsZero(t *testing.T) {
	g := NewSlotGenerator()

	slots := g.Generate(weekHours("09:00", "11:00"), 60, -15, monday, nil)

	assert.Equal(t, []string{"09:00", "10:00"}, slots)
}

func TestGenerate_AscendingOrder(t *testing.T) {
	g := NewSlotGenerator()

	slots := g.Generate(weekHours("07:30", "19:00"), 20, 5, monday, nil)
	require.NotEmpty(t, slots)

	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1], slots[i])
	}
}
