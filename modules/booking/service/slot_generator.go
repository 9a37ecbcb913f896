package service

import (
	"fmt"
	"strings"
	"time"

	"garage-api/modules/shop/entity"
)

// SlotGenerator computes the offerable start times for one day. It is a pure
// function of its inputs: no clock, no storage, no randomness. Date-range
// gating against "today" is the caller's job.
type SlotGenerator struct{}

func NewSlotGenerator() *SlotGenerator {
	return &SlotGenerator{}
}

// Generate walks the configured window for the weekday of date, emitting a
// slot every slotDuration+bufferTime minutes while a full slot still fits
// before close, and drops any start time present in booked. Malformed
// configuration yields an empty list, never an error.
func (g *SlotGenerator) Generate(
	hours entity.BusinessHours,
	slotDuration int,
	bufferTime int,
	date time.Time,
	booked map[string]struct{},
) []string {
	slots := []string{}

	day, ok := hours[strings.ToLower(date.Weekday().String())]
	if !ok || !day.Enabled {
		return slots
	}

	open, err := minutesOfDay(day.Open)
	if err != nil {
		return slots
	}
	close, err := minutesOfDay(day.Close)
	if err != nil {
		return slots
	}

	if slotDuration <= 0 {
		return slots
	}
	if bufferTime < 0 {
		bufferTime = 0
	}

	step := slotDuration + bufferTime
	for offset := open; offset+slotDuration <= close; offset += step {
		t := formatMinutes(offset)
		if _, taken := booked[t]; taken {
			continue
		}
		slots = append(slots, t)
	}

	return slots
}

func minutesOfDay(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
