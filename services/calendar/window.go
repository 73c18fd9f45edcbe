package calendar

import (
	"fmt"
	"time"

	"clipbook/models"
)

// NewCalendarDay builds an empty day: every slot of the operating window,
// free.
func NewCalendarDay(date string) models.CalendarDay {
	hours := GenerateTimeSlots()
	slots := make([]models.TimeSlot, len(hours))
	for i, h := range hours {
		slots[i].Hour = h
		slots[i].SetFree()
	}
	return models.CalendarDay{Day: date, DayTime: slots}
}

// NewCalendarWindow builds the fixed-length rolling window of contiguous
// empty days starting at start.
func NewCalendarWindow(start time.Time, days int) []models.CalendarDay {
	window := make([]models.CalendarDay, days)
	for i := 0; i < days; i++ {
		window[i] = NewCalendarDay(FormatCalendarDate(start.AddDate(0, 0, i)))
	}
	return window
}

// daysBetween counts whole calendar days from a to b. The dates are compared
// through UTC so the count stays exact across DST transitions, where a local
// day is not 24 hours long.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// AdvanceWindow re-anchors a window so it starts at today. An on-time daily
// tick advances exactly one day: the oldest day is dropped with whatever it
// held, and a fresh empty day is appended dated one past the previous tail.
// If ticks were missed the window is advanced by however many days it lags;
// when the whole window is stale it is regenerated outright. Days that
// survive the advance keep their bookings and blocks. Returns the new window
// and how many days were advanced.
func AdvanceWindow(window []models.CalendarDay, today time.Time, loc *time.Location) ([]models.CalendarDay, int, error) {
	size := len(window)
	if size == 0 {
		return window, 0, fmt.Errorf("empty calendar window")
	}

	first, err := ParseCalendarDate(window[0].Day, loc)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid window start day %q: %w", window[0].Day, err)
	}
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	lag := daysBetween(first, midnight)
	if lag <= 0 {
		return window, 0, nil
	}
	if lag >= size {
		return NewCalendarWindow(midnight, size), size, nil
	}

	last, err := ParseCalendarDate(window[size-1].Day, loc)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid window tail day %q: %w", window[size-1].Day, err)
	}

	advanced := make([]models.CalendarDay, 0, size)
	advanced = append(advanced, window[lag:]...)
	for i := 1; i <= lag; i++ {
		advanced = append(advanced, NewCalendarDay(FormatCalendarDate(last.AddDate(0, 0, i))))
	}
	return advanced, lag, nil
}
