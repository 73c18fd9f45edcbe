package calendar

import (
	"time"

	"clipbook/models"
)

// SchedulePattern maps "{Weekday}-{HH}:00" keys to whether that hour is
// recurring-closed. It seeds new resource calendars with the recurring weekly
// closures already established for existing resources.
type SchedulePattern map[string]bool

// DerivePattern samples a reference calendar and extracts its recurring
// closures. An hour counts as recurring-closed for a weekday only when all
// four of its quarter slots are not-in-schedule; partial blocking within an
// hour never counts. When two sampled days of the same weekday disagree, the
// later-sampled day wins.
func DerivePattern(days []models.CalendarDay, loc *time.Location) SchedulePattern {
	pattern := SchedulePattern{}
	for di := range days {
		date, err := ParseCalendarDate(days[di].Day, loc)
		if err != nil {
			continue
		}
		weekday := WeekdayName(date)

		for _, hour := range GenerateHourlySlots() {
			h := HourOf(hour)
			quarters := 0
			blocked := 0
			for _, q := range QuarterSlotsForHour(h) {
				idx := days[di].SlotIndex(q)
				if idx < 0 {
					continue
				}
				quarters++
				if days[di].DayTime[idx].AppointmentID == models.SentinelNotInSchedule {
					blocked++
				}
			}
			if quarters == 0 {
				continue
			}
			key := PatternKey(weekday, h)
			if blocked == quarters {
				pattern[key] = true
			} else {
				delete(pattern, key)
			}
		}
	}
	return pattern
}

// ApplyPattern stamps the recurring closures onto a calendar. Only slots that
// are free or already not-in-schedule are touched; bookings, day-off and
// out-of-office blocks are never overwritten. An empty pattern is identity.
func ApplyPattern(days []models.CalendarDay, pattern SchedulePattern, loc *time.Location) {
	if len(pattern) == 0 {
		return
	}
	for di := range days {
		date, err := ParseCalendarDate(days[di].Day, loc)
		if err != nil {
			continue
		}
		weekday := WeekdayName(date)

		for _, hour := range GenerateHourlySlots() {
			h := HourOf(hour)
			SetRecurringClosed(&days[di], h, pattern[PatternKey(weekday, h)])
		}
	}
}
