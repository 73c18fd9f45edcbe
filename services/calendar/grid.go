package calendar

import (
	"fmt"
	"time"
)

// The operating window is fixed: slots run 08:00 through 19:45 in 15-minute
// steps (48 per day). Customer-facing bookings are offered on the narrower
// 09:00-19:00 window; the outer hours stay administrative.
const (
	GridOpenHour     = 8
	GridCloseHour    = 20
	BookingOpenHour  = 9
	BookingCloseHour = 19
	SlotsPerHour     = 4
)

// DateLayout is the day key used both by the UI calendar and the stored
// documents; it is the join key between the two.
const DateLayout = "2006/01/02"

// Stored pattern keys carry Spanish weekday names; existing documents were
// written by the original deployment and must keep decoding.
var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "Domingo",
	time.Monday:    "Lunes",
	time.Tuesday:   "Martes",
	time.Wednesday: "Miércoles",
	time.Thursday:  "Jueves",
	time.Friday:    "Viernes",
	time.Saturday:  "Sábado",
}

// GenerateTimeSlots produces every "HH:MM" slot of the operating window, in
// order.
func GenerateTimeSlots() []string {
	slots := make([]string, 0, (GridCloseHour-GridOpenHour)*SlotsPerHour)
	for h := GridOpenHour; h < GridCloseHour; h++ {
		for _, m := range []string{"00", "15", "30", "45"} {
			slots = append(slots, fmt.Sprintf("%02d:%s", h, m))
		}
	}
	return slots
}

// GenerateBookingSlots produces the customer-facing subset of the grid.
func GenerateBookingSlots() []string {
	slots := make([]string, 0, (BookingCloseHour-BookingOpenHour)*SlotsPerHour)
	for h := BookingOpenHour; h < BookingCloseHour; h++ {
		for _, m := range []string{"00", "15", "30", "45"} {
			slots = append(slots, fmt.Sprintf("%02d:%s", h, m))
		}
	}
	return slots
}

// GenerateHourlySlots produces only the ":00"-aligned slots, used for the
// whole-hour admin toggles.
func GenerateHourlySlots() []string {
	slots := make([]string, 0, GridCloseHour-GridOpenHour)
	for h := GridOpenHour; h < GridCloseHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return slots
}

// HourOf extracts the "HH" prefix of a slot string.
func HourOf(slot string) string {
	if len(slot) < 2 {
		return slot
	}
	return slot[:2]
}

// QuarterSlotsForHour returns the four quarter slots belonging to an hour
// given as "HH".
func QuarterSlotsForHour(hour string) []string {
	return []string{hour + ":00", hour + ":15", hour + ":30", hour + ":45"}
}

// FormatCalendarDate renders the canonical "YYYY/MM/DD" day key from the
// local calendar date of t. The time is never converted to UTC first; that
// is what used to shift day keys around midnight.
func FormatCalendarDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseCalendarDate parses a "YYYY/MM/DD" day key at midnight in loc.
func ParseCalendarDate(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, key, loc)
}

// WeekdayName returns the stored-format weekday name for t.
func WeekdayName(t time.Time) string {
	return weekdayNames[t.Weekday()]
}

// PatternKey builds the "{Weekday}-{HH}:00" key used by schedule patterns.
func PatternKey(weekday, hour string) string {
	return fmt.Sprintf("%s-%s:00", weekday, hour)
}
