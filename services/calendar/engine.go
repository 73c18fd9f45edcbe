package calendar

import (
	"fmt"

	"clipbook/models"

	"github.com/google/uuid"
)

// The slot state engine. Every function here transforms one CalendarDay in
// memory; persistence is the orchestrator's job, so all mutations stay
// all-or-nothing at the slot-group level.

// BookSlots occupies duration contiguous slots starting at startHour with a
// freshly generated appointment ID. Nothing is written unless every required
// slot is free.
func BookSlots(day *models.CalendarDay, startHour, serviceName, clientID string, duration int) (string, error) {
	if duration < 1 {
		return "", NewSlotUnavailableError(fmt.Sprintf("invalid service duration %d", duration))
	}
	start := day.SlotIndex(startHour)
	if start < 0 {
		return "", NewSlotUnavailableError(fmt.Sprintf("no slot at %s on %s", startHour, day.Day))
	}
	if start+duration > len(day.DayTime) {
		return "", NewSlotUnavailableError(fmt.Sprintf("service does not fit before closing at %s", startHour))
	}
	for i := start; i < start+duration; i++ {
		state, err := day.DayTime[i].State()
		if err != nil {
			return "", NewDataInconsistencyError(fmt.Sprintf("corrupt slot %s on %s", day.DayTime[i].Hour, day.Day))
		}
		if state != models.SlotFree {
			return "", NewSlotUnavailableError(fmt.Sprintf("slot %s on %s is not free", day.DayTime[i].Hour, day.Day))
		}
	}

	appointmentID := uuid.New().String()
	for i := start; i < start+duration; i++ {
		day.DayTime[i].SetBooking(appointmentID, clientID, serviceName)
	}
	return appointmentID, nil
}

// CancelBooking frees every slot holding the given appointment ID. An unknown
// ID is a no-op, not an error. The special markers are never treated as
// appointment IDs here; cancelling them would wipe administrative blocks.
func CancelBooking(day *models.CalendarDay, appointmentID string) int {
	if appointmentID == models.SentinelFree ||
		appointmentID == models.SentinelDayOff ||
		appointmentID == models.SentinelOutOfOffice ||
		appointmentID == models.SentinelNotInSchedule {
		return 0
	}
	freed := 0
	for i := range day.DayTime {
		if day.DayTime[i].AppointmentID == appointmentID {
			day.DayTime[i].SetFree()
			freed++
		}
	}
	return freed
}

// SetHourAvailability toggles the four quarter slots of an hour between free
// and out-of-office. Slots holding a real booking are left untouched: closing
// an hour never cancels existing appointments.
func SetHourAvailability(day *models.CalendarDay, hour string, available bool) {
	for _, q := range QuarterSlotsForHour(HourOf(hour)) {
		idx := day.SlotIndex(q)
		if idx < 0 {
			continue
		}
		if day.DayTime[idx].IsBooked() {
			continue
		}
		if available {
			day.DayTime[idx].SetFree()
		} else {
			day.DayTime[idx].SetMarker(models.SentinelOutOfOffice)
		}
	}
}

// SetDayOff marks or clears the whole day. The overwrite is unconditional,
// bookings included; the orchestration layer is responsible for rejecting the
// call while live appointments exist.
func SetDayOff(day *models.CalendarDay, dayOff bool) {
	for i := range day.DayTime {
		if dayOff {
			day.DayTime[i].SetMarker(models.SentinelDayOff)
		} else {
			day.DayTime[i].SetFree()
		}
	}
}

// SetRecurringClosed marks or clears the not-in-schedule state for an hour.
// Only slots that are currently free or already not-in-schedule are touched;
// bookings, day-off and out-of-office blocks survive.
func SetRecurringClosed(day *models.CalendarDay, hour string, closed bool) {
	for _, q := range QuarterSlotsForHour(HourOf(hour)) {
		idx := day.SlotIndex(q)
		if idx < 0 {
			continue
		}
		state, err := day.DayTime[idx].State()
		if err != nil {
			continue
		}
		if state != models.SlotFree && state != models.SlotNotInSchedule {
			continue
		}
		if closed {
			day.DayTime[idx].SetMarker(models.SentinelNotInSchedule)
		} else {
			day.DayTime[idx].SetFree()
		}
	}
}

// HasAppointments reports whether any slot of the day holds a real booking.
func HasAppointments(day *models.CalendarDay) bool {
	for i := range day.DayTime {
		if day.DayTime[i].IsBooked() {
			return true
		}
	}
	return false
}

// IsDayOff checks the first slot only. SetDayOff writes the whole day
// uniformly, so the first slot is a reliable proxy.
func IsDayOff(day *models.CalendarDay) bool {
	return len(day.DayTime) > 0 && day.DayTime[0].AppointmentID == models.SentinelDayOff
}

// DayEvents builds the read-side projection of a day: bookings de-duplicated
// by appointment ID, out-of-office runs merged into one event per hour.
func DayEvents(day *models.CalendarDay) []models.DayEvent {
	var events []models.DayEvent
	bookingIdx := make(map[string]int)
	oooIdx := make(map[string]int)

	for i := range day.DayTime {
		slot := &day.DayTime[i]
		switch {
		case slot.IsBooked():
			if j, ok := bookingIdx[slot.AppointmentID]; ok {
				events[j].Slots++
				continue
			}
			bookingIdx[slot.AppointmentID] = len(events)
			events = append(events, models.DayEvent{
				AppointmentID: slot.AppointmentID,
				ClientID:      slot.ClientID,
				Service:       slot.Service,
				Hour:          slot.Hour,
				Slots:         1,
			})
		case slot.AppointmentID == models.SentinelOutOfOffice:
			h := HourOf(slot.Hour)
			if j, ok := oooIdx[h]; ok {
				events[j].Slots++
				continue
			}
			oooIdx[h] = len(events)
			events = append(events, models.DayEvent{
				AppointmentID: models.SentinelOutOfOffice,
				Hour:          slot.Hour,
				Slots:         1,
			})
		}
	}
	return events
}

// AvailableStartSlots lists the booking-window start hours from which
// duration contiguous slots are free.
func AvailableStartSlots(day *models.CalendarDay, duration int) []string {
	starts := []string{}
	if duration < 1 {
		return starts
	}
	for _, slot := range GenerateBookingSlots() {
		idx := day.SlotIndex(slot)
		if idx < 0 || idx+duration > len(day.DayTime) {
			continue
		}
		fits := true
		for i := idx; i < idx+duration; i++ {
			state, err := day.DayTime[i].State()
			if err != nil || state != models.SlotFree {
				fits = false
				break
			}
		}
		if fits {
			starts = append(starts, slot)
		}
	}
	return starts
}

// CheckDayConsistency returns the hours whose sentinel triples disagree.
// Corrupt slots are reported for logging, never auto-healed.
func CheckDayConsistency(day *models.CalendarDay) []string {
	var corrupt []string
	for i := range day.DayTime {
		if _, err := day.DayTime[i].State(); err != nil {
			corrupt = append(corrupt, day.DayTime[i].Hour)
		}
	}
	return corrupt
}
