package models

import "errors"

// SlotState is the closed set of states a time slot can be in. The persisted
// documents encode state through reserved sentinel strings on the slot fields;
// the enum exists so the engine never branches on raw strings.
type SlotState int

const (
	SlotFree SlotState = iota
	SlotBooked
	SlotDayOff
	SlotOutOfOffice
	SlotNotInSchedule
)

// Sentinel values stored in existing calendar documents. These must match
// bit-for-bit; other deployments read the same collections.
const (
	SentinelFree          = ""
	SentinelNone          = "none"
	SentinelDayOff        = "day_off"
	SentinelOutOfOffice   = "out_of_office"
	SentinelNotInSchedule = "not_in_schedule"
)

// ErrSlotCorrupted reports a slot whose sentinel fields disagree, e.g. an
// appointment id of "day_off" next to a client id of "none". The engine logs
// these and refuses to guess a repair.
var ErrSlotCorrupted = errors.New("slot sentinel fields disagree")

func (s SlotState) String() string {
	switch s {
	case SlotFree:
		return "free"
	case SlotBooked:
		return "booked"
	case SlotDayOff:
		return SentinelDayOff
	case SlotOutOfOffice:
		return SentinelOutOfOffice
	case SlotNotInSchedule:
		return SentinelNotInSchedule
	}
	return "unknown"
}

// isSpecialMarker reports whether v is one of the reserved non-booking markers.
func isSpecialMarker(v string) bool {
	switch v {
	case SentinelDayOff, SentinelOutOfOffice, SentinelNotInSchedule:
		return true
	}
	return false
}

// State decodes the sentinel triple into a SlotState. All three fields must
// agree; a partial match is a data-corruption condition.
func (ts *TimeSlot) State() (SlotState, error) {
	switch {
	case ts.AppointmentID == SentinelFree:
		if ts.ClientID == SentinelNone && ts.Service == SentinelNone {
			return SlotFree, nil
		}
		return SlotFree, ErrSlotCorrupted
	case isSpecialMarker(ts.AppointmentID):
		if ts.ClientID == ts.AppointmentID && ts.Service == ts.AppointmentID {
			switch ts.AppointmentID {
			case SentinelDayOff:
				return SlotDayOff, nil
			case SentinelOutOfOffice:
				return SlotOutOfOffice, nil
			default:
				return SlotNotInSchedule, nil
			}
		}
		return SlotFree, ErrSlotCorrupted
	default:
		if ts.ClientID == SentinelFree || ts.ClientID == SentinelNone ||
			isSpecialMarker(ts.ClientID) || ts.Service == SentinelFree ||
			ts.Service == SentinelNone || isSpecialMarker(ts.Service) {
			return SlotBooked, ErrSlotCorrupted
		}
		return SlotBooked, nil
	}
}

// IsBooked reports whether the slot holds a real appointment (not a marker).
func (ts *TimeSlot) IsBooked() bool {
	return ts.AppointmentID != SentinelFree && !isSpecialMarker(ts.AppointmentID)
}

// SetFree resets the slot to the free sentinel triple.
func (ts *TimeSlot) SetFree() {
	ts.AppointmentID = SentinelFree
	ts.ClientID = SentinelNone
	ts.Service = SentinelNone
}

// SetMarker writes one of the special non-booking states across the triple.
func (ts *TimeSlot) SetMarker(marker string) {
	ts.AppointmentID = marker
	ts.ClientID = marker
	ts.Service = marker
}

// SetBooking occupies the slot with a real appointment.
func (ts *TimeSlot) SetBooking(appointmentID, clientID, service string) {
	ts.AppointmentID = appointmentID
	ts.ClientID = clientID
	ts.Service = service
}
