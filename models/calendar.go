package models

// TimeSlot is the smallest schedulable unit: one 15-minute cell of a
// resource's day. The bson/json field names are the wire format shared with
// the existing calendar collection and must not change.
type TimeSlot struct {
	AppointmentID string `bson:"appointment_id" json:"appointment_id"`
	ClientID      string `bson:"client_id" json:"client_id"`
	Hour          string `bson:"hour" json:"hour"` // "HH:MM"
	Service       string `bson:"service" json:"service"`
}

// CalendarDay holds one resource's slots for one calendar date.
type CalendarDay struct {
	Day     string     `bson:"day" json:"day"` // "YYYY/MM/DD"
	DayTime []TimeSlot `bson:"day_time" json:"day_time"`
}

// SlotIndex returns the position of the slot with the given hour, or -1.
func (d *CalendarDay) SlotIndex(hour string) int {
	for i := range d.DayTime {
		if d.DayTime[i].Hour == hour {
			return i
		}
	}
	return -1
}

// ResourceCalendar is the per-resource document: a fixed-length rolling
// window of days starting at today. Version is the optimistic-concurrency
// token; every full-array replace checks and increments it.
type ResourceCalendar struct {
	ID       string        `bson:"id" json:"id"`
	Calendar []CalendarDay `bson:"calendar" json:"calendar"`
	Version  int64         `bson:"version" json:"version"`
}

// DayByDate returns the window day with the given "YYYY/MM/DD" key, or nil.
func (rc *ResourceCalendar) DayByDate(date string) *CalendarDay {
	for i := range rc.Calendar {
		if rc.Calendar[i].Day == date {
			return &rc.Calendar[i]
		}
	}
	return nil
}

// DayEvent is the read-side projection of a day: one entry per booking
// (de-duplicated across its occupied span) and one merged entry per
// out-of-office hour.
type DayEvent struct {
	AppointmentID string `json:"appointment_id"`
	ClientID      string `json:"client_id,omitempty"`
	Service       string `json:"service,omitempty"`
	Hour          string `json:"hour"`
	Slots         int    `json:"slots"`
}

// Appointment is a client-facing view of one booking inside a day.
type Appointment struct {
	ResourceID    string `json:"resource_id"`
	Day           string `json:"day"`
	Hour          string `json:"hour"`
	AppointmentID string `json:"appointment_id"`
	Service       string `json:"service"`
	Slots         int    `json:"slots"`
}
