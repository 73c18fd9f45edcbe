package calendar

import (
	"testing"

	"clipbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookSlots(t *testing.T) {
	day := NewCalendarDay("2026/08/30")

	appointmentID, err := BookSlots(&day, "10:00", "Corte", "client-1", 2)
	require.NoError(t, err)
	require.NotEmpty(t, appointmentID)

	first := day.DayTime[day.SlotIndex("10:00")]
	second := day.DayTime[day.SlotIndex("10:15")]
	third := day.DayTime[day.SlotIndex("10:30")]

	assert.Equal(t, appointmentID, first.AppointmentID)
	assert.Equal(t, appointmentID, second.AppointmentID)
	assert.Equal(t, "client-1", first.ClientID)
	assert.Equal(t, "Corte", second.Service)
	assert.False(t, third.IsBooked(), "slot past the booking must stay free")
}

func TestBookSlotsConflict(t *testing.T) {
	day := NewCalendarDay("2026/08/30")

	_, err := BookSlots(&day, "10:00", "Corte", "client-1", 2)
	require.NoError(t, err)

	_, err = BookSlots(&day, "10:00", "Corte", "client-2", 2)
	require.Error(t, err)
	assert.Equal(t, CodeSlotUnavailable, ErrorCode(err))
}

func TestBookSlotsNoPartialWrite(t *testing.T) {
	day := NewCalendarDay("2026/08/30")

	_, err := BookSlots(&day, "10:15", "Corte", "client-1", 1)
	require.NoError(t, err)

	// A 2-slot booking at 10:00 needs 10:15 too; it must fail without
	// touching 10:00.
	_, err = BookSlots(&day, "10:00", "Barba", "client-2", 2)
	require.Error(t, err)
	assert.Equal(t, CodeSlotUnavailable, ErrorCode(err))

	state, serr := day.DayTime[day.SlotIndex("10:00")].State()
	require.NoError(t, serr)
	assert.Equal(t, models.SlotFree, state)
}

func TestBookSlotsDoesNotFitBeforeClose(t *testing.T) {
	day := NewCalendarDay("2026/08/30")

	_, err := BookSlots(&day, "19:45", "Corte", "client-1", 2)
	require.Error(t, err)
	assert.Equal(t, CodeSlotUnavailable, ErrorCode(err))
}

func TestBookSlotsUnknownHour(t *testing.T) {
	day := NewCalendarDay("2026/08/30")

	_, err := BookSlots(&day, "21:00", "Corte", "client-1", 1)
	require.Error(t, err)
	assert.Equal(t, CodeSlotUnavailable, ErrorCode(err))
}

func TestBookSlotsCorruptSlot(t *testing.T) {
	day := NewCalendarDay("2026/08/30")
	idx := day.SlotIndex("10:15")
	day.DayTime[idx].ClientID = "client-ghost" // appointment id still ""

	_, err := BookSlots(&day, "10:00", "Corte", "client-1", 2)
	require.Error(t, err)
	assert.Equal(t, CodeDataInconsistency, ErrorCode(err))
}

func TestCancelBooking(t *testing.T) {
	day := NewCalendarDay("2026/08/30")

	appointmentID, err := BookSlots(&day, "10:00", "Corte", "client-1", 2)
	require.NoError(t, err)

	freed := CancelBooking(&day, appointmentID)
	assert.Equal(t, 2, freed)

	for _, h := range []string{"10:00", "10:15"} {
		state, serr := day.DayTime[day.SlotIndex(h)].State()
		require.NoError(t, serr)
		assert.Equal(t, models.SlotFree, state)
	}
}

func TestCancelBookingUnknownIsNoop(t *testing.T) {
	day := NewCalendarDay("2026/08/30")
	assert.Equal(t, 0, CancelBooking(&day, "no-such-appointment"))
}

func TestCancelBookingIgnoresMarkers(t *testing.T) {
	day := NewCalendarDay("2026/08/30")
	SetDayOff(&day, true)

	assert.Equal(t, 0, CancelBooking(&day, models.SentinelDayOff))
	assert.True(t, IsDayOff(&day))
}

func TestSetHourAvailabilityKeepsBookings(t *testing.T) {
	day := NewCalendarDay("2026/08/30")

	appointmentID, err := BookSlots(&day, "14:15", "Corte", "client-1", 1)
	require.NoError(t, err)

	SetHourAvailability(&day, "14:00", false)

	for _, h := range []string{"14:00", "14:30", "14:45"} {
		state, serr := day.DayTime[day.SlotIndex(h)].State()
		require.NoError(t, serr)
		assert.Equal(t, models.SlotOutOfOffice, state, "slot %s", h)
	}
	assert.Equal(t, appointmentID, day.DayTime[day.SlotIndex("14:15")].AppointmentID)

	SetHourAvailability(&day, "14:00", true)
	state, serr := day.DayTime[day.SlotIndex("14:30")].State()
	require.NoError(t, serr)
	assert.Equal(t, models.SlotFree, state)
	assert.Equal(t, appointmentID, day.DayTime[day.SlotIndex("14:15")].AppointmentID)
}

func TestSetDayOffOverwritesEverything(t *testing.T) {
	day := NewCalendarDay("2026/08/30")

	_, err := BookSlots(&day, "10:00", "Corte", "client-1", 2)
	require.NoError(t, err)

	SetDayOff(&day, true)
	assert.True(t, IsDayOff(&day))
	assert.False(t, HasAppointments(&day))

	SetDayOff(&day, false)
	assert.False(t, IsDayOff(&day))
	for i := range day.DayTime {
		state, serr := day.DayTime[i].State()
		require.NoError(t, serr)
		assert.Equal(t, models.SlotFree, state)
	}
}

func TestSetRecurringClosedNeverOverwritesBlocks(t *testing.T) {
	day := NewCalendarDay("2026/08/30")

	_, err := BookSlots(&day, "09:00", "Corte", "client-1", 1)
	require.NoError(t, err)
	SetHourAvailability(&day, "10:00", false)

	SetRecurringClosed(&day, "09", true)
	SetRecurringClosed(&day, "10", true)

	assert.True(t, day.DayTime[day.SlotIndex("09:00")].IsBooked())
	state, serr := day.DayTime[day.SlotIndex("09:15")].State()
	require.NoError(t, serr)
	assert.Equal(t, models.SlotNotInSchedule, state)

	state, serr = day.DayTime[day.SlotIndex("10:00")].State()
	require.NoError(t, serr)
	assert.Equal(t, models.SlotOutOfOffice, state)

	SetRecurringClosed(&day, "09", false)
	state, serr = day.DayTime[day.SlotIndex("09:15")].State()
	require.NoError(t, serr)
	assert.Equal(t, models.SlotFree, state)
}

func TestHasAppointments(t *testing.T) {
	day := NewCalendarDay("2026/08/30")
	assert.False(t, HasAppointments(&day))

	SetHourAvailability(&day, "11:00", false)
	assert.False(t, HasAppointments(&day), "blocks are not appointments")

	_, err := BookSlots(&day, "10:00", "Corte", "client-1", 1)
	require.NoError(t, err)
	assert.True(t, HasAppointments(&day))
}

func TestDayEvents(t *testing.T) {
	day := NewCalendarDay("2026/08/30")

	appointmentID, err := BookSlots(&day, "10:00", "Corte", "client-1", 2)
	require.NoError(t, err)
	SetHourAvailability(&day, "14:00", false)

	events := DayEvents(&day)
	require.Len(t, events, 2)

	assert.Equal(t, appointmentID, events[0].AppointmentID)
	assert.Equal(t, "10:00", events[0].Hour)
	assert.Equal(t, 2, events[0].Slots, "booking spans two slots but appears once")

	assert.Equal(t, models.SentinelOutOfOffice, events[1].AppointmentID)
	assert.Equal(t, "14:00", events[1].Hour)
	assert.Equal(t, 4, events[1].Slots, "out-of-office quarters merge per hour")
}

func TestAvailableStartSlots(t *testing.T) {
	day := NewCalendarDay("2026/08/30")

	starts := AvailableStartSlots(&day, 2)
	assert.Contains(t, starts, "09:00")
	assert.Contains(t, starts, "18:45", "a 2-slot run from 18:45 still fits inside the grid")

	_, err := BookSlots(&day, "09:15", "Corte", "client-1", 1)
	require.NoError(t, err)

	starts = AvailableStartSlots(&day, 2)
	assert.NotContains(t, starts, "09:00", "run interrupted by the 09:15 booking")
	assert.NotContains(t, starts, "09:15")
	assert.Contains(t, starts, "09:30")
}

func TestCheckDayConsistency(t *testing.T) {
	day := NewCalendarDay("2026/08/30")
	assert.Empty(t, CheckDayConsistency(&day))

	idx := day.SlotIndex("12:00")
	day.DayTime[idx].AppointmentID = models.SentinelDayOff // triple now disagrees

	corrupt := CheckDayConsistency(&day)
	require.Len(t, corrupt, 1)
	assert.Equal(t, "12:00", corrupt[0])
}
