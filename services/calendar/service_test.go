package calendar

import (
	"context"
	"testing"
	"time"

	calendarRepo "clipbook/database/repository/calendar"
	serviceRepo "clipbook/database/repository/service"
	"clipbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCalendarRepo is an in-memory CalendarRepository. It hands out copies so
// the service's read-modify-write cycle behaves like it does against the real
// store, and can be told to lose a number of version races.
type fakeCalendarRepo struct {
	cals         map[string]*models.ResourceCalendar
	conflicts    int
	replaceCalls int
}

func newFakeCalendarRepo() *fakeCalendarRepo {
	return &fakeCalendarRepo{cals: make(map[string]*models.ResourceCalendar)}
}

func copyCalendar(cal *models.ResourceCalendar) *models.ResourceCalendar {
	out := &models.ResourceCalendar{ID: cal.ID, Version: cal.Version}
	out.Calendar = make([]models.CalendarDay, len(cal.Calendar))
	for i := range cal.Calendar {
		out.Calendar[i].Day = cal.Calendar[i].Day
		out.Calendar[i].DayTime = append([]models.TimeSlot(nil), cal.Calendar[i].DayTime...)
	}
	return out
}

func (f *fakeCalendarRepo) GetAll(ctx context.Context) ([]models.ResourceCalendar, error) {
	var out []models.ResourceCalendar
	for _, cal := range f.cals {
		out = append(out, *copyCalendar(cal))
	}
	return out, nil
}

func (f *fakeCalendarRepo) GetByResourceID(ctx context.Context, resourceID string) (*models.ResourceCalendar, error) {
	cal, ok := f.cals[resourceID]
	if !ok {
		return nil, calendarRepo.ErrCalendarNotFound
	}
	return copyCalendar(cal), nil
}

func (f *fakeCalendarRepo) Create(ctx context.Context, cal *models.ResourceCalendar) error {
	f.cals[cal.ID] = copyCalendar(cal)
	return nil
}

func (f *fakeCalendarRepo) Delete(ctx context.Context, resourceID string) error {
	if _, ok := f.cals[resourceID]; !ok {
		return calendarRepo.ErrCalendarNotFound
	}
	delete(f.cals, resourceID)
	return nil
}

func (f *fakeCalendarRepo) ReplaceDays(ctx context.Context, resourceID string, days []models.CalendarDay, expectedVersion int64) error {
	f.replaceCalls++
	cal, ok := f.cals[resourceID]
	if !ok {
		return calendarRepo.ErrCalendarNotFound
	}
	if f.conflicts > 0 {
		f.conflicts--
		cal.Version++ // another writer got there first
		return calendarRepo.ErrVersionConflict
	}
	if cal.Version != expectedVersion {
		return calendarRepo.ErrVersionConflict
	}
	copied := copyCalendar(&models.ResourceCalendar{ID: resourceID, Calendar: days})
	cal.Calendar = copied.Calendar
	cal.Version++
	return nil
}

type fakeServiceRepo struct {
	durations map[string]int
}

func (f *fakeServiceRepo) GetAll(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	for name, d := range f.durations {
		out = append(out, models.Service{ID: name, Name: name, Duration: d, Active: true})
	}
	return out, nil
}

func (f *fakeServiceRepo) GetByName(ctx context.Context, name string) (*models.Service, error) {
	d, ok := f.durations[name]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return &models.Service{ID: name, Name: name, Duration: d, Active: true}, nil
}

func newTestService(repo *fakeCalendarRepo) *DefaultCalendarService {
	return &DefaultCalendarService{
		Repo:       repo,
		Services:   &fakeServiceRepo{durations: map[string]int{"Corte": 2, "Barba": 1}},
		Location:   time.UTC,
		WindowDays: 15,
	}
}

func seedCalendar(repo *fakeCalendarRepo, resourceID string, start time.Time) {
	repo.cals[resourceID] = &models.ResourceCalendar{
		ID:       resourceID,
		Calendar: NewCalendarWindow(start, 15),
		Version:  1,
	}
}

var testStart = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

func TestBookAppointment(t *testing.T) {
	repo := newFakeCalendarRepo()
	seedCalendar(repo, "res-1", testStart)
	svc := newTestService(repo)

	appt, err := svc.BookAppointment(context.Background(), "res-1", "2026/08/31", "10:00", "Corte", "client-1")
	require.NoError(t, err)
	assert.Equal(t, 2, appt.Slots)
	assert.NotEmpty(t, appt.AppointmentID)

	stored := repo.cals["res-1"]
	day := stored.DayByDate("2026/08/31")
	require.NotNil(t, day)
	assert.Equal(t, appt.AppointmentID, day.DayTime[day.SlotIndex("10:00")].AppointmentID)
	assert.Equal(t, appt.AppointmentID, day.DayTime[day.SlotIndex("10:15")].AppointmentID)
	assert.Equal(t, int64(2), stored.Version, "write bumps the document version")
}

func TestBookAppointmentRetriesOnVersionConflict(t *testing.T) {
	repo := newFakeCalendarRepo()
	seedCalendar(repo, "res-1", testStart)
	repo.conflicts = 1
	svc := newTestService(repo)

	_, err := svc.BookAppointment(context.Background(), "res-1", "2026/08/31", "10:00", "Corte", "client-1")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.replaceCalls, "first write loses the race, second lands")
}

func TestBookAppointmentConflictSurfaces(t *testing.T) {
	repo := newFakeCalendarRepo()
	seedCalendar(repo, "res-1", testStart)
	svc := newTestService(repo)

	_, err := svc.BookAppointment(context.Background(), "res-1", "2026/08/31", "10:00", "Corte", "client-1")
	require.NoError(t, err)

	_, err = svc.BookAppointment(context.Background(), "res-1", "2026/08/31", "10:15", "Barba", "client-2")
	require.Error(t, err)
	assert.Equal(t, CodeSlotUnavailable, ErrorCode(err))
}

func TestBookAppointmentUnknownService(t *testing.T) {
	repo := newFakeCalendarRepo()
	seedCalendar(repo, "res-1", testStart)
	svc := newTestService(repo)

	_, err := svc.BookAppointment(context.Background(), "res-1", "2026/08/31", "10:00", "Tinte", "client-1")
	require.Error(t, err)
	assert.Equal(t, CodeServiceNotFound, ErrorCode(err))
}

func TestBookAppointmentOutsideWindow(t *testing.T) {
	repo := newFakeCalendarRepo()
	seedCalendar(repo, "res-1", testStart)
	svc := newTestService(repo)

	_, err := svc.BookAppointment(context.Background(), "res-1", "2027/01/01", "10:00", "Corte", "client-1")
	require.Error(t, err)
	assert.Equal(t, CodeSlotUnavailable, ErrorCode(err))
}

func TestBookAppointmentUnknownResource(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := newTestService(repo)

	_, err := svc.BookAppointment(context.Background(), "ghost", "2026/08/31", "10:00", "Corte", "client-1")
	require.Error(t, err)
	assert.Equal(t, CodeResourceNotFound, ErrorCode(err))
}

func TestCancelAppointmentUnknownIsNoop(t *testing.T) {
	repo := newFakeCalendarRepo()
	seedCalendar(repo, "res-1", testStart)
	svc := newTestService(repo)

	err := svc.CancelAppointment(context.Background(), "res-1", "2026/08/31", "no-such-appointment")
	assert.NoError(t, err)
}

func TestCancelAppointmentFreesSlots(t *testing.T) {
	repo := newFakeCalendarRepo()
	seedCalendar(repo, "res-1", testStart)
	svc := newTestService(repo)

	appt, err := svc.BookAppointment(context.Background(), "res-1", "2026/08/31", "10:00", "Corte", "client-1")
	require.NoError(t, err)

	require.NoError(t, svc.CancelAppointment(context.Background(), "res-1", "2026/08/31", appt.AppointmentID))

	day := repo.cals["res-1"].DayByDate("2026/08/31")
	assert.False(t, HasAppointments(day))
}

func TestSetDayOffRejectedWithAppointments(t *testing.T) {
	repo := newFakeCalendarRepo()
	seedCalendar(repo, "res-1", testStart)
	svc := newTestService(repo)

	_, err := svc.BookAppointment(context.Background(), "res-1", "2026/08/31", "10:00", "Corte", "client-1")
	require.NoError(t, err)

	err = svc.SetDayOff(context.Background(), "res-1", "2026/08/31", true)
	require.Error(t, err)
	assert.Equal(t, CodeDayHasAppointments, ErrorCode(err))

	day := repo.cals["res-1"].DayByDate("2026/08/31")
	assert.True(t, HasAppointments(day), "rejected day-off leaves the booking in place")
	assert.False(t, IsDayOff(day))
}

func TestSetDayOffAllowedOverBlocks(t *testing.T) {
	repo := newFakeCalendarRepo()
	seedCalendar(repo, "res-1", testStart)
	svc := newTestService(repo)

	// Administrative blocks are not appointments; they do not hold up a day off.
	require.NoError(t, svc.SetHourAvailability(context.Background(), "res-1", "2026/08/31", "14:00", false))
	require.NoError(t, svc.SetDayOff(context.Background(), "res-1", "2026/08/31", true))

	assert.True(t, IsDayOff(repo.cals["res-1"].DayByDate("2026/08/31")))
}

func TestGetAvailabilityExcludesShortRuns(t *testing.T) {
	repo := newFakeCalendarRepo()
	seedCalendar(repo, "res-1", testStart)
	svc := newTestService(repo)

	_, err := svc.BookAppointment(context.Background(), "res-1", "2026/08/31", "09:15", "Barba", "client-1")
	require.NoError(t, err)

	starts, err := svc.GetAvailability(context.Background(), "res-1", "2026/08/31", "Corte")
	require.NoError(t, err)
	assert.NotContains(t, starts, "09:00", "a 2-slot service cannot start inside a 1-slot gap")
	assert.Contains(t, starts, "09:30")
}

func TestGetClientAppointments(t *testing.T) {
	repo := newFakeCalendarRepo()
	seedCalendar(repo, "res-1", testStart)
	seedCalendar(repo, "res-2", testStart)
	svc := newTestService(repo)

	a1, err := svc.BookAppointment(context.Background(), "res-1", "2026/08/31", "10:00", "Corte", "client-1")
	require.NoError(t, err)
	_, err = svc.BookAppointment(context.Background(), "res-2", "2026/09/01", "11:00", "Barba", "client-1")
	require.NoError(t, err)
	_, err = svc.BookAppointment(context.Background(), "res-1", "2026/09/01", "12:00", "Barba", "client-2")
	require.NoError(t, err)

	appointments, err := svc.GetClientAppointments(context.Background(), "client-1")
	require.NoError(t, err)
	require.Len(t, appointments, 2)

	for _, appt := range appointments {
		if appt.AppointmentID == a1.AppointmentID {
			assert.Equal(t, 2, appt.Slots, "multi-slot booking reported once with its span")
		}
	}
}

func TestProvisionResourceCalendarInheritsPattern(t *testing.T) {
	repo := newFakeCalendarRepo()
	seedCalendar(repo, "res-1", testStart)
	svc := newTestService(repo)

	// Reference resource closes 13:00 recurrently on every weekday.
	ref := repo.cals["res-1"]
	for i := range ref.Calendar {
		SetRecurringClosed(&ref.Calendar[i], "13", true)
	}

	require.NoError(t, svc.ProvisionResourceCalendar(context.Background(), "res-2"))

	created := repo.cals["res-2"]
	require.NotNil(t, created)
	require.Len(t, created.Calendar, 15)
	for i := range created.Calendar {
		day := &created.Calendar[i]
		state, err := day.DayTime[day.SlotIndex("13:15")].State()
		require.NoError(t, err)
		assert.Equal(t, models.SlotNotInSchedule, state, "day %s inherits the recurring closure", day.Day)
	}
}

func TestProvisionResourceCalendarExistingIsNoop(t *testing.T) {
	repo := newFakeCalendarRepo()
	seedCalendar(repo, "res-1", testStart)
	svc := newTestService(repo)

	require.NoError(t, svc.ProvisionResourceCalendar(context.Background(), "res-1"))
	assert.Equal(t, "2026/08/30", repo.cals["res-1"].Calendar[0].Day, "existing calendar untouched")
}

func TestProvisionFirstResourceGetsEmptyPattern(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := newTestService(repo)

	require.NoError(t, svc.ProvisionResourceCalendar(context.Background(), "res-1"))

	created := repo.cals["res-1"]
	require.NotNil(t, created)
	for i := range created.Calendar {
		for j := range created.Calendar[i].DayTime {
			state, err := created.Calendar[i].DayTime[j].State()
			require.NoError(t, err)
			assert.Equal(t, models.SlotFree, state)
		}
	}
}

func TestAdvanceAllWindows(t *testing.T) {
	repo := newFakeCalendarRepo()
	yesterday := time.Now().In(time.UTC).AddDate(0, 0, -1)
	seedCalendar(repo, "res-1", yesterday)
	seedCalendar(repo, "res-2", yesterday)
	svc := newTestService(repo)

	advanced, err := svc.AdvanceAllWindows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, advanced)

	today := FormatCalendarDate(time.Now().In(time.UTC))
	assert.Equal(t, today, repo.cals["res-1"].Calendar[0].Day)
	assert.Len(t, repo.cals["res-1"].Calendar, 15)

	// A second run in the same day finds nothing to do.
	advanced, err = svc.AdvanceAllWindows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, advanced)
}

func TestRemoveResourceCalendarUnknown(t *testing.T) {
	repo := newFakeCalendarRepo()
	svc := newTestService(repo)

	err := svc.RemoveResourceCalendar(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, CodeResourceNotFound, ErrorCode(err))
}
