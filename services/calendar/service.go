package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	calendarRepo "clipbook/database/repository/calendar"
	serviceRepo "clipbook/database/repository/service"
	"clipbook/models"
	"clipbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	// Bounded retry for lost optimistic-concurrency races.
	maxReplaceAttempts = 3
	availabilityTTL    = 30 * time.Second
)

// DefaultCalendarService implements CalendarService over the document store.
// Writers to the same resource are serialized through an in-process mutex on
// top of the document version check, so the daily window tick and a customer
// booking never interleave their read-modify-write cycles.
type DefaultCalendarService struct {
	Repo       calendarRepo.CalendarRepository
	Services   serviceRepo.ServiceRepository
	Cache      *redis.Client
	Location   *time.Location
	WindowDays int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (s *DefaultCalendarService) lockFor(resourceID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	l, ok := s.locks[resourceID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[resourceID] = l
	}
	return l
}

func (s *DefaultCalendarService) loc() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}

// mutate runs the read-transform-replace cycle for one resource under its
// lock, retrying on version conflicts. fn mutates the calendar in place; a
// domain error from fn aborts without writing.
func (s *DefaultCalendarService) mutate(ctx context.Context, resourceID string, fn func(cal *models.ResourceCalendar) error) error {
	lock := s.lockFor(resourceID)
	lock.Lock()
	defer lock.Unlock()

	for attempt := 1; attempt <= maxReplaceAttempts; attempt++ {
		cal, err := s.Repo.GetByResourceID(ctx, resourceID)
		if err != nil {
			if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
				return NewResourceNotFoundError(resourceID)
			}
			return NewStoreUnavailableError(err)
		}
		if err := fn(cal); err != nil {
			return err
		}
		err = s.Repo.ReplaceDays(ctx, resourceID, cal.Calendar, cal.Version)
		if err == nil {
			s.invalidateAvailability(ctx, resourceID)
			return nil
		}
		if errors.Is(err, calendarRepo.ErrVersionConflict) {
			utils.GetLogger().Warn("calendar write lost version race, retrying",
				zap.String("resourceID", resourceID), zap.Int("attempt", attempt))
			continue
		}
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			return NewResourceNotFoundError(resourceID)
		}
		return NewStoreUnavailableError(err)
	}
	return NewStoreUnavailableError(fmt.Errorf("calendar for resource %s kept changing under us", resourceID))
}

func (s *DefaultCalendarService) fetchCalendar(ctx context.Context, resourceID string) (*models.ResourceCalendar, error) {
	cal, err := s.Repo.GetByResourceID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			return nil, NewResourceNotFoundError(resourceID)
		}
		return nil, NewStoreUnavailableError(err)
	}
	return cal, nil
}

// dayOrError resolves a day key inside the calendar window.
func dayOrError(cal *models.ResourceCalendar, day string) (*models.CalendarDay, error) {
	d := cal.DayByDate(day)
	if d == nil {
		return nil, NewSlotUnavailableError(fmt.Sprintf("day %s is outside the booking window", day))
	}
	return d, nil
}

// logCorruption reports sentinel mismatches without attempting a repair; the
// right recovery is ambiguous, so the data is left as found.
func (s *DefaultCalendarService) logCorruption(resourceID string, day *models.CalendarDay) {
	if corrupt := CheckDayConsistency(day); len(corrupt) > 0 {
		utils.GetLogger().Error("calendar day holds corrupt slots",
			zap.String("resourceID", resourceID),
			zap.String("day", day.Day),
			zap.Strings("hours", corrupt))
	}
}

// BookAppointment books serviceName for clientID starting at startHour.
func (s *DefaultCalendarService) BookAppointment(ctx context.Context, resourceID, day, startHour, serviceName, clientID string) (*models.Appointment, error) {
	svc, err := s.Services.GetByName(ctx, serviceName)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, NewServiceNotFoundError(serviceName)
		}
		return nil, NewStoreUnavailableError(err)
	}

	var appt *models.Appointment
	err = s.mutate(ctx, resourceID, func(cal *models.ResourceCalendar) error {
		d, err := dayOrError(cal, day)
		if err != nil {
			return err
		}
		s.logCorruption(resourceID, d)
		appointmentID, err := BookSlots(d, startHour, serviceName, clientID, svc.Duration)
		if err != nil {
			return err
		}
		appt = &models.Appointment{
			ResourceID:    resourceID,
			Day:           day,
			Hour:          startHour,
			AppointmentID: appointmentID,
			Service:       serviceName,
			Slots:         svc.Duration,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("appointment booked",
		zap.String("resourceID", resourceID),
		zap.String("day", day),
		zap.String("hour", startHour),
		zap.String("appointmentID", appt.AppointmentID))
	return appt, nil
}

// CancelAppointment frees every slot of the appointment. Unknown IDs are a
// no-op so cancellation is idempotent.
func (s *DefaultCalendarService) CancelAppointment(ctx context.Context, resourceID, day, appointmentID string) error {
	return s.mutate(ctx, resourceID, func(cal *models.ResourceCalendar) error {
		d, err := dayOrError(cal, day)
		if err != nil {
			return err
		}
		freed := CancelBooking(d, appointmentID)
		if freed == 0 {
			utils.GetLogger().Debug("cancel matched no slots",
				zap.String("resourceID", resourceID),
				zap.String("appointmentID", appointmentID))
		}
		return nil
	})
}

// GetAvailability lists the free start hours for a service on a day.
func (s *DefaultCalendarService) GetAvailability(ctx context.Context, resourceID, day, serviceName string) ([]string, error) {
	svc, err := s.Services.GetByName(ctx, serviceName)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, NewServiceNotFoundError(serviceName)
		}
		return nil, NewStoreUnavailableError(err)
	}

	cacheKey := availabilityKey(resourceID, day, svc.Duration)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var starts []string
			if err := json.Unmarshal([]byte(cached), &starts); err == nil {
				return starts, nil
			}
		}
	}

	cal, err := s.fetchCalendar(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	d, err := dayOrError(cal, day)
	if err != nil {
		return nil, err
	}
	s.logCorruption(resourceID, d)

	starts := AvailableStartSlots(d, svc.Duration)
	if s.Cache != nil {
		if data, err := json.Marshal(starts); err == nil {
			s.Cache.Set(ctx, cacheKey, data, availabilityTTL)
		}
	}
	return starts, nil
}

// GetClientAppointments collects the client's bookings across every resource.
func (s *DefaultCalendarService) GetClientAppointments(ctx context.Context, clientID string) ([]models.Appointment, error) {
	calendars, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, NewStoreUnavailableError(err)
	}

	appointments := []models.Appointment{}
	for ci := range calendars {
		for di := range calendars[ci].Calendar {
			day := &calendars[ci].Calendar[di]
			seen := make(map[string]int)
			for si := range day.DayTime {
				slot := &day.DayTime[si]
				if !slot.IsBooked() || slot.ClientID != clientID {
					continue
				}
				if j, ok := seen[slot.AppointmentID]; ok {
					appointments[j].Slots++
					continue
				}
				seen[slot.AppointmentID] = len(appointments)
				appointments = append(appointments, models.Appointment{
					ResourceID:    calendars[ci].ID,
					Day:           day.Day,
					Hour:          slot.Hour,
					AppointmentID: slot.AppointmentID,
					Service:       slot.Service,
					Slots:         1,
				})
			}
		}
	}
	return appointments, nil
}

// GetCalendar returns one resource's full calendar document.
func (s *DefaultCalendarService) GetCalendar(ctx context.Context, resourceID string) (*models.ResourceCalendar, error) {
	return s.fetchCalendar(ctx, resourceID)
}

// GetDayEvents returns the grouped display events of a day.
func (s *DefaultCalendarService) GetDayEvents(ctx context.Context, resourceID, day string) ([]models.DayEvent, error) {
	cal, err := s.fetchCalendar(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	d, err := dayOrError(cal, day)
	if err != nil {
		return nil, err
	}
	s.logCorruption(resourceID, d)
	return DayEvents(d), nil
}

// SetHourAvailability toggles a whole hour between free and out-of-office.
func (s *DefaultCalendarService) SetHourAvailability(ctx context.Context, resourceID, day, hour string, available bool) error {
	return s.mutate(ctx, resourceID, func(cal *models.ResourceCalendar) error {
		d, err := dayOrError(cal, day)
		if err != nil {
			return err
		}
		SetHourAvailability(d, hour, available)
		return nil
	})
}

// SetDayOff marks or clears a whole day off. Marking is refused while the day
// holds live appointments: the admin has to get those rescheduled first, the
// engine never cancels them implicitly.
func (s *DefaultCalendarService) SetDayOff(ctx context.Context, resourceID, day string, dayOff bool) error {
	return s.mutate(ctx, resourceID, func(cal *models.ResourceCalendar) error {
		d, err := dayOrError(cal, day)
		if err != nil {
			return err
		}
		if dayOff && HasAppointments(d) {
			return NewDayHasAppointmentsError(fmt.Sprintf("day %s has live appointments", day))
		}
		SetDayOff(d, dayOff)
		return nil
	})
}

// SetRecurringClosed toggles the not-in-schedule state for an hour of a day.
func (s *DefaultCalendarService) SetRecurringClosed(ctx context.Context, resourceID, day, hour string, closed bool) error {
	return s.mutate(ctx, resourceID, func(cal *models.ResourceCalendar) error {
		d, err := dayOrError(cal, day)
		if err != nil {
			return err
		}
		SetRecurringClosed(d, hour, closed)
		return nil
	})
}

// ProvisionResourceCalendar creates the calendar document for a new resource,
// seeded with the recurring closures derived from any existing resource. A
// resource that already owns a calendar is left untouched.
func (s *DefaultCalendarService) ProvisionResourceCalendar(ctx context.Context, resourceID string) error {
	if _, err := s.Repo.GetByResourceID(ctx, resourceID); err == nil {
		return nil
	} else if !errors.Is(err, calendarRepo.ErrCalendarNotFound) {
		return NewStoreUnavailableError(err)
	}

	existing, err := s.Repo.GetAll(ctx)
	if err != nil {
		return NewStoreUnavailableError(err)
	}

	pattern := SchedulePattern{}
	if len(existing) > 0 {
		pattern = DerivePattern(existing[0].Calendar, s.loc())
	}

	now := time.Now().In(s.loc())
	window := NewCalendarWindow(now, s.windowDays())
	ApplyPattern(window, pattern, s.loc())

	cal := &models.ResourceCalendar{ID: resourceID, Calendar: window, Version: 1}
	if err := s.Repo.Create(ctx, cal); err != nil {
		return NewStoreUnavailableError(err)
	}
	utils.GetLogger().Info("calendar provisioned",
		zap.String("resourceID", resourceID),
		zap.Int("patternHours", len(pattern)))
	return nil
}

// RemoveResourceCalendar deletes a resource's calendar document.
func (s *DefaultCalendarService) RemoveResourceCalendar(ctx context.Context, resourceID string) error {
	if err := s.Repo.Delete(ctx, resourceID); err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			return NewResourceNotFoundError(resourceID)
		}
		return NewStoreUnavailableError(err)
	}
	s.invalidateAvailability(ctx, resourceID)
	return nil
}

// AdvanceAllWindows re-anchors every resource's window to today. Failures on
// one resource never block the rest; they are logged and skipped.
func (s *DefaultCalendarService) AdvanceAllWindows(ctx context.Context) (int, error) {
	calendars, err := s.Repo.GetAll(ctx)
	if err != nil {
		return 0, NewStoreUnavailableError(err)
	}

	today := time.Now().In(s.loc())
	advanced := 0
	for ci := range calendars {
		resourceID := calendars[ci].ID
		err := s.mutate(ctx, resourceID, func(cal *models.ResourceCalendar) error {
			window, n, err := AdvanceWindow(cal.Calendar, today, s.loc())
			if err != nil {
				return NewDataInconsistencyError(err.Error())
			}
			if n == 0 {
				return errNothingToAdvance
			}
			cal.Calendar = window
			return nil
		})
		switch {
		case err == nil:
			advanced++
		case errors.Is(err, errNothingToAdvance):
			// Window already anchored at today.
		default:
			utils.GetLogger().Error("window advance failed",
				zap.String("resourceID", resourceID), zap.Error(err))
		}
	}
	return advanced, nil
}

var errNothingToAdvance = errors.New("window already current")

func (s *DefaultCalendarService) windowDays() int {
	if s.WindowDays > 0 {
		return s.WindowDays
	}
	return 15
}

func availabilityKey(resourceID, day string, duration int) string {
	return fmt.Sprintf("availability:%s:%s:%d", resourceID, day, duration)
}

// invalidateAvailability drops every cached availability entry for the
// resource after a write.
func (s *DefaultCalendarService) invalidateAvailability(ctx context.Context, resourceID string) {
	if s.Cache == nil {
		return
	}
	keys, err := s.Cache.Keys(ctx, fmt.Sprintf("availability:%s:*", resourceID)).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	s.Cache.Del(ctx, keys...)
}
