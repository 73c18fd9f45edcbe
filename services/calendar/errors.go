package calendar

import (
	"errors"
	"fmt"
)

// Error codes surfaced to handlers.
const (
	CodeSlotUnavailable    = "slotUnavailable"
	CodeDayHasAppointments = "dayHasAppointments"
	CodeResourceNotFound   = "resourceNotFound"
	CodeServiceNotFound    = "serviceNotFound"
	CodeStoreUnavailable   = "storeUnavailable"
	CodeDataInconsistency  = "dataInconsistency"
)

// CalendarError carries a machine-readable code alongside the message.
type CalendarError struct {
	Code    string
	Message string
}

func (e *CalendarError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSlotUnavailableError(msg string) error {
	return &CalendarError{Code: CodeSlotUnavailable, Message: msg}
}

func NewDayHasAppointmentsError(msg string) error {
	return &CalendarError{Code: CodeDayHasAppointments, Message: msg}
}

func NewResourceNotFoundError(resourceID string) error {
	return &CalendarError{Code: CodeResourceNotFound, Message: fmt.Sprintf("no calendar for resource %s", resourceID)}
}

func NewServiceNotFoundError(name string) error {
	return &CalendarError{Code: CodeServiceNotFound, Message: fmt.Sprintf("unknown service %q", name)}
}

func NewStoreUnavailableError(err error) error {
	return &CalendarError{Code: CodeStoreUnavailable, Message: err.Error()}
}

func NewDataInconsistencyError(msg string) error {
	return &CalendarError{Code: CodeDataInconsistency, Message: msg}
}

// ErrorCode extracts the calendar error code, or "" for foreign errors.
func ErrorCode(err error) string {
	var ce *CalendarError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
