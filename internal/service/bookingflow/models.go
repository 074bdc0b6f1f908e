package bookingflow

import (
	"github.com/m04kA/SMC-SalonClient/internal/domain"
)

// SessionView представление сессии для клиента
type SessionView struct {
	ID                 string  `json:"id"`
	Step               string  `json:"step"`
	PhoneNumber        string  `json:"phoneNumber,omitempty"`
	SelectedSalonID    *int64  `json:"selectedSalonId,omitempty"`
	SelectedServiceIDs []int64 `json:"selectedServiceIds"`
	SelectedDate       *string `json:"selectedDate,omitempty"` // "2025-10-15"
	SelectedTime       *string `json:"selectedTime,omitempty"` // "10:00"
	BookingID          *int64  `json:"bookingId,omitempty"`
}

// Response результат операции над сессией
type Response struct {
	Session    *SessionView      `json:"session,omitempty"`
	Status     string            `json:"status,omitempty"` // advanced | updated | rejected
	Reason     string            `json:"reason,omitempty"`
	Navigation domain.Navigation `json:"navigation,omitempty"`
}

// FromDomainSession конвертирует domain модель в представление
func FromDomainSession(s *domain.BookingSession) *SessionView {
	view := &SessionView{
		ID:                 s.ID,
		Step:               string(s.Step),
		PhoneNumber:        s.PhoneNumber,
		SelectedSalonID:    s.SelectedSalonID,
		SelectedServiceIDs: s.ServiceIDs(),
		SelectedTime:       s.SelectedTime,
		BookingID:          s.BookingID,
	}
	if s.SelectedDate != nil {
		date := s.SelectedDate.Format(domain.DateFormat)
		view.SelectedDate = &date
	}
	return view
}

func newResponse(s *domain.BookingSession, result domain.StepResult) *Response {
	return &Response{
		Session: FromDomainSession(s),
		Status:  string(result.Status),
		Reason:  string(result.Reason),
	}
}
