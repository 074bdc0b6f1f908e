package domain

import (
	"sort"
	"time"
	"unicode/utf8"
)

// Step represents the position of a booking session in the wizard
type Step string

const (
	StepGate          Step = "gate"
	StepSalonSelect   Step = "salon_select"
	StepServiceSelect Step = "service_select"
	StepTimeSelect    Step = "time_select"
	StepConfirmed     Step = "confirmed"
)

// StepStatus результат попытки перехода
type StepStatus string

const (
	StepAdvanced StepStatus = "advanced" // сессия перешла на следующий шаг
	StepUpdated  StepStatus = "updated"  // выбор изменён, шаг тот же
	StepRejected StepStatus = "rejected" // ввод отклонён, состояние не изменилось
)

// RejectReason причина отклонения ввода
type RejectReason string

const (
	ReasonNone           RejectReason = ""
	ReasonWrongStep      RejectReason = "wrong_step"
	ReasonPhoneTooShort  RejectReason = "phone_too_short"
	ReasonSlotIncomplete RejectReason = "slot_incomplete"
	ReasonInvalidTime    RejectReason = "invalid_time"
	ReasonInvalidDate    RejectReason = "invalid_date"
)

// StepResult observable outcome of a guarded transition.
// Rejections never mutate the session.
type StepResult struct {
	Status StepStatus
	Step   Step
	Reason RejectReason
}

// IsRejected returns true if the input was rejected
func (r StepResult) IsRejected() bool {
	return r.Status == StepRejected
}

// BookingSession accumulates the selections of one visit to the booking screen
type BookingSession struct {
	ID      string
	OwnerID string // subject из токена доступа

	Step               Step
	PhoneNumber        string
	SelectedSalonID    *int64
	SelectedServiceIDs map[int64]struct{}
	SelectedDate       *time.Time
	SelectedTime       *string

	BookingID *int64 // заполняется после подтверждения слота

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBookingSession creates a session positioned at the Gate step
func NewBookingSession(id, ownerID string, now time.Time) *BookingSession {
	return &BookingSession{
		ID:                 id,
		OwnerID:            ownerID,
		Step:               StepGate,
		SelectedServiceIDs: make(map[int64]struct{}),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// SubmitPhone records the phone number and leaves the Gate.
// Called again after the gate is passed it is a no-op.
func (s *BookingSession) SubmitPhone(value string) StepResult {
	if s.Step != StepGate {
		return s.reject(ReasonWrongStep)
	}
	if utf8.RuneCountInString(value) < MinPhoneLength {
		return s.reject(ReasonPhoneTooShort)
	}

	s.PhoneNumber = value
	return s.advance(StepSalonSelect)
}

// ChooseNearestSalon selects the default salon and moves to service selection
func (s *BookingSession) ChooseNearestSalon(salonID int64) StepResult {
	if s.Step != StepSalonSelect {
		return s.reject(ReasonWrongStep)
	}

	s.SelectedSalonID = &salonID
	return s.advance(StepServiceSelect)
}

// ToggleService adds the service if absent and removes it otherwise
func (s *BookingSession) ToggleService(serviceID int64) StepResult {
	if s.Step != StepServiceSelect {
		return s.reject(ReasonWrongStep)
	}

	if s.SelectedServiceIDs == nil {
		s.SelectedServiceIDs = make(map[int64]struct{})
	}
	if _, ok := s.SelectedServiceIDs[serviceID]; ok {
		delete(s.SelectedServiceIDs, serviceID)
	} else {
		s.SelectedServiceIDs[serviceID] = struct{}{}
	}

	return s.update()
}

// ConfirmServices moves to time selection. An empty selection is allowed.
func (s *BookingSession) ConfirmServices() StepResult {
	if s.Step != StepServiceSelect {
		return s.reject(ReasonWrongStep)
	}
	return s.advance(StepTimeSelect)
}

// ChooseDate overwrites the selected date
func (s *BookingSession) ChooseDate(date time.Time) StepResult {
	if s.Step != StepTimeSelect {
		return s.reject(ReasonWrongStep)
	}
	if date.IsZero() {
		return s.reject(ReasonInvalidDate)
	}

	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	s.SelectedDate = &d
	return s.update()
}

// ChooseTime overwrites the selected start time (HH:MM)
func (s *BookingSession) ChooseTime(value string) StepResult {
	if s.Step != StepTimeSelect {
		return s.reject(ReasonWrongStep)
	}
	if _, err := time.Parse(TimeFormat, value); err != nil {
		return s.reject(ReasonInvalidTime)
	}

	s.SelectedTime = &value
	return s.update()
}

// CheckSlotReady guards confirmSlot: both date and time must be chosen.
// The session is not modified.
func (s *BookingSession) CheckSlotReady() StepResult {
	if s.Step != StepTimeSelect {
		return StepResult{Status: StepRejected, Step: s.Step, Reason: ReasonWrongStep}
	}
	if s.SelectedDate == nil || s.SelectedTime == nil {
		return StepResult{Status: StepRejected, Step: s.Step, Reason: ReasonSlotIncomplete}
	}
	return StepResult{Status: StepUpdated, Step: s.Step}
}

// MarkConfirmed moves a ready session to the terminal step
func (s *BookingSession) MarkConfirmed(bookingID int64) StepResult {
	if ready := s.CheckSlotReady(); ready.IsRejected() {
		return ready
	}

	s.BookingID = &bookingID
	return s.advance(StepConfirmed)
}

// ServiceIDs returns the selected services in ascending order
func (s *BookingSession) ServiceIDs() []int64 {
	ids := make([]int64, 0, len(s.SelectedServiceIDs))
	for id := range s.SelectedServiceIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IsConfirmed returns true if the slot has been handed off to the booking API
func (s *BookingSession) IsConfirmed() bool {
	return s.Step == StepConfirmed
}

func (s *BookingSession) advance(next Step) StepResult {
	s.Step = next
	s.UpdatedAt = time.Now()
	return StepResult{Status: StepAdvanced, Step: next}
}

func (s *BookingSession) update() StepResult {
	s.UpdatedAt = time.Now()
	return StepResult{Status: StepUpdated, Step: s.Step}
}

func (s *BookingSession) reject(reason RejectReason) StepResult {
	return StepResult{Status: StepRejected, Step: s.Step, Reason: reason}
}
