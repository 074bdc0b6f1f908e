package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() *BookingSession {
	return NewBookingSession("session-1", "user-1", time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC))
}

// sessionAt проводит сессию до указанного шага
func sessionAt(t *testing.T, step Step) *BookingSession {
	t.Helper()
	s := newTestSession()
	if step == StepGate {
		return s
	}
	require.Equal(t, StepAdvanced, s.SubmitPhone("0123456789").Status)
	if step == StepSalonSelect {
		return s
	}
	require.Equal(t, StepAdvanced, s.ChooseNearestSalon(7).Status)
	if step == StepServiceSelect {
		return s
	}
	require.Equal(t, StepAdvanced, s.ConfirmServices().Status)
	return s
}

func TestSubmitPhone_ShortInputStaysAtGate(t *testing.T) {
	for n := 0; n < MinPhoneLength; n++ {
		s := newTestSession()
		phone := strings.Repeat("7", n)

		res := s.SubmitPhone(phone)

		assert.Equal(t, StepRejected, res.Status, "len=%d", n)
		assert.Equal(t, ReasonPhoneTooShort, res.Reason)
		assert.Equal(t, StepGate, s.Step)
		assert.Empty(t, s.PhoneNumber)
	}
}

func TestSubmitPhone_AdvancesExactlyOnce(t *testing.T) {
	for _, phone := range []string{"0123456789", "+7 (999) 123-45-67", strings.Repeat("9", 30)} {
		s := newTestSession()

		first := s.SubmitPhone(phone)
		require.Equal(t, StepAdvanced, first.Status)
		assert.Equal(t, StepSalonSelect, s.Step)
		assert.Equal(t, phone, s.PhoneNumber)

		second := s.SubmitPhone("9999999999")
		assert.Equal(t, StepRejected, second.Status)
		assert.Equal(t, ReasonWrongStep, second.Reason)
		assert.Equal(t, StepSalonSelect, s.Step)
		assert.Equal(t, phone, s.PhoneNumber)
	}
}

func TestSubmitPhone_CountsCharactersNotBytes(t *testing.T) {
	s := newTestSession()

	res := s.SubmitPhone("١٢٣٤٥٦٧٨٩") // 9 арабских цифр, 18 байт

	assert.True(t, res.IsRejected())
	assert.Equal(t, StepGate, s.Step)
}

func TestChooseNearestSalon(t *testing.T) {
	s := sessionAt(t, StepSalonSelect)

	res := s.ChooseNearestSalon(42)

	assert.Equal(t, StepAdvanced, res.Status)
	assert.Equal(t, StepServiceSelect, s.Step)
	require.NotNil(t, s.SelectedSalonID)
	assert.Equal(t, int64(42), *s.SelectedSalonID)
}

func TestChooseNearestSalon_RejectedOutsideStep(t *testing.T) {
	s := newTestSession()

	res := s.ChooseNearestSalon(42)

	assert.Equal(t, ReasonWrongStep, res.Reason)
	assert.Nil(t, s.SelectedSalonID)
	assert.Equal(t, StepGate, s.Step)
}

func TestToggleService_IsInvolution(t *testing.T) {
	s := sessionAt(t, StepServiceSelect)
	s.ToggleService(1)
	s.ToggleService(2)
	before := s.ServiceIDs()

	for _, id := range []int64{1, 2, 3} {
		s.ToggleService(id)
		s.ToggleService(id)
		assert.Equal(t, before, s.ServiceIDs(), "id=%d", id)
	}
	assert.Equal(t, StepServiceSelect, s.Step)
}

func TestToggleService_AddsAndRemoves(t *testing.T) {
	s := sessionAt(t, StepServiceSelect)

	res := s.ToggleService(5)
	assert.Equal(t, StepUpdated, res.Status)
	assert.Equal(t, []int64{5}, s.ServiceIDs())

	s.ToggleService(3)
	assert.Equal(t, []int64{3, 5}, s.ServiceIDs())

	s.ToggleService(5)
	assert.Equal(t, []int64{3}, s.ServiceIDs())
}

func TestConfirmServices_AllowsEmptySelection(t *testing.T) {
	s := sessionAt(t, StepServiceSelect)

	res := s.ConfirmServices()

	assert.Equal(t, StepAdvanced, res.Status)
	assert.Equal(t, StepTimeSelect, s.Step)
	assert.Empty(t, s.ServiceIDs())
}

func TestChooseDateAndTime_Overwrite(t *testing.T) {
	s := sessionAt(t, StepTimeSelect)

	s.ChooseDate(time.Date(2025, 10, 15, 13, 30, 0, 0, time.UTC))
	s.ChooseDate(time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC))
	s.ChooseTime("10:00")
	res := s.ChooseTime("11:30")

	assert.Equal(t, StepUpdated, res.Status)
	require.NotNil(t, s.SelectedDate)
	assert.Equal(t, "2025-10-16", s.SelectedDate.Format(DateFormat))
	require.NotNil(t, s.SelectedTime)
	assert.Equal(t, "11:30", *s.SelectedTime)
}

func TestChooseTime_RejectsMalformed(t *testing.T) {
	s := sessionAt(t, StepTimeSelect)
	s.ChooseTime("10:00")

	res := s.ChooseTime("25:99")

	assert.Equal(t, ReasonInvalidTime, res.Reason)
	assert.Equal(t, "10:00", *s.SelectedTime)
}

func TestMarkConfirmed_NoOpWithoutDateOrTime(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(s *BookingSession)
	}{
		{name: "nothing chosen", prepare: func(s *BookingSession) {}},
		{name: "only date", prepare: func(s *BookingSession) {
			s.ChooseDate(time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC))
		}},
		{name: "only time", prepare: func(s *BookingSession) {
			s.ChooseTime("12:00")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sessionAt(t, StepTimeSelect)
			tt.prepare(s)

			res := s.MarkConfirmed(100)

			assert.Equal(t, StepRejected, res.Status)
			assert.Equal(t, ReasonSlotIncomplete, res.Reason)
			assert.Equal(t, StepTimeSelect, s.Step)
			assert.Nil(t, s.BookingID)
		})
	}
}

func TestMarkConfirmed_Terminal(t *testing.T) {
	s := sessionAt(t, StepTimeSelect)
	s.ChooseDate(time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC))
	s.ChooseTime("12:00")

	res := s.MarkConfirmed(100)

	assert.Equal(t, StepAdvanced, res.Status)
	assert.True(t, s.IsConfirmed())
	require.NotNil(t, s.BookingID)
	assert.Equal(t, int64(100), *s.BookingID)

	assert.True(t, s.ChooseTime("13:00").IsRejected())
	assert.True(t, s.MarkConfirmed(101).IsRejected())
	assert.Equal(t, int64(100), *s.BookingID)
}
