package booking_steps

import (
	"time"

	"github.com/m04kA/SMC-SalonClient/internal/domain"
)

// SubmitPhoneRequest HTTP request model
type SubmitPhoneRequest struct {
	PhoneNumber string `json:"phoneNumber"` // пустой номер отклоняется шагом как phone_too_short
}

// ChooseDateRequest HTTP request model
type ChooseDateRequest struct {
	Date string `json:"date" validate:"required"` // "2025-10-15"
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func (r *ChooseDateRequest) ParseDate() (time.Time, error) {
	return time.Parse(domain.DateFormat, r.Date)
}

// ChooseTimeRequest HTTP request model
type ChooseTimeRequest struct {
	Time string `json:"time" validate:"required"` // "10:00"
}
