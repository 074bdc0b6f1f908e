package salonapi

// Profile профиль текущего пользователя
type Profile struct {
	UserID *int64 `json:"userId"` // nil, если поле отсутствует в ответе
}

// CreateReviewRequest тело POST /reviews
type CreateReviewRequest struct {
	UserID        int64   `json:"userId"`
	AppointmentID int64   `json:"appointmentId"`
	TargetID      int64   `json:"targetId"`
	TargetType    string  `json:"targetType"` // Store, Employee, StoreService
	Rating        int     `json:"rating"`
	Comment       *string `json:"comment"`
}

// ConfirmBookingRequest тело POST /bookings
type ConfirmBookingRequest struct {
	PhoneNumber string  `json:"phoneNumber"`
	SalonID     int64   `json:"salonId"`
	ServiceIDs  []int64 `json:"serviceIds"`
	Date        string  `json:"date"` // "2025-10-15"
	Time        string  `json:"time"` // "10:00"
}

// BookingConfirmation ответ на подтверждение слота
type BookingConfirmation struct {
	BookingID int64 `json:"bookingId"`
}

// ErrorResponse модель ошибки от API
type ErrorResponse struct {
	Message string `json:"message"`
}
