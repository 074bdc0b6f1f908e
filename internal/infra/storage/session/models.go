package session

import (
	"time"

	"github.com/m04kA/SMC-SalonClient/internal/domain"
)

// bookingSessionRecord сериализуемое представление domain.BookingSession
type bookingSessionRecord struct {
	ID                 string     `json:"id"`
	OwnerID            string     `json:"ownerId"`
	Step               string     `json:"step"`
	PhoneNumber        string     `json:"phoneNumber"`
	SelectedSalonID    *int64     `json:"selectedSalonId,omitempty"`
	SelectedServiceIDs []int64    `json:"selectedServiceIds"`
	SelectedDate       *time.Time `json:"selectedDate,omitempty"`
	SelectedTime       *string    `json:"selectedTime,omitempty"`
	BookingID          *int64     `json:"bookingId,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func fromDomainSession(s *domain.BookingSession) *bookingSessionRecord {
	return &bookingSessionRecord{
		ID:                 s.ID,
		OwnerID:            s.OwnerID,
		Step:               string(s.Step),
		PhoneNumber:        s.PhoneNumber,
		SelectedSalonID:    s.SelectedSalonID,
		SelectedServiceIDs: s.ServiceIDs(),
		SelectedDate:       s.SelectedDate,
		SelectedTime:       s.SelectedTime,
		BookingID:          s.BookingID,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func (r *bookingSessionRecord) toDomain() *domain.BookingSession {
	services := make(map[int64]struct{}, len(r.SelectedServiceIDs))
	for _, id := range r.SelectedServiceIDs {
		services[id] = struct{}{}
	}

	return &domain.BookingSession{
		ID:                 r.ID,
		OwnerID:            r.OwnerID,
		Step:               domain.Step(r.Step),
		PhoneNumber:        r.PhoneNumber,
		SelectedSalonID:    r.SelectedSalonID,
		SelectedServiceIDs: services,
		SelectedDate:       r.SelectedDate,
		SelectedTime:       r.SelectedTime,
		BookingID:          r.BookingID,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// reviewDraftRecord сериализуемое представление domain.ReviewDraft
type reviewDraftRecord struct {
	ID             string   `json:"id"`
	OwnerID        string   `json:"ownerId"`
	AppointmentID  int64    `json:"appointmentId"`
	StoreID        int64    `json:"storeId"`
	StoreName      string   `json:"storeName"`
	EmployeeID     *int64   `json:"employeeId,omitempty"`
	EmployeeName   string   `json:"employeeName"`
	StoreServiceID *int64   `json:"storeServiceId,omitempty"`
	ServiceNames   []string `json:"serviceNames"`

	StoreRating   int     `json:"storeRating"`
	StylistRating int     `json:"stylistRating"`
	ServiceRating int     `json:"serviceRating"`
	Comment       *string `json:"comment,omitempty"`

	ReviewerUserID int64     `json:"reviewerUserId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func fromDomainDraft(d *domain.ReviewDraft) *reviewDraftRecord {
	a := d.Appointment
	return &reviewDraftRecord{
		ID:             d.ID,
		OwnerID:        d.OwnerID,
		AppointmentID:  a.ID,
		StoreID:        a.StoreID,
		StoreName:      a.StoreName,
		EmployeeID:     a.EmployeeID,
		EmployeeName:   a.EmployeeName,
		StoreServiceID: a.StoreServiceID,
		ServiceNames:   a.ServiceNames,
		StoreRating:    d.Ratings.Store,
		StylistRating:  d.Ratings.Stylist,
		ServiceRating:  d.Ratings.Service,
		Comment:        d.Comment,
		ReviewerUserID: d.ReviewerUserID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (r *reviewDraftRecord) toDomain() *domain.ReviewDraft {
	return &domain.ReviewDraft{
		ID:      r.ID,
		OwnerID: r.OwnerID,
		Appointment: domain.Appointment{
			ID:             r.AppointmentID,
			StoreID:        r.StoreID,
			StoreName:      r.StoreName,
			EmployeeID:     r.EmployeeID,
			EmployeeName:   r.EmployeeName,
			StoreServiceID: r.StoreServiceID,
			ServiceNames:   r.ServiceNames,
		},
		Ratings: domain.Ratings{
			Store:   r.StoreRating,
			Stylist: r.StylistRating,
			Service: r.ServiceRating,
		},
		Comment:        r.Comment,
		ReviewerUserID: r.ReviewerUserID,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
