package review_draft

import (
	"github.com/m04kA/SMC-SalonClient/internal/domain"
	"github.com/m04kA/SMC-SalonClient/internal/service/reviews"
)

// OpenDraftRequest HTTP request model: визит, по которому оставляется отзыв
type OpenDraftRequest struct {
	AppointmentID  int64    `json:"appointmentId" validate:"required,gt=0"`
	StoreID        int64    `json:"storeId" validate:"required,gt=0"`
	StoreName      string   `json:"storeName"`
	EmployeeID     *int64   `json:"employeeId,omitempty" validate:"omitempty,gt=0"`
	EmployeeName   string   `json:"employeeName,omitempty"`
	StoreServiceID *int64   `json:"storeServiceId,omitempty" validate:"omitempty,gt=0"`
	ServiceNames   []string `json:"serviceName,omitempty"`
}

// UpdateDraftRequest HTTP request model
type UpdateDraftRequest struct {
	StoreRating   int     `json:"storeRating" validate:"gte=0,lte=5"`
	StylistRating int     `json:"stylistRating" validate:"gte=0,lte=5"`
	ServiceRating int     `json:"serviceRating" validate:"gte=0,lte=5"`
	Comment       *string `json:"comment,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *OpenDraftRequest) ToServiceRequest() *reviews.OpenDraftRequest {
	return &reviews.OpenDraftRequest{
		Appointment: domain.Appointment{
			ID:             r.AppointmentID,
			StoreID:        r.StoreID,
			StoreName:      r.StoreName,
			EmployeeID:     r.EmployeeID,
			EmployeeName:   r.EmployeeName,
			StoreServiceID: r.StoreServiceID,
			ServiceNames:   r.ServiceNames,
		},
	}
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateDraftRequest) ToServiceRequest() *reviews.UpdateDraftRequest {
	return &reviews.UpdateDraftRequest{
		StoreRating:   r.StoreRating,
		StylistRating: r.StylistRating,
		ServiceRating: r.ServiceRating,
		Comment:       r.Comment,
	}
}
