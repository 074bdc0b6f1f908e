package reviews

import (
	"github.com/m04kA/SMC-SalonClient/internal/domain"
)

// OpenDraftRequest запрос на открытие окна отзыва
type OpenDraftRequest struct {
	Appointment domain.Appointment
}

// UpdateDraftRequest новые оценки и комментарий
type UpdateDraftRequest struct {
	StoreRating   int
	StylistRating int
	ServiceRating int
	Comment       *string
}

// DraftView представление черновика для клиента
type DraftView struct {
	ID             string   `json:"id"`
	AppointmentID  int64    `json:"appointmentId"`
	StoreID        int64    `json:"storeId"`
	StoreName      string   `json:"storeName"`
	EmployeeID     *int64   `json:"employeeId,omitempty"`
	EmployeeName   string   `json:"employeeName,omitempty"`
	StoreServiceID *int64   `json:"storeServiceId,omitempty"`
	ServiceNames   []string `json:"serviceName"`
	StoreRating    int      `json:"storeRating"`
	StylistRating  int      `json:"stylistRating"`
	ServiceRating  int      `json:"serviceRating"`
	Comment        *string  `json:"comment,omitempty"`
	ReviewerUserID int64    `json:"reviewerUserId"`
}

// DraftResponse ответ операций над черновиком
type DraftResponse struct {
	Draft      *DraftView        `json:"draft,omitempty"`
	Navigation domain.Navigation `json:"navigation,omitempty"`
}

// FromDomainDraft конвертирует domain модель в представление
func FromDomainDraft(d *domain.ReviewDraft) *DraftView {
	a := d.Appointment
	return &DraftView{
		ID:             d.ID,
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
	}
}
