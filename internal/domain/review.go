package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TargetType the category a rating applies to
type TargetType string

const (
	TargetStore        TargetType = "Store"
	TargetEmployee     TargetType = "Employee"
	TargetStoreService TargetType = "StoreService"
)

// reviewKeyNamespace пространство имён для ключей идемпотентности отзывов
var reviewKeyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("smc-salon-client/reviews"))

// Appointment completed appointment descriptor supplied by the caller
type Appointment struct {
	ID             int64
	StoreID        int64
	StoreName      string
	EmployeeID     *int64
	EmployeeName   string
	StoreServiceID *int64
	ServiceNames   []string
}

// HasServiceName returns true if at least one non-empty service name is present
func (a *Appointment) HasServiceName() bool {
	for _, name := range a.ServiceNames {
		if name != "" {
			return true
		}
	}
	return false
}

// Ratings star ratings per target, 0 = not rated
type Ratings struct {
	Store   int
	Stylist int
	Service int
}

// IsEmpty returns true if nothing was rated
func (r Ratings) IsEmpty() bool {
	return r.Store == 0 && r.Stylist == 0 && r.Service == 0
}

// InRange returns true if every rating is within [MinRating, MaxRating]
func (r Ratings) InRange() bool {
	for _, v := range []int{r.Store, r.Stylist, r.Service} {
		if v < MinRating || v > MaxRating {
			return false
		}
	}
	return true
}

// ReviewDraft lives for one open/close cycle of the review modal
type ReviewDraft struct {
	ID             string
	OwnerID        string
	Appointment    Appointment
	Ratings        Ratings
	Comment        *string
	ReviewerUserID int64 // 0 = профиль ещё не получен

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IdentityResolved returns true if the reviewer identity is known
func (d *ReviewDraft) IdentityResolved() bool {
	return d.ReviewerUserID > 0
}

// BuildRecords returns the records to write in the fixed order
// Store, Employee, StoreService. Unrated targets are skipped.
func (d *ReviewDraft) BuildRecords() []ReviewRecord {
	records := make([]ReviewRecord, 0, 3)
	a := d.Appointment

	if d.Ratings.Store > 0 {
		records = append(records, d.record(a.StoreID, TargetStore, d.Ratings.Store))
	}
	if a.EmployeeID != nil && d.Ratings.Stylist > 0 {
		records = append(records, d.record(*a.EmployeeID, TargetEmployee, d.Ratings.Stylist))
	}
	if a.HasServiceName() && a.StoreServiceID != nil && d.Ratings.Service > 0 {
		records = append(records, d.record(*a.StoreServiceID, TargetStoreService, d.Ratings.Service))
	}

	return records
}

func (d *ReviewDraft) record(targetID int64, targetType TargetType, rating int) ReviewRecord {
	return ReviewRecord{
		ReviewerUserID: d.ReviewerUserID,
		AppointmentID:  d.Appointment.ID,
		TargetID:       targetID,
		TargetType:     targetType,
		Rating:         rating,
		Comment:        d.Comment,
	}
}

// ReviewRecord one persisted rating for exactly one target. Write-once.
type ReviewRecord struct {
	ReviewerUserID int64
	AppointmentID  int64
	TargetID       int64
	TargetType     TargetType
	Rating         int
	Comment        *string
}

// IdempotencyKey is stable for the (appointment, target type) pair
func (r *ReviewRecord) IdempotencyKey() string {
	name := fmt.Sprintf("%d:%s", r.AppointmentID, r.TargetType)
	return uuid.NewSHA1(reviewKeyNamespace, []byte(name)).String()
}

// SubmissionAttempt журнальная запись об одной попытке записи отзыва
type SubmissionAttempt struct {
	DraftID        string
	AppointmentID  int64
	ReviewerUserID int64
	TargetType     TargetType
	TargetID       int64
	Rating         int
	IdempotencyKey string
	Succeeded      bool
	Message        string
	AttemptedAt    time.Time
}
