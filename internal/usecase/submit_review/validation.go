package submit_review

import (
	"fmt"

	"github.com/m04kA/SMC-SalonClient/internal/domain"
)

// prepareRecords проверяет предусловия отправки и строит записи. Не выполняет I/O.
func prepareRecords(draft *domain.ReviewDraft) ([]domain.ReviewRecord, error) {
	if !draft.IdentityResolved() {
		return nil, ErrIdentityUnresolved
	}

	if !draft.Ratings.InRange() {
		return nil, fmt.Errorf("%w: ratings must be within %d..%d", ErrInvalidRatings, domain.MinRating, domain.MaxRating)
	}

	if draft.Ratings.IsEmpty() {
		return nil, ErrNoRatings
	}

	// Оценка выставлена только цели, которой нет у визита (например, мастеру без employeeId)
	records := draft.BuildRecords()
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no rated target is present in the appointment", ErrNoRatings)
	}

	return records, nil
}
