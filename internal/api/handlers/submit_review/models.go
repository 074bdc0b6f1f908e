package submit_review

import (
	"github.com/m04kA/SMC-SalonClient/internal/domain"
	submitReview "github.com/m04kA/SMC-SalonClient/internal/usecase/submit_review"
)

// SubmitReviewResponse HTTP response model
type SubmitReviewResponse struct {
	DraftID    string            `json:"draftId"`
	Submitted  []string          `json:"submitted"`
	Message    string            `json:"message"`
	Navigation domain.Navigation `json:"navigation,omitempty"`
}

// SubmitFailureResponse ответ при прерванной отправке.
// Цели из persisted уже сохранены, окно остается открытым для повтора.
type SubmitFailureResponse struct {
	Message      string   `json:"message"`
	FailedTarget string   `json:"failedTarget"`
	Persisted    []string `json:"persisted"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitReview.Response, message string) *SubmitReviewResponse {
	return &SubmitReviewResponse{
		DraftID:    resp.DraftID,
		Submitted:  targetNames(resp.Submitted),
		Message:    message,
		Navigation: resp.Navigation,
	}
}

// FromWriteFailure конвертирует ошибку записи в HTTP response
func FromWriteFailure(failure *submitReview.WriteFailure, message string) *SubmitFailureResponse {
	return &SubmitFailureResponse{
		Message:      message,
		FailedTarget: string(failure.Target),
		Persisted:    targetNames(failure.Persisted),
	}
}

func targetNames(targets []domain.TargetType) []string {
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, string(t))
	}
	return names
}
