package submit_review

import (
	"github.com/m04kA/SMC-SalonClient/internal/domain"
)

// Request модель запроса на отправку черновика
type Request struct {
	DraftID string
	Access  *domain.AccessSession
}

// Response результат успешной отправки
type Response struct {
	DraftID    string
	Submitted  []domain.TargetType // цели в порядке записи
	Navigation domain.Navigation
}
