package journal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/SMC-SalonClient/internal/domain"
	"github.com/m04kA/SMC-SalonClient/pkg/psqlbuilder"
)

const tableName = "review_submission_journal"

// DBExecutor интерфейс для выполнения запросов (*sql.DB, *sql.Tx)
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Repository журнал попыток записи отзывов во внешний API.
// Только для диагностики: на результат отправки не влияет.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись о попытке
func (r *Repository) Append(ctx context.Context, attempt *domain.SubmissionAttempt) error {
	query, args, err := buildInsert(attempt)
	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func buildInsert(attempt *domain.SubmissionAttempt) (string, []interface{}, error) {
	var message *string
	if attempt.Message != "" {
		message = &attempt.Message
	}

	return psqlbuilder.Insert(tableName).
		Columns(
			"draft_id",
			"appointment_id",
			"reviewer_user_id",
			"target_type",
			"target_id",
			"rating",
			"idempotency_key",
			"succeeded",
			"message",
			"attempted_at",
		).
		Values(
			attempt.DraftID,
			attempt.AppointmentID,
			attempt.ReviewerUserID,
			string(attempt.TargetType),
			attempt.TargetID,
			attempt.Rating,
			attempt.IdempotencyKey,
			attempt.Succeeded,
			message,
			attempt.AttemptedAt,
		).
		ToSql()
}

// Noop журнал, используемый когда база данных выключена
type Noop struct{}

func (Noop) Append(context.Context, *domain.SubmissionAttempt) error {
	return nil
}
