package journal

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonClient/internal/domain"
)

type execCall struct {
	query string
	args  []interface{}
}

type fakeExecutor struct {
	calls []execCall
	err   error
}

func (f *fakeExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.calls = append(f.calls, execCall{query: query, args: args})
	if f.err != nil {
		return nil, f.err
	}
	return nil, nil
}

func TestAppend(t *testing.T) {
	db := &fakeExecutor{}
	repo := NewRepository(db)
	at := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	err := repo.Append(context.Background(), &domain.SubmissionAttempt{
		DraftID:        "d1",
		AppointmentID:  10,
		ReviewerUserID: 99,
		TargetType:     domain.TargetStore,
		TargetID:       1,
		Rating:         5,
		IdempotencyKey: "k",
		Succeeded:      false,
		Message:        "review window closed",
		AttemptedAt:    at,
	})

	require.NoError(t, err)
	require.Len(t, db.calls, 1)
	assert.Equal(t,
		"INSERT INTO review_submission_journal (draft_id,appointment_id,reviewer_user_id,target_type,target_id,rating,idempotency_key,succeeded,message,attempted_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)",
		db.calls[0].query)

	args := db.calls[0].args
	require.Len(t, args, 10)
	assert.Equal(t, "d1", args[0])
	assert.Equal(t, "Store", args[3])
	assert.Equal(t, false, args[7])
	msg, ok := args[8].(*string)
	require.True(t, ok)
	assert.Equal(t, "review window closed", *msg)
	assert.Equal(t, at, args[9])
}

func TestAppend_EmptyMessageIsNull(t *testing.T) {
	db := &fakeExecutor{}

	require.NoError(t, NewRepository(db).Append(context.Background(), &domain.SubmissionAttempt{Succeeded: true}))

	assert.Nil(t, db.calls[0].args[8].(*string))
}

func TestAppend_ExecError(t *testing.T) {
	db := &fakeExecutor{err: errors.New("connection refused")}

	err := NewRepository(db).Append(context.Background(), &domain.SubmissionAttempt{})

	assert.ErrorIs(t, err, ErrExecQuery)
}
