package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonClient/internal/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestRepository() (*Repository, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)}
	kv := NewMemoryKV()
	kv.now = clock.Now
	return NewRepository(kv, time.Hour, time.Minute), clock
}

func TestBookingSession_RoundTrip(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()

	s := domain.NewBookingSession("s1", "user-1", time.Now())
	s.SubmitPhone("0123456789")
	s.ChooseNearestSalon(7)
	s.ToggleService(3)
	s.ToggleService(1)
	s.ConfirmServices()
	s.ChooseDate(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))
	s.ChooseTime("10:30")

	require.NoError(t, repo.SaveBookingSession(ctx, s))

	got, err := repo.GetBookingSession(ctx, "s1")
	require.NoError(t, err)

	assert.Equal(t, domain.StepTimeSelect, got.Step)
	assert.Equal(t, "user-1", got.OwnerID)
	assert.Equal(t, "0123456789", got.PhoneNumber)
	assert.Equal(t, int64(7), *got.SelectedSalonID)
	assert.Equal(t, []int64{1, 3}, got.ServiceIDs())
	assert.Equal(t, "2025-10-15", got.SelectedDate.Format(domain.DateFormat))
	assert.Equal(t, "10:30", *got.SelectedTime)
}

func TestBookingSession_Delete(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveBookingSession(ctx, domain.NewBookingSession("s1", "u", time.Now())))
	require.NoError(t, repo.DeleteBookingSession(ctx, "s1"))

	_, err := repo.GetBookingSession(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestBookingSession_Expires(t *testing.T) {
	repo, clock := newTestRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveBookingSession(ctx, domain.NewBookingSession("s1", "u", time.Now())))
	clock.now = clock.now.Add(time.Hour)

	_, err := repo.GetBookingSession(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestReviewDraft_RoundTrip(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()

	employeeID, serviceID := int64(2), int64(3)
	comment := "thanks"
	d := &domain.ReviewDraft{
		ID:      "d1",
		OwnerID: "user-1",
		Appointment: domain.Appointment{
			ID:             10,
			StoreID:        1,
			StoreName:      "A",
			EmployeeID:     &employeeID,
			EmployeeName:   "B",
			StoreServiceID: &serviceID,
			ServiceNames:   []string{"Cut"},
		},
		Ratings:        domain.Ratings{Store: 5, Service: 4},
		Comment:        &comment,
		ReviewerUserID: 99,
	}

	require.NoError(t, repo.SaveReviewDraft(ctx, d))

	got, err := repo.GetReviewDraft(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, d.Appointment, got.Appointment)
	assert.Equal(t, d.Ratings, got.Ratings)
	assert.Equal(t, "thanks", *got.Comment)
	assert.Equal(t, int64(99), got.ReviewerUserID)

	require.NoError(t, repo.DeleteReviewDraft(ctx, "d1"))
	_, err = repo.GetReviewDraft(ctx, "d1")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestReviewDraftLock(t *testing.T) {
	repo, clock := newTestRepository()
	ctx := context.Background()

	token, ok, err := repo.LockReviewDraft(ctx, "d1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, err = repo.LockReviewDraft(ctx, "d1")
	require.NoError(t, err)
	assert.False(t, ok, "second lock must fail while held")

	_, ok, err = repo.LockReviewDraft(ctx, "d2")
	require.NoError(t, err)
	assert.True(t, ok, "locks are per draft")

	require.NoError(t, repo.UnlockReviewDraft(ctx, "d1", token))
	token, ok, err = repo.LockReviewDraft(ctx, "d1")
	require.NoError(t, err)
	assert.True(t, ok)

	// брошенная блокировка истекает по lockTTL
	clock.now = clock.now.Add(time.Minute)
	_, ok, err = repo.LockReviewDraft(ctx, "d1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnlock_KeepsLockOfNewOwner(t *testing.T) {
	repo, clock := newTestRepository()
	ctx := context.Background()

	stale, ok, err := repo.LockReviewDraft(ctx, "d1")
	require.NoError(t, err)
	require.True(t, ok)

	// первый владелец не успел за lockTTL, блокировку взял второй
	clock.now = clock.now.Add(time.Minute)
	fresh, ok, err := repo.LockReviewDraft(ctx, "d1")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, repo.UnlockReviewDraft(ctx, "d1", stale))

	_, ok, err = repo.LockReviewDraft(ctx, "d1")
	require.NoError(t, err)
	assert.False(t, ok, "stale token must not release the new owner's lock")

	require.NoError(t, repo.UnlockReviewDraft(ctx, "d1", fresh))
	_, ok, err = repo.LockReviewDraft(ctx, "d1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBookingSessionLock(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()

	token, ok, err := repo.LockBookingSession(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = repo.LockBookingSession(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	// блокировки сессий и черновиков не пересекаются
	_, ok, err = repo.LockReviewDraft(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.UnlockBookingSession(ctx, "s1", token))
	_, ok, err = repo.LockBookingSession(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
}
