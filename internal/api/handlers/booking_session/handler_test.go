package booking_session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonClient/internal/api/middleware"
	"github.com/m04kA/SMC-SalonClient/internal/domain"
	sessionRepo "github.com/m04kA/SMC-SalonClient/internal/infra/storage/session"
	"github.com/m04kA/SMC-SalonClient/internal/integrations/salonapi"
	"github.com/m04kA/SMC-SalonClient/internal/service/bookingflow"
	"github.com/m04kA/SMC-SalonClient/pkg/logger"
	"github.com/m04kA/SMC-SalonClient/pkg/metrics"
)

type unusedBookingAPI struct{}

func (unusedBookingAPI) ConfirmBooking(context.Context, string, *salonapi.ConfirmBookingRequest) (*salonapi.BookingConfirmation, error) {
	panic("booking API must not be called")
}

func newRouter(access *domain.AccessSession) *mux.Router {
	repo := sessionRepo.NewRepository(sessionRepo.NewMemoryKV(), time.Hour, time.Minute)
	svc := bookingflow.NewService(repo, unusedBookingAPI{}, metrics.Noop{}, 7, logger.NewNop())
	h := NewHandler(svc, logger.NewNop())

	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithSession(req.Context(), access)))
		})
	})
	r.HandleFunc("/booking-sessions", h.Start).Methods(http.MethodPost)
	r.HandleFunc("/booking-sessions/{sessionId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/booking-sessions/{sessionId}", h.Abandon).Methods(http.MethodDelete)
	return r
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestStartGetAbandon(t *testing.T) {
	r := newRouter(&domain.AccessSession{Subject: "user-1", Token: "tkn"})

	rec := serve(r, http.MethodPost, "/booking-sessions")
	require.Equal(t, http.StatusCreated, rec.Code)

	var started bookingflow.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &started))
	require.NotNil(t, started.Session)
	assert.Equal(t, "gate", started.Session.Step)
	id := started.Session.ID

	rec = serve(r, http.MethodGet, "/booking-sessions/"+id)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(r, http.MethodDelete, "/booking-sessions/"+id)
	require.Equal(t, http.StatusOK, rec.Code)

	var abandoned bookingflow.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &abandoned))
	assert.Equal(t, domain.NavigationHome, abandoned.Navigation)

	// Сессия сброшена
	rec = serve(r, http.MethodGet, "/booking-sessions/"+id)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Повторный уход безопасен
	rec = serve(r, http.MethodDelete, "/booking-sessions/"+id)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGet_OtherOwner(t *testing.T) {
	owner := &domain.AccessSession{Subject: "user-1", Token: "tkn"}
	stranger := &domain.AccessSession{Subject: "user-2", Token: "tkn2"}

	current := owner
	repo := sessionRepo.NewRepository(sessionRepo.NewMemoryKV(), time.Hour, time.Minute)
	svc := bookingflow.NewService(repo, unusedBookingAPI{}, metrics.Noop{}, 7, logger.NewNop())
	h := NewHandler(svc, logger.NewNop())

	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithSession(req.Context(), current)))
		})
	})
	r.HandleFunc("/booking-sessions", h.Start).Methods(http.MethodPost)
	r.HandleFunc("/booking-sessions/{sessionId}", h.Get).Methods(http.MethodGet)

	rec := serve(r, http.MethodPost, "/booking-sessions")
	require.Equal(t, http.StatusCreated, rec.Code)

	var started bookingflow.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &started))

	current = stranger
	rec = serve(r, http.MethodGet, "/booking-sessions/"+started.Session.ID)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
