package review_draft

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonClient/internal/api/handlers"
	"github.com/m04kA/SMC-SalonClient/internal/api/middleware"
	"github.com/m04kA/SMC-SalonClient/internal/domain"
	"github.com/m04kA/SMC-SalonClient/internal/service/reviews"
	"github.com/m04kA/SMC-SalonClient/pkg/logger"
)

type fakeService struct {
	openReq   *reviews.OpenDraftRequest
	updateReq *reviews.UpdateDraftRequest
	resp      *reviews.DraftResponse
	err       error
}

func (f *fakeService) Open(_ context.Context, _ *domain.AccessSession, req *reviews.OpenDraftRequest) (*reviews.DraftResponse, error) {
	f.openReq = req
	return f.resp, f.err
}

func (f *fakeService) Get(_ context.Context, _ *domain.AccessSession, _ string) (*reviews.DraftResponse, error) {
	return f.resp, f.err
}

func (f *fakeService) Update(_ context.Context, _ *domain.AccessSession, _ string, req *reviews.UpdateDraftRequest) (*reviews.DraftResponse, error) {
	f.updateReq = req
	return f.resp, f.err
}

func (f *fakeService) Close(_ context.Context, _ *domain.AccessSession, _ string) (*reviews.DraftResponse, error) {
	return f.resp, f.err
}

var customer = &domain.AccessSession{Subject: "user-1", Token: "tkn"}

func newRequest(method, target, body string, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req.WithContext(middleware.WithSession(req.Context(), customer))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOpen_Created(t *testing.T) {
	svc := &fakeService{resp: &reviews.DraftResponse{Draft: &reviews.DraftView{ID: "draft-1", ReviewerUserID: 99}}}
	h := NewHandler(svc, logger.NewNop())

	body := `{"appointmentId":10,"storeId":1,"storeName":"A","employeeId":2,"employeeName":"B","storeServiceId":3,"serviceName":["Cut"]}`
	rec := httptest.NewRecorder()
	h.Open(rec, newRequest(http.MethodPost, "/api/v1/review-drafts", body, nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.openReq)

	a := svc.openReq.Appointment
	assert.Equal(t, int64(10), a.ID)
	assert.Equal(t, int64(1), a.StoreID)
	require.NotNil(t, a.EmployeeID)
	assert.Equal(t, int64(2), *a.EmployeeID)
	require.NotNil(t, a.StoreServiceID)
	assert.Equal(t, int64(3), *a.StoreServiceID)
	assert.Equal(t, []string{"Cut"}, a.ServiceNames)
}

func TestOpen_IdentityUnresolvedClosesModal(t *testing.T) {
	svc := &fakeService{err: reviews.ErrIdentityUnresolved}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Open(rec, newRequest(http.MethodPost, "/api/v1/review-drafts", `{"appointmentId":10,"storeId":1}`, nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, domain.NavigationClose, body.Navigation)
	assert.Equal(t, msgProfileUnavailable, body.Message)
}

func TestOpen_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "missing appointment", body: `{"storeId":1}`},
		{name: "negative employee", body: `{"appointmentId":10,"storeId":1,"employeeId":-1}`},
		{name: "unknown field", body: `{"appointmentId":10,"storeId":1,"rating":5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			h := NewHandler(svc, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Open(rec, newRequest(http.MethodPost, "/api/v1/review-drafts", tt.body, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, svc.openReq)
		})
	}
}

func TestUpdate_RatingOutOfRange(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Update(rec, newRequest(http.MethodPut, "/api/v1/review-drafts/draft-1",
		`{"storeRating":6}`, map[string]string{"draftId": "draft-1"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.updateReq)
}

func TestUpdate_PassesRatings(t *testing.T) {
	svc := &fakeService{resp: &reviews.DraftResponse{Draft: &reviews.DraftView{ID: "draft-1"}}}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Update(rec, newRequest(http.MethodPut, "/api/v1/review-drafts/draft-1",
		`{"storeRating":4,"serviceRating":5,"comment":"ok"}`, map[string]string{"draftId": "draft-1"}))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.updateReq)
	assert.Equal(t, 4, svc.updateReq.StoreRating)
	assert.Equal(t, 0, svc.updateReq.StylistRating)
	assert.Equal(t, 5, svc.updateReq.ServiceRating)
	require.NotNil(t, svc.updateReq.Comment)
	assert.Equal(t, "ok", *svc.updateReq.Comment)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid input", err: reviews.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", err: reviews.ErrDraftNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", err: reviews.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "submit in progress", err: reviews.ErrSubmitInProgress, wantStatus: http.StatusConflict},
		{name: "internal", err: reviews.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Get(rec, newRequest(http.MethodGet, "/api/v1/review-drafts/draft-1", "", map[string]string{"draftId": "draft-1"}))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestClose_NavigatesClose(t *testing.T) {
	h := NewHandler(&fakeService{resp: &reviews.DraftResponse{Navigation: domain.NavigationClose}}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Close(rec, newRequest(http.MethodDelete, "/api/v1/review-drafts/draft-1", "", map[string]string{"draftId": "draft-1"}))

	require.Equal(t, http.StatusOK, rec.Code)

	var body reviews.DraftResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.NavigationClose, body.Navigation)
	assert.Nil(t, body.Draft)
}
