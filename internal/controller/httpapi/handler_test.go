package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testAPI struct {
	router        *gin.Engine
	matching      *mockMatching
	listings      *mockListings
	notifications *mockNotifications
	blacklist     *mockBlacklist
	points        *mockPoints
	users         *mockUsers
	reviews       *mockReviews
	healthErr     error
}

func setupRouter(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &testAPI{
		matching:      &mockMatching{},
		listings:      &mockListings{},
		notifications: &mockNotifications{},
		blacklist:     &mockBlacklist{},
		points:        &mockPoints{},
		users:         &mockUsers{},
		reviews:       &mockReviews{},
	}

	h := NewHandler(Services{
		Matching:      api.matching,
		Listings:      api.listings,
		Notifications: api.notifications,
		Points:        api.points,
		Blacklist:     api.blacklist,
		Users:         api.users,
		Reviews:       api.reviews,
	}, zap.NewNop())

	health := func(context.Context) error { return api.healthErr }
	api.router = NewRouter(h, health, zap.NewNop())

	t.Cleanup(func() {
		api.matching.AssertExpectations(t)
		api.listings.AssertExpectations(t)
		api.notifications.AssertExpectations(t)
		api.blacklist.AssertExpectations(t)
		api.points.AssertExpectations(t)
		api.users.AssertExpectations(t)
		api.reviews.AssertExpectations(t)
	})

	return api
}

func (a *testAPI) do(method, path, body, userID string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != "" {
		req.Header.Set(headerUserID, userID)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestApplyToListing_Created(t *testing.T) {
	api := setupRouter(t)

	api.matching.On("ApplyToListing", mock.Anything, int64(7), model.ListingTypeStudentRequest, "u2", "I can help").
		Return(&model.Application{
			ID:          1,
			ListingID:   7,
			ListingType: model.ListingTypeStudentRequest,
			ApplicantID: "u2",
			Status:      model.ApplicationStatusPending,
		}, nil)

	rec := api.do(http.MethodPost, "/api/applications",
		`{"listing_id": 7, "listing_type": "student_request", "message": "I can help"}`, "u2")

	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decode(t, rec)
	assert.True(t, env.Success)

	var app model.Application
	require.NoError(t, json.Unmarshal(env.Data, &app))
	assert.Equal(t, int64(1), app.ID)
	assert.Equal(t, model.ApplicationStatusPending, app.Status)
}

func TestApplyToListing_RequiresUserHeader(t *testing.T) {
	api := setupRouter(t)

	rec := api.do(http.MethodPost, "/api/applications", `{"listing_id": 7, "listing_type": "student_request"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, decode(t, rec).Success)
}

func TestApplyToListing_InvalidBody(t *testing.T) {
	api := setupRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"listing_id":`},
		{"missing listing id", `{"listing_type": "student_request"}`},
		{"unknown listing type", `{"listing_id": 7, "listing_type": "homework"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(http.MethodPost, "/api/applications", tt.body, "u2")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestApplyToListing_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"duplicate", model.ErrDuplicateApplication, http.StatusConflict, model.ErrDuplicateApplication.Error()},
		{"self application", model.ErrSelfApplication, http.StatusForbidden, model.ErrSelfApplication.Error()},
		{"blocked by owner", model.ErrBlockedByOwner, http.StatusForbidden, model.ErrBlockedByOwner.Error()},
		{"listing missing", model.ErrListingNotFound, http.StatusNotFound, model.ErrListingNotFound.Error()},
		{"infrastructure", errors.New("connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := setupRouter(t)
			api.matching.On("ApplyToListing", mock.Anything, int64(7), model.ListingTypeTutorProfile, "u2", "").
				Return(nil, tt.err)

			rec := api.do(http.MethodPost, "/api/applications", `{"listing_id": 7, "listing_type": "tutor_profile"}`, "u2")

			assert.Equal(t, tt.status, rec.Code)
			env := decode(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}

func TestUpdateApplicationStatus(t *testing.T) {
	tests := []struct {
		name    string
		updated bool
		err     error
		status  int
	}{
		{"accepted", true, nil, http.StatusOK},
		{"missing application", false, nil, http.StatusNotFound},
		{"not pending any more", false, model.ErrApplicationNotPending, http.StatusUnprocessableEntity},
		{"sibling already accepted", false, model.ErrAlreadyAccepted, http.StatusConflict},
		{"unknown status", false, fmt.Errorf("%w: %q", model.ErrInvalidStatus, "accepted"), http.StatusBadRequest},
		{"blocked while materializing", false, fmt.Errorf("materialize appointment: %w", model.ErrBlockedRelationship), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := setupRouter(t)
			api.matching.On("UpdateApplicationStatus", mock.Anything, int64(3), "accepted").Return(tt.updated, tt.err)

			rec := api.do(http.MethodPut, "/api/applications/3/status", `{"status": "accepted"}`, "")

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.status == http.StatusOK, decode(t, rec).Success)
		})
	}
}

func TestUpdateApplicationStatus_BadID(t *testing.T) {
	api := setupRouter(t)

	rec := api.do(http.MethodPut, "/api/applications/abc/status", `{"status": "accepted"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConfirmApplication_NotAcceptedIsNotFound(t *testing.T) {
	api := setupRouter(t)
	api.matching.On("ConfirmApplication", mock.Anything, int64(9)).Return(false, nil)

	rec := api.do(http.MethodPut, "/api/applications/9/confirm", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListApplicationsByListing_EmptyIsArray(t *testing.T) {
	api := setupRouter(t)
	api.matching.On("ListApplicationsByListing", mock.Anything, int64(4), model.ListingTypeTutorProfile).
		Return(nil, nil)

	rec := api.do(http.MethodGet, "/api/applications/listing/tutor_profile/4", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(decode(t, rec).Data))
}

func TestBookDirectly(t *testing.T) {
	api := setupRouter(t)
	when := time.Date(2026, 11, 2, 16, 0, 0, 0, time.UTC)

	api.matching.On("BookDirectly", mock.Anything, mock.MatchedBy(func(a *model.Appointment) bool {
		return a.TutorID == "t1" &&
			a.StudentID == "s1" &&
			a.AppointmentTime.Equal(when) &&
			a.HourlyRate == model.Money(150050) &&
			a.Duration == 90
	})).Return(&model.Appointment{ID: 11, TutorID: "t1", StudentID: "s1", Status: model.AppointmentStatusPending}, nil)

	body := `{
		"tutor_id": "t1",
		"student_id": "s1",
		"subject_name": "Math",
		"appointment_time": "2026-11-02T16:00:00Z",
		"duration": 90,
		"hourly_rate": 1500.50
	}`
	rec := api.do(http.MethodPost, "/api/appointments", body, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	var appt model.Appointment
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &appt))
	assert.Equal(t, int64(11), appt.ID)
}

func TestBookDirectly_Rejections(t *testing.T) {
	t.Run("missing time", func(t *testing.T) {
		api := setupRouter(t)
		rec := api.do(http.MethodPost, "/api/appointments",
			`{"tutor_id": "t1", "student_id": "s1", "subject_name": "Math"}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("self booking", func(t *testing.T) {
		api := setupRouter(t)
		api.matching.On("BookDirectly", mock.Anything, mock.Anything).Return(nil, model.ErrSelfBooking)

		rec := api.do(http.MethodPost, "/api/appointments",
			`{"tutor_id": "t1", "student_id": "t1", "subject_name": "Math", "appointment_time": "2026-11-02T16:00:00Z"}`, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestAppointmentLifecycle(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		method  string
		changed bool
		err     error
		status  int
	}{
		{"confirm", "/api/appointments/5/confirm", "ConfirmAppointment", true, nil, http.StatusOK},
		{"cancel missing", "/api/appointments/5/cancel", "CancelAppointment", false, nil, http.StatusNotFound},
		{"complete twice", "/api/appointments/5/complete", "CompleteAppointment", false, model.ErrAppointmentTransition, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := setupRouter(t)
			api.matching.On(tt.method, mock.Anything, int64(5)).Return(tt.changed, tt.err)

			rec := api.do(http.MethodPut, tt.path, "", "")

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAppointmentRoutes_UserListAndByID(t *testing.T) {
	api := setupRouter(t)
	api.matching.On("ListAppointmentsByUser", mock.Anything, "u1").Return([]*model.Appointment{{ID: 1}}, nil)
	api.matching.On("GetAppointment", mock.Anything, int64(42)).Return(nil, model.ErrAppointmentNotFound)

	rec := api.do(http.MethodGet, "/api/appointments/user/u1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/api/appointments/42", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAppointmentRoutes_ByTutor(t *testing.T) {
	api := setupRouter(t)
	api.matching.On("ListAppointmentsByTutor", mock.Anything, "t1").Return(nil, nil)

	rec := api.do(http.MethodGet, "/api/appointments/tutor/t1", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(decode(t, rec).Data))
}

func TestGetApplication(t *testing.T) {
	api := setupRouter(t)
	api.matching.On("GetApplication", mock.Anything, int64(3)).
		Return(&model.Application{ID: 3, Status: model.ApplicationStatusPending}, nil)
	api.matching.On("GetApplication", mock.Anything, int64(4)).Return(nil, model.ErrApplicationNotFound)

	rec := api.do(http.MethodGet, "/api/applications/3", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var app model.Application
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &app))
	assert.Equal(t, model.ApplicationStatusPending, app.Status)

	rec = api.do(http.MethodGet, "/api/applications/4", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateListing_OwnerAndTypeFromRequest(t *testing.T) {
	api := setupRouter(t)
	api.listings.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateListingInput) bool {
		return in.Type == model.ListingTypeTutorProfile && in.OwnerID == "t1" && in.HourlyRate == model.Money(180000)
	})).Return(&model.Listing{ID: 2, Type: model.ListingTypeTutorProfile, OwnerID: "t1"}, nil)

	rec := api.do(http.MethodPost, "/api/tutor-profiles", `{"subject_name": "Physics", "hourly_rate": "1800"}`, "t1")

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateListing_ValidationError(t *testing.T) {
	api := setupRouter(t)
	api.listings.On("Create", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: invalid fields: SubjectName (required)", model.ErrValidation))

	rec := api.do(http.MethodPost, "/api/student-requests", `{}`, "s1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Message, "SubjectName")
}

func TestNearbyListings(t *testing.T) {
	t.Run("default radius", func(t *testing.T) {
		api := setupRouter(t)
		api.listings.On("Nearby", mock.Anything, model.ListingTypeStudentRequest, 55.75, 37.62, float64(defaultNearbyRadiusKm), "Math").
			Return([]service.NearbyListing{{Listing: &model.Listing{ID: 1}, DistanceKm: 1.2}}, nil)

		rec := api.do(http.MethodGet, "/api/student-requests/nearby?lat=55.75&lng=37.62&subject=Math", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("latitude out of range", func(t *testing.T) {
		api := setupRouter(t)
		rec := api.do(http.MethodGet, "/api/student-requests/nearby?lat=120&lng=37.62", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestNotifications(t *testing.T) {
	t.Run("requires user", func(t *testing.T) {
		api := setupRouter(t)
		rec := api.do(http.MethodGet, "/api/notifications", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("list with paging", func(t *testing.T) {
		api := setupRouter(t)
		api.notifications.On("List", mock.Anything, "u1", 5, 10).Return([]*model.Notification{{ID: 1, UserID: "u1"}}, nil)

		rec := api.do(http.MethodGet, "/api/notifications?limit=5&offset=10", "", "u1")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unread count", func(t *testing.T) {
		api := setupRouter(t)
		api.notifications.On("UnreadCount", mock.Anything, "u1").Return(3, nil)

		rec := api.do(http.MethodGet, "/api/notifications/unread-count", "", "u1")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"count": 3}`, string(decode(t, rec).Data))
	})

	t.Run("mark read of foreign notification", func(t *testing.T) {
		api := setupRouter(t)
		api.notifications.On("MarkRead", mock.Anything, int64(8), "u1").Return(model.ErrNotificationNotFound)

		rec := api.do(http.MethodPut, "/api/notifications/8/read", "", "u1")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("mark all read", func(t *testing.T) {
		api := setupRouter(t)
		api.notifications.On("MarkAllRead", mock.Anything, "u1").Return(int64(4), nil)

		rec := api.do(http.MethodPut, "/api/notifications/read-all", "", "u1")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestBlacklistAndPoints(t *testing.T) {
	api := setupRouter(t)
	api.blacklist.On("Add", mock.Anything, "u1", "u1").Return(nil, model.ErrSelfBlock)
	api.blacklist.On("Remove", mock.Anything, "u1", "u2").Return(model.ErrBlacklistNotFound)
	api.points.On("Total", mock.Anything, "u1").Return(15, nil)
	api.points.On("Records", mock.Anything, "u1").Return(nil, nil)

	rec := api.do(http.MethodPost, "/api/blacklist", `{"blocked_user_id": "u1"}`, "u1")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodDelete, "/api/blacklist/u2", "", "u1")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, "/api/points/u1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id": "u1", "total": 15, "records": []}`, string(decode(t, rec).Data))
}

func TestUsers(t *testing.T) {
	api := setupRouter(t)
	api.users.On("RegisterUser", mock.Anything, "u1", "anna", "", model.UserRole("")).Return(nil, model.ErrUserExists)
	api.users.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

	rec := api.do(http.MethodPost, "/api/users", `{"id": "u1", "username": "anna"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodGet, "/api/users/ghost", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	api := setupRouter(t)

	rec := api.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	api.healthErr = errors.New("pool closed")
	rec = api.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestID(t *testing.T) {
	api := setupRouter(t)

	rec := api.do(http.MethodGet, "/healthz", "", "")
	assert.NotEmpty(t, rec.Header().Get(headerRequestID))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(headerRequestID, "req-123")
	rec = httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(headerRequestID))
}

func TestCreateReview(t *testing.T) {
	api := setupRouter(t)
	api.reviews.On("Create", mock.Anything, service.CreateReviewInput{
		AppointmentID: 9, ReviewerID: "s1", Rating: 5, Comment: "Great",
	}).Return(&model.Review{ID: 1, AppointmentID: 9, ReviewerID: "s1", ReviewedID: "t1", Rating: 5}, nil)

	rec := api.do(http.MethodPost, "/api/reviews", `{"appointment_id": 9, "rating": 5, "comment": "Great"}`, "s1")

	assert.Equal(t, http.StatusCreated, rec.Code)
	var rv model.Review
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &rv))
	assert.Equal(t, "t1", rv.ReviewedID)
}

func TestCreateReview_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		userID string
		err    error
		status int
	}{
		{"no user", `{"appointment_id": 9, "rating": 5}`, "", nil, http.StatusUnauthorized},
		{"rating out of range", `{"appointment_id": 9, "rating": 6}`, "s1", nil, http.StatusBadRequest},
		{"not completed", `{"appointment_id": 9, "rating": 5}`, "s1", model.ErrAppointmentNotFinished, http.StatusUnprocessableEntity},
		{"duplicate", `{"appointment_id": 9, "rating": 5}`, "s1", model.ErrDuplicateReview, http.StatusConflict},
		{"outsider", `{"appointment_id": 9, "rating": 5}`, "x", model.ErrReviewerNotParty, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := setupRouter(t)
			if tt.err != nil {
				api.reviews.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			rec := api.do(http.MethodPost, "/api/reviews", tt.body, tt.userID)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestReviewQueries(t *testing.T) {
	api := setupRouter(t)
	api.reviews.On("ForUser", mock.Anything, "t1").Return(&service.ReviewWithSummary{
		Summary: &model.RatingSummary{UserID: "t1", Rating: 4.5, ReviewCount: 2},
		Reviews: []*model.Review{{ID: 1}, {ID: 2}},
	}, nil)
	api.reviews.On("ByReviewer", mock.Anything, "s1").Return(nil, nil)
	api.reviews.On("GetByID", mock.Anything, int64(5)).Return(nil, model.ErrReviewNotFound)

	rec := api.do(http.MethodGet, "/api/reviews/tutor/t1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var res service.ReviewWithSummary
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &res))
	assert.Equal(t, 2, res.Summary.ReviewCount)
	assert.Len(t, res.Reviews, 2)

	rec = api.do(http.MethodGet, "/api/reviews/user/s1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(decode(t, rec).Data))

	rec = api.do(http.MethodGet, "/api/reviews/5", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
