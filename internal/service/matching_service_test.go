package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMatchingService(t *testing.T) (*MatchingService, *mocks.MockListingStore, *mocks.MockUserDirectory, appointmentDeps) {
	t.Helper()
	appointments, ad := newAppointmentService(t)
	applications, _ := newApplicationService(t)
	listings := mocks.NewMockListingStore(t)
	users := mocks.NewMockUserDirectory(t)
	return NewMatchingService(applications, appointments, listings, users, zap.NewNop()), listings, users, ad
}

func TestMatchingService_ApplyToListing_ResolvesListingFirst(t *testing.T) {
	svc, listings, _, _ := newMatchingService(t)

	listings.On("GetByID", mock.Anything, int64(1), model.ListingTypeStudentRequest).Return(nil, nil)

	_, err := svc.ApplyToListing(context.Background(), 1, model.ListingTypeStudentRequest, "t1", "")

	assert.ErrorIs(t, err, model.ErrListingNotFound)
}

func TestMatchingService_ApplyToListing_Self(t *testing.T) {
	svc, listings, _, _ := newMatchingService(t)

	listings.On("GetByID", mock.Anything, int64(1), model.ListingTypeStudentRequest).Return(studentRequestListing(1, "s1"), nil)

	_, err := svc.ApplyToListing(context.Background(), 1, model.ListingTypeStudentRequest, "s1", "")

	assert.ErrorIs(t, err, model.ErrSelfApplication)
}

func TestMatchingService_UpdateApplicationStatus_Unknown(t *testing.T) {
	svc, _, _, _ := newMatchingService(t)

	_, err := svc.UpdateApplicationStatus(context.Background(), 1, "done")

	assert.ErrorIs(t, err, model.ErrInvalidStatus)
}

func TestMatchingService_BookDirectly(t *testing.T) {
	t.Run("user missing", func(t *testing.T) {
		svc, _, users, _ := newMatchingService(t)
		users.On("GetByID", mock.Anything, "t1").Return(nil, nil)

		_, err := svc.BookDirectly(context.Background(), &model.Appointment{TutorID: "t1", StudentID: "s1", AppointmentTime: fixedNow})

		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})

	t.Run("user disabled", func(t *testing.T) {
		svc, _, users, _ := newMatchingService(t)
		users.On("GetByID", mock.Anything, "t1").Return(&model.User{ID: "t1", Status: model.UserStatusActive}, nil)
		users.On("GetByID", mock.Anything, "s1").Return(&model.User{ID: "s1", Status: model.UserStatusDisabled}, nil)

		_, err := svc.BookDirectly(context.Background(), &model.Appointment{TutorID: "t1", StudentID: "s1", AppointmentTime: fixedNow})

		assert.ErrorIs(t, err, model.ErrUserDisabled)
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("self", func(t *testing.T) {
		svc, _, _, _ := newMatchingService(t)

		_, err := svc.BookDirectly(context.Background(), &model.Appointment{TutorID: "u1", StudentID: "u1"})

		assert.ErrorIs(t, err, model.ErrSelfBooking)
	})

	t.Run("time required", func(t *testing.T) {
		svc, _, _, _ := newMatchingService(t)

		_, err := svc.BookDirectly(context.Background(), &model.Appointment{TutorID: "t1", StudentID: "s1"})

		assert.ErrorIs(t, err, model.ErrTimeRequired)
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("ok", func(t *testing.T) {
		svc, _, users, ad := newMatchingService(t)
		users.On("GetByID", mock.Anything, "t1").Return(&model.User{ID: "t1", Status: model.UserStatusActive}, nil)
		users.On("GetByID", mock.Anything, "s1").Return(&model.User{ID: "s1", Status: model.UserStatusActive}, nil)
		ad.allowAll("t1", "s1")
		ad.appointments.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Appointment) bool {
			return a.RequestID == nil && a.RequestType == nil
		})).Return(nil)

		requestID := int64(3)
		appt, err := svc.BookDirectly(context.Background(), &model.Appointment{
			TutorID:         "t1",
			StudentID:       "s1",
			AppointmentTime: fixedNow,
			HourlyRate:      100000,
			RequestID:       &requestID,
		})

		require.NoError(t, err)
		assert.Equal(t, model.AppointmentStatusPending, appt.Status)
		assert.Equal(t, model.Money(100000), appt.TotalAmount)
	})
}

func TestMatchingService_ListAppointmentsByTutor(t *testing.T) {
	svc, _, _, ad := newMatchingService(t)
	ad.appointments.On("ListByTutor", mock.Anything, "t1").Return([]*model.Appointment{{ID: 1, TutorID: "t1"}}, nil)

	appts, err := svc.ListAppointmentsByTutor(context.Background(), "t1")

	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, "t1", appts[0].TutorID)
}
