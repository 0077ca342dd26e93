package httpapi

import (
	"context"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/Freeeeeet/tutor_market/internal/service"
	"github.com/stretchr/testify/mock"
)

type mockMatching struct{ mock.Mock }

func (m *mockMatching) ApplyToListing(ctx context.Context, listingID int64, listingType model.ListingType, applicantID, message string) (*model.Application, error) {
	args := m.Called(ctx, listingID, listingType, applicantID, message)
	app, _ := args.Get(0).(*model.Application)
	return app, args.Error(1)
}

func (m *mockMatching) GetApplication(ctx context.Context, id int64) (*model.Application, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*model.Application)
	return a, args.Error(1)
}

func (m *mockMatching) UpdateApplicationStatus(ctx context.Context, id int64, status string) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *mockMatching) ConfirmApplication(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockMatching) ListApplicationsByListing(ctx context.Context, listingID int64, listingType model.ListingType) ([]*model.Application, error) {
	args := m.Called(ctx, listingID, listingType)
	apps, _ := args.Get(0).([]*model.Application)
	return apps, args.Error(1)
}

func (m *mockMatching) ListApplicationsByApplicant(ctx context.Context, applicantID string) ([]*model.Application, error) {
	args := m.Called(ctx, applicantID)
	apps, _ := args.Get(0).([]*model.Application)
	return apps, args.Error(1)
}

func (m *mockMatching) BookDirectly(ctx context.Context, appt *model.Appointment) (*model.Appointment, error) {
	args := m.Called(ctx, appt)
	a, _ := args.Get(0).(*model.Appointment)
	return a, args.Error(1)
}

func (m *mockMatching) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*model.Appointment)
	return a, args.Error(1)
}

func (m *mockMatching) ListAppointmentsByUser(ctx context.Context, userID string) ([]*model.Appointment, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).([]*model.Appointment)
	return a, args.Error(1)
}

func (m *mockMatching) ListAppointmentsByTutor(ctx context.Context, tutorID string) ([]*model.Appointment, error) {
	args := m.Called(ctx, tutorID)
	a, _ := args.Get(0).([]*model.Appointment)
	return a, args.Error(1)
}

func (m *mockMatching) ConfirmAppointment(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockMatching) CancelAppointment(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockMatching) CompleteAppointment(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockListings struct{ mock.Mock }

func (m *mockListings) Create(ctx context.Context, in service.CreateListingInput) (*model.Listing, error) {
	args := m.Called(ctx, in)
	l, _ := args.Get(0).(*model.Listing)
	return l, args.Error(1)
}

func (m *mockListings) GetByID(ctx context.Context, id int64, listingType model.ListingType) (*model.Listing, error) {
	args := m.Called(ctx, id, listingType)
	l, _ := args.Get(0).(*model.Listing)
	return l, args.Error(1)
}

func (m *mockListings) Nearby(ctx context.Context, listingType model.ListingType, lat, lon, radiusKm float64, subjectName string) ([]service.NearbyListing, error) {
	args := m.Called(ctx, listingType, lat, lon, radiusKm, subjectName)
	l, _ := args.Get(0).([]service.NearbyListing)
	return l, args.Error(1)
}

type mockNotifications struct{ mock.Mock }

func (m *mockNotifications) List(ctx context.Context, userID string, limit, offset int) ([]*model.Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	n, _ := args.Get(0).([]*model.Notification)
	return n, args.Error(1)
}

func (m *mockNotifications) UnreadCount(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockNotifications) MarkRead(ctx context.Context, id int64, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *mockNotifications) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockBlacklist struct{ mock.Mock }

func (m *mockBlacklist) Add(ctx context.Context, userID, blockedUserID string) (*model.BlacklistEntry, error) {
	args := m.Called(ctx, userID, blockedUserID)
	e, _ := args.Get(0).(*model.BlacklistEntry)
	return e, args.Error(1)
}

func (m *mockBlacklist) Remove(ctx context.Context, userID, blockedUserID string) error {
	return m.Called(ctx, userID, blockedUserID).Error(0)
}

func (m *mockBlacklist) List(ctx context.Context, userID string) ([]*model.BlacklistEntry, error) {
	args := m.Called(ctx, userID)
	e, _ := args.Get(0).([]*model.BlacklistEntry)
	return e, args.Error(1)
}

type mockPoints struct{ mock.Mock }

func (m *mockPoints) Total(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockPoints) Records(ctx context.Context, userID string) ([]*model.PointRecord, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]*model.PointRecord)
	return r, args.Error(1)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) RegisterUser(ctx context.Context, id, username, phone string, role model.UserRole) (*model.User, error) {
	args := m.Called(ctx, id, username, phone, role)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUsers) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type mockReviews struct{ mock.Mock }

func (m *mockReviews) Create(ctx context.Context, in service.CreateReviewInput) (*model.Review, error) {
	args := m.Called(ctx, in)
	rv, _ := args.Get(0).(*model.Review)
	return rv, args.Error(1)
}

func (m *mockReviews) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	args := m.Called(ctx, id)
	rv, _ := args.Get(0).(*model.Review)
	return rv, args.Error(1)
}

func (m *mockReviews) ForUser(ctx context.Context, userID string) (*service.ReviewWithSummary, error) {
	args := m.Called(ctx, userID)
	res, _ := args.Get(0).(*service.ReviewWithSummary)
	return res, args.Error(1)
}

func (m *mockReviews) ByReviewer(ctx context.Context, userID string) ([]*model.Review, error) {
	args := m.Called(ctx, userID)
	rv, _ := args.Get(0).([]*model.Review)
	return rv, args.Error(1)
}
