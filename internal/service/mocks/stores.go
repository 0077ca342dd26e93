package mocks

import (
	"context"
	"testing"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockListingStore struct {
	mock.Mock
}

func NewMockListingStore(t *testing.T) *MockListingStore {
	m := &MockListingStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockListingStore) Create(ctx context.Context, l *model.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListingStore) GetByID(ctx context.Context, id int64, listingType model.ListingType) (*model.Listing, error) {
	args := m.Called(ctx, id, listingType)
	l, _ := args.Get(0).(*model.Listing)
	return l, args.Error(1)
}

func (m *MockListingStore) SetStatus(ctx context.Context, id int64, listingType model.ListingType, status model.ListingStatus) error {
	args := m.Called(ctx, id, listingType, status)
	return args.Error(0)
}

func (m *MockListingStore) ListOpen(ctx context.Context, listingType model.ListingType, subjectName string) ([]*model.Listing, error) {
	args := m.Called(ctx, listingType, subjectName)
	l, _ := args.Get(0).([]*model.Listing)
	return l, args.Error(1)
}

type MockApplicationStore struct {
	mock.Mock
}

func NewMockApplicationStore(t *testing.T) *MockApplicationStore {
	m := &MockApplicationStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockApplicationStore) Create(ctx context.Context, app *model.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationStore) GetByID(ctx context.Context, id int64) (*model.Application, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*model.Application)
	return a, args.Error(1)
}

func (m *MockApplicationStore) Exists(ctx context.Context, listingID int64, listingType model.ListingType, applicantID string) (bool, error) {
	args := m.Called(ctx, listingID, listingType, applicantID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationStore) LockByListing(ctx context.Context, listingID int64, listingType model.ListingType) ([]*model.Application, error) {
	args := m.Called(ctx, listingID, listingType)
	a, _ := args.Get(0).([]*model.Application)
	return a, args.Error(1)
}

func (m *MockApplicationStore) UpdateStatus(ctx context.Context, id int64, status model.ApplicationStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationStore) UpdateStatusFrom(ctx context.Context, id int64, from, to model.ApplicationStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationStore) ListByListing(ctx context.Context, listingID int64, listingType model.ListingType) ([]*model.Application, error) {
	args := m.Called(ctx, listingID, listingType)
	a, _ := args.Get(0).([]*model.Application)
	return a, args.Error(1)
}

func (m *MockApplicationStore) ListByApplicant(ctx context.Context, applicantID string) ([]*model.Application, error) {
	args := m.Called(ctx, applicantID)
	a, _ := args.Get(0).([]*model.Application)
	return a, args.Error(1)
}

func (m *MockApplicationStore) ListPendingByOwner(ctx context.Context, ownerID string) ([]*model.Application, error) {
	args := m.Called(ctx, ownerID)
	a, _ := args.Get(0).([]*model.Application)
	return a, args.Error(1)
}

type MockAppointmentStore struct {
	mock.Mock
}

func NewMockAppointmentStore(t *testing.T) *MockAppointmentStore {
	m := &MockAppointmentStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAppointmentStore) Create(ctx context.Context, a *model.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAppointmentStore) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*model.Appointment)
	return a, args.Error(1)
}

func (m *MockAppointmentStore) UpdateStatus(ctx context.Context, id int64, from, to model.AppointmentStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentStore) ListByUser(ctx context.Context, userID string) ([]*model.Appointment, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).([]*model.Appointment)
	return a, args.Error(1)
}

func (m *MockAppointmentStore) ListByTutor(ctx context.Context, tutorID string) ([]*model.Appointment, error) {
	args := m.Called(ctx, tutorID)
	a, _ := args.Get(0).([]*model.Appointment)
	return a, args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func NewMockUserStore(t *testing.T) *MockUserStore {
	m := &MockUserStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserStore) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserStore) GetByTelegramChatID(ctx context.Context, chatID int64) (*model.User, error) {
	args := m.Called(ctx, chatID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserStore) SetTelegramChatID(ctx context.Context, userID string, chatID int64) error {
	args := m.Called(ctx, userID, chatID)
	return args.Error(0)
}

func (m *MockUserStore) ClearTelegramChatID(ctx context.Context, chatID int64) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}

func (m *MockUserStore) SetPoints(ctx context.Context, userID string, points int) error {
	args := m.Called(ctx, userID, points)
	return args.Error(0)
}

type MockPointStore struct {
	mock.Mock
}

func NewMockPointStore(t *testing.T) *MockPointStore {
	m := &MockPointStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPointStore) Create(ctx context.Context, record *model.PointRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPointStore) SumByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockPointStore) ListByUser(ctx context.Context, userID string) ([]*model.PointRecord, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).([]*model.PointRecord)
	return r, args.Error(1)
}

type MockNotificationStore struct {
	mock.Mock
}

func NewMockNotificationStore(t *testing.T) *MockNotificationStore {
	m := &MockNotificationStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockNotificationStore) Create(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	n, _ := args.Get(0).([]*model.Notification)
	return n, args.Error(1)
}

func (m *MockNotificationStore) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationStore) MarkRead(ctx context.Context, id int64, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationStore) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

type MockBlacklistStore struct {
	mock.Mock
}

func NewMockBlacklistStore(t *testing.T) *MockBlacklistStore {
	m := &MockBlacklistStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBlacklistStore) Exists(ctx context.Context, userID, blockedUserID string) (bool, error) {
	args := m.Called(ctx, userID, blockedUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlacklistStore) Create(ctx context.Context, entry *model.BlacklistEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockBlacklistStore) Delete(ctx context.Context, userID, blockedUserID string) (bool, error) {
	args := m.Called(ctx, userID, blockedUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlacklistStore) ListByUser(ctx context.Context, userID string) ([]*model.BlacklistEntry, error) {
	args := m.Called(ctx, userID)
	e, _ := args.Get(0).([]*model.BlacklistEntry)
	return e, args.Error(1)
}

type MockReviewStore struct {
	mock.Mock
}

func NewMockReviewStore(t *testing.T) *MockReviewStore {
	m := &MockReviewStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReviewStore) Create(ctx context.Context, rv *model.Review) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}

func (m *MockReviewStore) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	args := m.Called(ctx, id)
	rv, _ := args.Get(0).(*model.Review)
	return rv, args.Error(1)
}

func (m *MockReviewStore) ListByReviewed(ctx context.Context, userID string) ([]*model.Review, error) {
	args := m.Called(ctx, userID)
	rv, _ := args.Get(0).([]*model.Review)
	return rv, args.Error(1)
}

func (m *MockReviewStore) ListByReviewer(ctx context.Context, userID string) ([]*model.Review, error) {
	args := m.Called(ctx, userID)
	rv, _ := args.Get(0).([]*model.Review)
	return rv, args.Error(1)
}

func (m *MockReviewStore) Summary(ctx context.Context, userID string) (*model.RatingSummary, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*model.RatingSummary)
	return s, args.Error(1)
}
