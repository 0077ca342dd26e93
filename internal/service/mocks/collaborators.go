package mocks

import (
	"context"
	"testing"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockUserDirectory struct {
	mock.Mock
}

func NewMockUserDirectory(t *testing.T) *MockUserDirectory {
	m := &MockUserDirectory{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserDirectory) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type MockBlacklistOracle struct {
	mock.Mock
}

func NewMockBlacklistOracle(t *testing.T) *MockBlacklistOracle {
	m := &MockBlacklistOracle{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBlacklistOracle) IsBlocked(ctx context.Context, blockerID, blockedID string) (bool, error) {
	args := m.Called(ctx, blockerID, blockedID)
	return args.Bool(0), args.Error(1)
}

type MockPointsLedger struct {
	mock.Mock
}

func NewMockPointsLedger(t *testing.T) *MockPointsLedger {
	m := &MockPointsLedger{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPointsLedger) Grant(ctx context.Context, userID string, points int, pointType, description string) error {
	args := m.Called(ctx, userID, points, pointType, description)
	return args.Error(0)
}

type MockNotificationSink struct {
	mock.Mock
}

func NewMockNotificationSink(t *testing.T) *MockNotificationSink {
	m := &MockNotificationSink{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockNotificationSink) Send(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockMaterializer struct {
	mock.Mock
}

func NewMockMaterializer(t *testing.T) *MockMaterializer {
	m := &MockMaterializer{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockMaterializer) MaterializeFromApplication(ctx context.Context, app *model.Application) (*model.Appointment, error) {
	args := m.Called(ctx, app)
	a, _ := args.Get(0).(*model.Appointment)
	return a, args.Error(1)
}
