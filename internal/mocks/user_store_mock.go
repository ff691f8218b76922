package mocks

import (
	"context"

	"prompt-refiner/internal/models"
	"prompt-refiner/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserStore is a mock type for the repository.UserStore type
type MockUserStore struct {
	mock.Mock
}

// Get provides a mock function with given fields: ctx, email
func (_m *MockUserStore) Get(ctx context.Context, email string) (*models.User, error) {
	ret := _m.Called(ctx, email)

	var r0 *models.User
	if rf, ok := ret.Get(0).(func(context.Context, string) *models.User); ok {
		r0 = rf(ctx, email)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.User)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, email)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// InsertIfAbsent provides a mock function with given fields: ctx, user
func (_m *MockUserStore) InsertIfAbsent(ctx context.Context, user *models.User) error {
	ret := _m.Called(ctx, user)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *models.User) error); ok {
		r0 = rf(ctx, user)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockUserStore creates a new instance of MockUserStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockUserStore(t interface {
	mock.TestingT
	Helper()
	Cleanup(func())
}) *MockUserStore {
	m := &MockUserStore{}
	m.Mock.Test(t)
	t.Helper()
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ repository.UserStore = (*MockUserStore)(nil)
