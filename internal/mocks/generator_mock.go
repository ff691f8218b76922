package mocks

import (
	"context"

	"prompt-refiner/internal/ai"

	"github.com/stretchr/testify/mock"
)

// MockGenerator is a mock type for the ai.Generator type
type MockGenerator struct {
	mock.Mock
}

// Complete provides a mock function with given fields: ctx, prompt
func (_m *MockGenerator) Complete(ctx context.Context, prompt string) (ai.Result, error) {
	ret := _m.Called(ctx, prompt)

	var r0 ai.Result
	if rf, ok := ret.Get(0).(func(context.Context, string) ai.Result); ok {
		r0 = rf(ctx, prompt)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(ai.Result)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, prompt)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Chat provides a mock function with given fields: ctx, history
func (_m *MockGenerator) Chat(ctx context.Context, history []ai.Turn) (ai.Result, error) {
	ret := _m.Called(ctx, history)

	var r0 ai.Result
	if rf, ok := ret.Get(0).(func(context.Context, []ai.Turn) ai.Result); ok {
		r0 = rf(ctx, history)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(ai.Result)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, []ai.Turn) error); ok {
		r1 = rf(ctx, history)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockGenerator creates a new instance of MockGenerator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockGenerator(t interface {
	mock.TestingT
	Helper()
	Cleanup(func())
}) *MockGenerator {
	m := &MockGenerator{}
	m.Mock.Test(t)
	t.Helper()
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ ai.Generator = (*MockGenerator)(nil)
