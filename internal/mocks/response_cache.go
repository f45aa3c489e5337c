// Package mocks provides testify mocks for domain collaborators, in the
// expecter style used across the test suites.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockResponseCache is a mock type for the domain.ResponseCache type.
type MockResponseCache struct {
	mock.Mock
}

// MockResponseCache_Expecter records expectations on MockResponseCache.
type MockResponseCache_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the expecter.
func (_m *MockResponseCache) EXPECT() *MockResponseCache_Expecter {
	return &MockResponseCache_Expecter{mock: &_m.Mock}
}

// Get provides a mock function with given fields: ctx, key.
func (_m *MockResponseCache) Get(ctx context.Context, key string) (string, bool, error) {
	ret := _m.Called(ctx, key)
	return ret.String(0), ret.Bool(1), ret.Error(2)
}

// MockResponseCache_Get_Call wraps the Get expectation.
type MockResponseCache_Get_Call struct {
	*mock.Call
}

// Get is a helper method to define mock.On call.
func (_e *MockResponseCache_Expecter) Get(ctx interface{}, key interface{}) *MockResponseCache_Get_Call {
	return &MockResponseCache_Get_Call{Call: _e.mock.On("Get", ctx, key)}
}

// Return sets the return values.
func (_c *MockResponseCache_Get_Call) Return(text string, ok bool, err error) *MockResponseCache_Get_Call {
	_c.Call.Return(text, ok, err)
	return _c
}

// Set provides a mock function with given fields: ctx, key, text, ttl.
func (_m *MockResponseCache) Set(ctx context.Context, key string, text string, ttl time.Duration) error {
	ret := _m.Called(ctx, key, text, ttl)
	return ret.Error(0)
}

// MockResponseCache_Set_Call wraps the Set expectation.
type MockResponseCache_Set_Call struct {
	*mock.Call
}

// Set is a helper method to define mock.On call.
func (_e *MockResponseCache_Expecter) Set(
	ctx interface{},
	key interface{},
	text interface{},
	ttl interface{},
) *MockResponseCache_Set_Call {
	return &MockResponseCache_Set_Call{Call: _e.mock.On("Set", ctx, key, text, ttl)}
}

// Return sets the return values.
func (_c *MockResponseCache_Set_Call) Return(err error) *MockResponseCache_Set_Call {
	_c.Call.Return(err)
	return _c
}

// NewMockResponseCache creates a new instance of MockResponseCache. It also
// registers a cleanup function to assert the mock's expectations.
func NewMockResponseCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockResponseCache {
	m := &MockResponseCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
