package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davidbz/ember/internal/domain"
)

// MockProviderRegistry is a mock type for the domain.ProviderRegistry type.
type MockProviderRegistry struct {
	mock.Mock
}

// MockProviderRegistry_Expecter records expectations on MockProviderRegistry.
type MockProviderRegistry_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the expecter.
func (_m *MockProviderRegistry) EXPECT() *MockProviderRegistry_Expecter {
	return &MockProviderRegistry_Expecter{mock: &_m.Mock}
}

// Resolve provides a mock function with given fields: ctx, providerID.
func (_m *MockProviderRegistry) Resolve(ctx context.Context, providerID string) (*domain.ProviderDescriptor, error) {
	ret := _m.Called(ctx, providerID)

	var desc *domain.ProviderDescriptor
	if v, ok := ret.Get(0).(*domain.ProviderDescriptor); ok {
		desc = v
	}

	return desc, ret.Error(1)
}

// MockProviderRegistry_Resolve_Call wraps the Resolve expectation.
type MockProviderRegistry_Resolve_Call struct {
	*mock.Call
}

// Resolve is a helper method to define mock.On call.
func (_e *MockProviderRegistry_Expecter) Resolve(ctx interface{}, providerID interface{}) *MockProviderRegistry_Resolve_Call {
	return &MockProviderRegistry_Resolve_Call{Call: _e.mock.On("Resolve", ctx, providerID)}
}

// Return sets the return values.
func (_c *MockProviderRegistry_Resolve_Call) Return(
	desc *domain.ProviderDescriptor,
	err error,
) *MockProviderRegistry_Resolve_Call {
	_c.Call.Return(desc, err)
	return _c
}

// List provides a mock function with given fields: ctx.
func (_m *MockProviderRegistry) List(ctx context.Context) ([]string, error) {
	ret := _m.Called(ctx)

	var ids []string
	if v, ok := ret.Get(0).([]string); ok {
		ids = v
	}

	return ids, ret.Error(1)
}

// MockProviderRegistry_List_Call wraps the List expectation.
type MockProviderRegistry_List_Call struct {
	*mock.Call
}

// List is a helper method to define mock.On call.
func (_e *MockProviderRegistry_Expecter) List(ctx interface{}) *MockProviderRegistry_List_Call {
	return &MockProviderRegistry_List_Call{Call: _e.mock.On("List", ctx)}
}

// Return sets the return values.
func (_c *MockProviderRegistry_List_Call) Return(ids []string, err error) *MockProviderRegistry_List_Call {
	_c.Call.Return(ids, err)
	return _c
}

// NewMockProviderRegistry creates a new instance of MockProviderRegistry. It
// also registers a cleanup function to assert the mock's expectations.
func NewMockProviderRegistry(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProviderRegistry {
	m := &MockProviderRegistry{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
