package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/boomerhub/boomerhub/internal/domain/usage"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
)

type mockQuotaTracker struct {
	mock.Mock
}

func (m *mockQuotaTracker) status(args mock.Arguments) (*usage.Status, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usage.Status), args.Error(1)
}

func (m *mockQuotaTracker) CheckUsage(ctx context.Context, identity usage.Identity) (*usage.Status, error) {
	return m.status(m.Called(ctx, identity))
}

func (m *mockQuotaTracker) RecordUsage(ctx context.Context, identity usage.Identity) (*usage.Status, error) {
	return m.status(m.Called(ctx, identity))
}

func (m *mockQuotaTracker) ConsumeUsage(ctx context.Context, identity usage.Identity) (*usage.Status, error) {
	return m.status(m.Called(ctx, identity))
}

func (m *mockQuotaTracker) ResetUsage(ctx context.Context, identity usage.Identity) (*usage.Status, error) {
	return m.status(m.Called(ctx, identity))
}

func (m *mockQuotaTracker) Limits() usage.Limits {
	args := m.Called()
	return args.Get(0).(usage.Limits)
}

type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Debug(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) Warn(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) With(keysAndValues ...interface{}) logger.Interface {
	return m
}

func (m *mockLogger) Named(name string) logger.Interface {
	return m
}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}
