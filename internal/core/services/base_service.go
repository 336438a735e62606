package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/ledgerlite/internal/middleware"
)

// EventTracker receives product analytics events. utils.PosthogClientWrapper implements it.
type EventTracker interface {
	Enqueue(distinctId string, event string, properties map[string]any)
}

// BaseService provides common functionality for all services
type BaseService struct {
	Tracker EventTracker
	Clock   func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the current UTC time, or the injected clock's time in tests.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// Track sends an analytics event when a tracker is configured.
func (s *BaseService) Track(userID, event string, properties map[string]any) {
	if s.Tracker == nil {
		return
	}
	s.Tracker.Enqueue(userID, event, properties)
}

// ServiceOption configures the shared parts of a service.
type ServiceOption func(*BaseService)

// WithEventTracker adds an analytics tracker
func WithEventTracker(tracker EventTracker) ServiceOption {
	return func(s *BaseService) {
		s.Tracker = tracker
	}
}

// WithClock replaces time.Now
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

func newBaseService(options []ServiceOption) BaseService {
	base := BaseService{}
	for _, option := range options {
		option(&base)
	}
	return base
}
