package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/contas_app/internal/apperrors"
	"github.com/SscSPs/contas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/contas_app/internal/core/ports/repositories"
	"github.com/SscSPs/contas_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Store    portsrepo.TransactionManager
	Clock    func() time.Time
	Location *time.Location // Zone that decides what "today" is for due dates
}

// ServiceOption is a functional option shared by every service
type ServiceOption func(*BaseService)

// WithClock overrides the time source, mostly for tests
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

// WithLocation sets the time zone used to derive the current business day
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *BaseService) {
		s.Location = loc
	}
}

func newBaseService(store portsrepo.TransactionManager, options ...ServiceOption) BaseService {
	base := BaseService{Store: store, Clock: time.Now, Location: time.UTC}
	for _, option := range options {
		option(&base)
	}
	return base
}

// Now returns the current instant in UTC
func (s *BaseService) Now() time.Time {
	return s.Clock().UTC()
}

// Today returns the current business day in the configured zone
func (s *BaseService) Today() time.Time {
	return domain.Today(s.Clock(), s.Location)
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
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// logFailure logs err at warn level for caller mistakes and error level otherwise.
func (s *BaseService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if _, isDomain := apperrors.KindOf(err); isDomain {
		args := append([]any{slog.String("error", err.Error())}, keyvals...)
		s.GetLogger(ctx).Warn(msg, args...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}
