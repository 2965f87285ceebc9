package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/posadmin/internal/auth/domain"
	"github.com/allisson/posadmin/internal/metrics"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// SignIn records metrics for credential sign-in operations.
func (s *sessionUseCaseWithMetrics) SignIn(ctx context.Context, input domain.SignInInput) (*domain.SignInOutput, error) {
	start := time.Now()
	output, err := s.next.SignIn(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", "sign_in", status)
	s.metrics.RecordDuration(ctx, "auth", "sign_in", time.Since(start), status)

	return output, err
}

// Authenticate records metrics for token verification operations.
func (s *sessionUseCaseWithMetrics) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	start := time.Now()
	identity, err := s.next.Authenticate(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "auth", "authenticate", status)
	s.metrics.RecordDuration(ctx, "auth", "authenticate", time.Since(start), status)

	return identity, err
}

// authorizerUseCaseWithMetrics decorates AuthorizerUseCase with metrics instrumentation.
type authorizerUseCaseWithMetrics struct {
	next    AuthorizerUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthorizerUseCaseWithMetrics wraps an AuthorizerUseCase with metrics recording.
func NewAuthorizerUseCaseWithMetrics(useCase AuthorizerUseCase, m metrics.BusinessMetrics) AuthorizerUseCase {
	return &authorizerUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// CheckLive records metrics for account liveness checks.
func (a *authorizerUseCaseWithMetrics) CheckLive(ctx context.Context, accountID uuid.UUID) error {
	start := time.Now()
	err := a.next.CheckLive(ctx, accountID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "check_live", status)
	a.metrics.RecordDuration(ctx, "auth", "check_live", time.Since(start), status)

	return err
}

// Resolve records metrics for capability resolution operations.
func (a *authorizerUseCaseWithMetrics) Resolve(ctx context.Context, accountID uuid.UUID) (domain.CapabilitySet, error) {
	start := time.Now()
	set, err := a.next.Resolve(ctx, accountID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "auth", "resolve_capabilities", status)
	a.metrics.RecordDuration(ctx, "auth", "resolve_capabilities", time.Since(start), status)

	return set, err
}
