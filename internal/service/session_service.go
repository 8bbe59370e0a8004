package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/voucher-service/internal/domain"
	"github.com/spec-kit/voucher-service/internal/repository"
	apperrors "github.com/spec-kit/voucher-service/pkg/util/errorutil"
)

// SessionDependencies bundles collaborators for the session gate.
type SessionDependencies struct {
	SessionRepo repository.SessionRepository
	TTL         time.Duration

	Now func() time.Time
}

// SessionService issues and verifies opaque admin session tokens. Expired
// rows are reclaimed lazily during verification; the set stays small because
// only admins hold sessions.
type SessionService struct {
	sessions repository.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionService constructs the gate.
func NewSessionService(deps SessionDependencies) *SessionService {
	ttl := deps.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &SessionService{sessions: deps.SessionRepo, ttl: ttl, now: now}
}

// Issue creates an unguessable token with an absolute expiry.
func (s *SessionService) Issue(ctx context.Context) (*domain.Session, error) {
	session := &domain.Session{
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, apperrors.NewStorageUnavailable(err)
	}
	return session, nil
}

// Verify purges expired sessions, then checks the token. Absence or expiry
// both report false.
func (s *SessionService) Verify(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	if _, err := s.sessions.DeleteExpired(ctx, s.now()); err != nil {
		return false, apperrors.NewStorageUnavailable(err)
	}
	exists, err := s.sessions.Exists(ctx, token)
	if err != nil {
		return false, apperrors.NewStorageUnavailable(err)
	}
	return exists, nil
}

// Destroy removes the session; idempotent when already absent.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return apperrors.NewStorageUnavailable(err)
	}
	return nil
}
