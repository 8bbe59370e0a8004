package service

import (
	"context"
	"testing"
	"time"
)

func TestSessionIssueAndVerify(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(SessionDependencies{
		SessionRepo: repo,
		TTL:         time.Hour,
		Now:         fixedClock(t, "2024-03-15 10:00"),
	})
	ctx := context.Background()

	session, err := svc.Issue(ctx)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if session.Token == "" {
		t.Fatal("empty token")
	}
	if !session.ExpiresAt.After(session.CreatedAt) {
		t.Fatalf("expiry %v not after creation %v", session.ExpiresAt, session.CreatedAt)
	}

	ok, err := svc.Verify(ctx, session.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("fresh token rejected")
	}
}

func TestSessionVerifyUnknownAndEmptyToken(t *testing.T) {
	svc := NewSessionService(SessionDependencies{SessionRepo: newFakeSessionRepo(), TTL: time.Hour})
	ctx := context.Background()

	for _, token := range []string{"", "not-issued"} {
		ok, err := svc.Verify(ctx, token)
		if err != nil {
			t.Fatalf("Verify(%q): %v", token, err)
		}
		if ok {
			t.Fatalf("Verify(%q) = true, want false", token)
		}
	}
}

func TestSessionExpiryPurgesRow(t *testing.T) {
	repo := newFakeSessionRepo()
	current := fixedClock(t, "2024-03-15 10:00")()
	svc := NewSessionService(SessionDependencies{
		SessionRepo: repo,
		TTL:         time.Hour,
		Now:         func() time.Time { return current },
	})
	ctx := context.Background()

	session, err := svc.Issue(ctx)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	current = current.Add(2 * time.Hour)
	ok, err := svc.Verify(ctx, session.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatal("expired token accepted")
	}
	if exists, _ := repo.Exists(ctx, session.Token); exists {
		t.Fatal("expired row survived the purge")
	}
}

func TestSessionDestroyIsIdempotent(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(SessionDependencies{SessionRepo: repo, TTL: time.Hour})
	ctx := context.Background()

	session, err := svc.Issue(ctx)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := svc.Destroy(ctx, session.Token); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if ok, _ := svc.Verify(ctx, session.Token); ok {
		t.Fatal("destroyed token still verifies")
	}
	if err := svc.Destroy(ctx, session.Token); err != nil {
		t.Fatalf("second Destroy: %v", err)
	}
	if err := svc.Destroy(ctx, ""); err != nil {
		t.Fatalf("Destroy empty token: %v", err)
	}
}
