package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Enodevs/speedvoice-backend/internal/apperr"
	"github.com/Enodevs/speedvoice-backend/internal/models"
)

func TestLoginTokenRoundTrip(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	svc := NewLoginTokenService(conn, nil)
	user := seedUser(t, conn, "login@example.com", models.PlanBasic)

	token, err := svc.Generate("login@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	session, err := svc.Exchange(token)
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if session.UserID != user.ID || session.Email != user.Email {
		t.Fatalf("session = %+v, want user %d", session, user.ID)
	}
	if session.AuthToken == "" {
		t.Fatalf("empty auth token")
	}

	// One-time: the login token is gone after exchange.
	if _, err := svc.Exchange(token); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("reuse: err = %v, want not found", err)
	}

	// The session token resolves for the middleware.
	uid, ok := svc.ResolveSession(session.AuthToken)
	if !ok || uid != user.ID {
		t.Fatalf("resolve session = (%d, %v), want (%d, true)", uid, ok, user.ID)
	}
}

func TestLoginTokenExpires(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	svc := NewLoginTokenService(conn, nil)
	seedUser(t, conn, "slow@example.com", models.PlanBasic)

	token, err := svc.Generate("slow@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	stale := time.Now().Add(-(models.LoginTokenTTL + time.Minute))
	if err := conn.Model(&models.LoginToken{}).Where("token = ?", token).
		Update("created_at", stale).Error; err != nil {
		t.Fatalf("backdate token: %v", err)
	}
	if _, err := svc.Exchange(token); !errors.Is(err, apperr.ErrTokenExpired) {
		t.Fatalf("err = %v, want token expired", err)
	}
}

func TestSessionTokenIsStable(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	svc := NewLoginTokenService(conn, nil)
	user := seedUser(t, conn, "stable@example.com", models.PlanBasic)

	k1, err := svc.SessionToken(user)
	if err != nil {
		t.Fatalf("session token: %v", err)
	}
	k2, err := svc.SessionToken(user)
	if err != nil {
		t.Fatalf("second session token: %v", err)
	}
	if k1 != k2 {
		t.Fatalf("expected stable session token, got %q and %q", k1, k2)
	}
}

func TestGenerateUnknownEmail(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	svc := NewLoginTokenService(conn, nil)
	if _, err := svc.Generate("nobody@example.com"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if _, err := svc.Generate(""); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}
