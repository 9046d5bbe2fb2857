package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tasknest/tasknest-backend/internal/apperror"
	"github.com/tasknest/tasknest-backend/internal/auth"
)

func newAuthService() (*AuthService, *memDB) {
	db := newMemDB()
	return NewAuthService(memUsers{db}, plainHasher{}, fixedTokens{}), db
}

func TestRegisterDuplicateIsConflict(t *testing.T) {
	svc, db := newAuthService()
	ctx := context.Background()

	first, err := svc.Register(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err = svc.Register(ctx, "alice", "pw2")
	if apperror.KindOf(err) != apperror.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	stored := db.users[first.ID]
	if stored.PasswordHash != "hashed:pw1" || len(db.users) != 1 {
		t.Fatalf("failed registration must not touch the stored record: %#v", db.users)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _ := newAuthService()
	for _, tc := range []struct{ user, pass string }{{"  ", "pw"}, {"bob", ""}, {"bob", "   "}} {
		if _, err := svc.Register(context.Background(), tc.user, tc.pass); apperror.KindOf(err) != apperror.KindValidation {
			t.Fatalf("expected validation error for %q/%q, got %v", tc.user, tc.pass, err)
		}
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()
	if _, err := svc.Register(ctx, "u", "right"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, wrongPassword := svc.Login(ctx, "u", "wrong")
	_, unknownUser := svc.Login(ctx, "nonexistent", "x")

	for _, err := range []error{wrongPassword, unknownUser} {
		if apperror.KindOf(err) != apperror.KindUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	}
	if apperror.PublicMessage(wrongPassword) != apperror.PublicMessage(unknownUser) {
		t.Fatalf("messages differ: %q vs %q", apperror.PublicMessage(wrongPassword), apperror.PublicMessage(unknownUser))
	}
}

func TestLoginIssuesToken(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()
	user, _ := svc.Register(ctx, "u", "right")

	token, err := svc.Login(ctx, "u", "right")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "token-"+itoa(user.ID) {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestLoginStorageFailureIsInternal(t *testing.T) {
	svc, db := newAuthService()
	db.failWith = errors.New("connection refused")

	_, err := svc.Login(context.Background(), "u", "pw")
	if apperror.KindOf(err) != apperror.KindInternal {
		t.Fatalf("expected internal, got %v", err)
	}
}

func TestRegisterRejectsPasswordBcryptCannotHash(t *testing.T) {
	db := newMemDB()
	svc := NewAuthService(memUsers{db}, auth.NewPasswordHasher(4), fixedTokens{})
	ctx := context.Background()

	for _, pass := range []string{strings.Repeat("p", 73), strings.Repeat("é", 37)} {
		_, err := svc.Register(ctx, "alice", pass)
		if apperror.KindOf(err) != apperror.KindValidation {
			t.Fatalf("expected validation error for %d bytes, got %v", len(pass), err)
		}
		if apperror.PublicMessage(err) != "Password must be at most 72 bytes" {
			t.Fatalf("unexpected message %q", apperror.PublicMessage(err))
		}
	}
	if len(db.users) != 0 {
		t.Fatalf("no user should be stored: %#v", db.users)
	}

	if _, err := svc.Register(ctx, "alice", strings.Repeat("p", 72)); err != nil {
		t.Fatalf("72 bytes is allowed: %v", err)
	}
}

func TestRegisterRejectsLongUsername(t *testing.T) {
	svc, _ := newAuthService()
	_, err := svc.Register(context.Background(), strings.Repeat("u", MaxNameLength+1), "pw")
	if apperror.KindOf(err) != apperror.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
