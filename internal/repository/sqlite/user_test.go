package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/avendel/textamend/internal/domain"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user := &domain.User{
		Username:     "mariah",
		PasswordHash: "hashedpw",
		FirstName:    "Mariah",
		LastName:     "Olsen",
		Email:        "mariah@example.com",
		Phone:        "+4791234567",
	}

	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user ID to be set after create")
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	byName, err := repo.GetByUsername(ctx, "mariah")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if byName.Email != "mariah@example.com" {
		t.Fatalf("expected email mariah@example.com, got %s", byName.Email)
	}

	byEmail, err := repo.GetByEmail(ctx, "mariah@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Fatalf("expected ID %d, got %d", user.ID, byEmail.ID)
	}
}

func TestUserRepository_GetByUsername_NotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.Users().GetByUsername(ctx, "nobody")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.Users().GetByEmail(ctx, "nobody@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
