package users

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const usersTestSchema = `
CREATE TABLE users (
    id text PRIMARY KEY,
    email text NOT NULL UNIQUE,
    password_hash text NOT NULL,
    name text NOT NULL DEFAULT '',
    is_active integer NOT NULL DEFAULT 1,
    last_login_at datetime,
    created_at datetime NOT NULL,
    updated_at datetime NOT NULL
)`

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.Exec(usersTestSchema).Error; err != nil {
		t.Fatalf("create users schema: %v", err)
	}
	return conn
}

func TestRepositoryCreateAndFind(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{
		Email:        "  Shopper@Example.COM ",
		PasswordHash: "hash",
		Name:         "Shopper",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected generated user id")
	}
	if created.Email != "shopper@example.com" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}
	if !created.IsActive {
		t.Fatal("new users default to active")
	}

	byEmail, err := repo.FindByEmail(ctx, "SHOPPER@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("expected user %s, got %s", created.ID, byEmail.ID)
	}

	byID, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if byID.Email != created.Email {
		t.Fatalf("expected email %q, got %q", created.Email, byID.Email)
	}

	if _, err := repo.FindByID(ctx, uuid.New()); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestRepositoryUpdateLastLogin(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{
		Email:        "login@example.com",
		PasswordHash: "hash",
		Name:         "Login Tester",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	at := time.Now().UTC().Truncate(time.Second)
	if err := repo.UpdateLastLogin(ctx, created.ID, at); err != nil {
		t.Fatalf("update last login: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.LastLoginAt == nil || !reloaded.LastLoginAt.Equal(at) {
		t.Fatalf("expected last login %v, got %v", at, reloaded.LastLoginAt)
	}
}
