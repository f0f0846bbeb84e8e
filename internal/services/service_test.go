package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"inkwell/internal/db"
	"inkwell/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return conn
}

// mustRegister creates a user directly through the auth service.
func mustRegister(t *testing.T, auth *AuthService, email, name, password string) *models.User {
	t.Helper()

	user, err := auth.Register(email, name, password)
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}
