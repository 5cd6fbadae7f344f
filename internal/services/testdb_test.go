package services

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stridepath/goal_service/internal/domain"
	"github.com/stridepath/goal_service/internal/helper"
	"github.com/stridepath/goal_service/internal/repository"
)

const testSecret = "test-secret"

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "goals.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Goal{}, &domain.Step{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fakeProducer struct {
	keys []string
}

func (f *fakeProducer) PublishMessage(key, value []byte) error {
	f.keys = append(f.keys, string(key))
	return nil
}

func newTestAuth() helper.Auth {
	return helper.SetupAuth(testSecret, 30*time.Minute)
}

func newTestUserService(t *testing.T, db *gorm.DB) (UserService, *fakeProducer) {
	t.Helper()
	producer := &fakeProducer{}
	svc := NewUserService(repository.NewUserRepository(db), producer, newTestAuth())
	return svc, producer
}

func newTestGoalService(t *testing.T, db *gorm.DB) (GoalService, *fakeProducer) {
	t.Helper()
	producer := &fakeProducer{}
	svc := NewGoalService(repository.NewGoalRepository(db), producer)
	return svc, producer
}

func seedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()

	auth := newTestAuth()
	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &domain.User{Username: username, PasswordHash: hash}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}
