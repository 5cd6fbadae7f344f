package middleware

import (
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stridepath/goal_service/internal/domain"
	"github.com/stridepath/goal_service/internal/helper"
	"github.com/stridepath/goal_service/internal/repository"
	"github.com/stridepath/goal_service/internal/services"
)

const testSecret = "test-secret"

func setupApp(t *testing.T, requireActive bool) (*fiber.App, helper.Auth, *gorm.DB) {
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

	auth := helper.SetupAuth(testSecret, 30*time.Minute)
	userSvc := services.NewUserService(repository.NewUserRepository(db), nil, auth)

	app := fiber.New()
	app.Get("/protected", AuthMiddleware(userSvc, requireActive), func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"username": user.Username})
	})

	return app, auth, db
}

func seedUser(t *testing.T, db *gorm.DB, username string, disabled bool) {
	t.Helper()
	if err := db.Create(&domain.User{
		Username:     username,
		PasswordHash: "irrelevant",
		Disabled:     disabled,
	}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func request(t *testing.T, app *fiber.App, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app, _, _ := setupApp(t, true)
	if code := request(t, app, ""); code != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	app, _, _ := setupApp(t, true)
	if code := request(t, app, "Bearer garbage"); code != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", code)
	}
}

func TestAuthMiddleware_UnknownSubject(t *testing.T) {
	app, auth, _ := setupApp(t, true)

	tok, err := auth.GenerateToken("ghost")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if code := request(t, app, "Bearer "+tok); code != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	app, auth, db := setupApp(t, true)
	seedUser(t, db, "alice", false)

	tok, err := auth.GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if code := request(t, app, "Bearer "+tok); code != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	app, _, db := setupApp(t, true)
	seedUser(t, db, "alice", false)

	expired := helper.SetupAuth(testSecret, -time.Minute)
	tok, err := expired.GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if code := request(t, app, "Bearer "+tok); code != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", code)
	}
}

func TestAuthMiddleware_DisabledAccount(t *testing.T) {
	app, auth, db := setupApp(t, true)
	seedUser(t, db, "alice", true)

	tok, err := auth.GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if code := request(t, app, "Bearer "+tok); code != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", code)
	}

	// Without the active check the same token passes.
	relaxed, _, relaxedDB := setupApp(t, false)
	seedUser(t, relaxedDB, "alice", true)
	if code := request(t, relaxed, "Bearer "+tok); code != fiber.StatusOK {
		t.Fatalf("relaxed status = %d, want 200", code)
	}
}
