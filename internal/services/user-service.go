package services

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stridepath/goal_service/internal/domain"
	"github.com/stridepath/goal_service/internal/dto"
	"github.com/stridepath/goal_service/internal/helper"
	"github.com/stridepath/goal_service/internal/interfaces"
	"github.com/stridepath/goal_service/internal/repository"
)

type UserService interface {
	// Auth
	Register(input dto.RegisterRequest) (*domain.User, error)
	Authenticate(username, password string) (*domain.User, error)
	Login(input dto.UserLogin) (string, error)

	// Identity resolution for authenticated requests
	ResolveToken(header string, requireActive bool) (*domain.User, error)

	// Directory
	GetByUsername(username string) (*domain.User, error)
}

type userService struct {
	repo     repository.UserRepository
	auth     helper.Auth
	producer interfaces.ProducerHandler
}

func NewUserService(repo repository.UserRepository, producer interfaces.ProducerHandler, auth helper.Auth) UserService {
	return &userService{
		repo:     repo,
		auth:     auth,
		producer: producer,
	}
}

func (u *userService) Register(input dto.RegisterRequest) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || strings.TrimSpace(input.Password) == "" {
		return nil, errors.New("invalid inputs")
	}

	// Pre-check for a friendly Conflict; the unique index is what makes
	// it race-free.
	if existing, err := u.repo.FindUserByUsername(username); err == nil && existing != nil && existing.ID != 0 {
		return nil, ErrConflict
	}

	hashed, err := u.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	newUser := &domain.User{
		Username:     username,
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: hashed,
	}

	usr, err := u.repo.CreateUser(newUser)
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, errors.New("failed to create user")
	}

	u.publishUserRegistered(usr)

	return usr, nil
}

// Authenticate fails with the same error whether the user is missing or
// the password is wrong, so callers cannot enumerate usernames.
func (u *userService) Authenticate(username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := u.repo.FindUserByUsername(username)
	if err != nil || user == nil || user.ID == 0 {
		return nil, ErrInvalidCredentials
	}

	if err := u.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (u *userService) Login(input dto.UserLogin) (string, error) {
	user, err := u.Authenticate(input.Username, input.Password)
	if err != nil {
		return "", err
	}

	token, err := u.auth.GenerateToken(user.Username)
	if err != nil {
		return "", errors.New("could not generate token")
	}
	return token, nil
}

// ResolveToken turns a bearer header into the user record it asserts.
// Missing token, bad token and unknown subject all come back as
// ErrUnauthenticated; only an established but disabled identity yields
// ErrInactiveAccount.
func (u *userService) ResolveToken(header string, requireActive bool) (*domain.User, error) {
	subject, err := u.auth.VerifyToken(header)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := u.repo.FindUserByUsername(subject)
	if err != nil || user == nil || user.ID == 0 {
		return nil, ErrUnauthenticated
	}

	if requireActive && user.Disabled {
		return nil, ErrInactiveAccount
	}

	return user, nil
}

func (u *userService) GetByUsername(username string) (*domain.User, error) {
	user, err := u.repo.FindUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (u *userService) publishUserRegistered(usr *domain.User) {
	if u.producer == nil {
		return
	}

	payload, err := json.Marshal(dto.UserRegisteredEvent{
		EventID:    uuid.NewString(),
		UserID:     usr.ID,
		Username:   usr.Username,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return
	}
	if err := u.producer.PublishMessage([]byte(dto.EventUserRegistered), payload); err != nil {
		log.Printf("publish %s error: %v", dto.EventUserRegistered, err)
	}
}
