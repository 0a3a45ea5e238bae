package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	dom "github.com/DennisRussell0/cereal-api/internal/domain"
	"github.com/DennisRussell0/cereal-api/internal/repo"
	"github.com/DennisRussell0/cereal-api/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the username is unknown, so that
// both failure paths run one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	return h
})

// UserService handles user auth logic.
type UserService struct {
	repo repo.UserRepo
	cost int
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo) *UserService {
	return &UserService{repo: repo, cost: bcrypt.DefaultCost}
}

// ValidateCredentials checks username and password; returns user if valid.
// Usernames are matched exactly, including case.
func (s *UserService) ValidateCredentials(ctx context.Context, username, password string) (dom.User, error) {
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if utils.IsNoRows(err) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, fmt.Errorf("get user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// GetByID returns ErrNotFound for unknown IDs.
func (s *UserService) GetByID(ctx context.Context, id int64) (dom.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if utils.IsNoRows(err) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// EnsureUser creates the account unless the username already exists.
// The existing account's password is left untouched.
func (s *UserService) EnsureUser(ctx context.Context, username, password string) (dom.User, bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, false, ErrInvalidCredentials
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return u, false, nil
	}
	if !utils.IsNoRows(err) {
		return dom.User{}, false, fmt.Errorf("get user: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return dom.User{}, false, err
	}
	u, err = s.repo.Create(ctx, username, string(hash))
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, false, ErrUsernameTaken
		}
		return dom.User{}, false, fmt.Errorf("create user: %w", err)
	}
	return u, true, nil
}
