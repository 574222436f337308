package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"stockfolio/internal/domain"
)

// AccountService creates accounts and verifies/rotates credentials.
// Hashing is delegated to bcrypt; the service never stores plaintext.
type AccountService struct {
	userRepo     domain.UserRepository
	startingCash decimal.Decimal
}

// NewAccountService creates a new AccountService. startingCash is the
// seed balance every new account begins with.
func NewAccountService(userRepo domain.UserRepository, startingCash decimal.Decimal) *AccountService {
	return &AccountService{
		userRepo:     userRepo,
		startingCash: startingCash,
	}
}

// Register creates a new user with the seed cash balance and an empty ledger.
func (s *AccountService) Register(ctx context.Context, username, password, confirmation string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &domain.ValidationError{Message: "username must not be empty"}
	}
	if password == "" {
		return nil, &domain.ValidationError{Message: "password must not be empty"}
	}
	if password != confirmation {
		return nil, domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Cash:         s.startingCash,
		InitialCash:  s.startingCash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("[OK] Registered user %s with starting balance %s", user.Username, s.startingCash.StringFixed(2))
	return user, nil
}

// Authenticate verifies a username/password pair. The failure is
// deliberately undifferentiated: an unknown username and a wrong
// password both return ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// ChangePassword verifies the old password and replaces the stored hash.
func (s *AccountService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword, confirmation string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}

	if newPassword == "" {
		return &domain.ValidationError{Message: "new password must not be empty"}
	}
	if newPassword != confirmation {
		return domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePasswordHash(ctx, userID, string(hash))
}
