package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"stock_portfolio/internal/feature/auth/domain/entity"
	"stock_portfolio/internal/shared/apperr"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
	// maxPasswordLength is bcrypt's input limit in bytes.
	maxPasswordLength = 72

	// dummyHash is compared against when the username is unknown so both
	// paths pay for one bcrypt comparison.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// AccountRepository abstracts account persistence.
// Following Go convention, the interface is defined by the consumer (usecase), not the provider (adapters).
type AccountRepository interface {
	// Create persists a new account. The uniqueness check and the insert run
	// atomically; a taken username yields ErrDuplicateUsername and a taken
	// email ErrDuplicateEmail.
	Create(ctx context.Context, account *entity.Account) error

	// FindByUsername returns ErrAccountNotFound when no account matches.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	// FindByID returns ErrAccountNotFound when no account matches.
	FindByID(ctx context.Context, id uint) (*entity.Account, error)
}

// credentialStore registers accounts and verifies passwords.
type credentialStore struct {
	accounts AccountRepository
	cost     int
}

// NewCredentialStore creates a credential store hashing with the given bcrypt cost.
// A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func NewCredentialStore(accounts AccountRepository, cost int) *credentialStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &credentialStore{accounts: accounts, cost: cost}
}

func validateRegistration(username, password, email, displayName string, role entity.Role) error {
	if len(username) < minUsernameLength {
		return apperr.NewValidation("username", fmt.Sprintf("must be at least %d characters long", minUsernameLength))
	}
	if len(password) < minPasswordLength {
		return apperr.NewValidation("password", fmt.Sprintf("must be at least %d characters long", minPasswordLength))
	}
	if len(password) > maxPasswordLength {
		return apperr.NewValidation("password", fmt.Sprintf("must be at most %d bytes long", maxPasswordLength))
	}
	if strings.TrimSpace(email) == "" {
		return apperr.NewValidation("email", "must not be empty")
	}
	if strings.TrimSpace(displayName) == "" {
		return apperr.NewValidation("display_name", "must not be empty")
	}
	if !role.Valid() {
		return apperr.NewValidation("role", "must be ADMIN or TRADER")
	}
	return nil
}

// Register validates the input, hashes the password and persists a new account.
func (s *credentialStore) Register(ctx context.Context, username, password, email, displayName string, role entity.Role) (uint, error) {
	if err := validateRegistration(username, password, email, displayName, role); err != nil {
		slog.Debug("registration rejected", "username", username, "error", err)
		return 0, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &entity.Account{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		DisplayName:  displayName,
		Role:         role,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, ErrDuplicateUsername) || errors.Is(err, ErrDuplicateEmail) {
			return 0, err
		}
		slog.Error("failed to persist account", "username", username, "error", err)
		return 0, fmt.Errorf("failed to create account: %w", err)
	}

	slog.Info("account registered", "account_id", account.ID, "username", username, "role", role)
	return account.ID, nil
}

// Verify returns the account when password matches the stored hash.
// Any mismatch, including an unknown username, yields ErrInvalidCredentials.
func (s *credentialStore) Verify(ctx context.Context, username, password string) (*entity.Account, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrAccountNotFound) {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = account.PasswordHash
	}

	// Always compare, so unknown usernames cost the same as wrong passwords.
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}
