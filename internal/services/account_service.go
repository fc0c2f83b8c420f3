package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/marifyahya/test-backenddev/domain"
)

// AccountServiceImpl implements domain.AccountService
type AccountServiceImpl struct {
	accountRepo domain.AccountRepository
	passwordSvc domain.PasswordService
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo domain.AccountRepository, passwordSvc domain.PasswordService) domain.AccountService {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
		passwordSvc: passwordSvc,
	}
}

// List implements domain.AccountService
func (s *AccountServiceImpl) List(ctx context.Context, emailQuery string) ([]*domain.Account, error) {
	return s.accountRepo.List(ctx, emailQuery)
}

// Get implements domain.AccountService
func (s *AccountServiceImpl) Get(ctx context.Context, id string) (*domain.Account, error) {
	return s.accountRepo.FindByID(ctx, id)
}

// Create implements domain.AccountService
func (s *AccountServiceImpl) Create(ctx context.Context, email, password string) (*domain.Account, error) {
	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{Email: email, PasswordHash: hashedPassword}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// UpdateEmail implements domain.AccountService. Keeping the current email is allowed.
func (s *AccountServiceImpl) UpdateEmail(ctx context.Context, id, email string) (*domain.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if account.Email != email {
		if err := s.ensureEmailFree(ctx, email, account.ID); err != nil {
			return nil, err
		}
		account.Email = email
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Delete implements domain.AccountService
func (s *AccountServiceImpl) Delete(ctx context.Context, id string) error {
	return s.accountRepo.Delete(ctx, id)
}

// ensureEmailFree fails when email belongs to an account other than ownerID
func (s *AccountServiceImpl) ensureEmailFree(ctx context.Context, email, ownerID string) error {
	existing, err := s.accountRepo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != ownerID {
		return domain.ErrUserAlreadyExists
	}
	return nil
}
