package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/marifyahya/test-backenddev/domain"
)

const (
	otpMin = 10000
	otpMax = 99999

	// OTPTTL is how long a reset code stays valid
	OTPTTL = 10 * time.Minute

	otpSubject = "Account confirmation OTP code"
)

// OTPServiceImpl implements domain.OTPService with the challenge stored on the account
type OTPServiceImpl struct {
	accountRepo     domain.AccountRepository
	passwordSvc     domain.PasswordService
	notificationSvc domain.NotificationService
	now             func() time.Time
	generate        func() (int, error)
}

// NewOTPService creates a new OTP service
func NewOTPService(
	accountRepo domain.AccountRepository,
	passwordSvc domain.PasswordService,
	notificationSvc domain.NotificationService,
) domain.OTPService {
	return NewOTPServiceWithClock(accountRepo, passwordSvc, notificationSvc, time.Now)
}

// NewOTPServiceWithClock creates an OTP service that reads the current time from now
func NewOTPServiceWithClock(
	accountRepo domain.AccountRepository,
	passwordSvc domain.PasswordService,
	notificationSvc domain.NotificationService,
	now func() time.Time,
) *OTPServiceImpl {
	if now == nil {
		now = time.Now
	}
	return &OTPServiceImpl{
		accountRepo:     accountRepo,
		passwordSvc:     passwordSvc,
		notificationSvc: notificationSvc,
		now:             now,
		generate:        generateSecureCode,
	}
}

// Issue implements domain.OTPService. Any earlier challenge is overwritten.
func (s *OTPServiceImpl) Issue(ctx context.Context, account *domain.Account) (int, error) {
	code, err := s.generate()
	if err != nil {
		return 0, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	account.OTP = &domain.OTPChallenge{
		Code:      code,
		ExpiresAt: s.now().Add(OTPTTL),
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		account.OTP = nil
		return 0, fmt.Errorf("failed to store OTP: %w", err)
	}

	body := fmt.Sprintf("Hi, enter this OTP code: %d. The code is valid for %d minutes. Do not share it with anyone.",
		code, int(OTPTTL.Minutes()))
	if err := s.notificationSvc.SendEmail(ctx, account.Email, otpSubject, body); err != nil {
		// Clear the stored challenge, the user never received it
		account.OTP = nil
		if saveErr := s.accountRepo.Save(ctx, account); saveErr != nil {
			slog.Error("failed to roll back OTP challenge",
				slog.String("account_id", account.ID),
				slog.String("error", saveErr.Error()))
		}
		return 0, fmt.Errorf("%w: failed to send OTP email: %w", domain.ErrUpstream, err)
	}

	return code, nil
}

// Consume implements domain.OTPService. Expiry is checked before the code and an expired
// challenge is discarded.
func (s *OTPServiceImpl) Consume(ctx context.Context, account *domain.Account, code int, newPassword string) error {
	challenge := account.OTP
	if challenge == nil {
		return domain.ErrOTPNotFound
	}
	if challenge.Expired(s.now()) {
		account.OTP = nil
		if err := s.accountRepo.Save(ctx, account); err != nil {
			account.OTP = challenge
			return fmt.Errorf("failed to clear expired OTP: %w", err)
		}
		return domain.ErrOTPExpired
	}
	if challenge.Code != code {
		return domain.ErrOTPInvalid
	}

	hashed, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	previous := account.PasswordHash
	account.PasswordHash = hashed
	account.OTP = nil
	if err := s.accountRepo.Save(ctx, account); err != nil {
		account.PasswordHash = previous
		account.OTP = challenge
		return fmt.Errorf("failed to save password: %w", err)
	}
	return nil
}

// generateSecureCode returns a uniformly distributed code in [otpMin, otpMax]
func generateSecureCode() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return 0, err
	}
	return otpMin + int(n.Int64()), nil
}
