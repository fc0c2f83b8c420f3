package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/marifyahya/test-backenddev/domain"
	"github.com/marifyahya/test-backenddev/internal/infrastructure/metrics"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	accountRepo domain.AccountRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	auditLogger domain.AuditLogger
	metrics     *metrics.AuthMetrics
}

// NewAuthService creates a new auth service
func NewAuthService(
	accountRepo domain.AccountRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	auditLogger domain.AuditLogger,
	authMetrics *metrics.AuthMetrics,
) domain.AuthService {
	if authMetrics == nil {
		authMetrics = metrics.Discard()
	}
	return &AuthServiceImpl{
		accountRepo: accountRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		auditLogger: auditLogger,
		metrics:     authMetrics,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, email, password string) error {
	_, err := s.accountRepo.FindByEmail(ctx, email)
	if err == nil {
		return domain.ErrUserAlreadyExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: hashedPassword,
	}
	// the unique index still catches a concurrent registration
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return err
	}

	s.audit(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, account.ID).WithEmail(email))
	return nil
}

// Login implements domain.AuthService. Unknown email and wrong password are indistinguishable.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.TokenEnvelope, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.loginFailed(ctx, email, domain.ErrInvalidCredentials)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.passwordSvc.Verify(account.PasswordHash, password) {
		s.loginFailed(ctx, email, domain.ErrInvalidCredentials)
		return nil, domain.ErrInvalidCredentials
	}

	envelope, err := s.issue(ctx, account, metrics.MethodPassword)
	if err != nil {
		return nil, err
	}

	s.metrics.Successes.With("method", metrics.MethodPassword).Add(1)
	s.audit(ctx, domain.NewAuditEvent(domain.UserLoginEvent, account.ID).WithEmail(email))
	return envelope, nil
}

// Refresh implements domain.AuthService
func (s *AuthServiceImpl) Refresh(ctx context.Context, account *domain.Account) (*domain.TokenEnvelope, error) {
	envelope, err := s.issue(ctx, account, metrics.MethodRefresh)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, domain.NewAuditEvent(domain.TokenRefreshEvent, account.ID))
	return envelope, nil
}

// Logout implements domain.AuthService. Logging out twice is not an error.
func (s *AuthServiceImpl) Logout(ctx context.Context, account *domain.Account) error {
	account.ActiveToken = ""
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}

	s.audit(ctx, domain.NewAuditEvent(domain.UserLogoutEvent, account.ID))
	return nil
}

// ForgotPassword implements domain.AuthService
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if _, err := s.otpSvc.Issue(ctx, account); err != nil {
		s.audit(ctx, domain.NewAuditEvent(domain.PasswordResetRequestEvent, account.ID).WithEmail(email).WithError(err))
		return err
	}

	s.metrics.OTPIssued.Add(1)
	s.audit(ctx, domain.NewAuditEvent(domain.PasswordResetRequestEvent, account.ID).WithEmail(email))
	return nil
}

// ResetPassword implements domain.AuthService. A confirmation mismatch is rejected before the store is touched.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, email, password, confirmation string, code int) error {
	if password != confirmation {
		return domain.ErrConfirmationMismatch
	}

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.otpSvc.Consume(ctx, account, code, password); err != nil {
		s.metrics.Failures.With("method", metrics.MethodOTP).Add(1)
		s.audit(ctx, domain.NewAuditEvent(domain.PasswordResetFailureEvent, account.ID).WithEmail(email).WithError(err))
		return err
	}

	s.metrics.Successes.With("method", metrics.MethodOTP).Add(1)
	s.audit(ctx, domain.NewAuditEvent(domain.PasswordResetEvent, account.ID).WithEmail(email))
	return nil
}

// Profile implements domain.AuthService
func (s *AuthServiceImpl) Profile(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindByID(ctx, accountID)
}

// issue signs a token for account and records it as the active one
func (s *AuthServiceImpl) issue(ctx context.Context, account *domain.Account, method string) (*domain.TokenEnvelope, error) {
	envelope, err := s.tokenSvc.Issue(account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	account.ActiveToken = envelope.AccessToken
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	s.metrics.TokenGenerations.With("method", method).Add(1)
	return envelope, nil
}

func (s *AuthServiceImpl) loginFailed(ctx context.Context, email string, err error) {
	s.metrics.Failures.With("method", metrics.MethodPassword).Add(1)
	s.audit(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, "").WithEmail(email).WithError(err))
}

func (s *AuthServiceImpl) audit(ctx context.Context, event *domain.AuditEvent) {
	if s.auditLogger == nil {
		return
	}
	event.WithClientContext(domain.ClientContextFrom(ctx))
	if err := s.auditLogger.LogEvent(ctx, event); err != nil {
		slog.Warn("failed to write audit event",
			slog.String("event_type", string(event.EventType)),
			slog.String("error", err.Error()))
	}
}
