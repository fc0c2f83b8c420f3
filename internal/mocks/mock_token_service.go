package mocks

import (
	"fmt"
	"time"

	"github.com/marifyahya/test-backenddev/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	IssueFunc  func(subjectID string) (*domain.TokenEnvelope, error)
	VerifyFunc func(token string) (*domain.TokenClaims, error)

	issued map[string]string
	count  int
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{issued: make(map[string]string)}
}

// Issue issues a token for the subject
func (m *MockTokenService) Issue(subjectID string) (*domain.TokenEnvelope, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(subjectID)
	}
	// Default behavior: distinct opaque token per call, remembered for Verify
	m.count++
	token := fmt.Sprintf("token_%s_%d", subjectID, m.count)
	if m.issued == nil {
		m.issued = make(map[string]string)
	}
	m.issued[token] = subjectID
	return &domain.TokenEnvelope{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   time.Now().Add(6 * time.Hour).Unix(),
	}, nil
}

// Verify validates a token and returns claims
func (m *MockTokenService) Verify(token string) (*domain.TokenClaims, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token)
	}
	// Default behavior: only tokens issued by this mock are valid
	subject, ok := m.issued[token]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	now := time.Now().Unix()
	return &domain.TokenClaims{
		Subject:   subject,
		Issuer:    "localhost",
		IssuedAt:  now,
		ExpiresAt: now + int64(6*time.Hour/time.Second),
	}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
