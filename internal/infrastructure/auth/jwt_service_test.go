package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/marifyahya/test-backenddev/domain"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestJWTService(t *testing.T, clock *fakeClock) *JWTServiceImpl {
	t.Helper()
	svc, err := NewJWTServiceWithClock("test-secret", clock.Now)
	if err != nil {
		t.Fatalf("failed to create jwt service: %v", err)
	}
	return svc
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	svc, err := NewJWTService("")
	if !errors.Is(err, domain.ErrMissingSigningSecret) {
		t.Fatalf("expected ErrMissingSigningSecret, got %v", err)
	}
	if svc != nil {
		t.Error("expected nil service without a secret")
	}
}

func TestJWTServiceImpl_IssueAndVerify(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}
	svc := newTestJWTService(t, clock)

	envelope, err := svc.Issue("65a1b2c3d4e5f6a7b8c9d0e1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if envelope.TokenType != "bearer" {
		t.Errorf("expected token type bearer, got %s", envelope.TokenType)
	}
	if want := clock.t.Add(6 * time.Hour).Unix(); envelope.ExpiresIn != want {
		t.Errorf("expected expires_in %d, got %d", want, envelope.ExpiresIn)
	}
	if strings.Count(envelope.AccessToken, ".") != 2 {
		t.Errorf("expected compact JWT, got %q", envelope.AccessToken)
	}

	claims, err := svc.Verify(envelope.AccessToken)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.Subject != "65a1b2c3d4e5f6a7b8c9d0e1" {
		t.Errorf("unexpected subject %s", claims.Subject)
	}
	if claims.Issuer != "localhost" {
		t.Errorf("unexpected issuer %s", claims.Issuer)
	}
	if claims.IssuedAt != clock.t.Unix() {
		t.Errorf("unexpected iat %d", claims.IssuedAt)
	}
	if claims.ExpiresAt != envelope.ExpiresIn {
		t.Errorf("claims exp %d does not match envelope %d", claims.ExpiresAt, envelope.ExpiresIn)
	}
}

func TestJWTServiceImpl_Expiry(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		verifyAt  time.Time
		expectErr error
	}{
		{"right after issue", issuedAt.Add(time.Minute), nil},
		{"one second before expiry", issuedAt.Add(TokenLifetime - time.Second), nil},
		{"exactly at expiry", issuedAt.Add(TokenLifetime), domain.ErrTokenExpired},
		{"long after expiry", issuedAt.Add(48 * time.Hour), domain.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{t: issuedAt}
			svc := newTestJWTService(t, clock)

			envelope, err := svc.Issue("1")
			if err != nil {
				t.Fatalf("issue failed: %v", err)
			}

			clock.t = tt.verifyAt
			_, err = svc.Verify(envelope.AccessToken)
			if tt.expectErr == nil && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tt.expectErr != nil && !errors.Is(err, tt.expectErr) {
				t.Fatalf("expected %v, got %v", tt.expectErr, err)
			}
		})
	}
}

func TestJWTServiceImpl_VerifyRejects(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestJWTService(t, clock)

	other, err := NewJWTServiceWithClock("another-secret", clock.Now)
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := other.Issue("1")
	if err != nil {
		t.Fatal(err)
	}

	// Expired and signed with the wrong key: the signature failure wins.
	expiredForeign := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		UID: "1",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(clock.t.Add(-10 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(-4 * time.Hour)),
			Issuer:    TokenIssuer,
		},
	})
	expiredForeignStr, _ := expiredForeign.SignedString([]byte("another-secret"))

	noneAlg := jwt.NewWithClaims(jwt.SigningMethodNone, accessClaims{
		UID: "1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
			Issuer:    TokenIssuer,
		},
	})
	noneAlgStr, _ := noneAlg.SignedString(jwt.UnsafeAllowNoneSignatureType)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
			Issuer:    TokenIssuer,
		},
	})
	noSubjectStr, _ := noSubject.SignedString([]byte("test-secret"))

	wrongIssuer := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		UID: "1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
			Issuer:    "elsewhere",
		},
	})
	wrongIssuerStr, _ := wrongIssuer.SignedString([]byte("test-secret"))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"foreign signature", foreign.AccessToken},
		{"expired with foreign signature", expiredForeignStr},
		{"none algorithm", noneAlgStr},
		{"missing subject", noSubjectStr},
		{"wrong issuer", wrongIssuerStr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token)
			if !errors.Is(err, domain.ErrTokenInvalid) {
				t.Fatalf("expected ErrTokenInvalid, got %v", err)
			}
			if claims != nil {
				t.Error("expected nil claims")
			}
		})
	}
}
