package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/marifyahya/test-backenddev/domain"
)

const (
	// TokenLifetime is fixed; callers cannot request a different lifetime.
	TokenLifetime = 6 * time.Hour
	TokenIssuer   = "localhost"
	TokenType     = "bearer"
)

// accessClaims is the JWT payload: iat, uid, exp, iss
type accessClaims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey []byte
	now       func() time.Time
}

// NewJWTService creates a new JWT service. An empty secret is a fatal misconfiguration.
func NewJWTService(secretKey string) (domain.TokenService, error) {
	svc, err := NewJWTServiceWithClock(secretKey, time.Now)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// NewJWTServiceWithClock creates a JWT service that reads the current time from now
func NewJWTServiceWithClock(secretKey string, now func() time.Time) (*JWTServiceImpl, error) {
	if secretKey == "" {
		return nil, domain.ErrMissingSigningSecret
	}
	if now == nil {
		now = time.Now
	}
	return &JWTServiceImpl{
		secretKey: []byte(secretKey),
		now:       now,
	}, nil
}

// Issue implements domain.TokenService
func (j *JWTServiceImpl) Issue(subjectID string) (*domain.TokenEnvelope, error) {
	now := j.now()
	expiresAt := jwt.NewNumericDate(now.Add(TokenLifetime))
	claims := accessClaims{
		UID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: expiresAt,
			Issuer:    TokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return nil, err
	}

	return &domain.TokenEnvelope{
		AccessToken: signed,
		TokenType:   TokenType,
		ExpiresIn:   expiresAt.Unix(),
	}, nil
}

// Verify implements domain.TokenService. The signature is checked before any claim is trusted.
func (j *JWTServiceImpl) Verify(tokenString string) (*domain.TokenClaims, error) {
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return j.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(TokenIssuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if claims.UID == "" {
		return nil, domain.ErrTokenInvalid
	}

	tokenClaims := &domain.TokenClaims{
		Subject:   claims.UID,
		Issuer:    claims.Issuer,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}
	if claims.IssuedAt != nil {
		tokenClaims.IssuedAt = claims.IssuedAt.Unix()
	}
	return tokenClaims, nil
}
