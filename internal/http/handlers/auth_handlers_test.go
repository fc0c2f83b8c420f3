package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marifyahya/test-backenddev/domain"
	"github.com/marifyahya/test-backenddev/internal/mocks"
)

func setupAuthRouter(t *testing.T, authSvc *mocks.MockAuthService, account *domain.Account) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewAuthHandlers(authSvc)
	auth, token := authenticated(t, account)

	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/forgot", h.ForgotPassword)
	r.POST("/reset", h.ResetPassword)
	r.POST("/logout", auth, h.Logout)
	r.GET("/profile", auth, h.Profile)
	r.POST("/refresh", auth, h.Refresh)
	return r, token
}

func TestAuthHandlers_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		expectedField  string
		expectedMsg    string
	}{
		{
			name:           "success",
			body:           RegisterRequest{Email: "a@b.com", Password: "123456"},
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusOK,
			expectedMsg:    "success",
		},
		{
			name:           "empty body",
			body:           nil,
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedField:  "email",
			expectedMsg:    "The email field is required.",
		},
		{
			name:           "invalid email",
			body:           RegisterRequest{Email: "not-an-email", Password: "123456"},
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedField:  "email",
			expectedMsg:    "The email field must be a valid email address.",
		},
		{
			name:           "short password",
			body:           RegisterRequest{Email: "a@b.com", Password: "12345"},
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedField:  "password",
			expectedMsg:    "The password field must be at least 6 characters.",
		},
		{
			name:           "malformed json",
			body:           `{"email":`,
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedField:  "body",
			expectedMsg:    "The request body must be a valid JSON object.",
		},
		{
			name:           "wrong field type",
			body:           `{"email": 5, "password": "123456"}`,
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedField:  "email",
			expectedMsg:    "The email field is invalid.",
		},
		{
			name: "email already taken",
			body: RegisterRequest{Email: "a@b.com", Password: "123456"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RegisterFunc = func(ctx context.Context, email, password string) error {
					return domain.ErrUserAlreadyExists
				}
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedField:  "email",
			expectedMsg:    "The email has already been taken.",
		},
		{
			name: "store unavailable",
			body: RegisterRequest{Email: "a@b.com", Password: "123456"},
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.RegisterFunc = func(ctx context.Context, email, password string) error {
					return fmt.Errorf("failed to create account: %w", domain.ErrUpstream)
				}
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedMsg:    msgUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupMocks(authSvc)
			r, _ := setupAuthRouter(t, authSvc, &domain.Account{ID: "1"})

			w := performRequest(r, http.MethodPost, "/register", tt.body, "")

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			body := decodeBody(t, w)
			if tt.expectedField != "" {
				msgs := fieldErrors(t, body, tt.expectedField)
				if len(msgs) == 0 || msgs[0] != tt.expectedMsg {
					t.Errorf("expected %q for %s, got %v", tt.expectedMsg, tt.expectedField, msgs)
				}
				return
			}
			if body["message"] != tt.expectedMsg {
				t.Errorf("expected message %q, got %v", tt.expectedMsg, body["message"])
			}
		})
	}
}

func TestAuthHandlers_Login(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
	}{
		{
			name:           "success returns envelope",
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusOK,
		},
		{
			name: "invalid credentials",
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, email, password string) (*domain.TokenEnvelope, error) {
					return nil, domain.ErrInvalidCredentials
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unexpected failure",
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, email, password string) (*domain.TokenEnvelope, error) {
					return nil, fmt.Errorf("boom")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupMocks(authSvc)
			r, _ := setupAuthRouter(t, authSvc, &domain.Account{ID: "1"})

			w := performRequest(r, http.MethodPost, "/login", LoginRequest{Email: "a@b.com", Password: "123456"}, "")

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			body := decodeBody(t, w)
			switch tt.expectedStatus {
			case http.StatusOK:
				if body["access_token"] != "mock_access_token" || body["token_type"] != "bearer" {
					t.Errorf("unexpected envelope %v", body)
				}
				if _, ok := body["expires_in"].(float64); !ok {
					t.Errorf("expected numeric expires_in, got %v", body["expires_in"])
				}
			case http.StatusBadRequest:
				if body["message"] != msgInvalidCredentials {
					t.Errorf("unexpected message %v", body["message"])
				}
			}
		})
	}
}

func TestAuthHandlers_AuthenticatedRoutes(t *testing.T) {
	account := &domain.Account{
		ID:           "7",
		Email:        "a@b.com",
		PasswordHash: "secret-hash",
		ActiveToken:  "stored-token",
		OTP:          &domain.OTPChallenge{Code: 12345},
	}

	t.Run("profile hides secrets", func(t *testing.T) {
		r, token := setupAuthRouter(t, mocks.NewMockAuthService(), account)

		w := performRequest(r, http.MethodGet, "/profile", nil, token)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["email"] != "a@b.com" || body["_id"] != "7" {
			t.Errorf("unexpected profile %v", body)
		}
		for _, hidden := range []string{"password", "PasswordHash", "token", "ActiveToken", "otp", "OTP"} {
			if _, ok := body[hidden]; ok {
				t.Errorf("profile must not expose %s", hidden)
			}
		}
	})

	t.Run("profile without token", func(t *testing.T) {
		r, _ := setupAuthRouter(t, mocks.NewMockAuthService(), account)

		w := performRequest(r, http.MethodGet, "/profile", nil, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("logout passes the caller", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()
		var loggedOut *domain.Account
		authSvc.LogoutFunc = func(ctx context.Context, a *domain.Account) error {
			loggedOut = a
			return nil
		}
		r, token := setupAuthRouter(t, authSvc, account)

		w := performRequest(r, http.MethodPost, "/logout", nil, token)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if loggedOut == nil || loggedOut.ID != "7" {
			t.Errorf("expected logout for account 7, got %+v", loggedOut)
		}
	})

	t.Run("refresh returns envelope", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()
		authSvc.RefreshFunc = func(ctx context.Context, a *domain.Account) (*domain.TokenEnvelope, error) {
			return &domain.TokenEnvelope{AccessToken: "fresh_" + a.ID, TokenType: "bearer", ExpiresIn: 1}, nil
		}
		r, token := setupAuthRouter(t, authSvc, account)

		w := performRequest(r, http.MethodPost, "/refresh", nil, token)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["access_token"] != "fresh_7" {
			t.Errorf("unexpected envelope %v", body)
		}
	})
}

func TestAuthHandlers_ForgotPassword(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{name: "code sent", expectedStatus: http.StatusOK, expectedMsg: "Check your email for the OTP code"},
		{name: "unknown email", err: domain.ErrUserNotFound, expectedStatus: http.StatusBadRequest, expectedMsg: msgNoAccountForEmail},
		{
			name:           "mail unavailable",
			err:            fmt.Errorf("%w: failed to send OTP email: dial tcp", domain.ErrUpstream),
			expectedStatus: http.StatusServiceUnavailable,
			expectedMsg:    msgUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			authSvc.ForgotPasswordFunc = func(ctx context.Context, email string) error { return tt.err }
			r, _ := setupAuthRouter(t, authSvc, &domain.Account{ID: "1"})

			w := performRequest(r, http.MethodPost, "/forgot", ForgotPasswordRequest{Email: "a@b.com"}, "")

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if body := decodeBody(t, w); body["message"] != tt.expectedMsg {
				t.Errorf("expected message %q, got %v", tt.expectedMsg, body["message"])
			}
		})
	}
}

func TestAuthHandlers_ResetPassword(t *testing.T) {
	validBody := `{"email":"a@b.com","password":"newpass","password_confirmation":"newpass","otp":12345}`

	tests := []struct {
		name           string
		body           string
		err            error
		expectedStatus int
		expectedMsg    string
		expectedCode   int
	}{
		{name: "success", body: validBody, expectedStatus: http.StatusOK, expectedMsg: "Password updated successfully.", expectedCode: 12345},
		{
			name:           "otp as numeric string",
			body:           `{"email":"a@b.com","password":"newpass","password_confirmation":"newpass","otp":"54321"}`,
			expectedStatus: http.StatusOK,
			expectedMsg:    "Password updated successfully.",
			expectedCode:   54321,
		},
		{name: "expired", body: validBody, err: domain.ErrOTPExpired, expectedStatus: http.StatusBadRequest, expectedMsg: msgOTPExpired},
		{name: "wrong code", body: validBody, err: domain.ErrOTPInvalid, expectedStatus: http.StatusBadRequest, expectedMsg: msgOTPInvalid},
		{name: "no code requested", body: validBody, err: domain.ErrOTPNotFound, expectedStatus: http.StatusBadRequest, expectedMsg: msgOTPNotFound},
		{name: "confirmation mismatch", body: validBody, err: domain.ErrConfirmationMismatch, expectedStatus: http.StatusBadRequest, expectedMsg: msgConfirmMismatch},
		{name: "unknown email", body: validBody, err: domain.ErrUserNotFound, expectedStatus: http.StatusBadRequest, expectedMsg: msgNoAccountForEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			var gotCode int
			authSvc.ResetPasswordFunc = func(ctx context.Context, email, password, confirmation string, code int) error {
				gotCode = code
				return tt.err
			}
			r, _ := setupAuthRouter(t, authSvc, &domain.Account{ID: "1"})

			w := performRequest(r, http.MethodPost, "/reset", tt.body, "")

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if body := decodeBody(t, w); body["message"] != tt.expectedMsg {
				t.Errorf("expected message %q, got %v", tt.expectedMsg, body["message"])
			}
			if tt.expectedCode != 0 && gotCode != tt.expectedCode {
				t.Errorf("expected code %d, got %d", tt.expectedCode, gotCode)
			}
		})
	}

	t.Run("fractional otp", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()
		r, _ := setupAuthRouter(t, authSvc, &domain.Account{ID: "1"})

		w := performRequest(r, http.MethodPost, "/reset",
			`{"email":"a@b.com","password":"newpass","password_confirmation":"newpass","otp":12.5}`, "")

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		if msgs := fieldErrors(t, decodeBody(t, w), "otp"); len(msgs) != 1 {
			t.Errorf("expected one otp error, got %v", msgs)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		r, _ := setupAuthRouter(t, mocks.NewMockAuthService(), &domain.Account{ID: "1"})

		w := performRequest(r, http.MethodPost, "/reset", `{"email":"a@b.com"}`, "")

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		body := decodeBody(t, w)
		for _, field := range []string{"password", "password_confirmation", "otp"} {
			if len(fieldErrors(t, body, field)) == 0 {
				t.Errorf("expected an error for %s", field)
			}
		}
		if msgs := fieldErrors(t, body, "password_confirmation"); len(msgs) > 0 && msgs[0] != "The password confirmation field is required." {
			t.Errorf("unexpected message %v", msgs[0])
		}
	})
}
