package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marifyahya/test-backenddev/domain"
	"github.com/marifyahya/test-backenddev/internal/http/middleware"
	"github.com/marifyahya/test-backenddev/internal/mocks"
)

// authenticated returns middleware accepting a single bearer token for account
func authenticated(t *testing.T, account *domain.Account) (gin.HandlerFunc, string) {
	t.Helper()

	tokenSvc := mocks.NewMockTokenService()
	envelope, err := tokenSvc.Issue(account.ID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	authSvc := mocks.NewMockAuthService()
	authSvc.ProfileFunc = func(ctx context.Context, accountID string) (*domain.Account, error) {
		if accountID != account.ID {
			return nil, domain.ErrUserNotFound
		}
		return account, nil
	}
	return middleware.AuthMiddleware(tokenSvc, authSvc, false), envelope.AccessToken
}

// performRequest sends body as JSON when it is not nil. A string body is sent verbatim.
func performRequest(r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

// fieldErrors extracts the messages reported for field in a 422 body
func fieldErrors(t *testing.T, body map[string]interface{}, field string) []interface{} {
	t.Helper()
	errs, ok := body["errors"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected errors object, got %v", body)
	}
	msgs, _ := errs[field].([]interface{})
	return msgs
}
