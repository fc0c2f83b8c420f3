package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/marifyahya/test-backenddev/internal/app"
	"github.com/marifyahya/test-backenddev/internal/mocks"
	testconfig "github.com/marifyahya/test-backenddev/internal/tests/config"
)

// TestServer runs the real router over sqlite and miniredis
type TestServer struct {
	Server    *httptest.Server
	Container *app.Container
	Notifier  *mocks.MockNotificationService
	Redis     *miniredis.Miniredis
	Client    *http.Client
}

// NewTestServer creates a running server; it is stopped when the test ends
func NewTestServer(t *testing.T, enforceRevocation bool) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	cfg := testconfig.NewTestConfig(t, mr.Addr(), enforceRevocation)
	notifier := mocks.NewMockNotificationService()

	container, err := app.NewContainer(cfg, app.WithNotificationService(notifier))
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	server := httptest.NewServer(container.Router())
	t.Cleanup(server.Close)

	return &TestServer{
		Server:    server,
		Container: container,
		Notifier:  notifier,
		Redis:     mr,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Response is a decoded HTTP response
type Response struct {
	Status int
	Raw    []byte
}

// JSON decodes the body as an object
func (r *Response) JSON(t *testing.T) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(r.Raw, &body), "body: %s", r.Raw)
	return body
}

// Do sends a JSON request with an optional bearer token
func (s *TestServer) Do(t *testing.T, method, path string, body interface{}, token string) *Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, s.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "e2e-test")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return &Response{Status: resp.StatusCode, Raw: raw}
}

// RegisterAndLogin creates an account and returns its access token
func (s *TestServer) RegisterAndLogin(t *testing.T, email, password string) string {
	t.Helper()

	resp := s.Do(t, http.MethodPost, "/api/register", map[string]string{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, resp.Status, "register: %s", resp.Raw)

	resp = s.Do(t, http.MethodPost, "/api/login", map[string]string{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, resp.Status, "login: %s", resp.Raw)

	token, _ := resp.JSON(t)["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

var otpPattern = regexp.MustCompile(`\d{5}`)

// LastOTP extracts the code from the most recent email
func (s *TestServer) LastOTP(t *testing.T) int {
	t.Helper()
	sent := s.Notifier.Messages()
	require.NotEmpty(t, sent, "no email was sent")
	match := otpPattern.FindString(sent[len(sent)-1].Body)
	require.NotEmpty(t, match)
	code, err := strconv.Atoi(match)
	require.NoError(t, err)
	return code
}
