//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/gigfrog/backend/internal/adapter/postgres"
	activityrepo "github.com/gigfrog/backend/internal/adapter/postgres/activity"
	leadrepo "github.com/gigfrog/backend/internal/adapter/postgres/lead"
	profilerepo "github.com/gigfrog/backend/internal/adapter/postgres/profile"
	referralrepo "github.com/gigfrog/backend/internal/adapter/postgres/referral"
	"github.com/gigfrog/backend/internal/adapter/postgres/testhelper"
	userleadrepo "github.com/gigfrog/backend/internal/adapter/postgres/userlead"
	authpkg "github.com/gigfrog/backend/internal/auth"
	"github.com/gigfrog/backend/internal/config"
	jobpagesvc "github.com/gigfrog/backend/internal/service/jobpage"
	leadsvc "github.com/gigfrog/backend/internal/service/lead"
	pipelinesvc "github.com/gigfrog/backend/internal/service/pipeline"
	publishsvc "github.com/gigfrog/backend/internal/service/publish"
	referralsvc "github.com/gigfrog/backend/internal/service/referral"
	userleadsvc "github.com/gigfrog/backend/internal/service/userlead"
	"github.com/gigfrog/backend/internal/transport/middleware"
	"github.com/gigfrog/backend/internal/transport/rest"
)

const (
	testJWTSecret = "test-secret-at-least-32-chars-long!!"
	testJWTIssuer = "test-issuer"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	leads := leadrepo.New(pool)
	userLeads := userleadrepo.New(pool)
	referrals := referralrepo.New(pool)
	activities := activityrepo.New(pool)
	profiles := profilerepo.New(pool)

	verifier := authpkg.NewTokenVerifier(testJWTSecret, testJWTIssuer)
	authService := authpkg.NewService(logger, verifier, profiles)

	leadService := leadsvc.NewService(logger, leads, 10, 100)
	userLeadService := userleadsvc.NewService(logger, userLeads, leads, activities, txm)
	referralService := referralsvc.NewService(logger, referrals, userLeads, txm)
	pipelineService := pipelinesvc.NewService(logger, userLeads, leads, referrals)
	publishService := publishsvc.NewService(logger, leads, userLeads)
	jobPageService := jobpagesvc.NewService(logger, nil)

	router := rest.NewRouter(rest.Handlers{
		Health:    rest.NewHealthHandler(pool, "test-version"),
		Leads:     rest.NewLeadHandler(leadService, logger),
		UserLeads: rest.NewUserLeadHandler(userLeadService, logger),
		Referrals: rest.NewReferralHandler(referralService, logger),
		Pipeline:  rest.NewPipelineHandler(pipelineService, logger),
		Publish:   rest.NewPublishHandler(publishService, logger),
		ParseJob:  rest.NewParseJobHandler(jobPageService, logger),
	})

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		}),
		middleware.Auth(authService),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// newTestUser returns a fresh user id and a valid signed access token for it.
func newTestUser(t *testing.T) (uuid.UUID, string) {
	t.Helper()

	userID := uuid.New()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": fmt.Sprintf("test-%s@example.com", userID.String()[:8]),
		"iss":   testJWTIssuer,
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err, "sign test token")

	return userID, token
}

// makeAdmin inserts a user_profiles row granting the admin role.
func makeAdmin(t *testing.T, ts *testServer, userID uuid.UUID) {
	t.Helper()

	_, err := ts.Pool.Exec(t.Context(),
		`INSERT INTO user_profiles (id, role) VALUES ($1, 'admin')
		 ON CONFLICT (id) DO UPDATE SET role = 'admin'`,
		userID,
	)
	require.NoError(t, err, "insert admin profile")
}

// doJSON sends a JSON request and returns status + decoded body. A nil body
// sends no payload; an empty token sends no Authorization header. The decoded
// result is nil for empty responses (204).
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string) (int, any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "marshal request body")
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err, "create request")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err, "do request")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "read response body")
	if len(raw) == 0 {
		return resp.StatusCode, nil
	}

	var result any
	require.NoError(t, json.Unmarshal(raw, &result), "decode response: %s", raw)
	return resp.StatusCode, result
}

// asObject asserts the decoded body is a JSON object.
func asObject(t *testing.T, v any) map[string]any {
	t.Helper()
	obj, ok := v.(map[string]any)
	require.True(t, ok, "expected JSON object, got %T", v)
	return obj
}

// asArray asserts the decoded body is a JSON array.
func asArray(t *testing.T, v any) []any {
	t.Helper()
	arr, ok := v.([]any)
	require.True(t, ok, "expected JSON array, got %T", v)
	return arr
}

// createLead creates a lead through the API and returns its id.
func createLead(t *testing.T, ts *testServer, token, title string) uuid.UUID {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/api/leads", map[string]any{
		"title":   title,
		"company": "Acme",
	}, token)
	require.Equal(t, http.StatusCreated, status, "create lead: %v", body)

	id, err := uuid.Parse(asObject(t, body)["id"].(string))
	require.NoError(t, err, "parse lead id")
	return id
}

// saveLead saves a lead into the caller's pipeline and returns the user-lead id.
func saveLead(t *testing.T, ts *testServer, token string, leadID uuid.UUID) uuid.UUID {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/api/user-leads", map[string]any{
		"leadId": leadID,
	}, token)
	require.Equal(t, http.StatusCreated, status, "save lead: %v", body)

	id, err := uuid.Parse(asObject(t, body)["id"].(string))
	require.NoError(t, err, "parse user-lead id")
	return id
}
