package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	"github.com/SscSPs/ledgerlite/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "middleware-secret"
	testIssuer = "ledgerlite-test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubContextSvc authorizes business contexts only for allowed.
type stubContextSvc struct {
	allowed  string
	resolved []domain.AccountingContext
}

func (s *stubContextSvc) Resolve(_ context.Context, userID string, actx domain.AccountingContext) (domain.LedgerScope, error) {
	s.resolved = append(s.resolved, actx)
	if !actx.IsPersonal() && actx.CompanyID != s.allowed {
		return domain.LedgerScope{}, apperrors.NewForbiddenError("access to company denied")
	}
	return actx.ScopeFor(userID), nil
}

func (s *stubContextSvc) Switch(context.Context, string, domain.AccountingContext) (*domain.ContextSwitch, error) {
	return nil, nil
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware(t *testing.T) {
	valid, err := utils.GenerateJWT("user-1", testSecret, time.Hour, testIssuer)
	require.NoError(t, err)
	otherIssuer, err := utils.GenerateJWT("user-1", testSecret, time.Hour, "someone-else")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"foreign issuer", "Bearer " + otherIssuer, http.StatusUnauthorized},
		{"valid token", "Bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/me", AuthMiddleware(testSecret, testIssuer), func(c *gin.Context) {
				userID, _ := GetUserIDFromContext(c)
				c.String(http.StatusOK, userID)
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "user-1", w.Body.String())
			} else {
				assert.Equal(t, "UNAUTHORIZED", decodeError(t, w)["code"])
			}
		})
	}
}

func TestLedgerContextMiddleware(t *testing.T) {
	const allowed = "2b1c9a4e-7c55-4d3a-9a0e-3f3d1a2b4c5d"
	token, err := utils.GenerateJWT("user-1", testSecret, time.Hour, testIssuer)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
		wantCode   string
		wantMode   domain.ContextMode
	}{
		{name: "defaults to personal", wantStatus: http.StatusOK, wantMode: domain.ModePersonal},
		{name: "member company", header: "business:" + allowed, wantStatus: http.StatusOK, wantMode: domain.ModeBusiness},
		{name: "query fallback", query: "business:" + allowed, wantStatus: http.StatusOK, wantMode: domain.ModeBusiness},
		{name: "foreign company", header: "business:9d7c1e22-0a3b-4c2d-8e1f-5a6b7c8d9e0f", wantStatus: http.StatusForbidden, wantCode: "ACCESS_DENIED"},
		{name: "malformed selection", header: "business", wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "reserved id", header: "business:" + domain.PersonalTenantID, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubContextSvc{allowed: allowed}
			reached := false

			r := gin.New()
			r.GET("/ledger", AuthMiddleware(testSecret, testIssuer), LedgerContextMiddleware(svc), func(c *gin.Context) {
				reached = true
				actx, ok := GetLedgerContext(c)
				require.True(t, ok)
				c.String(http.StatusOK, string(actx.Mode))
			})

			target := "/ledger"
			if tt.query != "" {
				target += "?context=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			req.Header.Set("Authorization", "Bearer "+token)
			if tt.header != "" {
				req.Header.Set(LedgerContextHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, reached)
				assert.Equal(t, string(tt.wantMode), w.Body.String())
				return
			}
			assert.False(t, reached, "handler must not run for a rejected context")
			assert.Equal(t, tt.wantCode, decodeError(t, w)["code"])
		})
	}
}

func TestLedgerContextMiddlewareRequiresUser(t *testing.T) {
	r := gin.New()
	r.GET("/ledger", LedgerContextMiddleware(&stubContextSvc{}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ledger", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimit(t *testing.T) {
	lim, err := NewMemoryLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.POST("/auth/otp", RateLimit(lim), func(c *gin.Context) {
		c.Status(http.StatusAccepted)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/otp", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}
	assert.Equal(t, []int{http.StatusAccepted, http.StatusAccepted, http.StatusTooManyRequests}, statuses)

	// Other clients have their own budget.
	req := httptest.NewRequest(http.MethodPost, "/auth/otp", nil)
	req.RemoteAddr = "198.51.100.2:4000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestNewMemoryLimiterRejectsBadRate(t *testing.T) {
	_, err := NewMemoryLimiter("five per minute")
	assert.Error(t, err)
}

func TestStructuredLoggingEchoesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slogDiscard()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(requestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
