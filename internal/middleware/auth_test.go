package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldcheck/internal/domain"
	"fieldcheck/internal/middleware"
	"fieldcheck/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func identifyRouter(verifier middleware.CallerVerifier) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Identify(verifier))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, middleware.GetCaller(c))
	})
	return r
}

func whoami(t *testing.T, r *gin.Engine, authHeader string) (*httptest.ResponseRecorder, domain.Caller) {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/whoami", http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)

	var caller domain.Caller
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &caller))
	}
	return w, caller
}

func TestIdentify_ValidToken(t *testing.T) {
	verifier := new(mocks.MockCallerVerifier)
	verifier.On("Verify", "good-token").
		Return(domain.Caller{Subject: "u1", Email: "a@example.com", Authenticated: true}, nil)

	w, caller := whoami(t, identifyRouter(verifier), "Bearer good-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, caller.Authenticated)
	assert.Equal(t, "a@example.com", caller.Email)
}

func TestIdentify_AnonymousWithoutHeader(t *testing.T) {
	verifier := new(mocks.MockCallerVerifier)

	w, caller := whoami(t, identifyRouter(verifier), "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, caller.Authenticated)
	assert.Nil(t, caller.RanBy())
	verifier.AssertNotCalled(t, "Verify")
}

func TestIdentify_InvalidToken(t *testing.T) {
	verifier := new(mocks.MockCallerVerifier)
	verifier.On("Verify", "bad").Return(domain.Caller{}, domain.ErrUnauthorized)

	w, _ := whoami(t, identifyRouter(verifier), "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = whoami(t, identifyRouter(verifier), "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIdentify_NilVerifierIsAnonymous(t *testing.T) {
	w, caller := whoami(t, identifyRouter(nil), "Bearer anything")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, caller.Authenticated)
}
