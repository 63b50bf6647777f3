package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/enrichx/directory-service/internal/domain/errors"
	"github.com/enrichx/directory-service/internal/domain/models"
)

type MockAccessGate struct {
	mock.Mock
}

func (m *MockAccessGate) Authorize(ctx context.Context, token string) (*models.DirectoryEntry, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DirectoryEntry), args.Error(1)
}

func setupAuthTestRouter(gate AccessGate) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(gate, zap.NewNop()))
	router.GET("/protected", func(c *gin.Context) {
		caller := c.MustGet(GinContextCallerKey).(*models.DirectoryEntry)
		c.JSON(http.StatusOK, gin.H{"caller": caller.ID})
	})
	return router
}

func doAuthRequest(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set(AuthHeaderKey, header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	gate := new(MockAccessGate)
	w := doAuthRequest(setupAuthTestRouter(gate), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	gate.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	gate := new(MockAccessGate)
	w := doAuthRequest(setupAuthTestRouter(gate), "Token abc")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	gate.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	gate := new(MockAccessGate)
	gate.On("Authorize", mock.Anything, "bad-token").Return(nil, domainErrors.ErrUnauthenticated)

	w := doAuthRequest(setupAuthTestRouter(gate), "Bearer bad-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareForbidden(t *testing.T) {
	gate := new(MockAccessGate)
	gate.On("Authorize", mock.Anything, "subscriber-token").Return(nil, domainErrors.ErrForbidden)

	w := doAuthRequest(setupAuthTestRouter(gate), "Bearer subscriber-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthMiddlewareUpstreamFailure(t *testing.T) {
	gate := new(MockAccessGate)
	gate.On("Authorize", mock.Anything, "token").Return(nil, domainErrors.ErrIdentityStore)

	w := doAuthRequest(setupAuthTestRouter(gate), "Bearer token")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthMiddlewarePassesCaller(t *testing.T) {
	gate := new(MockAccessGate)
	gate.On("Authorize", mock.Anything, "good-token").
		Return(&models.DirectoryEntry{ID: "u1", Role: models.RoleAdmin}, nil)

	w := doAuthRequest(setupAuthTestRouter(gate), "Bearer good-token")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}

func TestAuthMiddlewareCaseInsensitiveScheme(t *testing.T) {
	gate := new(MockAccessGate)
	gate.On("Authorize", mock.Anything, "tok").
		Return(&models.DirectoryEntry{ID: "u1", Role: models.RoleAdmin}, nil)

	w := doAuthRequest(setupAuthTestRouter(gate), "bearer tok")
	assert.Equal(t, http.StatusOK, w.Code)
}
