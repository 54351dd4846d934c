// file: router/router_test.go

package router_test

import (
	"go-publisher-api/config"
	"go-publisher-api/logger"
	"go-publisher-api/model"
	"go-publisher-api/router"
	"go-publisher-api/service"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Init()
	config.AppConfig.JWT.SecretKey = "router-test-secret"
	os.Exit(m.Run())
}

func newTestRouter() http.Handler {
	return router.NewRouter(nil, nil, nil, nil, nil, nil, nil, nil)
}

func TestProtectedRoutes_RejectMissingToken(t *testing.T) {
	r := newTestRouter()

	protected := []struct {
		method string
		path   string
	}{
		{"GET", "/api/ledgers"},
		{"GET", "/api/ledgers/1/records"},
		{"GET", "/api/employees"},
		{"GET", "/api/books"},
		{"GET", "/api/materials"},
		{"GET", "/api/suppliers"},
		{"GET", "/api/tasks"},
		{"GET", "/api/purchases"},
		{"GET", "/api/inventory/alerts"},
		{"GET", "/api/admin/users"},
	}

	for _, route := range protected {
		req, _ := http.NewRequest(route.method, route.path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s should require a token", route.method, route.path)
	}
}

func TestProtectedRoutes_RejectGarbageToken(t *testing.T) {
	r := newTestRouter()

	req, _ := http.NewRequest("GET", "/api/ledgers", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestProtectedRoutes_RejectUnsignedToken(t *testing.T) {
	r := newTestRouter()

	// A structurally valid token that skips the HMAC signature must not
	// authenticate, whatever its claims say.
	claims := &model.AppClaims{
		UserID: 1,
		Role:   model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "boss",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdminRoutes_ForbidNonAdmins(t *testing.T) {
	r := newTestRouter()

	authService := service.NewAuthService(nil)
	token, err := authService.GenerateJWT(&model.User{ID: 2, Username: "apelle", Role: model.RoleEditor})
	assert.NoError(t, err)

	paths := []string{"/api/admin/users", "/api/admin/inventory/report"}
	for _, path := range paths {
		req, _ := http.NewRequest("GET", path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code, "GET %s should be admin only", path)
	}
}
