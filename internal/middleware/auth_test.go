package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"omanvat/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

type stubPermissions struct {
	allowed map[string]bool // "role|right"
	err     error
	lookups int
}

func (s *stubPermissions) AddPermission(context.Context, string, string, int) error { return nil }

func (s *stubPermissions) UpdateProperty(context.Context, string, string, int, string, bool) error {
	return nil
}

func (s *stubPermissions) ListByDocType(context.Context, string) ([]model.DocPerm, error) {
	return nil, nil
}

func (s *stubPermissions) HasRight(_ context.Context, _, role, right string) (bool, error) {
	s.lookups++
	if s.err != nil {
		return false, s.err
	}
	return s.allowed[role+"|"+right], nil
}

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func validClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{"sub": "user-1", "role": role, "exp": time.Now().Add(time.Hour).Unix()}
}

func serve(handler gin.HandlerFunc, authHeader string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", handler, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserID))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireRole(t *testing.T) {
	auth := NewAuth(testSecret, &stubPermissions{})
	handler := auth.RequireRole(model.RoleSystemManager)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad signature", "Bearer " + signToken(t, []byte("other"), validClaims(model.RoleSystemManager)), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"role": model.RoleSystemManager, "exp": time.Now().Add(-time.Hour).Unix()}), http.StatusUnauthorized},
		{"no role", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "user-1"}), http.StatusForbidden},
		{"other role", "Bearer " + signToken(t, testSecret, validClaims(model.RoleAccountsUser)), http.StatusForbidden},
		{"allowed", "Bearer " + signToken(t, testSecret, validClaims(model.RoleSystemManager)), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(handler, tt.header)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireRole_SetsUser(t *testing.T) {
	auth := NewAuth(testSecret, &stubPermissions{})

	w := serve(auth.RequireRole(model.RoleSystemManager), "Bearer "+signToken(t, testSecret, validClaims(model.RoleSystemManager)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}

func TestRequireDocPermission(t *testing.T) {
	perms := &stubPermissions{allowed: map[string]bool{
		model.RoleAccountsUser + "|" + model.RightCreate: true,
	}}
	auth := NewAuth(testSecret, perms)

	allowed := serve(auth.RequireDocPermission(model.DocTypeOmanVATSetting, model.RightCreate),
		"Bearer "+signToken(t, testSecret, validClaims(model.RoleAccountsUser)))
	assert.Equal(t, http.StatusOK, allowed.Code)

	denied := serve(auth.RequireDocPermission(model.DocTypeOmanVATSetting, model.RightDelete),
		"Bearer "+signToken(t, testSecret, validClaims(model.RoleAccountsUser)))
	assert.Equal(t, http.StatusForbidden, denied.Code)
	assert.Contains(t, denied.Body.String(), "delete")
}

func TestRequireDocPermission_CachesDecisions(t *testing.T) {
	perms := &stubPermissions{allowed: map[string]bool{model.RoleAccountsUser + "|" + model.RightRead: true}}
	auth := NewAuth(testSecret, perms)
	handler := auth.RequireDocPermission(model.DocTypeOmanVATSetting, model.RightRead)
	header := "Bearer " + signToken(t, testSecret, validClaims(model.RoleAccountsUser))

	serve(handler, header)
	serve(handler, header)
	assert.Equal(t, 1, perms.lookups)

	auth.ClearPermissionCache()
	serve(handler, header)
	assert.Equal(t, 2, perms.lookups)
}

func TestRequireDocPermission_LookupFailure(t *testing.T) {
	auth := NewAuth(testSecret, &stubPermissions{err: errors.New("db down")})

	w := serve(auth.RequireDocPermission(model.DocTypeOmanVATSetting, model.RightRead),
		"Bearer "+signToken(t, testSecret, validClaims(model.RoleAccountsUser)))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestParseToken_RejectsNoneAlgorithm(t *testing.T) {
	auth := NewAuth(testSecret, &stubPermissions{})
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims(model.RoleSystemManager)).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.ParseToken(token)
	assert.Error(t, err)
}
