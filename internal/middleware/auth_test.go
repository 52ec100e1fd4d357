package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/estatedesk/estate-catalog/internal/auth"
	"github.com/estatedesk/estate-catalog/internal/model"
)

func newGateEcho(t *testing.T, prod bool) (*echo.Echo, *auth.Manager) {
	t.Helper()
	tokens := auth.NewManager("gate-secret", time.Hour, 7*24*time.Hour)
	e := echo.New()
	g := e.Group("/v1", Authenticate(tokens, prod))
	g.GET("/whoami", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get(CtxUserID),
			"email":   c.Get(CtxEmail),
			"role":    c.Get(CtxRole),
		})
	})
	return e, tokens
}

func get(e *echo.Echo, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGateRejectsMissingHeader(t *testing.T) {
	e, _ := newGateEcho(t, false)
	rec := get(e, "/v1/whoami", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "missing bearer token")
}

func TestGateRejectsMalformedToken(t *testing.T) {
	e, _ := newGateEcho(t, false)
	rec := get(e, "/v1/whoami", "not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGateRejectsExpiredToken(t *testing.T) {
	e, _ := newGateEcho(t, false)
	expired := auth.NewManager("gate-secret", -time.Minute, time.Hour)
	tok, err := expired.IssueAccess(model.User{ID: 1, Email: "a@b.com", Role: model.RoleUser})
	require.NoError(t, err)

	rec := get(e, "/v1/whoami", tok.Token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "token expired")
}

func TestGateRejectsRefreshTokenAsBearer(t *testing.T) {
	e, tokens := newGateEcho(t, false)
	tok, err := tokens.IssueRefresh(1)
	require.NoError(t, err)

	rec := get(e, "/v1/whoami", tok.Token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "token kind mismatch")
}

func TestGateSuppressesDetailInProd(t *testing.T) {
	e, _ := newGateEcho(t, true)
	rec := get(e, "/v1/whoami", "not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotContains(t, rec.Body.String(), "detail")
}

func TestGateInjectsIdentity(t *testing.T) {
	e, tokens := newGateEcho(t, false)
	tok, err := tokens.IssueAccess(model.User{ID: 7, Email: "x@y.com", Role: model.RoleAgent})
	require.NoError(t, err)

	rec := get(e, "/v1/whoami", tok.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"user_id":7`)
	require.Contains(t, rec.Body.String(), `"email":"x@y.com"`)
	require.Contains(t, rec.Body.String(), `"role":"AGENT"`)
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewManager("gate-secret", time.Hour, 7*24*time.Hour)
	e := echo.New()
	g := e.Group("/v1", Authenticate(tokens, false))
	g.POST("/countries", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	}, RequireRole(model.RoleAdmin, model.RoleAgent))

	issue := func(role string) string {
		tok, err := tokens.IssueAccess(model.User{ID: 1, Email: "a@b.com", Role: role})
		require.NoError(t, err)
		return tok.Token
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/countries", nil)
	req.Header.Set("Authorization", "Bearer "+issue(model.RoleUser))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/v1/countries", nil)
	req.Header.Set("Authorization", "Bearer "+issue(model.RoleAdmin))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
}
