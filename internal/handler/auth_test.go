package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/estatedesk/estate-catalog/internal/auth"
	"github.com/estatedesk/estate-catalog/internal/config"
	"github.com/estatedesk/estate-catalog/internal/middleware"
	"github.com/estatedesk/estate-catalog/internal/model"
	"github.com/estatedesk/estate-catalog/internal/repository"
)

// fakeUserStore is an in-memory UserStore mirroring the repository error
// contract.
type fakeUserStore struct {
	mu   sync.Mutex
	seq  uint64
	byID map[uint64]*model.User
	err  error // when set, every call fails with it
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[uint64]*model.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for _, existing := range s.byID {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	s.seq++
	u.ID = s.seq
	cp := *u
	s.byID[u.ID] = &cp
	return nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return model.User{}, s.err
	}
	for _, u := range s.byID {
		if u.Email == email {
			return *u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return model.User{}, s.err
	}
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return *u, nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, id uint64, fullName, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.byID[id]; ok {
		if fullName != "" {
			u.FullName = fullName
		}
		if phone != "" {
			u.Phone = phone
		}
	}
	return nil
}

func (s *fakeUserStore) SetRefreshToken(_ context.Context, id uint64, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if u, ok := s.byID[id]; ok {
		u.RefreshToken = token
	}
	return nil
}

func (s *fakeUserStore) ClearRefreshToken(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.byID[id]; ok {
		u.RefreshToken = ""
	}
	return nil
}

// fakeRoleStore serves the fixed role set; an empty store simulates a
// failed bootstrap.
type fakeRoleStore struct {
	roles map[string]model.Role
}

func bootstrappedRoles() *fakeRoleStore {
	return &fakeRoleStore{roles: map[string]model.Role{
		model.RoleUser:  {ID: 1, Name: model.RoleUser},
		model.RoleAdmin: {ID: 2, Name: model.RoleAdmin},
		model.RoleAgent: {ID: 3, Name: model.RoleAgent},
	}}
}

func (s *fakeRoleStore) GetByName(_ context.Context, name string) (model.Role, error) {
	if s.roles == nil {
		return model.Role{}, repository.ErrNotFound
	}
	r, ok := s.roles[name]
	if !ok {
		return model.Role{}, repository.ErrNotFound
	}
	return r, nil
}

func testHandler(t *testing.T) (*AuthHandler, *fakeUserStore) {
	t.Helper()
	cfg := config.Config{Env: "test", BcryptCost: bcrypt.MinCost}
	users := newFakeUserStore()
	tokens := auth.NewManager("test-secret", time.Hour, 7*24*time.Hour)
	return NewAuthHandler(cfg, users, bootstrappedRoles(), tokens), users
}

// do runs a handler against a JSON request and returns the recorder and
// decoded body.
func do(t *testing.T, fn echo.HandlerFunc, method, path, body string, setup func(echo.Context)) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	require.NoError(t, fn(c))

	out := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func asAuthed(uid uint64) func(echo.Context) {
	return func(c echo.Context) { c.Set(middleware.CtxUserID, uid) }
}

func TestRegisterSuccess(t *testing.T) {
	h, users := testHandler(t)

	rec, body := do(t, h.Register, http.MethodPost, "/v1/auth/register",
		`{"email":"a@b.com","password":"secret1","fullName":"A B"}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, body["token"])
	require.NotEmpty(t, body["refreshToken"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "a@b.com", user["email"])
	require.Equal(t, model.RoleUser, user["role"])
	require.NotContains(t, user, "password")
	require.NotContains(t, user, "passwordHash")
	require.NotContains(t, user, "refreshToken")

	// The issued refresh token is persisted in the slot.
	stored, err := users.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, body["refreshToken"], stored.RefreshToken)
	require.NotEqual(t, "secret1", stored.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	h, _ := testHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"secret1","fullName":"A B"}`},
		{"missing password", `{"email":"a@b.com","fullName":"A B"}`},
		{"missing fullName", `{"email":"a@b.com","password":"secret1"}`},
		{"malformed email", `{"email":"not-an-email","password":"secret1","fullName":"A B"}`},
		{"short password", `{"email":"a@b.com","password":"five5","fullName":"A B"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := do(t, h.Register, http.MethodPost, "/v1/auth/register", tc.body, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, _ := testHandler(t)

	rec, _ := do(t, h.Register, http.MethodPost, "/v1/auth/register",
		`{"email":"a@b.com","password":"secret1","fullName":"A B"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := do(t, h.Register, http.MethodPost, "/v1/auth/register",
		`{"email":"a@b.com","password":"other66","fullName":"A B II"}`, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "email already exists", body["error"])
}

func TestRegisterMissingDefaultRole(t *testing.T) {
	cfg := config.Config{Env: "test", BcryptCost: bcrypt.MinCost}
	tokens := auth.NewManager("test-secret", time.Hour, 7*24*time.Hour)
	h := NewAuthHandler(cfg, newFakeUserStore(), &fakeRoleStore{}, tokens)

	rec, body := do(t, h.Register, http.MethodPost, "/v1/auth/register",
		`{"email":"a@b.com","password":"secret1","fullName":"A B"}`, nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "server configuration error", body["error"])
}

func register(t *testing.T, h *AuthHandler, email string) map[string]any {
	t.Helper()
	rec, body := do(t, h.Register, http.MethodPost, "/v1/auth/register",
		`{"email":"`+email+`","password":"secret1","fullName":"A B"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	return body
}

func login(t *testing.T, h *AuthHandler, email, password string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	return do(t, h.Login, http.MethodPost, "/v1/auth/login",
		`{"email":"`+email+`","password":"`+password+`"}`, nil)
}

func TestLoginInvalidCredentialsUniform(t *testing.T) {
	h, _ := testHandler(t)
	register(t, h, "a@b.com")

	// Wrong password and unknown user must be indistinguishable.
	recWrong, bodyWrong := login(t, h, "a@b.com", "wrong-pass")
	recUnknown, bodyUnknown := login(t, h, "nobody@b.com", "secret1")

	require.Equal(t, http.StatusUnauthorized, recWrong.Code)
	require.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	require.Equal(t, "Invalid credentials", bodyWrong["error"])
	require.Equal(t, bodyWrong, bodyUnknown)
}

func TestLoginMissingFields(t *testing.T) {
	h, _ := testHandler(t)
	rec, _ := do(t, h.Login, http.MethodPost, "/v1/auth/login", `{"email":"a@b.com"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func refresh(t *testing.T, h *AuthHandler, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	return do(t, h.Refresh, http.MethodPost, "/v1/auth/refresh-token",
		`{"refreshToken":"`+token+`"}`, nil)
}

func TestRefreshHappyPath(t *testing.T) {
	h, _ := testHandler(t)
	reg := register(t, h, "a@b.com")

	rec, body := refresh(t, h, reg["refreshToken"].(string))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, body["token"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "a@b.com", user["email"])
}

func TestRefreshSupersession(t *testing.T) {
	h, _ := testHandler(t)
	register(t, h, "a@b.com")

	rec1, body1 := login(t, h, "a@b.com", "secret1")
	require.Equal(t, http.StatusOK, rec1.Code)
	r1 := body1["refreshToken"].(string)

	// IssueRefresh uses second-granularity iat/exp; a later login within
	// the same second would mint an identical token.
	time.Sleep(1100 * time.Millisecond)

	rec2, body2 := login(t, h, "a@b.com", "secret1")
	require.Equal(t, http.StatusOK, rec2.Code)
	r2 := body2["refreshToken"].(string)
	require.NotEqual(t, r1, r2)

	// R1 is signature-valid and unexpired, but superseded by R2.
	rec, body := refresh(t, h, r1)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "invalid refresh token", body["error"])

	rec, _ = refresh(t, h, r2)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRefreshGarbage(t *testing.T) {
	h, _ := testHandler(t)
	rec, body := refresh(t, h, "garbage")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "invalid refresh token", body["error"])
}

func TestRefreshMissingToken(t *testing.T) {
	h, _ := testHandler(t)
	rec, _ := do(t, h.Refresh, http.MethodPost, "/v1/auth/refresh-token", `{}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshExpiredTokenDetail(t *testing.T) {
	h, users := testHandler(t)
	register(t, h, "a@b.com")

	// Mint an already-expired refresh token with the same secret and store
	// it as the active slot value.
	expired := auth.NewManager("test-secret", time.Hour, -time.Minute)
	tok, err := expired.IssueRefresh(1)
	require.NoError(t, err)
	require.NoError(t, users.SetRefreshToken(context.Background(), 1, tok.Token))

	rec, body := refresh(t, h, tok.Token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "invalid refresh token", body["error"])
	// Non-production mode reports the accurate cause.
	require.Equal(t, "token expired", body["detail"])
}

func TestRefreshDetailSuppressedInProd(t *testing.T) {
	h, _ := testHandler(t)
	h.Cfg.Env = "prod"

	rec, body := refresh(t, h, "garbage")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotContains(t, body, "detail")
}

func TestLogoutRevokesRefresh(t *testing.T) {
	h, _ := testHandler(t)
	reg := register(t, h, "a@b.com")
	r := reg["refreshToken"].(string)

	rec, body := do(t, h.Logout, http.MethodPost, "/v1/auth/logout", "", asAuthed(1))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "logged out", body["message"])

	rec, _ = refresh(t, h, r)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileRoundTrip(t *testing.T) {
	h, _ := testHandler(t)
	register(t, h, "a@b.com")

	rec, body := do(t, h.Profile, http.MethodGet, "/v1/auth/profile", "", asAuthed(1))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "a@b.com", body["email"])
	require.Equal(t, "A B", body["fullName"])

	rec, body = do(t, h.UpdateProfile, http.MethodPut, "/v1/auth/profile",
		`{"fullName":"New Name","phone":"+1555"}`, asAuthed(1))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "New Name", body["fullName"])
	require.Equal(t, "+1555", body["phone"])
}

func TestProfileNotFound(t *testing.T) {
	h, _ := testHandler(t)
	rec, _ := do(t, h.Profile, http.MethodGet, "/v1/auth/profile", "", asAuthed(99))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoreUnavailable(t *testing.T) {
	h, users := testHandler(t)
	users.err = repository.ErrUnavailable

	rec, body := login(t, h, "a@b.com", "secret1")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "store unavailable", body["error"])
}
