// Package handler implements the HTTP endpoints: the auth/session core and
// the catalog CRUD surface it guards.
package handler

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estatedesk/estate-catalog/internal/auth"
	"github.com/estatedesk/estate-catalog/internal/config"
	"github.com/estatedesk/estate-catalog/internal/middleware"
	"github.com/estatedesk/estate-catalog/internal/model"
	"github.com/estatedesk/estate-catalog/internal/repository"
)

// dbTimeout bounds every store call made from a handler.
const dbTimeout = 5 * time.Second

// minPasswordLen is the registration minimum.
const minPasswordLen = 6

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserStore is the credential-store surface the auth core needs.  It is
// satisfied by *repository.UserRepo; tests substitute an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	UpdateProfile(ctx context.Context, id uint64, fullName, phone string) error
	SetRefreshToken(ctx context.Context, id uint64, token string) error
	ClearRefreshToken(ctx context.Context, id uint64) error
}

// RoleStore resolves role names; satisfied by *repository.RoleRepo.
type RoleStore interface {
	GetByName(ctx context.Context, name string) (model.Role, error)
}

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Roles  RoleStore
	Tokens *auth.Manager
}

func NewAuthHandler(cfg config.Config, users UserStore, roles RoleStore, tokens *auth.Manager) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Roles: roles, Tokens: tokens}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

type profileReq struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

type authResp struct {
	User         model.PublicUser `json:"user"`
	Token        string           `json:"token"`
	RefreshToken string           `json:"refreshToken"`
}

// Register handles POST /v1/auth/register: validates input, hashes the
// password, creates the user under the default role and returns a token
// pair.  All validation happens before any store access.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	switch {
	case req.Email == "" || req.Password == "" || req.FullName == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, password and fullName are required"})
	case !emailRe.MatchString(req.Email):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email"})
	case len(req.Password) < minPasswordLen:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	// The default role must have been bootstrapped at startup; its absence
	// is an operator problem, not a client one.
	role, err := h.Roles.GetByName(ctx, model.RoleUser)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.Logger().Errorf("register: default role %q missing; role bootstrap has not run", model.RoleUser)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server configuration error"})
		}
		return storeError(c, err)
	}

	hash, err := auth.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not hash password"})
	}

	u := model.User{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        strings.TrimSpace(req.Phone),
		RoleID:       role.ID,
		Role:         role.Name,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.Users.Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return storeError(c, err)
	}

	return h.issuePair(c, ctx, u, http.StatusCreated)
}

// Login handles POST /v1/auth/login.  The 401 message never distinguishes
// an unknown email from a wrong password.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
		}
		return storeError(c, err)
	}
	if !auth.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	return h.issuePair(c, ctx, u, http.StatusOK)
}

// issuePair mints both tokens, persists the refresh token (superseding any
// previous session) and writes the auth response.
func (h *AuthHandler) issuePair(c echo.Context, ctx context.Context, u model.User, status int) error {
	access, err := h.Tokens.IssueAccess(u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	refresh, err := h.Tokens.IssueRefresh(u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	if err := h.Users.SetRefreshToken(ctx, u.ID, refresh.Token); err != nil {
		return storeError(c, err)
	}
	return c.JSON(status, authResp{
		User:         u.Public(),
		Token:        access.Token,
		RefreshToken: refresh.Token,
	})
}

// Refresh handles POST /v1/auth/refresh-token.  A presented refresh token
// is only honored when its signature verifies AND it equals the value
// currently stored on the user row; an older, still-unexpired token is
// rejected the moment a newer login supersedes it.  The refresh token is
// not rotated here.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refreshToken is required"})
	}
	raw := strings.TrimSpace(req.RefreshToken)

	claims, err := h.Tokens.Validate(raw, auth.KindRefresh)
	if err != nil {
		return h.invalidRefresh(c, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return h.invalidRefresh(c, "subject not found")
		}
		return storeError(c, err)
	}
	if u.RefreshToken == "" || u.RefreshToken != raw {
		return h.invalidRefresh(c, "token superseded")
	}

	access, err := h.Tokens.IssueAccess(u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": access.Token, "user": u.Public()})
}

// invalidRefresh writes the uniform 401.  The accurate cause goes to the
// log always, and to the response only outside production.
func (h *AuthHandler) invalidRefresh(c echo.Context, detail string) error {
	c.Logger().Infof("refresh rejected: %s", detail)
	body := echo.Map{"error": "invalid refresh token"}
	if !h.Cfg.IsProd() {
		body["detail"] = detail
	}
	return c.JSON(http.StatusUnauthorized, body)
}

// Profile handles GET /v1/auth/profile (protected).
func (h *AuthHandler) Profile(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, u.Public())
}

// UpdateProfile handles PUT /v1/auth/profile (protected).  Only fullName
// and phone are client-mutable.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req profileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, uid, strings.TrimSpace(req.FullName), strings.TrimSpace(req.Phone)); err != nil {
		return storeError(c, err)
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, u.Public())
}

// Logout handles POST /v1/auth/logout (protected).  Clearing the stored
// refresh token unconditionally revokes the active session; the access
// token simply ages out.
func (h *AuthHandler) Logout(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Users.ClearRefreshToken(ctx, uid); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// storeError maps unclassified store failures.  Timeouts and connection
// problems become an explicit 500; anything else falls through to a
// generic 500 with no internal detail leaked.
func storeError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrUnavailable) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store unavailable"})
	}
	c.Logger().Errorf("store error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
