// Package auth implements the token and password primitives of the session
// core: bcrypt credential hashing plus issuance and validation of the two
// JWT kinds (short-lived access tokens, long-lived refresh tokens).
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/estatedesk/estate-catalog/internal/model"
)

// Kind distinguishes the two token shapes.  Access tokens carry subject id,
// email and role; refresh tokens carry the subject id only.  The shape is
// the discriminator: there is no explicit type claim.
type Kind int

const (
	KindAccess Kind = iota
	KindRefresh
)

func (k Kind) String() string {
	if k == KindRefresh {
		return "refresh"
	}
	return "access"
}

var (
	// ErrTokenExpired is returned for structurally valid tokens past their
	// expiry instant.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed covers bad signatures, wrong algorithms and
	// undecodable tokens.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenKindMismatch is returned when an access token is presented
	// where a refresh token is required, or vice versa.
	ErrTokenKindMismatch = errors.New("token kind mismatch")
)

// Claims is the verified content of a token.
type Claims struct {
	UserID uint64
	Email  string // empty on refresh tokens
	Role   string // empty on refresh tokens
	Kind   Kind
}

// SignedToken pairs a serialized JWT with its expiry time.
type SignedToken struct {
	Token string
	Exp   time.Time
}

// Manager signs and validates tokens with a process-wide HS256 secret.
// Issuance is pure: persisting the refresh token on the user row is the
// caller's job, which keeps minting free of I/O.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewManager builds a Manager.  The secret is injected rather than read
// from the environment so tests can run with throwaway secrets.
func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssueAccess mints a short-lived access token asserting identity and role.
func (m *Manager) IssueAccess(u model.User) (SignedToken, error) {
	now := time.Now().UTC()
	exp := now.Add(m.accessTTL)
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"role":  u.Role,
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return SignedToken{}, err
	}
	return SignedToken{Token: signed, Exp: exp}, nil
}

// IssueRefresh mints a long-lived refresh token asserting identity only.
func (m *Manager) IssueRefresh(userID uint64) (SignedToken, error) {
	now := time.Now().UTC()
	exp := now.Add(m.refreshTTL)
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return SignedToken{}, err
	}
	return SignedToken{Token: signed, Exp: exp}, nil
}

// Validate verifies signature and expiry, checks that the claim shape
// matches the expected kind, and extracts the claims.  Pure function of the
// token and the secret; no I/O.
func (m *Manager) Validate(raw string, kind Kind) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenMalformed
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenMalformed
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return Claims{}, ErrTokenMalformed
	}

	uid, ok := subjectID(mc)
	if !ok {
		return Claims{}, ErrTokenMalformed
	}
	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)

	// An access token is recognizable by its email claim; a refresh token
	// must not carry one.
	switch kind {
	case KindAccess:
		if email == "" || role == "" {
			return Claims{}, ErrTokenKindMismatch
		}
	case KindRefresh:
		if email != "" || role != "" {
			return Claims{}, ErrTokenKindMismatch
		}
	}
	return Claims{UserID: uid, Email: email, Role: role, Kind: kind}, nil
}

// subjectID reads the sub claim.  JSON numbers decode as float64; some
// clients resubmit tokens whose sub was serialized as a string.
func subjectID(mc jwt.MapClaims) (uint64, bool) {
	switch v := mc["sub"].(type) {
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
