package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/estatedesk/estate-catalog/internal/model"
)

func testUser() model.User {
	return model.User{ID: 42, Email: "a@b.com", Role: model.RoleUser}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 7*24*time.Hour)

	tok, err := m.IssueAccess(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	require.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, 5*time.Second)

	claims, err := m.Validate(tok.Token, KindAccess)
	require.NoError(t, err)
	require.Equal(t, uint64(42), claims.UserID)
	require.Equal(t, "a@b.com", claims.Email)
	require.Equal(t, model.RoleUser, claims.Role)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 7*24*time.Hour)

	tok, err := m.IssueRefresh(42)
	require.NoError(t, err)

	claims, err := m.Validate(tok.Token, KindRefresh)
	require.NoError(t, err)
	require.Equal(t, uint64(42), claims.UserID)
	require.Empty(t, claims.Email)
}

func TestValidateKindMismatch(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 7*24*time.Hour)

	access, err := m.IssueAccess(testUser())
	require.NoError(t, err)
	refresh, err := m.IssueRefresh(42)
	require.NoError(t, err)

	_, err = m.Validate(access.Token, KindRefresh)
	require.ErrorIs(t, err, ErrTokenKindMismatch)

	_, err = m.Validate(refresh.Token, KindAccess)
	require.ErrorIs(t, err, ErrTokenKindMismatch)
}

func TestValidateExpired(t *testing.T) {
	// Negative TTL puts exp in the past at issuance.
	m := NewManager("test-secret", -time.Minute, -time.Minute)

	tok, err := m.IssueAccess(testUser())
	require.NoError(t, err)

	_, err = m.Validate(tok.Token, KindAccess)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateMalformed(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 7*24*time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Validate(raw, KindAccess)
		require.ErrorIs(t, err, ErrTokenMalformed, "raw=%q", raw)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewManager("secret-one", time.Hour, 7*24*time.Hour)
	verifier := NewManager("secret-two", time.Hour, 7*24*time.Hour)

	tok, err := issuer.IssueAccess(testUser())
	require.NoError(t, err)

	_, err = verifier.Validate(tok.Token, KindAccess)
	require.ErrorIs(t, err, ErrTokenMalformed)
}
