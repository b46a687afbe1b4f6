package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitstop-labs/pitstop/internal/identity"
	"github.com/pitstop-labs/pitstop/internal/token"
)

const testSecret = "test-secret-at-least-32-bytes-long!!"

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc := token.NewService(testSecret, time.Hour)

	principal := identity.Principal{
		SubjectID: "subject-123",
		Email:     "a@b.com",
		Role:      identity.RoleAdmin,
	}

	signed, err := svc.Issue(principal)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	got, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, principal.SubjectID, got.SubjectID)
	assert.Equal(t, principal.Email, got.Email)
	assert.Equal(t, principal.Role, got.Role)
}

func TestVerify_DefaultsUnknownRoleToUser(t *testing.T) {
	svc := token.NewService(testSecret, time.Hour)

	signed, err := svc.Issue(identity.Principal{
		SubjectID: "subject-123",
		Email:     "a@b.com",
		Role:      identity.Role("SOMETHING_ELSE"),
	})
	require.NoError(t, err)

	got, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, identity.RoleUser, got.Role)
}

func TestVerify_Expired(t *testing.T) {
	svc := token.NewService(testSecret, -time.Minute)

	signed, err := svc.Issue(identity.Principal{SubjectID: "subject-123", Email: "a@b.com"})
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := token.NewService(testSecret, time.Hour)
	verifier := token.NewService("a-completely-different-secret-value", time.Hour)

	signed, err := issuer.Issue(identity.Principal{SubjectID: "subject-123", Email: "a@b.com"})
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	svc := token.NewService(testSecret, time.Hour)

	for _, tokenStr := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(tokenStr)
		assert.ErrorIs(t, err, token.ErrInvalidToken, "token %q", tokenStr)
	}
}

func TestVerify_Tampered(t *testing.T) {
	svc := token.NewService(testSecret, time.Hour)

	signed, err := svc.Issue(identity.Principal{SubjectID: "subject-123", Email: "a@b.com"})
	require.NoError(t, err)

	tampered := signed[:len(signed)-2] + "xx"
	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}
