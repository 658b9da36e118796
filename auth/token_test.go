package auth

import (
	"chat-server/domain"
	"chat-server/errors"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test_secret_long_enough_for_hs256")

func TestVerify_Valid_Token(t *testing.T) {
	req := require.New(t)
	token, err := GenerateToken(secret, "chat-server", "alice", "alice@example.com", time.Hour)
	req.NoError(err)

	identity, err := NewJWTVerifier(secret, "chat-server").Verify(context.Background(), token)

	req.NoError(err)
	req.Equal("alice", identity.ID)
	req.Equal("alice@example.com", identity.Email)
}

func TestVerify_Classifies_Failures(t *testing.T) {
	req := require.New(t)
	expired, err := GenerateToken(secret, "chat-server", "alice", "alice@example.com", -time.Minute)
	req.NoError(err)
	forged, err := GenerateToken([]byte("another_secret_entirely_different"), "chat-server", "alice", "", time.Hour)
	req.NoError(err)
	otherIssuer, err := GenerateToken(secret, "someone-else", "alice", "", time.Hour)
	req.NoError(err)
	anonymous, err := GenerateToken(secret, "chat-server", "", "", time.Hour)
	req.NoError(err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "alice"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	req.NoError(err)

	tests := []struct {
		name       string
		credential string
		expected   error
	}{
		{"missing", "", errors.ErrMissingCredential},
		{"expired", expired, errors.ErrExpiredCredential},
		{"garbage", "not-a-jwt", errors.ErrInvalidCredential},
		{"wrong signature", forged, errors.ErrInvalidCredential},
		{"wrong issuer", otherIssuer, errors.ErrInvalidCredential},
		{"no subject", anonymous, errors.ErrInvalidCredential},
		{"unsigned", none, errors.ErrInvalidCredential},
	}

	verifier := NewJWTVerifier(secret, "chat-server")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(context.Background(), tt.credential)
			req.ErrorIs(err, tt.expected)
			req.Equal(errors.KindAuth, errors.KindOf(err))
		})
	}
}

func TestVerify_Canceled_Context_Is_A_Collaborator_Failure(t *testing.T) {
	req := require.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewJWTVerifier(secret, "").Verify(ctx, "anything")

	req.ErrorIs(err, errors.ErrIdentityProvider)
	req.Equal(errors.KindCollaborator, errors.KindOf(err))
}

func TestIdentity_Context_Round_Trip(t *testing.T) {
	req := require.New(t)

	_, ok := IdentityFrom(context.Background())
	req.False(ok)

	ctx := WithIdentity(context.Background(), domain.Identity{ID: "alice", Email: "alice@example.com"})
	identity, ok := IdentityFrom(ctx)
	req.True(ok)
	req.Equal("alice", identity.ID)
}
