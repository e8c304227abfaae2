package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendfold/internal/access"
	dErrors "lendfold/pkg/domain-errors"
)

const testKey = "test-signing-key"

func TestVerify(t *testing.T) {
	verifier := NewVerifier(testKey)
	actor := access.Actor{ID: "cust-1", Role: access.RoleCustomer, Email: "ada@example.com"}

	t.Run("valid token round trips", func(t *testing.T) {
		token, err := Sign(testKey, actor, time.Hour)
		require.NoError(t, err)

		got, err := verifier.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, actor, got)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		token, err := Sign(testKey, actor, -time.Minute)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		token, err := Sign("some-other-key", actor, time.Hour)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		assert.Error(t, err)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := verifier.Verify("not.a.jwt")
		assert.Error(t, err)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		token, err := Sign(testKey, access.Actor{ID: "x", Role: "superuser"}, time.Hour)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("missing subject rejected", func(t *testing.T) {
		token, err := Sign(testKey, access.Actor{Role: access.RoleCustomer}, time.Hour)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		assert.Error(t, err)
	})
}
