package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := generateToken()
		require.NoError(t, err)
		assert.Len(t, token, 64, "32 random bytes hex-encoded")
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = struct{}{}
	}
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "auth:session:abc", sessionKey("abc"))
}
