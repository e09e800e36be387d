package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgErrors "stackview/pkg/errors"
)

const testAESKey = "0123456789abcdef0123456789abcdef"

func TestStore_CreateAndToken(t *testing.T) {
	store := NewStore(testAESKey, time.Hour)

	id, err := store.Create("octocat", 42, "gho_secret")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	// 存储的是密文
	sess, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, "octocat", sess.Login)
	assert.Equal(t, int64(42), sess.UserID)
	assert.NotEqual(t, "gho_secret", sess.token)

	// 取出时解密
	token, err := store.Token(id)
	require.NoError(t, err)
	assert.Equal(t, "gho_secret", token)
}

func TestStore_TokenUnknownSession(t *testing.T) {
	store := NewStore(testAESKey, time.Hour)

	_, err := store.Token("no-such-session")
	assert.ErrorIs(t, err, pkgErrors.ErrSessionNotFound)
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(testAESKey, time.Hour)

	id, err := store.Create("octocat", 1, "tok")
	require.NoError(t, err)

	store.Delete(id)
	_, ok := store.Get(id)
	assert.False(t, ok)
	_, err = store.Token(id)
	assert.ErrorIs(t, err, pkgErrors.ErrSessionNotFound)
}

func TestStore_Expiry(t *testing.T) {
	store := NewStore(testAESKey, -time.Minute) // 创建即过期

	id, err := store.Create("octocat", 1, "tok")
	require.NoError(t, err)

	_, ok := store.Get(id)
	assert.False(t, ok)
	_, err = store.Token(id)
	assert.ErrorIs(t, err, pkgErrors.ErrSessionNotFound)
}

func TestStore_PurgeExpired(t *testing.T) {
	store := NewStore(testAESKey, -time.Minute)
	for i := 0; i < 3; i++ {
		_, err := store.Create("octocat", int64(i), "tok")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, store.Count())

	purged := store.PurgeExpired()
	assert.Equal(t, 3, purged)
	assert.Equal(t, 0, store.Count())
}
