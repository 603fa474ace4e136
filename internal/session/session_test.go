package session

import (
	"testing"
	"time"

	"studymate/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_LoginRequiresBothFields(t *testing.T) {
	m, err := NewManager(time.Hour)
	require.NoError(t, err)

	assert.Error(t, m.Login("", "secret"))
	assert.Error(t, m.Login("me@example.com", ""))
	assert.Error(t, m.Login("   ", "secret"))
	assert.False(t, m.Active())
}

func TestManager_RequireBeforeLogin(t *testing.T) {
	m, err := NewManager(time.Hour)
	require.NoError(t, err)

	err = m.Require()
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestManager_LoginThenRequire(t *testing.T) {
	m, err := NewManager(time.Hour)
	require.NoError(t, err)

	require.NoError(t, m.Login("me@example.com", "secret"))
	assert.NoError(t, m.Require())
	assert.True(t, m.Active())
	assert.Equal(t, "me@example.com", m.Email())
}

func TestManager_LogoutTearsDown(t *testing.T) {
	m, err := NewManager(time.Hour)
	require.NoError(t, err)

	require.NoError(t, m.Login("me@example.com", "secret"))
	m.Logout()

	err = m.Require()
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))
	assert.Empty(t, m.Email())
}

func TestManager_ExpiredSessionIsTornDown(t *testing.T) {
	m, err := NewManager(time.Nanosecond)
	require.NoError(t, err)

	require.NoError(t, m.Login("me@example.com", "secret"))
	time.Sleep(5 * time.Millisecond)

	err = m.Require()
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))
	assert.False(t, m.Active())
	assert.Empty(t, m.Email())
}
