package services

import (
	"testing"

	"github.com/nebulavault/server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccounts(db)

	user, err := accounts.Register("alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleMember, user.Role)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccounts(db)

	_, err := accounts.Register("alice", "secret123")
	require.NoError(t, err)

	_, err = accounts.Register("alice", "different456")
	assert.ErrorIs(t, err, ErrDuplicateUser)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "failed registration must not mutate state")
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccounts(db)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"short password", "alice", "five5"},
		{"empty username", "", "secret123"},
		{"whitespace username", "   ", "secret123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := accounts.Register(tt.username, tt.password)
			assert.True(t, IsValidation(err), "expected ValidationError, got %v", err)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccounts(db)

	_, err := accounts.Register("alice", "secret123")
	require.NoError(t, err)

	user, err := accounts.Authenticate("alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = accounts.Authenticate("alice", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown users yield the same error as wrong passwords.
	_, err = accounts.Authenticate("nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccounts(db)

	_, err := accounts.Register("alice", "secret123")
	require.NoError(t, err)

	err = accounts.ChangePassword("alice", "newpass789", "doesnotmatch")
	assert.True(t, IsValidation(err))

	err = accounts.ChangePassword("alice", "tiny", "tiny")
	assert.True(t, IsValidation(err))

	require.NoError(t, accounts.ChangePassword("alice", "newpass789", "newpass789"))

	_, err = accounts.Authenticate("alice", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = accounts.Authenticate("alice", "newpass789")
	assert.NoError(t, err)
}

func TestStats(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccounts(db)
	forum := NewForum(db)

	_, err := accounts.Register("alice", "secret123")
	require.NoError(t, err)

	thread, err := forum.CreateThread("alice", "T", "C")
	require.NoError(t, err)
	_, err = forum.AddReply("alice", thread.ID, "first")
	require.NoError(t, err)

	stats, err := accounts.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Users)
	assert.EqualValues(t, 1, stats.Threads)
	assert.EqualValues(t, 1, stats.Replies)
	assert.EqualValues(t, 0, stats.Machines)
}
