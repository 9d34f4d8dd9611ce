package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"docsite/internal/auth"
	"docsite/internal/model"
	repoMocks "docsite/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func adminCredential(t *testing.T) *model.Credential {
	t.Helper()
	hash, err := auth.HashPassword("admin123")
	require.NoError(t, err)
	return &model.Credential{
		User:         model.User{ID: 1, Username: "admin", Name: "Administrator"},
		PasswordHash: hash,
	}
}

func TestCredentialService_Verify(t *testing.T) {
	ctx := context.Background()
	mUsers := new(repoMocks.MockUserRepository)
	mUsers.On("FindByUsername", ctx, "admin").Return(adminCredential(t), nil)
	mUsers.On("FindByUsername", ctx, "ghost").Return(nil, sql.ErrNoRows)
	mUsers.On("FindByUsername", ctx, "broken").Return(nil, errors.New("db down"))
	svc := NewCredentialService(mUsers)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid", username: "admin", password: "admin123"},
		{name: "wrong password", username: "admin", password: "wrongpassword", wantErr: ErrInvalidCredentials},
		{name: "unknown user", username: "ghost", password: "admin123", wantErr: ErrInvalidCredentials},
		{name: "empty password", username: "admin", password: "", wantErr: ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := svc.Verify(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, model.User{ID: 1, Username: "admin", Name: "Administrator"}, *u)
		})
	}

	_, err := svc.Verify(ctx, "broken", "x")
	assert.EqualError(t, err, "db down")
}

func TestCredentialService_UpdatePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("FindByID", ctx, int64(1)).Return(adminCredential(t), nil)
		mUsers.On("UpdatePassword", ctx, int64(1), mock.MatchedBy(func(hash string) bool {
			return auth.CheckPassword(hash, "newpassword1")
		})).Return(nil)

		msg, err := NewCredentialService(mUsers).UpdatePassword(ctx, 1, "admin123", "newpassword1")

		require.NoError(t, err)
		assert.Equal(t, "Password updated successfully", msg)
		mUsers.AssertExpectations(t)
	})

	t.Run("incorrect current password", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("FindByID", ctx, int64(1)).Return(adminCredential(t), nil)

		_, err := NewCredentialService(mUsers).UpdatePassword(ctx, 1, "nope", "newpassword1")

		assert.ErrorIs(t, err, ErrIncorrectPassword)
		mUsers.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("longer than bcrypt accepts", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)

		_, err := NewCredentialService(mUsers).UpdatePassword(ctx, 1, "admin123", strings.Repeat("p", auth.MaxPasswordBytes+1))

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "New password must be at most 72 bytes long", verr.Msg)
		mUsers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("multibyte password at the limit", func(t *testing.T) {
		long := strings.Repeat("あ", auth.MaxPasswordBytes/3)
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("FindByID", ctx, int64(1)).Return(adminCredential(t), nil)
		mUsers.On("UpdatePassword", ctx, int64(1), mock.MatchedBy(func(hash string) bool {
			return auth.CheckPassword(hash, long)
		})).Return(nil)

		_, err := NewCredentialService(mUsers).UpdatePassword(ctx, 1, "admin123", long)
		require.NoError(t, err)
	})

	t.Run("user not found", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("FindByID", ctx, int64(9)).Return(nil, sql.ErrNoRows)

		_, err := NewCredentialService(mUsers).UpdatePassword(ctx, 9, "admin123", "newpassword1")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
