package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"conferencecentral/internal/domain"
)

func newAuthServiceForTest(repo *fakeProfileRepo) domain.AuthService {
	return NewAuthService(repo, &fakePasswordHasher{salt: "salt"}, &fakeTokenIssuer{}, time.Hour, testTimeout)
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "success", email: "a@example.com", password: "longenough"},
		{name: "invalid email", email: "not-an-email", password: "longenough", wantErr: domain.ErrValidation},
		{name: "short password", email: "a@example.com", password: "short", wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeProfileRepo()
			svc := newAuthServiceForTest(repo)

			token, profile, err := svc.SignUp(ctx, tt.email, tt.password, "Ada")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, token)
			require.Equal(t, "a@example.com", profile.Email)
			require.Equal(t, domain.ShirtSizeNotSpecified, profile.TeeShirtSize)
		})
	}

	t.Run("duplicate email", func(t *testing.T) {
		repo := newFakeProfileRepo()
		repo.add(&domain.Profile{ID: "prof-1", Email: "a@example.com"})
		svc := newAuthServiceForTest(repo)

		_, _, err := svc.SignUp(ctx, "a@example.com", "longenough", "Ada")
		require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	repo := newFakeProfileRepo()
	svc := newAuthServiceForTest(repo)
	_, created, err := svc.SignUp(ctx, "a@example.com", "longenough", "Ada")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, profile, err := svc.Login(ctx, "a@example.com", "longenough")
		require.NoError(t, err)
		require.Equal(t, "token-"+created.ID, token)
		require.Equal(t, created.ID, profile.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "a@example.com", "wrongpassword")
		require.ErrorIs(t, err, domain.ErrAuthRequired)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "longenough")
		require.ErrorIs(t, err, domain.ErrAuthRequired)
	})
}
