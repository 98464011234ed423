package service

import (
	"context"
	"testing"
	"time"

	"storefront-service/internal/dto"
	"storefront-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*AuthService, *memUserRepo) {
	t.Helper()
	repo := newMemUserRepo()
	return NewAuthService(repo, time.Hour), repo
}

func register(t *testing.T, svc *AuthService) *model.User {
	t.Helper()
	u, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	return u
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	u := register(t, svc)

	assert.NotEqual(t, "correct horse", u.PasswordHash)
	assert.Equal(t, "customer", u.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	register(t, svc)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Other",
		Email:    "ada@example.com",
		Password: "different pass",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginAndValidateToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	registered := register(t, svc)
	ctx := context.Background()

	u, token, err := svc.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	require.NotEmpty(t, token)

	current, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, current.ID)

	// wrong password and unknown email fail the same way
	_, _, err = svc.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, _, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestValidateTokenRejectsExpiredSession(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(repo, -time.Minute) // sessions expire immediately
	register(t, svc)
	ctx := context.Background()

	_, token, err := svc.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrBadToken)
	_, ok := repo.sessions[token]
	assert.False(t, ok, "expired sessions are removed")
}

func TestLogoutInvalidatesToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	register(t, svc)
	ctx := context.Background()

	_, token, err := svc.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _ := newAuthFixture(t)
	register(t, svc)
	ctx := context.Background()

	token, err := svc.ForgotPassword(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, svc.ResetPassword(ctx, token, "new password!"))

	_, _, err = svc.Login(ctx, "ada@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, _, err = svc.Login(ctx, "ada@example.com", "new password!")
	assert.NoError(t, err)

	// tokens are single-use
	err = svc.ResetPassword(ctx, token, "another one")
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	svc, _ := newAuthFixture(t)
	token, err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	assert.Empty(t, token)
}

func TestWishlistAddRemove(t *testing.T) {
	svc, _ := newAuthFixture(t)
	u := register(t, svc)
	ctx := context.Background()
	id := u.ID.Hex()

	require.NoError(t, svc.SetWishlisted(ctx, id, "p1", true))
	require.NoError(t, svc.SetWishlisted(ctx, id, "p2", true))
	require.NoError(t, svc.SetWishlisted(ctx, id, "p1", true)) // idempotent

	profile, err := svc.Profile(ctx, id)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2"}, profile.Wishlist)

	require.NoError(t, svc.SetWishlisted(ctx, id, "p1", false))
	profile, err = svc.Profile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, profile.Wishlist)
}

func TestUpdateProfileAddresses(t *testing.T) {
	svc, _ := newAuthFixture(t)
	u := register(t, svc)
	ctx := context.Background()

	primary := &model.Address{Line1: "1 Main St", City: "Springfield", Country: "US"}
	secondary := &model.Address{Line1: "2 Oak Ave", City: "Shelbyville", Country: "US"}
	err := svc.UpdateProfile(ctx, u.ID.Hex(), dto.ProfileUpdateRequest{
		Phone:            "555-0101",
		Address:          primary,
		SecondaryAddress: secondary,
	})
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "555-0101", profile.Phone)
	assert.Equal(t, primary, profile.Address)
	assert.Equal(t, secondary, profile.SecondaryAddress)
	assert.Equal(t, "Ada", profile.Name, "untouched fields keep their values")
}
