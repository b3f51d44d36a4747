package services

import (
	"context"
	"errors"
	"testing"

	"rentride/internal/models"
	"rentride/internal/utils"
	fbauth "rentride/pkg/auth"
	"rentride/pkg/oauth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

type stubGoogleProvider struct {
	info *oauth.UserInfo
	err  error
}

func (p *stubGoogleProvider) GetAuthURL(state string, scopes []string) string { return "" }

func (p *stubGoogleProvider) ExchangeCode(ctx context.Context, code string) (*oauth.TokenResponse, error) {
	return nil, p.err
}

func (p *stubGoogleProvider) GetUserInfo(ctx context.Context, accessToken string) (*oauth.UserInfo, error) {
	return p.info, p.err
}

func (p *stubGoogleProvider) VerifyIDToken(ctx context.Context, idToken string) (*oauth.UserInfo, error) {
	return p.info, p.err
}

func (p *stubGoogleProvider) RevokeToken(ctx context.Context, token string) error { return nil }

type stubFirebaseVerifier struct {
	identity *fbauth.FirebaseIdentity
	err      error
}

func (v *stubFirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.FirebaseIdentity, error) {
	return v.identity, v.err
}

type authFixture struct {
	service AuthService
	users   *fakeUserRepo
	cache   *fakeCache
	google  *stubGoogleProvider
	fb      *stubFirebaseVerifier
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := newFakeUserRepo()
	cache := newFakeCache()
	google := &stubGoogleProvider{}
	fb := &stubFirebaseVerifier{}

	return &authFixture{
		service: NewAuthService(users, cache, google, fb, testJWTSecret, testLogger()),
		users:   users,
		cache:   cache,
		google:  google,
		fb:      fb,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, err := f.service.Register(ctx, &RegisterRequest{
		Name:     "Nimal Perera",
		Email:    "nimal@example.com",
		Password: "s3cure-pass",
	})
	require.NoError(t, err)
	require.NotNil(t, registered.Tokens)
	assert.NotEmpty(t, registered.Tokens.AccessToken)
	assert.NotEmpty(t, registered.Tokens.RefreshToken)

	// The stored password is hashed, never the raw input.
	stored, err := f.users.GetByEmail(ctx, "nimal@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cure-pass", stored.Password)

	loggedIn, err := f.service.Login(ctx, &LoginRequest{Email: "nimal@example.com", Password: "s3cure-pass"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	claims, err := utils.ValidateToken(loggedIn.Tokens.AccessToken, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, &RegisterRequest{Name: "First", Email: "dup@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = f.service.Register(ctx, &RegisterRequest{Name: "Second", Email: "dup@example.com", Password: "password2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, &RegisterRequest{Name: "Nimal", Email: "nimal@example.com", Password: "s3cure-pass"})
	require.NoError(t, err)

	_, err = f.service.Login(ctx, &LoginRequest{Email: "nimal@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(context.Background(), &LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestGoogleLoginCreatesAccountOnce(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.google.info = &oauth.UserInfo{
		ID:       "google-123",
		Email:    "kamala@example.com",
		Name:     "Kamala Silva",
		Picture:  "https://cdn.example.com/kamala.jpg",
		Provider: "google",
	}

	first, err := f.service.GoogleLogin(ctx, "a-valid-token")
	require.NoError(t, err)
	assert.Equal(t, models.AuthProviderGoogle, first.User.AuthProvider)
	assert.Equal(t, "google-123", first.User.SocialID)

	second, err := f.service.GoogleLogin(ctx, "a-valid-token")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)

	_, total, err := f.users.List(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestGoogleLoginRejectsBadToken(t *testing.T) {
	f := newAuthFixture(t)
	f.google.err = errors.New("token expired")

	_, err := f.service.GoogleLogin(context.Background(), "stale")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestFirebaseLogin(t *testing.T) {
	f := newAuthFixture(t)

	f.fb.identity = &fbauth.FirebaseIdentity{
		UID:   "firebase-uid-1",
		Email: "sunil@example.com",
		Name:  "Sunil Fernando",
	}

	response, err := f.service.FirebaseLogin(context.Background(), "a-firebase-token")
	require.NoError(t, err)
	assert.Equal(t, models.AuthProviderFirebase, response.User.AuthProvider)
	assert.Equal(t, "firebase-uid-1", response.User.SocialID)
}

func TestRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, err := f.service.Register(ctx, &RegisterRequest{Name: "Nimal", Email: "nimal@example.com", Password: "s3cure-pass"})
	require.NoError(t, err)

	fresh, err := f.service.RefreshToken(ctx, registered.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
}

func TestRefreshTokenRejectsGarbage(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, err := f.service.Register(ctx, &RegisterRequest{Name: "Nimal", Email: "nimal@example.com", Password: "s3cure-pass"})
	require.NoError(t, err)

	token := registered.Tokens.RefreshToken
	assert.False(t, f.service.IsTokenRevoked(ctx, token))

	require.NoError(t, f.service.Logout(ctx, registered.User.ID, token))
	assert.True(t, f.service.IsTokenRevoked(ctx, token))

	_, err = f.service.RefreshToken(ctx, token)
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestUpdateProfile(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, err := f.service.Register(ctx, &RegisterRequest{Name: "Nimal", Email: "nimal@example.com", Password: "s3cure-pass"})
	require.NoError(t, err)

	updated, err := f.service.UpdateProfile(ctx, registered.User.ID, &UpdateProfileRequest{
		Name:  "Nimal P",
		Phone: "+94771234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "Nimal P", updated.Name)
	assert.Equal(t, "+94771234567", updated.Phone)
}

func TestUpdateProfileRejectsBadPhotoURL(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, err := f.service.Register(ctx, &RegisterRequest{Name: "Nimal", Email: "nimal@example.com", Password: "s3cure-pass"})
	require.NoError(t, err)

	_, err = f.service.UpdateProfile(ctx, registered.User.ID, &UpdateProfileRequest{PhotoURL: "not a url"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
