package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseVerifier validates Firebase ID tokens issued to clients that
// still authenticate through Firebase Auth. Verified identities are
// mapped onto local accounts by the auth service.
type FirebaseVerifier struct {
	client *firebaseauth.Client
}

type FirebaseIdentity struct {
	UID           string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

func NewFirebaseVerifier(projectID, credentialsFile string) (*FirebaseVerifier, error) {
	ctx := context.Background()

	config := &firebase.Config{ProjectID: projectID}

	var app *firebase.App
	var err error

	if credentialsFile != "" {
		app, err = firebase.NewApp(ctx, config, option.WithCredentialsFile(credentialsFile))
	} else {
		app, err = firebase.NewApp(ctx, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth client: %w", err)
	}

	return &FirebaseVerifier{
		client: client,
	}, nil
}

func (f *FirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*FirebaseIdentity, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify Firebase ID token: %w", err)
	}

	identity := &FirebaseIdentity{
		UID: token.UID,
	}

	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		identity.Picture = picture
	}

	return identity, nil
}

func (f *FirebaseVerifier) RevokeRefreshTokens(ctx context.Context, uid string) error {
	return f.client.RevokeRefreshTokens(ctx, uid)
}
