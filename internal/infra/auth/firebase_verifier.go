// Package auth verifies the identity of API callers.
package auth

import (
	"context"
	"strings"
	"sync"

	domainerrors "fuelwatch/internal/domain/errors"
	"fuelwatch/internal/domain/service"
	firebaseapp "fuelwatch/internal/infra/firebase"

	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// tokenVerifier is the part of auth.Client the verifier uses
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// firebaseVerifier checks Firebase ID tokens issued to signed-in users
type firebaseVerifier struct {
	provider *firebaseapp.AppProvider

	mu     sync.Mutex
	client tokenVerifier
}

// VerifierParams holds dependencies for IDTokenVerifier, injected by Fx
type VerifierParams struct {
	fx.In

	Firebase *firebaseapp.AppProvider
}

// NewFirebaseVerifier creates an ID token verifier. The auth client is created on first use.
func NewFirebaseVerifier(params VerifierParams) service.IDTokenVerifier {
	return &firebaseVerifier{provider: params.Firebase}
}

// VerifyIDToken returns the Firebase UID of the token's user
func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return "", errors.WithStack(domainerrors.ErrUnauthorized)
	}

	client, err := v.authClient(ctx)
	if err != nil {
		return "", err
	}

	token, err := client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", errors.WithStack(domainerrors.ErrInvalidIDToken.WithDetails(err.Error()))
	}
	if token.UID == "" {
		return "", errors.WithStack(domainerrors.ErrInvalidIDToken.WithDetails("token has no subject"))
	}

	return token.UID, nil
}

func (v *firebaseVerifier) authClient(ctx context.Context) (tokenVerifier, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.client != nil {
		return v.client, nil
	}

	app, err := v.provider.App(ctx)
	if err != nil {
		return nil, err
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}
	v.client = client

	return client, nil
}
