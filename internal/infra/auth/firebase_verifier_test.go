package auth

import (
	"context"
	"testing"

	domainerrors "fuelwatch/internal/domain/errors"

	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokenVerifier struct {
	token *auth.Token
	err   error
}

func (f *fakeTokenVerifier) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	return f.token, f.err
}

func TestFirebaseVerifier_VerifyIDToken(t *testing.T) {
	v := &firebaseVerifier{client: &fakeTokenVerifier{token: &auth.Token{UID: "user-1"}}}

	uid, err := v.VerifyIDToken(context.Background(), "header.payload.signature")

	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
}

func TestFirebaseVerifier_VerifyIDToken_Errors(t *testing.T) {
	v := &firebaseVerifier{client: &fakeTokenVerifier{err: errors.New("ID token has expired")}}

	_, err := v.VerifyIDToken(context.Background(), "  ")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	_, err = v.VerifyIDToken(context.Background(), "expired")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidIDToken)

	v = &firebaseVerifier{client: &fakeTokenVerifier{token: &auth.Token{}}}
	_, err = v.VerifyIDToken(context.Background(), "no-subject")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidIDToken)
}
