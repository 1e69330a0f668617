package service

import "context"

// IDTokenVerifier verifies identity tokens issued to signed-in users
type IDTokenVerifier interface {
	// VerifyIDToken returns the user ID the token was issued to
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}
