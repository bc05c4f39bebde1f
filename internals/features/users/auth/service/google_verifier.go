package service

import (
	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

// GoogleClaims is the subset of the Google ID-token payload this service
// consumes. Once the verifier returns it, the claims are trusted.
type GoogleClaims struct {
	Sub     string
	Email   string
	Name    string
	Picture string
}

// GoogleTokenVerifier is the narrow collaborator boundary to the identity
// provider: one call, verify against an audience, signed claims or an error.
type GoogleTokenVerifier interface {
	Verify(idToken, audience string) (*GoogleClaims, error)
}

type googleIDTokenVerifier struct{}

// NewGoogleTokenVerifier returns the production verifier backed by Google's
// published signing keys.
func NewGoogleTokenVerifier() GoogleTokenVerifier {
	return googleIDTokenVerifier{}
}

func (googleIDTokenVerifier) Verify(idToken, audience string) (*GoogleClaims, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{audience}); err != nil {
		return nil, err
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, err
	}
	return &GoogleClaims{
		Sub:     claimSet.Sub,
		Email:   claimSet.Email,
		Name:    claimSet.Name,
		Picture: claimSet.Picture,
	}, nil
}
