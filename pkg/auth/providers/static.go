package providers

import (
	"context"
	"fmt"
)

var _ AuthProvider = &StaticAuthProvider{}

// StaticAuthProvider resolves tokens from a fixed token-to-uid table.
// It exists for local development and tests where no identity service
// is available.
type StaticAuthProvider struct {
	tokens map[string]string
}

func NewStaticAuthProvider(tokens map[string]string) *StaticAuthProvider {
	return &StaticAuthProvider{
		tokens: tokens,
	}
}

func (p *StaticAuthProvider) VerifyToken(ctx context.Context, idToken string) (*TokenClaims, error) {
	uid, ok := p.tokens[idToken]
	if !ok {
		return nil, fmt.Errorf("unknown token")
	}
	return &TokenClaims{
		UID: uid,
	}, nil
}
