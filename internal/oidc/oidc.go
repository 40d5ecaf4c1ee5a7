// Package oidc accepts Keycloak-issued tokens for the admin API when a realm
// is configured alongside the local admin accounts.
package oidc

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/config"
	"github.com/lawfolio/lawfolio/backend/site-service/pkg/middleware"
)

// Verifier wraps the OIDC provider and token verifier
type Verifier struct {
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
}

// NewVerifier discovers the realm issuer of kc. It returns (nil, nil) when
// Keycloak is not configured.
func NewVerifier(ctx context.Context, kc config.KeycloakConfig) (*Verifier, error) {
	if kc.URL == "" {
		return nil, nil
	}
	provider, err := oidc.NewProvider(ctx, kc.Issuer())
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	verifier := provider.Verifier(&oidc.Config{
		ClientID:          kc.ClientID,
		SkipClientIDCheck: kc.ClientID == "",
	})
	return &Verifier{provider: provider, verifier: verifier}, nil
}

// Verify verifies the provided raw token and returns a middleware.Token
func (v *Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	return idToken, nil
}
