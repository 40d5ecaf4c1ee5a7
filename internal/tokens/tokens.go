package tokens

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/config"
	"github.com/lawfolio/lawfolio/backend/site-service/internal/models"
	"github.com/lawfolio/lawfolio/backend/site-service/pkg/middleware"
)

const issuer = "lawfolio"

var ErrNoSecret = errors.New("jwt secret not configured")

// GenerateAccessToken creates a signed JWT access token for the admin
func GenerateAccessToken(cfg *config.Config, a *models.Admin, ttl time.Duration) (string, error) {
	if cfg.JWT.Secret == "" {
		return "", ErrNoSecret
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   issuer,
		"sub":   a.ID,
		"name":  a.Name,
		"email": a.Email,
		"role":  "admin",
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// Verifier checks access tokens issued by GenerateAccessToken.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
		),
	}
}

func (v *Verifier) Verify(_ context.Context, raw string) (middleware.Token, error) {
	if len(v.secret) == 0 {
		return nil, ErrNoSecret
	}
	claims := jwt.MapClaims{}
	_, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return mapToken(claims), nil
}

// ExpiresAt reads the exp claim of a token that already passed verification.
func ExpiresAt(tok middleware.Token) (time.Time, error) {
	var claims struct {
		Exp *jwt.NumericDate `json:"exp"`
	}
	if err := tok.Claims(&claims); err != nil {
		return time.Time{}, err
	}
	if claims.Exp == nil {
		return time.Time{}, errors.New("token has no exp claim")
	}
	return claims.Exp.Time, nil
}

type mapToken jwt.MapClaims

func (t mapToken) Claims(v interface{}) error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
