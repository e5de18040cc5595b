package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingToken = errors.New("missing bearer token")
)

type Config struct {
	SecretKey      string        `envconfig:"SECRET_KEY" split_words:"true" required:"true"`
	Algorithm      string        `envconfig:"ALGORITHM" default:"HS256"`
	AccessTokenTTL time.Duration `envconfig:"ACCESS_TOKEN_TTL" split_words:"true" default:"30m"`
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.SecretKey) == "" {
		return errors.New("auth secret key is required")
	}
	if _, ok := jwt.GetSigningMethod(c.Algorithm).(*jwt.SigningMethodHMAC); !ok {
		return fmt.Errorf("unsupported jwt algorithm %q", c.Algorithm)
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("access token ttl must be > 0")
	}
	return nil
}

// TokenManager issues and verifies HMAC-signed access tokens whose
// subject is the user's email.
type TokenManager struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(cfg *Config) (*TokenManager, error) {
	if cfg == nil {
		return nil, errors.New("auth config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &TokenManager{
		secret: []byte(cfg.SecretKey),
		method: jwt.GetSigningMethod(cfg.Algorithm),
		ttl:    cfg.AccessTokenTTL,
		now:    time.Now,
	}, nil
}

func (m *TokenManager) TTL() time.Duration { return m.ttl }

func (m *TokenManager) Issue(subject string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	signed, err := jwt.NewWithClaims(m.method, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies raw and returns its subject.
func (m *TokenManager) Parse(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrMissingToken
	}

	var claims jwt.RegisteredClaims
	parser := jwt.Parser{ValidMethods: []string{m.method.Alg()}}
	token, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if !claims.VerifyExpiresAt(m.now(), true) {
		return "", ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(token), nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
