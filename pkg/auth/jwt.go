package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrSigningDisabled is returned by GenerateToken in validation-only mode.
var ErrSigningDisabled = errors.New("token signing disabled: no private key or secret configured")

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	// Secret is an HMAC-SHA256 symmetric key.
	Secret string

	// PrivateKeyPEM is a PEM-encoded RSA private key for signing tokens.
	PrivateKeyPEM string

	// PublicKeyPEM is a PEM-encoded RSA public key for validating tokens.
	PublicKeyPEM string

	Issuer     string
	Expiration time.Duration

	// Leeway tolerates clock skew on exp/nbf checks.
	Leeway time.Duration
}

// Enabled reports whether any key material is configured.
func (c JWTConfig) Enabled() bool {
	return c.Secret != "" || c.PrivateKeyPEM != "" || c.PublicKeyPEM != ""
}

// JWTService signs and validates tokens.
type JWTService struct {
	config     JWTConfig
	method     jwt.SigningMethod
	signKey    interface{}
	verifyKey  interface{}
	parserOpts []jwt.ParserOption
}

// NewJWTService creates a new JWTService with the given configuration.
//
// Configuration modes:
//   - PrivateKeyPEM set: RS256 issuer mode (sign and validate). The public key is derived.
//   - PublicKeyPEM set: RS256 validation-only mode.
//   - Secret set: HS256 mode.
func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	svc := &JWTService{config: cfg}

	switch {
	case cfg.PrivateKeyPEM != "":
		privKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA private key: %w", err)
		}
		svc.method = jwt.SigningMethodRS256
		svc.signKey = privKey
		svc.verifyKey = &privKey.PublicKey

	case cfg.PublicKeyPEM != "":
		pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
		}
		svc.method = jwt.SigningMethodRS256
		svc.verifyKey = pubKey

	case cfg.Secret != "":
		svc.method = jwt.SigningMethodHS256
		svc.signKey = []byte(cfg.Secret)
		svc.verifyKey = []byte(cfg.Secret)

	default:
		return nil, fmt.Errorf("jwt configuration requires PrivateKeyPEM, PublicKeyPEM, or Secret")
	}

	svc.parserOpts = []jwt.ParserOption{
		jwt.WithValidMethods([]string{svc.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		svc.parserOpts = append(svc.parserOpts, jwt.WithIssuer(cfg.Issuer))
	}

	return svc, nil
}

// GenerateToken issues a token for the given client subject.
func (s *JWTService) GenerateToken(subject string, scopes []string) (string, error) {
	if s.signKey == nil {
		return "", ErrSigningDisabled
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		Scopes: scopes,
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT token string.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.verifyKey, nil
	}, s.parserOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}

// LoadKeyFromFile reads a PEM-encoded key from a file path.
func LoadKeyFromFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file %q: %w", path, err)
	}
	return data, nil
}
