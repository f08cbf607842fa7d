package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig configures JWTAuthenticator. Zero fields take the defaults
// noted below.
type JWTConfig struct {
	// Issuer and Audience are checked when set.
	Issuer   string
	Audience string

	Header string // default "Authorization"
	Scheme string // default "Bearer"

	PrincipalClaim string // default "sub"
	TenantClaim    string
	RolesClaim     string

	// Leeway tolerates clock skew on exp, nbf and iat.
	Leeway time.Duration
}

func (c JWTConfig) withDefaults() JWTConfig {
	if c.Header == "" {
		c.Header = "Authorization"
	}
	if c.Scheme == "" {
		c.Scheme = "Bearer"
	}
	if c.PrincipalClaim == "" {
		c.PrincipalClaim = "sub"
	}
	return c
}

// KeyFunc returns the HMAC secret for a token's key id.
type KeyFunc func(ctx context.Context, kid string) ([]byte, error)

// StaticKey returns a KeyFunc that always answers secret.
func StaticKey(secret []byte) KeyFunc {
	return func(context.Context, string) ([]byte, error) {
		if len(secret) == 0 {
			return nil, ErrKeyNotFound
		}
		return secret, nil
	}
}

// JWTAuthenticator verifies HMAC-signed bearer tokens from call headers.
type JWTAuthenticator struct {
	cfg    JWTConfig
	key    KeyFunc
	parser *jwt.Parser
}

// NewJWTAuthenticator creates a JWTAuthenticator.
func NewJWTAuthenticator(cfg JWTConfig, key KeyFunc) *JWTAuthenticator {
	cfg = cfg.withDefaults()

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	return &JWTAuthenticator{cfg: cfg, key: key, parser: jwt.NewParser(opts...)}
}

func (a *JWTAuthenticator) Name() string { return "jwt" }

// Authenticate returns ErrMissingCredentials when the configured header
// does not carry a token for the configured scheme.
func (a *JWTAuthenticator) Authenticate(ctx context.Context, cc CallContext) (*Identity, error) {
	raw, ok := a.bearer(cc)
	if !ok {
		return nil, ErrMissingCredentials
	}

	claims := jwt.MapClaims{}
	_, err := a.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		return a.key(ctx, kid)
	})
	if err != nil {
		return nil, classifyJWTError(err)
	}
	return a.identity(claims), nil
}

// bearer extracts "<scheme> <token>" from the header, matching the scheme
// case-insensitively.
func (a *JWTAuthenticator) bearer(cc CallContext) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(cc.Header(a.cfg.Header)), " ")
	if !ok || !strings.EqualFold(scheme, a.cfg.Scheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func classifyJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, ErrKeyNotFound):
		return ErrKeyNotFound
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	default:
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
}

func (a *JWTAuthenticator) identity(claims jwt.MapClaims) *Identity {
	id := &Identity{
		Principal: stringClaim(claims, a.cfg.PrincipalClaim),
		Tenant:    stringClaim(claims, a.cfg.TenantClaim),
		Roles:     listClaim(claims, a.cfg.RolesClaim),
		Claims:    make(map[string]any, len(claims)),
	}
	for k, v := range claims {
		id.Claims[k] = v
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}
	return id
}

func stringClaim(claims jwt.MapClaims, name string) string {
	if name == "" {
		return ""
	}
	s, _ := claims[name].(string)
	return s
}

// listClaim accepts a JSON array of strings or a space-separated string,
// as used by the OAuth "scope" claim.
func listClaim(claims jwt.MapClaims, name string) []string {
	if name == "" {
		return nil
	}
	switch v := claims[name].(type) {
	case string:
		return strings.Fields(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

var _ Authenticator = (*JWTAuthenticator)(nil)
