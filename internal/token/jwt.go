package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"repuestos/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrNotExpired is returned by ParseExpired when the presented access
	// token is still valid: refresh is only allowed after expiry.
	ErrNotExpired = errors.New("access token has not expired yet")
)

// Claims carried by an access token. The jti correlates the token with its
// stored refresh-token row.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies HS256 access tokens and generates the opaque
// refresh-token values persisted alongside them.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewIssuer(secret []byte, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (i *Issuer) RefreshTTL() time.Duration { return i.refreshTTL }

// Issue signs a short-lived access token for the user and returns the
// serialized token, its jti and its expiry.
func (i *Issuer) Issue(user *model.User) (string, string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(i.accessTTL)
	jti := uuid.NewString()

	claims := Claims{
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return signed, jti, exp, nil
}

// ParseExpired verifies the signature and signing method of a possibly
// expired access token, without rejecting it for being expired. It then
// requires the token to actually be expired: a still-valid token returns
// ErrNotExpired. This is the entry gate of the refresh flow.
func (i *Issuer) ParseExpired(raw string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	claims := &Claims{}
	tok, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	if claims.ExpiresAt == nil {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if time.Now().UTC().Before(claims.ExpiresAt.Time) {
		return nil, ErrNotExpired
	}
	return claims, nil
}

// NewRefreshValue returns a cryptographically random opaque token value.
func NewRefreshValue() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
