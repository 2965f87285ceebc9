package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/posadmin/internal/auth/domain"
	apperrors "github.com/allisson/posadmin/internal/errors"
)

// accessTokenClaims is the JWT payload for access tokens. The account ID
// travels in the registered subject claim; the username rides alongside so
// downstream stages can log and display it without a lookup.
type accessTokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// jwtTokenCodec implements TokenCodec with HMAC-SHA256 signed JWTs.
type jwtTokenCodec struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewTokenCodec creates a TokenCodec signing with the given symmetric secret.
// The secret must be non-empty: a missing secret is a startup configuration
// error, never a per-request condition.
func NewTokenCodec(secret []byte, ttl time.Duration, issuer string) (TokenCodec, error) {
	if len(secret) == 0 {
		return nil, apperrors.New("token signing secret must not be empty")
	}
	if ttl <= 0 {
		return nil, apperrors.New("token expiration must be positive")
	}
	return &jwtTokenCodec{secret: secret, ttl: ttl, issuer: issuer}, nil
}

// Issue signs identity claims with the process-wide secret and a fixed TTL.
func (j *jwtTokenCodec) Issue(identity authDomain.Identity) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(j.ttl)

	claims := accessTokenClaims{
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.AccountID.String(),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign access token")
	}

	return token, expiresAt, nil
}

// Verify validates signature, expiry, and issuer, returning the identity claims.
// Every failure collapses into domain.ErrInvalidToken so callers cannot probe
// whether a token is malformed, forged, or merely expired.
func (j *jwtTokenCodec) Verify(token string) (*authDomain.Identity, error) {
	claims := &accessTokenClaims{}

	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, authDomain.ErrInvalidToken
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}

	return &authDomain.Identity{
		AccountID: accountID,
		Username:  claims.Username,
	}, nil
}
