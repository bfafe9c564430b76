// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. The [TokenCodec] is injected into the session service and
// into [middleware.Authenticate].
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind distinguishes the two token families. Each kind is signed with its
// own secret, so a refresh token never verifies as an access token.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

var (
	// ErrTokenExpired is returned when the token's exp claim is in the past.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrBadSignature is returned when the signature does not match the kind's secret.
	ErrBadSignature = errors.New("sec: token signature invalid")

	// ErrMalformedToken covers unparseable tokens, wrong algorithms and missing claims.
	ErrMalformedToken = errors.New("sec: token malformed")
)

// AuthClaims represents the payload embedded inside a signed token.
//
// Only the identity id travels in the token; no profile data is embedded.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID string    `json:"uid"`
	Kind   TokenKind `json:"typ"`
}

// TokenCodec issues and verifies HS256 tokens for both kinds.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

// NewTokenCodec creates a codec. The two secrets must be non-empty and distinct.
func NewTokenCodec(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, issuer string) (*TokenCodec, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("sec: token secrets must not be empty")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("sec: access and refresh secrets must differ")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("sec: token ttl must be positive")
	}

	return &TokenCodec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		issuer:        issuer,
		now:           time.Now,
	}, nil
}

// WithClock overrides the time source. Intended for tests.
func (codec *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	clone := *codec
	clone.now = now
	return &clone
}

// IssueAccessToken signs a short-lived access token for identityID.
func (codec *TokenCodec) IssueAccessToken(identityID string) (string, time.Time, error) {
	return codec.issue(identityID, KindAccess)
}

// IssueRefreshToken signs a long-lived refresh token for identityID.
func (codec *TokenCodec) IssueRefreshToken(identityID string) (string, time.Time, error) {
	return codec.issue(identityID, KindRefresh)
}

// Verify checks the signature and expiry of token for the given kind and
// returns the identity id it was issued to.
func (codec *TokenCodec) Verify(token string, kind TokenKind) (string, error) {
	claims, err := codec.Parse(token, kind)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// Parse is like [TokenCodec.Verify] but returns the full claim set.
func (codec *TokenCodec) Parse(token string, kind TokenKind) (*AuthClaims, error) {
	secret, err := codec.secretFor(kind)
	if err != nil {
		return nil, err
	}

	parsed, err := jwt.ParseWithClaims(token, &AuthClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(codec.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, classify(err)
	}

	claims, ok := parsed.Claims.(*AuthClaims)
	if !ok || !parsed.Valid || claims.UserID == "" || claims.Kind != kind {
		return nil, ErrMalformedToken
	}

	return claims, nil
}

func (codec *TokenCodec) issue(identityID string, kind TokenKind) (string, time.Time, error) {
	if identityID == "" {
		return "", time.Time{}, errors.New("sec: identity id is required")
	}

	secret, err := codec.secretFor(kind)
	if err != nil {
		return "", time.Time{}, err
	}

	ttl := codec.accessTTL
	if kind == KindRefresh {
		ttl = codec.refreshTTL
	}

	issuedAt := codec.now()
	expiresAt := issuedAt.Add(ttl)

	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identityID,
			Issuer:    codec.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			// Random jti keeps two tokens minted in the same second distinct.
			ID: uuid.NewString(),
		},
		UserID: identityID,
		Kind:   kind,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign %s token: %w", kind, err)
	}

	return signed, expiresAt, nil
}

func (codec *TokenCodec) secretFor(kind TokenKind) ([]byte, error) {
	switch kind {
	case KindAccess:
		return codec.accessSecret, nil
	case KindRefresh:
		return codec.refreshSecret, nil
	default:
		return nil, fmt.Errorf("sec: unknown token kind %q", kind)
	}
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrBadSignature
	default:
		return ErrMalformedToken
	}
}
