// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/grocery-sync/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidBearer is returned when an Authorization header is not of
	// the form "Bearer <token>".
	ErrInvalidBearer = errors.New("invalid authorization header")
	// ErrEmptySubject is returned for tokens without a subject claim.
	ErrEmptySubject = errors.New("empty subject")
)

// GenerateJWTToken signs an HMAC-SHA256 token for userID with role.
// Tokens are normally issued by the identity provider; the generator serves
// tests and local tooling that must produce tokens the server accepts.
func GenerateJWTToken(issuer, userID string, role models.Role, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || userID == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := models.Token{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	claims.UserID = userID
	claims.SignedString = signed
	return claims, nil
}

// ValidateAndParseJWTToken verifies the signature, the issuer and the expiry
// of tokenString and returns its claims with UserID populated from the
// subject.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.Token{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Token{}, ErrEmptySubject
	}

	claims.UserID = claims.Subject
	claims.SignedString = tokenString
	return *claims, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidBearer
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidBearer
	}
	return token, nil
}

// ParseUnverifiedIdentity reads the subject and role claims of a token the
// caller already trusts (its own session token) without verifying the
// signature. The client uses it to pick the realtime channels it owns.
func ParseUnverifiedIdentity(tokenString string) (models.Identity, error) {
	claims := &models.Token{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return models.Identity{}, fmt.Errorf("parse token: %w", err)
	}

	if claims.Subject == "" {
		return models.Identity{}, ErrEmptySubject
	}

	claims.UserID = claims.Subject
	return claims.Identity(), nil
}
