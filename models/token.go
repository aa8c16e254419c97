// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Role is the kind of session a bearer token was issued for.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleDriver   Role = "driver"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin || r == RoleDriver
}

// Token is the claim set of a bearer token. Tokens are issued by an external
// identity provider; this module only validates them.
//
// The subject claim carries the user ID. Role defaults to customer when the
// claim is absent.
type Token struct {
	jwt.RegisteredClaims

	// Role is the custom "role" claim.
	Role Role `json:"role,omitempty"`

	// UserID is a parsed copy of the subject claim. Not serialized.
	UserID string `json:"-"`

	// SignedString is the compact form of the token. Not serialized.
	SignedString string `json:"-"`
}

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	UserID string
	Role   Role
}

// Identity returns the caller identity described by the token.
func (t Token) Identity() Identity {
	role := t.Role
	if !role.Valid() {
		role = RoleCustomer
	}
	return Identity{UserID: t.UserID, Role: role}
}

// String returns the compact JWS serialization of the token.
func (t Token) String() string {
	return t.SignedString
}
