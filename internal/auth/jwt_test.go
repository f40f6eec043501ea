// Movierec - Movie Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/movierec

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/movierec/internal/config"
)

const testSecret = "this_is_a_very_long_secret_key_with_32_plus_characters"

func newTestManager(t *testing.T, issuer string) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, JWTIssuer: issuer})
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	return m
}

func mustToken(t *testing.T, m *JWTManager, ttl time.Duration) string {
	t.Helper()
	token, err := m.GenerateToken("alice", ttl)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func TestNewJWTManager_EmptySecret(t *testing.T) {
	t.Parallel()

	if _, err := NewJWTManager(&config.SecurityConfig{}); err == nil {
		t.Error("NewJWTManager() expected error for empty secret")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, "")
	token, err := m.GenerateToken("alice", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Identity() != "alice" {
		t.Errorf("Identity() = %q, want alice", claims.Identity())
	}
}

func TestValidateToken_Rejects(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, "accounts")
	other, err := NewJWTManager(&config.SecurityConfig{JWTSecret: "a_completely_different_secret_of_enough_length"})
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	expired := mustToken(t, m, -time.Minute)
	wrongKey := mustToken(t, other, time.Hour)
	wrongIssuer := mustToken(t, newTestManager(t, "elsewhere"), time.Hour)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Username: "alice", RegisteredClaims: jwt.RegisteredClaims{Issuer: "accounts"}})
	noExpToken, err := noExp.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{Username: "alice", RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "accounts",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	hs512Token, err := hs512.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "accounts",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	noSubjectToken, err := noSubject.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"empty", ""},
		{"expired", expired},
		{"wrong key", wrongKey},
		{"wrong issuer", wrongIssuer},
		{"missing expiry", noExpToken},
		{"other algorithm", hs512Token},
		{"no subject", noSubjectToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := m.ValidateToken(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
