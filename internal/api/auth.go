package api

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pharmacy/m/internal/apperror"
	"pharmacy/m/internal/config"
)

type authClaims struct {
	jwt.RegisteredClaims
}

// Authenticator checks the configured operator credentials and issues
// bearer tokens.
type Authenticator struct {
	secret       []byte
	username     string
	passwordHash []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewAuthenticator(cfg config.AuthConfig) (*Authenticator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Authenticator{
		secret:       []byte(cfg.Secret),
		username:     cfg.AdminUsername,
		passwordHash: hash,
		ttl:          ttl,
		now:          time.Now,
	}, nil
}

// Login verifies the credentials and returns a signed token with its expiry.
func (a *Authenticator) Login(username, password string) (string, time.Time, error) {
	passwordErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	if passwordErr != nil || !userMatch {
		return "", time.Time{}, apperror.New(apperror.CodeUnauthorized, "invalid credentials")
	}

	issued := a.now()
	expires := issued.Add(a.ttl)
	claims := authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, apperror.Wrap(apperror.CodeInternal, "unable to generate token", err)
	}
	return token, expires, nil
}

// Verify parses a bearer token and returns its subject.
func (a *Authenticator) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &authClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil || !token.Valid {
		return "", apperror.Wrap(apperror.CodeUnauthorized, "invalid token", err)
	}

	claims, ok := token.Claims.(*authClaims)
	if !ok || claims.Subject == "" {
		return "", apperror.New(apperror.CodeUnauthorized, "invalid token claims")
	}
	return claims.Subject, nil
}
