// Package auth implements the single shared-credential login used by the
// admin dashboard. One configured user, one static bearer token; there are
// no per-user accounts.
package auth

import (
	"crypto/subtle"
	"errors"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Authenticator struct {
	username string
	password string
	token    string
}

type Config struct {
	Username string
	Password string
	Token    string
}

func New(cfg Config) *Authenticator {
	return &Authenticator{
		username: cfg.Username,
		password: cfg.Password,
		token:    cfg.Token,
	}
}

// Login checks the credential pair and returns the static admin token.
func (a *Authenticator) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1

	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}

	return a.token, nil
}

// ValidToken reports whether the presented bearer token matches.
func (a *Authenticator) ValidToken(token string) bool {
	return subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) == 1
}
