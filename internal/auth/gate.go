// Package auth implements the admin credential gate: a single fixed id and a
// bcrypt password hash, with a limited number of login attempts.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for a wrong id or password.
	ErrInvalidCredentials = errors.New("invalid admin credentials")

	// ErrTooManyAttempts is returned once every allowed attempt has failed.
	ErrTooManyAttempts = errors.New("too many failed login attempts")
)

// DefaultMaxAttempts is used when the configured limit is not positive.
const DefaultMaxAttempts = 3

// dummyHash is compared against when the id is wrong so that a wrong id and
// a wrong password take the same time.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3hOexP7uNMxTf1tQOsPHU7O"

// Credentials are what a user typed at the gate.
type Credentials struct {
	ID       string
	Password string
}

// Gate checks admin credentials. A gate with no password hash is open.
type Gate struct {
	id          string
	hash        []byte
	maxAttempts int
}

// NewGate returns a gate for the given id and bcrypt hash.
// An empty hash disables the gate.
func NewGate(id, passwordHash string, maxAttempts int) *Gate {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Gate{
		id:          id,
		hash:        []byte(passwordHash),
		maxAttempts: maxAttempts,
	}
}

// Enabled reports whether credentials are required.
func (g *Gate) Enabled() bool {
	return len(g.hash) > 0
}

// MaxAttempts returns how many tries Login allows.
func (g *Gate) MaxAttempts() int {
	return g.maxAttempts
}

// Check verifies one set of credentials. An open gate accepts anything.
func (g *Gate) Check(c Credentials) error {
	if !g.Enabled() {
		return nil
	}

	idOK := subtle.ConstantTimeCompare([]byte(c.ID), []byte(g.id)) == 1
	if !idOK {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(c.Password))
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(c.Password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login asks for credentials until they check out or the attempt limit is
// reached. prompt receives the 1-based attempt number. An error from prompt
// (for example end of input) aborts the login and is returned as-is.
func (g *Gate) Login(prompt func(attempt int) (Credentials, error)) error {
	if !g.Enabled() {
		return nil
	}

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		c, err := prompt(attempt)
		if err != nil {
			return err
		}
		if err := g.Check(c); err == nil {
			slog.Info("admin login succeeded", "attempt", attempt)
			return nil
		}
		slog.Warn("admin login failed", "attempt", attempt, "max_attempts", g.maxAttempts)
	}
	return ErrTooManyAttempts
}

// HashPassword returns a bcrypt hash suitable for the admin.password_hash setting.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
