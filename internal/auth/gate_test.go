package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// testGate builds a gate with a low-cost hash to keep tests fast.
func testGate(t *testing.T, maxAttempts int) *Gate {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewGate("admin", string(hash), maxAttempts)
}

func TestOpenGate(t *testing.T) {
	g := NewGate("admin", "", 3)
	assert.False(t, g.Enabled())
	assert.NoError(t, g.Check(Credentials{}))

	called := false
	err := g.Login(func(int) (Credentials, error) {
		called = true
		return Credentials{}, nil
	})
	assert.NoError(t, err)
	assert.False(t, called, "open gate must not prompt")
}

func TestCheck(t *testing.T) {
	g := testGate(t, 3)
	require.True(t, g.Enabled())

	assert.NoError(t, g.Check(Credentials{ID: "admin", Password: "s3cret"}))
	assert.ErrorIs(t, g.Check(Credentials{ID: "admin", Password: "wrong"}), ErrInvalidCredentials)
	assert.ErrorIs(t, g.Check(Credentials{ID: "root", Password: "s3cret"}), ErrInvalidCredentials)
	assert.ErrorIs(t, g.Check(Credentials{}), ErrInvalidCredentials)
}

func TestLoginSucceedsOnLaterAttempt(t *testing.T) {
	g := testGate(t, 3)
	tries := []Credentials{
		{ID: "admin", Password: "nope"},
		{ID: "admin", Password: "s3cret"},
	}

	var attempts []int
	err := g.Login(func(attempt int) (Credentials, error) {
		attempts = append(attempts, attempt)
		return tries[attempt-1], nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, attempts)
}

func TestLoginTooManyAttempts(t *testing.T) {
	g := testGate(t, 2)

	calls := 0
	err := g.Login(func(int) (Credentials, error) {
		calls++
		return Credentials{ID: "admin", Password: "nope"}, nil
	})
	assert.ErrorIs(t, err, ErrTooManyAttempts)
	assert.Equal(t, 2, calls)
}

func TestLoginPromptError(t *testing.T) {
	g := testGate(t, 3)
	eof := errors.New("eof")

	err := g.Login(func(int) (Credentials, error) { return Credentials{}, eof })
	assert.ErrorIs(t, err, eof)
}

func TestDefaultMaxAttempts(t *testing.T) {
	assert.Equal(t, DefaultMaxAttempts, NewGate("a", "", 0).MaxAttempts())
	assert.Equal(t, 5, NewGate("a", "", 5).MaxAttempts())
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pw")))

	g := NewGate("admin", hash, 1)
	assert.NoError(t, g.Check(Credentials{ID: "admin", Password: "pw"}))

	_, err = HashPassword("")
	assert.Error(t, err)
}
