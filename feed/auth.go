package feed

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
)

// Authentication errors.
var (
	ErrSignedOut    = errors.New("not signed in")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidCode  = errors.New("invalid or expired code")
)

// User is a signed-in account.
type User struct {
	ID    string
	Email string
}

// Auth signs users in with a one-time code sent to their email address.
type Auth interface {
	RequestCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (User, error)
	SignOut(ctx context.Context) error
	CurrentUser() (User, bool)
}

// MemoryAuth is an Auth that hands its codes to Deliver instead of mailing them. Accounts are created on first
// sign in.
type MemoryAuth struct {
	Deliver func(email, code string)

	mu      sync.Mutex
	codes   map[string]string
	users   map[string]User
	current *User
}

// NewMemoryAuth returns a MemoryAuth without accounts.
func NewMemoryAuth(deliver func(email, code string)) *MemoryAuth {
	return &MemoryAuth{
		Deliver: deliver,
		codes:   map[string]string{},
		users:   map[string]User{},
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if at := strings.IndexByte(email, '@'); at <= 0 || at == len(email)-1 {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return email, nil
}

// RequestCode issues a six digit code for email, replacing any earlier one.
func (a *MemoryAuth) RequestCode(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	a.mu.Lock()
	a.codes[email] = code
	a.mu.Unlock()
	if a.Deliver != nil {
		a.Deliver(email, code)
	}
	return nil
}

// VerifyCode signs in with a code issued by RequestCode. A code can be used once.
func (a *MemoryAuth) VerifyCode(ctx context.Context, email, code string) (User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return User{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if want, ok := a.codes[email]; !ok || want != strings.TrimSpace(code) {
		return User{}, ErrInvalidCode
	}
	delete(a.codes, email)

	user, ok := a.users[email]
	if !ok {
		user = User{ID: newID(), Email: email}
		a.users[email] = user
	}
	a.current = &user
	return user, nil
}

// SignOut ends the session.
func (a *MemoryAuth) SignOut(ctx context.Context) error {
	a.mu.Lock()
	a.current = nil
	a.mu.Unlock()
	return nil
}

// CurrentUser returns the signed-in user.
func (a *MemoryAuth) CurrentUser() (User, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return User{}, false
	}
	return *a.current, true
}
