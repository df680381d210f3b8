package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"SameKart/internal/kv"
)

// The admin console authenticates against this single mock credential pair.
// This is a stand-in for a real identity system, not a security model.
const (
	adminEmail = "admin@samekart.com"
	adminPass  = "admin123"
	adminName  = "Admin"
	adminRole  = "admin"

	tokenKey = "adminToken"
	userKey  = "adminUser"

	sessionTTL = 24 * time.Hour
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Store gates access to the admin console. A session survives restarts
// through the kv state: construction restores it synchronously, so Loading
// reports false by the time the store is usable.
type Store struct {
	mu      sync.RWMutex
	loading bool
	authed  bool
	user    User

	hash       []byte
	jwt        *TokenMaker
	state      kv.Store
	loginDelay time.Duration
	log        *zap.Logger
}

func NewStore(state kv.Store, jwt *TokenMaker, loginDelay time.Duration, log *zap.Logger) (*Store, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s := &Store{
		loading:    true,
		hash:       hash,
		jwt:        jwt,
		state:      state,
		loginDelay: loginDelay,
		log:        log,
	}
	s.restore()
	return s, nil
}

// restore re-establishes a persisted session iff both the token and the user
// record are present. A broken state entry just means logged out.
func (s *Store) restore() {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	var token string
	okToken, err := s.state.Get(tokenKey, &token)
	if err != nil {
		s.warn("restore session token", err)
		return
	}

	var u User
	okUser, err := s.state.Get(userKey, &u)
	if err != nil {
		s.warn("restore session user", err)
		return
	}

	if !okToken || !okUser || token == "" {
		return
	}

	s.mu.Lock()
	s.authed = true
	s.user = u
	s.mu.Unlock()
}

// Login checks the credential pair and establishes a session. The delay
// stands in for upstream latency; cancelling ctx aborts the wait without
// touching session state.
func (s *Store) Login(ctx context.Context, email, password string) (Session, error) {
	if s.loginDelay > 0 {
		t := time.NewTimer(s.loginDelay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return Session{}, ctx.Err()
		}
	}

	// Strict equality: padded or case-shifted input is a different credential.
	if email != adminEmail {
		return Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	u := User{Email: email, Name: adminName, Role: adminRole}

	token, err := s.jwt.New(u, sessionTTL)
	if err != nil {
		return Session{}, err
	}

	if err := s.state.Set(tokenKey, token); err != nil {
		return Session{}, err
	}
	if err := s.state.Set(userKey, u); err != nil {
		return Session{}, err
	}

	s.mu.Lock()
	s.authed = true
	s.user = u
	s.mu.Unlock()

	return Session{Token: token, User: u}, nil
}

// Logout clears the persisted session and the in-memory flag. Logging out
// while logged out is a no-op.
func (s *Store) Logout() error {
	if err := s.state.Delete(tokenKey); err != nil {
		return err
	}
	if err := s.state.Delete(userKey); err != nil {
		return err
	}

	s.mu.Lock()
	s.authed = false
	s.user = User{}
	s.mu.Unlock()
	return nil
}

func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authed
}

func (s *Store) CurrentUser() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.authed
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) warn(msg string, err error) {
	if s.log != nil {
		s.log.Warn(msg, zap.Error(err))
	}
}
