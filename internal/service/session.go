package service

import (
	"errors"
	"fmt"
	"sync"

	"ieltslearn/internal/domain"
	"ieltslearn/internal/ledger"
	"ieltslearn/internal/repository"

	"go.uber.org/zap"
)

// ErrBadCredentials is returned when sign-in is rejected.
var ErrBadCredentials = errors.New("invalid credentials")

// Credential carries what a chat supplies at sign-in, plus the profile
// fields the transport already knows about the sender.
type Credential struct {
	ChatID      int64
	Password    string
	Email       string
	DisplayName string
	PhotoURL    string
}

// Authenticator is the external identity provider boundary: it turns a
// credential into an opaque account.
type Authenticator interface {
	SignIn(cred Credential) (*domain.Account, error)
}

// PasswordAuthenticator grants an account to anyone who knows the shared
// bot password. The account id is derived from the chat.
type PasswordAuthenticator struct {
	password string
}

// NewPasswordAuthenticator creates a password-based authenticator.
func NewPasswordAuthenticator(password string) *PasswordAuthenticator {
	return &PasswordAuthenticator{password: password}
}

// SignIn checks the password and mints the account for the chat.
func (a *PasswordAuthenticator) SignIn(cred Credential) (*domain.Account, error) {
	if cred.Password == "" || cred.Password != a.password {
		return nil, ErrBadCredentials
	}
	return &domain.Account{
		ID:          fmt.Sprintf("tg-%d", cred.ChatID),
		Email:       cred.Email,
		DisplayName: cred.DisplayName,
		PhotoURL:    cred.PhotoURL,
	}, nil
}

// LocalStoreFunc builds the device-local store for a chat.
type LocalStoreFunc func(chatID int64) repository.Store

// RemoteStoreFunc builds the account-scoped remote store.
type RemoteStoreFunc func(account domain.Account) (repository.Store, repository.ProfileStore)

// Session binds a chat to its active scope. Account is nil while the
// chat is anonymous (local scope).
type Session struct {
	ChatID  int64
	Account *domain.Account
	Ledger  *ledger.Ledger
}

// SignedIn reports whether the session targets the remote scope.
func (s *Session) SignedIn() bool {
	return s.Account != nil
}

// SessionManager owns the scope decision for every chat. The active
// scope is never mutated in place: sign-in and sign-out close the old
// ledger and build a fresh one, so a stale reference cannot keep writing
// into the wrong scope.
type SessionManager struct {
	auth      Authenticator
	newLocal  LocalStoreFunc
	newRemote RemoteStoreFunc
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewSessionManager creates a session manager.
func NewSessionManager(
	auth Authenticator,
	newLocal LocalStoreFunc,
	newRemote RemoteStoreFunc,
	logger *zap.Logger,
) *SessionManager {
	return &SessionManager{
		auth:      auth,
		newLocal:  newLocal,
		newRemote: newRemote,
		logger:    logger,
		sessions:  make(map[int64]*Session),
	}
}

// Session returns the chat's active session, lazily creating an
// anonymous local-scope one on first contact.
func (m *SessionManager) Session(chatID int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[chatID]; ok {
		return s, nil
	}
	return m.startLocalLocked(chatID)
}

// SignIn authenticates the credential and rebuilds the chat's session
// against the remote scope. The previous ledger is closed first, so its
// late publishes are discarded rather than leaking across the switch.
func (m *SessionManager) SignIn(cred Credential) (*Session, error) {
	account, err := m.auth.SignIn(cred)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeLocked(cred.ChatID)

	store, profiles := m.newRemote(*account)
	led := ledger.New(ledger.Config{
		Store:    store,
		Profiles: profiles,
		Account:  account,
		Logger:   m.logger,
	})
	if _, err := led.Initialize(); err != nil {
		led.Close()
		return nil, fmt.Errorf("failed to load account state: %w", err)
	}

	s := &Session{ChatID: cred.ChatID, Account: account, Ledger: led}
	m.sessions[cred.ChatID] = s

	m.logger.Info("Chat signed in",
		zap.Int64("chat_id", cred.ChatID),
		zap.String("account_id", account.ID),
	)
	return s, nil
}

// SignOut drops the remote scope and rebuilds the chat's session against
// local storage.
func (m *SessionManager) SignOut(chatID int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeLocked(chatID)
	m.logger.Info("Chat signed out", zap.Int64("chat_id", chatID))
	return m.startLocalLocked(chatID)
}

// Chats lists every chat with an active session.
func (m *SessionManager) Chats() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]int64, 0, len(m.sessions))
	for id := range m.sessions {
		out = append(out, id)
	}
	return out
}

func (m *SessionManager) startLocalLocked(chatID int64) (*Session, error) {
	led := ledger.New(ledger.Config{
		Store:  m.newLocal(chatID),
		Logger: m.logger,
	})
	if _, err := led.Initialize(); err != nil {
		led.Close()
		return nil, fmt.Errorf("failed to load local state: %w", err)
	}

	s := &Session{ChatID: chatID, Ledger: led}
	m.sessions[chatID] = s
	return s, nil
}

func (m *SessionManager) closeLocked(chatID int64) {
	if s, ok := m.sessions[chatID]; ok {
		s.Ledger.Close()
		delete(m.sessions, chatID)
	}
}
