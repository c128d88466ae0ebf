package core

import "github.com/jackut-dev/jackut/internal/auth"

// SessionRegistry maps opaque tokens to logins. Tokens are never invalidated
// individually; the table is only cleared wholesale on reset/shutdown or
// pruned per-login by the account removal cascade. Sessions are not
// persisted.
type SessionRegistry struct {
	dir    *UserDirectory
	tokens map[string]string
}

func NewSessionRegistry(dir *UserDirectory) *SessionRegistry {
	return &SessionRegistry{dir: dir, tokens: make(map[string]string)}
}

// Open authenticates and mints a fresh opaque token for the login.
func (s *SessionRegistry) Open(login, password string) (string, error) {
	if _, err := s.dir.Authenticate(login, password); err != nil {
		return "", err
	}
	token := auth.NewSessionToken()
	s.tokens[token] = login
	return token, nil
}

// Resolve returns the login behind a token.
func (s *SessionRegistry) Resolve(token string) (string, error) {
	login, ok := s.tokens[token]
	if !ok {
		return "", ErrUnknownSession
	}
	return login, nil
}

func (s *SessionRegistry) Contains(token string) bool {
	_, ok := s.tokens[token]
	return ok
}

// DropUser invalidates every token held by the given login.
func (s *SessionRegistry) DropUser(login string) {
	for token, l := range s.tokens {
		if l == login {
			delete(s.tokens, token)
		}
	}
}

func (s *SessionRegistry) Clear() {
	s.tokens = make(map[string]string)
}
