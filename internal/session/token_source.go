package session

import (
	"errors"

	"golang.org/x/oauth2"
)

// ErrNoToken is returned by the token source while the session is anonymous.
var ErrNoToken = errors.New("no session token")

// TokenSource exposes the current session token as an oauth2.TokenSource so
// transports can attach it with Token.SetAuthHeader.
func (s *Store) TokenSource() oauth2.TokenSource {
	return storeTokenSource{store: s}
}

type storeTokenSource struct {
	store *Store
}

func (t storeTokenSource) Token() (*oauth2.Token, error) {
	sess := t.store.Session()
	if sess.Token == "" {
		return nil, ErrNoToken
	}
	return &oauth2.Token{
		AccessToken: sess.Token,
		TokenType:   "Bearer",
		Expiry:      sess.ExpiresAt,
	}, nil
}
