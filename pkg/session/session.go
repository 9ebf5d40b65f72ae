package session

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

type Store struct {
	name  string
	store sessions.Store
}

func NewCookieStore(name string, maxAge time.Duration, secure bool, keypairs ...[]byte) *Store {
	store := sessions.NewCookieStore(keypairs...)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Store{name: name, store: store}
}

func (s *Store) Name() string {
	return s.name
}

// Get returns the cached session of this request. A cookie which cannot be
// decoded yields a new empty session together with the decoding error.
func (s *Store) Get(r *http.Request) (*sessions.Session, error) {
	return s.store.Get(r, s.name)
}

func (s *Store) Save(r *http.Request, w http.ResponseWriter, a *sessions.Session) error {
	return s.store.Save(r, w, a)
}
