package auth

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

// creates the cookie store holding anonymous client ids
func NewSessionStore(opts Options) (*sessions.CookieStore, error) {
	if opts.Secret == "" {
		return nil, fmt.Errorf("session secret must be set")
	}

	store := sessions.NewCookieStore([]byte(opts.Secret))

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return store, nil
}

// reports whether id is a well-formed client id
func ValidClientID(id string) bool {
	if id == "" {
		return false
	}

	_, err := uuid.Parse(id)
	return err == nil
}

// returns a fresh client id
func NewClientID() string {
	return uuid.NewString()
}
