package session

import (
	"github.com/pkg/errors"
)

// Store keys for the persisted credentials.
const (
	KeyUserID = "userId"
	KeyToken  = "token"
	KeyEmail  = "userEmail"
)

var ErrNotAuthenticated = errors.New("not authenticated")

type (
	// Session is an immutable snapshot of the current learner identity.
	// It is passed by value to whoever needs it; mutations go through
	// the Controller.
	Session struct {
		UserID        string
		Email         string
		Authenticated bool
	}

	// Data carries the credentials set on sign-in.
	Data struct {
		UserID string
		Token  string
		Email  string
	}

	// Store persists the three credential entries independently.
	Store interface {
		Get(key string) (string, bool)
		Set(key, value string) error
		Delete(key string) error
	}

	// Controller owns the session state for the lifetime of the process.
	// All reads are synchronous; no network calls happen here.
	Controller struct {
		store   Store
		current Session
		token   string
	}
)

// NewController loads any persisted credentials from the store.
// The session only counts as authenticated when all three entries are present.
func NewController(store Store) *Controller {
	c := &Controller{store: store}

	uid, okID := store.Get(KeyUserID)
	token, okTok := store.Get(KeyToken)
	email, okEmail := store.Get(KeyEmail)
	if okID && okTok && okEmail {
		c.current = Session{UserID: uid, Email: email, Authenticated: true}
		c.token = token
	}
	return c
}

// Current returns the current session snapshot.
func (c *Controller) Current() Session {
	return c.current
}

// Token returns the persisted auth token, if any.
func (c *Controller) Token() (string, error) {
	if !c.current.Authenticated {
		return "", ErrNotAuthenticated
	}
	return c.token, nil
}

// SignIn sets and persists the credentials.
func (c *Controller) SignIn(data Data) error {
	if err := c.store.Set(KeyUserID, data.UserID); err != nil {
		return errors.Wrap(err, "persisting user id")
	}
	if err := c.store.Set(KeyToken, data.Token); err != nil {
		return errors.Wrap(err, "persisting token")
	}
	if err := c.store.Set(KeyEmail, data.Email); err != nil {
		return errors.Wrap(err, "persisting email")
	}
	c.current = Session{UserID: data.UserID, Email: data.Email, Authenticated: true}
	c.token = data.Token
	return nil
}

// SignOut clears both the in-memory state and all persisted entries.
func (c *Controller) SignOut() error {
	for _, key := range []string{KeyUserID, KeyToken, KeyEmail} {
		if err := c.store.Delete(key); err != nil {
			return errors.Wrapf(err, "clearing %s", key)
		}
	}
	c.current = Session{}
	c.token = ""
	return nil
}
