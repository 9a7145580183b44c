package commands

import (
	"errors"
	"strings"

	"github.com/goliatone/go-sales-dashboard/components/salesdash"
)

// ErrSessionRequired is returned when a command carries no session id.
var ErrSessionRequired = errors.New("commands: session id required")

// SessionResolver finds the live session a command targets.
// *salesdash.SessionManager satisfies it.
type SessionResolver interface {
	Get(id string) (*salesdash.Session, error)
}

// SessionInput targets a session without further arguments.
type SessionInput struct {
	SessionID string `json:"session_id"`
}

func resolve(sessions SessionResolver, id string) (*salesdash.Session, error) {
	if sessions == nil {
		return nil, errors.New("commands: session resolver is required")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrSessionRequired
	}
	return sessions.Get(id)
}
