package domain

import "time"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the client's view of "who is logged in". The zero value is the
// unauthenticated state.
type Session struct {
	User    *User
	Token   string
	Loading bool
	Err     string
}

// Authenticated holds exactly when both the user and the token are present.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Record is the shape persisted across restarts.
type Record struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Event is a tagged session transition. Reduce is total: an event it does not
// recognize leaves the state untouched.
type Event interface{ isSessionEvent() }

type AuthStarted struct{}

type AuthSucceeded struct {
	User  User
	Token string
}

type AuthFailed struct {
	Message string
}

type SessionRestored struct {
	User  User
	Token string
}

type LoggedOut struct{}

type ErrorCleared struct{}

func (AuthStarted) isSessionEvent()     {}
func (AuthSucceeded) isSessionEvent()   {}
func (AuthFailed) isSessionEvent()      {}
func (SessionRestored) isSessionEvent() {}
func (LoggedOut) isSessionEvent()       {}
func (ErrorCleared) isSessionEvent()    {}

func Reduce(state Session, event Event) Session {
	switch ev := event.(type) {
	case AuthStarted:
		return Session{Loading: true}
	case AuthSucceeded:
		user := ev.User
		return Session{User: &user, Token: ev.Token}
	case SessionRestored:
		user := ev.User
		return Session{User: &user, Token: ev.Token}
	case AuthFailed:
		return Session{Err: ev.Message}
	case LoggedOut:
		return Session{}
	case ErrorCleared:
		state.Err = ""
		return state
	default:
		return state
	}
}
