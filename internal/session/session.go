// Package session resolves who is acting. The server side resolves identity
// from a signed token plus a live member lookup; the local tracker resolves
// it from the store's remembered sign-in. Both end in the same model.Viewer.
package session

import (
	"context"
	"errors"

	"teamtrack/internal/model"
)

// ErrInvalidCredentials is returned for a bad username/password pair. The
// caller gets no hint which half was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrNotSignedIn is returned when no viewer is signed in.
var ErrNotSignedIn = errors.New("not signed in")

// Resolver turns ambient state into the acting viewer.
type Resolver interface {
	Resolve(ctx context.Context) (model.Viewer, error)
}

// Credential is a fixed demo login mapped to a seeded member. The local
// tracker ships with these instead of real password hashes.
type Credential struct {
	Username string
	Password string
	Email    string
	Role     string
}

var demoCredentials = []Credential{
	{Username: "leader", Password: "5678", Email: "jeremiah.smith@weekly.com", Role: model.RoleLeader},
	{Username: "member", Password: "1234", Email: "alice.johnson@weekly.com", Role: model.RoleMember},
}

// DemoCredentials returns the fixed demo login table.
func DemoCredentials() []Credential {
	out := make([]Credential, len(demoCredentials))
	copy(out, demoCredentials)
	return out
}

// VerifyDemo checks a username/password pair against the demo table.
func VerifyDemo(username, password string) (Credential, error) {
	for _, c := range demoCredentials {
		if c.Username == username && c.Password == password {
			return c, nil
		}
	}
	return Credential{}, ErrInvalidCredentials
}
