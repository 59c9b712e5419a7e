package view

import (
	"github.com/hcmut-tutoring/tutorhub/internal/models"
	"github.com/hcmut-tutoring/tutorhub/internal/session"
)

// fakeIdentity stands in for the session manager in view tests.
type fakeIdentity struct {
	ready bool
	ident session.Identity
}

func (f *fakeIdentity) Ready() bool                { return f.ready }
func (f *fakeIdentity) Snapshot() session.Identity { return f.ident }

func loggedIn(userID string, role models.Role) *fakeIdentity {
	return &fakeIdentity{ready: true, ident: session.Identity{
		Token:  "tok-test",
		UserID: userID,
		Role:   role,
	}}
}

func notHydrated() *fakeIdentity {
	return &fakeIdentity{ready: false}
}

func anonymous() *fakeIdentity {
	return &fakeIdentity{ready: true}
}
