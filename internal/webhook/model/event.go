// Package model provides identity provider webhook payloads.
package model

import (
	"github.com/festy23/pitmstr/internal/identity"
	userModel "github.com/festy23/pitmstr/internal/user/model"
)

// Handled event types.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// Event is a verified webhook delivery.
type Event struct {
	Type string   `json:"type"`
	Data UserData `json:"data"`
}

// UserData is the user object carried by user.* events.
// Deleted users carry only the id.
type UserData struct {
	ID             string                  `json:"id"`
	EmailAddresses []identity.EmailAddress `json:"email_addresses"`
	FirstName      *string                 `json:"first_name"`
	LastName       *string                 `json:"last_name"`
}

// Profile converts the payload into the mirrored profile.
func (d UserData) Profile() userModel.Profile {
	p := userModel.Profile{ClerkID: d.ID}
	if len(d.EmailAddresses) > 0 {
		p.Email = d.EmailAddresses[0].EmailAddress
	}
	if d.FirstName != nil {
		p.FirstName = *d.FirstName
	}
	if d.LastName != nil {
		p.LastName = *d.LastName
	}
	return p
}
