// Package domain holds the lead aggregate and the identifiers handed to
// visitors. It has no dependencies on storage or transport.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a prospective student keyed by phone number.
type Lead struct {
	ID        uuid.UUID
	Name      string
	Phone     string
	Email     string
	Profile   Profile
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile holds the optional interest fields collected at registration.
type Profile struct {
	Location         string
	Program          string
	PreferredCollege string
	PreferredCourse  string
}

// Submission is a validated registration form.
type Submission struct {
	Name    string
	Phone   string
	Email   string
	Profile Profile
}

// Apply overwrites every mutable attribute of the lead with the submission.
// Empty optional fields clear the stored value. ID and CreatedAt are untouched.
func (l *Lead) Apply(s Submission, now time.Time) {
	l.Name = s.Name
	l.Phone = s.Phone
	l.Email = s.Email
	l.Profile = s.Profile
	l.UpdatedAt = now
}

// NewLead builds a lead for a first-time registration.
func NewLead(id uuid.UUID, s Submission, now time.Time) Lead {
	return Lead{
		ID:        id,
		Name:      s.Name,
		Phone:     s.Phone,
		Email:     s.Email,
		Profile:   s.Profile,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
