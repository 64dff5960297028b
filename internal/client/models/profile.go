package models

import (
	"slices"
	"strings"
)

// Role is a tag on a user profile governing permitted actions.
type Role string

const (
	RoleUser          Role = "USER"
	RoleVolunteer     Role = "VOLUNTEER"
	RoleHelpRequester Role = "HELPREQUESTER"
	RoleManager       Role = "MANAGER"
)

// Profile fields whose absence blocks help and volunteer submissions.
const (
	FieldName  = "name"
	FieldPhone = "phone"
	FieldArea  = "area"
	FieldBio   = "bio"
)

// UserProfile is a read-through snapshot of the signed-in user.
type UserProfile struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Roles          []Role `json:"roles"`
	Phone          string `json:"phone"`
	Area           string `json:"area"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// HasRole reports whether r is in the role set.
func (p *UserProfile) HasRole(r Role) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.Roles, r)
}

// HasAllRoles reports whether every role in rs is present.
func (p *UserProfile) HasAllRoles(rs ...Role) bool {
	for _, r := range rs {
		if !p.HasRole(r) {
			return false
		}
	}
	return true
}

// MissingFields lists the required fields that are blank, in the fixed
// order name, phone, area, bio.
func (p *UserProfile) MissingFields() []string {
	if p == nil {
		return []string{FieldName, FieldPhone, FieldArea, FieldBio}
	}
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{FieldName, p.Name},
		{FieldPhone, p.Phone},
		{FieldArea, p.Area},
		{FieldBio, p.Bio},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// IsComplete is true when no required field is missing.
func (p *UserProfile) IsComplete() bool {
	return len(p.MissingFields()) == 0
}

// CanRequestHelp is the client-side guard: volunteers cannot also ask for help.
func (p *UserProfile) CanRequestHelp() bool {
	return p != nil && !p.HasRole(RoleVolunteer)
}

// CanVolunteer is the client-side guard: help-requesters cannot also volunteer.
func (p *UserProfile) CanVolunteer() bool {
	return p != nil && !p.HasRole(RoleHelpRequester)
}
