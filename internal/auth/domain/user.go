package domain

import "time"

// User is the authoritative account record consulted when refreshing
// tokens. Rows are written on token exchange from verified IdP claims and
// read back on refresh so a new pair always reflects live account state.
type User struct {
	ID        string
	Email     string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot converts the record into the response-embedded form.
func (u User) Snapshot() UserSnapshot {
	role := u.Role
	if role == "" {
		role = RoleAuthenticated
	}
	return UserSnapshot{ID: u.ID, Email: u.Email, Role: role}
}
