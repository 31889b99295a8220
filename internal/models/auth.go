package models

// AuthContext is the resolved caller of a request.
type AuthContext struct {
	Publisher *Publisher
	// ViaToken is true when the caller presented a token instead of a password.
	ViaToken bool
}

// PublisherID returns the id of a persisted caller, or nil for a synthetic identity.
func (a *AuthContext) PublisherID() *uint {
	if a == nil || a.Publisher == nil || a.Publisher.ID == 0 {
		return nil
	}
	id := a.Publisher.ID
	return &id
}

// IsFullAdmin reports whether the caller may create publishers.
func (a *AuthContext) IsFullAdmin() bool {
	return a != nil && a.Publisher != nil && a.Publisher.FullAdmin
}
