// Package domain contains the core data types for the Hoppin client.
// This package has zero external dependencies and is imported by every other
// internal package (api, session, trips, wizard, app).
package domain

// User is the authenticated identity returned by the backend on login or
// registration. A session is either fully anonymous (no User at all) or fully
// authenticated — a User always carries a non-empty bearer token.
type User struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	IsAdmin         bool   `json:"isAdmin"`
	WhatsappConsent bool   `json:"whatsappConsent"`
	Token           string `json:"token,omitempty"`
}

// FullName returns the display name shown in the navigation bar and
// denormalized onto trips at creation time.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Registration carries the fields the backend requires to create an account.
// The field names match the wire format expected by POST /auth/register/.
type Registration struct {
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Password        string `json:"password"`
	WhatsappConsent bool   `json:"whatsappConsent"`
}
