// Package models provides the wire types exchanged with the Verto API.
//
// This file defines the authenticated user profile and the auth request and
// response payloads.
package models

// UserProfile is the authenticated identity as returned by the server.
type UserProfile struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	DisplayName *string `json:"displayName"`
	AvatarURL   *string `json:"avatarUrl"`
	JobTitle    *string `json:"jobTitle"`
	Location    *string `json:"location"`
	Bio         *string `json:"bio"`
	PhoneNumber *string `json:"phoneNumber"`
}

// AuthResponse is returned by login, signup and invite acceptance.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// SignupPayload is the body for account creation.
type SignupPayload struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateProfilePayload carries the profile fields a user may change. Nil
// fields are omitted and left untouched server-side.
type UpdateProfilePayload struct {
	DisplayName *string `json:"displayName,omitempty"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
	JobTitle    *string `json:"jobTitle,omitempty"`
	Location    *string `json:"location,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

// UpdatePasswordPayload is the body for a password change.
type UpdatePasswordPayload struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
