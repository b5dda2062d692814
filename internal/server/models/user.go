package models

import "time"

type User struct {
	ID        string
	Name      string
	Email     string
	Bio       string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}

// Profile is the public part of a user as served by the API.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Bio   string `json:"bio"`
}

func (u *User) Profile() Profile {
	return Profile{Name: u.Name, Email: u.Email, Bio: u.Bio}
}

// SessionUser is the login and register response body.
type SessionUser struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Bio    string `json:"bio,omitempty"`
}

func (u *User) SessionUser() SessionUser {
	return SessionUser{UserID: u.ID, Name: u.Name, Email: u.Email, Bio: u.Bio}
}
