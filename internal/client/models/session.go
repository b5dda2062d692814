package models

import (
	"fmt"
	"strings"

	"github.com/TusharG27x/codebuddy/internal/common"
)

// Session is the signed-in user as returned by the login and register
// endpoints. The credential itself travels as a cookie and is not part of it.
type Session struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Bio    string `json:"bio,omitempty"`
}

// Validate reports whether s can become the current session.
func (s Session) Validate() error {
	if strings.TrimSpace(s.UserID) == "" {
		return fmt.Errorf("%w: missing userId", common.ErrInvalidSession)
	}
	if strings.TrimSpace(s.Email) == "" {
		return fmt.Errorf("%w: missing email", common.ErrInvalidSession)
	}
	return nil
}

// WithProfile returns a copy of s carrying p. The user id is kept.
func (s Session) WithProfile(p Profile) Session {
	s.Name = p.Name
	s.Email = p.Email
	s.Bio = p.Bio
	return s
}

// Profile is the editable part of a user record.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Bio   string `json:"bio"`
}
