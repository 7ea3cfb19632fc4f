package domain

import (
	"errors"
	"strings"
)

// UserID is the identity provider's subject for a user. It is opaque to this
// service: only emptiness and length are validated.
type UserID struct {
	value string
}

const maxUserIDLength = 128

var ErrInvalidUserID = errors.New("invalid user ID: must be 1-128 characters without surrounding spaces")

func UserIDFromString(s string) (UserID, error) {
	if s == "" || len(s) > maxUserIDLength || strings.TrimSpace(s) != s {
		return UserID{}, ErrInvalidUserID
	}

	return UserID{value: s}, nil
}

func (u UserID) String() string {
	return u.value
}

func (u UserID) IsZero() bool {
	return u.value == ""
}

func (u UserID) Equals(other UserID) bool {
	return u.value == other.value
}
