package domain

import (
	"fmt"
	"time"
)

type User struct {
	id        UserID
	timezone  *time.Location
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a user. An empty timezone means the service default applies.
func NewUser(id UserID, timezone string) (*User, error) {
	loc, err := LoadTimezone(timezone)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	return &User{
		id:        id,
		timezone:  loc,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstituteUser(id UserID, timezone *time.Location, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		timezone:  timezone,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// LoadTimezone resolves an IANA zone name. It returns nil for an empty name.
func LoadTimezone(name string) (*time.Location, error) {
	if name == "" {
		return nil, nil //nolint:nilnil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, name)
	}

	return loc, nil
}

func (u *User) ChangeTimezone(name string) error {
	loc, err := LoadTimezone(name)
	if err != nil {
		return err
	}

	u.timezone = loc
	u.updatedAt = time.Now()

	return nil
}

func (u *User) ID() UserID {
	return u.id
}

// Location returns the user's timezone, or fallback when none is set.
func (u *User) Location(fallback *time.Location) *time.Location {
	if u == nil || u.timezone == nil {
		return fallback
	}

	return u.timezone
}

func (u *User) TimezoneName() string {
	if u.timezone == nil {
		return ""
	}

	return u.timezone.String()
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}
