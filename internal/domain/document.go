package domain

import "time"

const (
	DefaultUsername   = "User"
	DefaultEmail      = "user@example.com"
	DefaultProfilePic = "default.png"
)

type UserProfile struct {
	Username   string
	Email      string
	Phone      string
	ProfilePic string
}

// UserUpdate carries a partial profile change. Empty Username and Email are
// skipped; Phone is applied whenever it is non-nil, so it can be cleared.
type UserUpdate struct {
	Username string
	Email    string
	Phone    *string
}

func (u UserProfile) Apply(update UserUpdate) UserProfile {
	if update.Username != "" {
		u.Username = update.Username
	}
	if update.Email != "" {
		u.Email = update.Email
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	return u
}

// SessionState is the persisted part of a blocking session. A zero Until
// means no expiry is recorded.
type SessionState struct {
	Active bool
	Until  time.Time
	Strict bool
}

// InactiveSessionState is what every stop writes back.
func InactiveSessionState() SessionState {
	return SessionState{Active: false, Strict: true}
}

// ExpiredAt reports whether an active state has no usable expiry or has
// reached it.
func (s SessionState) ExpiredAt(now time.Time) bool {
	if s.Until.IsZero() {
		return true
	}
	return !now.Before(s.Until)
}

func (s SessionState) Remaining(now time.Time) time.Duration {
	if s.Until.IsZero() {
		return 0
	}
	remaining := s.Until.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

type Document struct {
	User         UserProfile
	BlockedSites []string
	Settings     SessionState
}

func DefaultUserProfile() UserProfile {
	return UserProfile{
		Username:   DefaultUsername,
		Email:      DefaultEmail,
		ProfilePic: DefaultProfilePic,
	}
}

func DefaultDocument() Document {
	return Document{
		User:         DefaultUserProfile(),
		BlockedSites: []string{},
		Settings:     InactiveSessionState(),
	}
}
