package document

import (
	"time"

	"github.com/bnema/refocus-cli/internal/domain"
)

type fileSchema struct {
	User         *userSchema     `json:"user" toml:"user"`
	BlockedSites []string        `json:"blocked_sites" toml:"blocked_sites"`
	Settings     *settingsSchema `json:"settings" toml:"settings"`
}

type userSchema struct {
	Username   string `json:"username" toml:"username"`
	Email      string `json:"email" toml:"email"`
	Phone      string `json:"phone" toml:"phone"`
	ProfilePic string `json:"profile_pic" toml:"profile_pic"`
}

type settingsSchema struct {
	BlockingActive bool    `json:"blocking_active" toml:"blocking_active"`
	BlockUntil     *string `json:"block_until" toml:"block_until,omitempty"`
	StrictMode     *bool   `json:"strict_mode" toml:"strict_mode"`
}

// applyDefaults migrates documents written by older builds: missing
// sections take their defaults and a missing strict_mode becomes true.
// Present fields are left alone.
func (s *fileSchema) applyDefaults() {
	defaults := domain.DefaultDocument()

	if s.User == nil {
		user := toUserSchema(defaults.User)
		s.User = &user
	}
	if s.BlockedSites == nil {
		s.BlockedSites = []string{}
	}
	if s.Settings == nil {
		settings := toSettingsSchema(defaults.Settings)
		s.Settings = &settings
	}
	if s.Settings.StrictMode == nil {
		strict := true
		s.Settings.StrictMode = &strict
	}
}

func defaultSchema() fileSchema {
	return toSchema(domain.DefaultDocument())
}

func toSchema(doc domain.Document) fileSchema {
	user := toUserSchema(doc.User)
	settings := toSettingsSchema(doc.Settings)

	sites := make([]string, len(doc.BlockedSites))
	copy(sites, doc.BlockedSites)

	return fileSchema{
		User:         &user,
		BlockedSites: sites,
		Settings:     &settings,
	}
}

func fromSchema(file fileSchema) domain.Document {
	file.applyDefaults()

	sites := make([]string, len(file.BlockedSites))
	copy(sites, file.BlockedSites)

	return domain.Document{
		User: domain.UserProfile{
			Username:   file.User.Username,
			Email:      file.User.Email,
			Phone:      file.User.Phone,
			ProfilePic: file.User.ProfilePic,
		},
		BlockedSites: sites,
		Settings: domain.SessionState{
			Active: file.Settings.BlockingActive,
			Until:  parseUntil(file.Settings.BlockUntil),
			Strict: *file.Settings.StrictMode,
		},
	}
}

func toUserSchema(user domain.UserProfile) userSchema {
	return userSchema{
		Username:   user.Username,
		Email:      user.Email,
		Phone:      user.Phone,
		ProfilePic: user.ProfilePic,
	}
}

func toSettingsSchema(state domain.SessionState) settingsSchema {
	strict := state.Strict
	return settingsSchema{
		BlockingActive: state.Active,
		BlockUntil:     formatUntil(state.Until),
		StrictMode:     &strict,
	}
}

// Offset-less ISO-8601 as written by earlier builds; read in local time.
const localISOLayout = "2006-01-02T15:04:05"

func parseUntil(raw *string) time.Time {
	if raw == nil || *raw == "" {
		return time.Time{}
	}

	if parsed, err := time.Parse(time.RFC3339Nano, *raw); err == nil {
		return parsed
	}
	if parsed, err := time.ParseInLocation(localISOLayout, *raw, time.Local); err == nil {
		return parsed
	}

	return time.Time{}
}

func formatUntil(value time.Time) *string {
	if value.IsZero() {
		return nil
	}

	formatted := value.Local().Format(time.RFC3339Nano)
	return &formatted
}
