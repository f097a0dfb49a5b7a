package ports

import (
	"context"

	"github.com/bnema/refocus-cli/internal/domain"
)

type ProfileRepository interface {
	GetUser(ctx context.Context) (domain.UserProfile, error)
	UpdateUser(ctx context.Context, update domain.UserUpdate) error
}

type SiteRepository interface {
	GetBlockedSites(ctx context.Context) ([]string, error)
	AddSite(ctx context.Context, url string) error
	RemoveSite(ctx context.Context, url string) error
}

type SessionStateRepository interface {
	GetSessionState(ctx context.Context) (domain.SessionState, error)
	UpdateSessionState(ctx context.Context, state domain.SessionState) error
}

// SessionStore is what the blocking session needs from persistence.
// BeginSession merges sites into the blocked list and writes state in one
// update, returning the merged list.
type SessionStore interface {
	SessionStateRepository
	GetBlockedSites(ctx context.Context) ([]string, error)
	BeginSession(ctx context.Context, sites []string, state domain.SessionState) ([]string, error)
}

type DocumentStore interface {
	ProfileRepository
	SiteRepository
	SessionStateRepository
	Load(ctx context.Context) (domain.Document, error)
	Save(ctx context.Context, doc domain.Document) error
}
