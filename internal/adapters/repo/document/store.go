package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/bnema/refocus-cli/internal/domain"
	"github.com/bnema/refocus-cli/internal/logfields"
	"github.com/bnema/refocus-cli/internal/ports"
	"github.com/spf13/viper"
)

const (
	PathKey   = "store.path"
	FormatKey = "store.format"

	storeDirMode    = 0o700
	storeFileMode   = 0o600
	storeConfigDir  = ".refocus"
	storeConfigFile = "user_data.json"
	tempFilePattern = ".user_data-*.tmp"
)

// Store keeps the whole user document in one file. Every call re-reads the
// file so changes made by another process are observed; writes go through a
// temp file and a rename so readers never see a partial document.
type Store struct {
	path   string
	codec  codec
	mu     *sync.RWMutex
	logger *slog.Logger
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.DocumentStore = (*Store)(nil)

func NewStore(cfg *viper.Viper, logger *slog.Logger) (*Store, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	path := cfg.GetString(PathKey)
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, storeConfigDir, storeConfigFile)
	}

	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	c, err := codecFor(cfg.GetString(FormatKey), path)
	if err != nil {
		return nil, err
	}

	return &Store{
		path:   path,
		codec:  c,
		mu:     lockForPath(path),
		logger: logger.With(logfields.Path(path), logfields.Format(c.name())),
	}, nil
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the stored document. A missing file is initialised with the
// default document; an unreadable one yields the default without error and
// is replaced on the next save.
func (s *Store) Load(ctx context.Context) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, exists, err := s.readSchema()
	if err != nil {
		return domain.Document{}, err
	}
	if !exists {
		if err := s.writeSchema(file); err != nil {
			return domain.Document{}, err
		}
	}

	return fromSchema(file), nil
}

func (s *Store) Save(ctx context.Context, doc domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeSchema(toSchema(doc))
}

func (s *Store) GetUser(ctx context.Context) (domain.UserProfile, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return doc.User, nil
}

func (s *Store) UpdateUser(ctx context.Context, update domain.UserUpdate) error {
	return s.update(ctx, func(doc *domain.Document) bool {
		doc.User = doc.User.Apply(update)
		return true
	})
}

func (s *Store) GetBlockedSites(ctx context.Context) ([]string, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.BlockedSites, nil
}

func (s *Store) AddSite(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}

	return s.update(ctx, func(doc *domain.Document) bool {
		if slices.Contains(doc.BlockedSites, url) {
			return false
		}
		doc.BlockedSites = append(doc.BlockedSites, url)
		return true
	})
}

func (s *Store) RemoveSite(ctx context.Context, url string) error {
	return s.update(ctx, func(doc *domain.Document) bool {
		for i, site := range doc.BlockedSites {
			if site == url {
				doc.BlockedSites = append(doc.BlockedSites[:i], doc.BlockedSites[i+1:]...)
				return true
			}
		}
		return false
	})
}

func (s *Store) GetSessionState(ctx context.Context) (domain.SessionState, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return domain.SessionState{}, err
	}
	return doc.Settings, nil
}

func (s *Store) UpdateSessionState(ctx context.Context, state domain.SessionState) error {
	return s.update(ctx, func(doc *domain.Document) bool {
		doc.Settings = state
		return true
	})
}

func (s *Store) BeginSession(ctx context.Context, sites []string, state domain.SessionState) ([]string, error) {
	var merged []string
	err := s.update(ctx, func(doc *domain.Document) bool {
		for _, site := range domain.NormalizeSites(sites) {
			if !slices.Contains(doc.BlockedSites, site) {
				doc.BlockedSites = append(doc.BlockedSites, site)
			}
		}
		doc.Settings = state
		merged = slices.Clone(doc.BlockedSites)
		return true
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *Store) read(ctx context.Context) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, _, err := s.readSchema()
	if err != nil {
		return domain.Document{}, err
	}

	return fromSchema(file), nil
}

// update applies mutate under the write lock and persists only when mutate
// reports a change.
func (s *Store) update(ctx context.Context, mutate func(doc *domain.Document) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, _, err := s.readSchema()
	if err != nil {
		return err
	}

	doc := fromSchema(file)
	if !mutate(&doc) {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return s.writeSchema(toSchema(doc))
}

func (s *Store) readSchema() (fileSchema, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultSchema(), false, nil
		}
		return fileSchema{}, false, fmt.Errorf("read user data file: %w", err)
	}

	var file fileSchema
	if err := s.codec.unmarshal(data, &file); err != nil {
		s.logger.Warn("user data file is unreadable, using defaults", logfields.Error(err))
		return defaultSchema(), true, nil
	}
	file.applyDefaults()

	return file, true, nil
}

func (s *Store) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(s.path), storeDirMode); err != nil {
		return fmt.Errorf("create user data directory: %w", err)
	}

	data, err := s.codec.marshal(file)
	if err != nil {
		return fmt.Errorf("encode user data file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp user data file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp user data file: %w", err)
	}

	if err := tempFile.Chmod(storeFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp user data file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("sync temp user data file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp user data file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace user data file: %w", err)
	}

	cleanup = false
	s.logger.Debug("user data saved")

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve user data path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
