package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/refocus-cli/internal/domain"
	"github.com/bnema/refocus-cli/internal/logfields"
	"github.com/bnema/refocus-cli/internal/metrics"
	"github.com/bnema/refocus-cli/internal/ports"
)

// BlockingService is the blocking session state machine. When a store is
// configured it is the source of truth: every query re-reads the persisted
// state, and every transition is written through before the call returns.
//
// Expiry is lazy. Queries that find an expired session perform the forced
// stop themselves, so IsActive, RemainingTime and BlockUntil may write to
// the store.
//
// Enforcement hook failures are logged and counted but never undo or block
// the transition that triggered them.
type BlockingService struct {
	store    ports.SessionStore
	clock    ports.Clock
	enforcer ports.Enforcer
	recorder metrics.Recorder
	logger   *slog.Logger

	mu     sync.Mutex
	active bool
	until  time.Time
	strict bool
	sites  []string
}

type BlockingOption func(*BlockingService)

func WithEnforcer(enforcer ports.Enforcer) BlockingOption {
	return func(s *BlockingService) {
		if enforcer != nil {
			s.enforcer = enforcer
		}
	}
}

func WithRecorder(recorder metrics.Recorder) BlockingOption {
	return func(s *BlockingService) {
		if recorder != nil {
			s.recorder = recorder
		}
	}
}

func WithLogger(logger *slog.Logger) BlockingOption {
	return func(s *BlockingService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// BlockingStatus is a point-in-time view of the session for presentation.
type BlockingStatus struct {
	Active    bool
	Until     time.Time
	Remaining time.Duration
	Strict    bool
	Sites     []string
}

// NewBlockingService builds the session and reconciles it with the store. A
// persisted active session with a missing, unreadable or past expiry is
// force-stopped here so the service never starts in an inconsistent state.
// store may be nil, in which case the session lives in memory only.
func NewBlockingService(ctx context.Context, store ports.SessionStore, clock ports.Clock, opts ...BlockingOption) (*BlockingService, error) {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	s := &BlockingService{
		store:    store,
		clock:    clock,
		enforcer: ports.NoopEnforcer{},
		recorder: metrics.NoopRecorder{},
		logger:   slog.New(slog.DiscardHandler),
		strict:   true,
	}
	for _, opt := range opts {
		opt(s)
	}

	if store == nil {
		return s, nil
	}

	state, err := store.GetSessionState(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session state: %w", err)
	}
	if !state.Active {
		return s, nil
	}

	if state.ExpiredAt(s.clock.Now()) {
		s.logger.Info("persisted session expired or unreadable, stopping", logfields.Until(state.Until))
		if err := s.forceStop(ctx, metrics.TransitionHealed); err != nil {
			return nil, err
		}
		return s, nil
	}

	if err := s.adopt(ctx, state); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins a session of the given length over sites. With a store, the
// sites are merged into the persisted blocked list together with the session
// state in a single write, and the session covers the whole merged list so a
// restarted process sees the same set.
func (s *BlockingService) Start(ctx context.Context, duration time.Duration, sites []string, strict bool) error {
	if duration <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidDuration, duration)
	}

	normalized := domain.NormalizeSites(sites)
	if len(normalized) == 0 {
		return domain.ErrNoSites
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, active, err := s.activeStateLocked(ctx)
	if err != nil {
		return err
	}
	if active {
		return domain.ErrSessionActive
	}

	until := s.clock.Now().Add(duration)

	if s.store != nil {
		merged, err := s.store.BeginSession(ctx, normalized, domain.SessionState{Active: true, Until: until, Strict: strict})
		if err != nil {
			return fmt.Errorf("save session state: %w", err)
		}
		normalized = domain.NormalizeSites(merged)
	}

	s.active = true
	s.until = until
	s.strict = strict
	s.sites = normalized

	s.logger.Info("blocking started",
		logfields.Duration(duration),
		logfields.Until(until),
		logfields.Strict(strict),
		logfields.Sites(normalized),
	)
	s.recorder.IncTransition(metrics.TransitionStart)
	s.recorder.SetSession(true, duration)

	if err := s.enforcer.Enforce(ctx, normalized); err != nil {
		s.logger.Warn("enforce hook failed", logfields.Error(err))
		s.recorder.IncHookFailure("enforce")
	}

	return nil
}

// Stop ends the session. Without force, a strict session that has not reached
// its expiry is left running and Stop reports false.
func (s *BlockingService) Stop(ctx context.Context, force bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !force {
		state, err := s.currentStateLocked(ctx)
		if err != nil {
			return false, err
		}
		if state.Active && state.Strict && !state.Until.IsZero() && s.clock.Now().Before(state.Until) {
			s.logger.Warn("stop denied by strict mode", logfields.Until(state.Until))
			s.recorder.IncTransition(metrics.TransitionDenied)
			return false, nil
		}
	}

	if err := s.forceStop(ctx, metrics.TransitionStop); err != nil {
		return false, err
	}

	return true, nil
}

func (s *BlockingService) IsActive(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, active, err := s.activeStateLocked(ctx)
	return active, err
}

// RemainingTime is zero when no session is active and never negative.
func (s *BlockingService) RemainingTime(ctx context.Context) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, active, err := s.activeStateLocked(ctx)
	if err != nil || !active {
		return 0, err
	}

	return state.Remaining(s.clock.Now()), nil
}

func (s *BlockingService) BlockUntil(ctx context.Context) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, active, err := s.activeStateLocked(ctx)
	if err != nil || !active {
		return time.Time{}, false, err
	}

	return state.Until, true, nil
}

// Sites returns the sites of the current session, empty when inactive.
func (s *BlockingService) Sites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sites := make([]string, len(s.sites))
	copy(sites, s.sites)
	return sites
}

func (s *BlockingService) Status(ctx context.Context) (BlockingStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, active, err := s.activeStateLocked(ctx)
	if err != nil {
		return BlockingStatus{}, err
	}
	if !active {
		return BlockingStatus{Strict: true, Sites: []string{}}, nil
	}

	sites := make([]string, len(s.sites))
	copy(sites, s.sites)

	return BlockingStatus{
		Active:    true,
		Until:     state.Until,
		Remaining: state.Remaining(s.clock.Now()),
		Strict:    state.Strict,
		Sites:     sites,
	}, nil
}

// activeStateLocked answers "is a block in effect right now", re-reading the
// store when there is one and performing the forced stop on expiry.
func (s *BlockingService) activeStateLocked(ctx context.Context) (domain.SessionState, bool, error) {
	state, err := s.currentStateLocked(ctx)
	if err != nil {
		return domain.SessionState{}, false, err
	}

	if !state.Active {
		if s.active {
			// Stopped elsewhere; nothing left to lift here.
			s.clearLocked()
		}
		s.recorder.SetSession(false, 0)
		return state, false, nil
	}

	now := s.clock.Now()
	if state.ExpiredAt(now) {
		s.logger.Info("blocking session expired", logfields.Until(state.Until))
		if err := s.forceStop(ctx, metrics.TransitionExpired); err != nil {
			return domain.SessionState{}, false, err
		}
		return domain.InactiveSessionState(), false, nil
	}

	if !s.active || !s.until.Equal(state.Until) {
		if err := s.adopt(ctx, state); err != nil {
			return domain.SessionState{}, false, err
		}
	}
	s.recorder.SetSession(true, state.Remaining(now))

	return state, true, nil
}

func (s *BlockingService) currentStateLocked(ctx context.Context) (domain.SessionState, error) {
	if s.store == nil {
		return domain.SessionState{Active: s.active, Until: s.until, Strict: s.strict}, nil
	}

	state, err := s.store.GetSessionState(ctx)
	if err != nil {
		return domain.SessionState{}, fmt.Errorf("load session state: %w", err)
	}
	return state, nil
}

// adopt takes over a persisted active session, caching its sites.
func (s *BlockingService) adopt(ctx context.Context, state domain.SessionState) error {
	sites, err := s.store.GetBlockedSites(ctx)
	if err != nil {
		return fmt.Errorf("load blocked sites: %w", err)
	}

	s.active = true
	s.until = state.Until
	s.strict = state.Strict
	s.sites = domain.NormalizeSites(sites)
	return nil
}

func (s *BlockingService) forceStop(ctx context.Context, transition metrics.Transition) error {
	if s.store != nil {
		if err := s.store.UpdateSessionState(ctx, domain.InactiveSessionState()); err != nil {
			return fmt.Errorf("save session state: %w", err)
		}
	}

	s.clearLocked()

	s.logger.Info("blocking stopped", logfields.Transition(string(transition)))
	s.recorder.IncTransition(transition)
	s.recorder.SetSession(false, 0)

	if err := s.enforcer.Lift(ctx); err != nil {
		s.logger.Warn("lift hook failed", logfields.Error(err))
		s.recorder.IncHookFailure("lift")
	}

	return nil
}

func (s *BlockingService) clearLocked() {
	s.active = false
	s.until = time.Time{}
	s.strict = true
	s.sites = nil
}
