package application

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/bnema/refocus-cli/internal/domain"
	"github.com/bnema/refocus-cli/internal/metrics"
	"github.com/stretchr/testify/mock"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type inMemorySessionStore struct {
	state       domain.SessionState
	sites       []string
	stateWrites int
	failReads   error
	failWrites  error
}

func newInMemorySessionStore() *inMemorySessionStore {
	return &inMemorySessionStore{state: domain.InactiveSessionState(), sites: []string{}}
}

func (r *inMemorySessionStore) GetSessionState(_ context.Context) (domain.SessionState, error) {
	if r.failReads != nil {
		return domain.SessionState{}, r.failReads
	}
	return r.state, nil
}

func (r *inMemorySessionStore) UpdateSessionState(_ context.Context, state domain.SessionState) error {
	if r.failWrites != nil {
		return r.failWrites
	}
	r.state = state
	r.stateWrites++
	return nil
}

func (r *inMemorySessionStore) GetBlockedSites(_ context.Context) ([]string, error) {
	if r.failReads != nil {
		return nil, r.failReads
	}
	result := make([]string, len(r.sites))
	copy(result, r.sites)
	return result, nil
}

func (r *inMemorySessionStore) AddSite(_ context.Context, url string) error {
	if r.failWrites != nil {
		return r.failWrites
	}
	if url == "" || slices.Contains(r.sites, url) {
		return nil
	}
	r.sites = append(r.sites, url)
	return nil
}

func (r *inMemorySessionStore) BeginSession(_ context.Context, sites []string, state domain.SessionState) ([]string, error) {
	if r.failWrites != nil {
		return nil, r.failWrites
	}
	for _, site := range sites {
		if !slices.Contains(r.sites, site) {
			r.sites = append(r.sites, site)
		}
	}
	r.state = state
	r.stateWrites++
	return slices.Clone(r.sites), nil
}

func (r *inMemorySessionStore) RemoveSite(_ context.Context, url string) error {
	for i, site := range r.sites {
		if site == url {
			r.sites = append(r.sites[:i], r.sites[i+1:]...)
			return nil
		}
	}
	return nil
}

type recordingEnforcer struct {
	enforced [][]string
	lifts    int
}

func (e *recordingEnforcer) Enforce(_ context.Context, sites []string) error {
	e.enforced = append(e.enforced, sites)
	return nil
}

func (e *recordingEnforcer) Lift(_ context.Context) error {
	e.lifts++
	return nil
}

type recordingRecorder struct {
	metrics.NoopRecorder
	transitions  map[metrics.Transition]int
	hookFailures map[string]int
	blockedSites int
}

func newRecordingRecorder() *recordingRecorder {
	return &recordingRecorder{
		transitions:  map[metrics.Transition]int{},
		hookFailures: map[string]int{},
	}
}

func (r *recordingRecorder) IncTransition(t metrics.Transition) {
	r.transitions[t]++
}

func (r *recordingRecorder) IncHookFailure(hook string) {
	r.hookFailures[hook]++
}

func (r *recordingRecorder) SetBlockedSites(n int) {
	r.blockedSites = n
}

var errDiskFull = errors.New("disk full")

type mockEnforcer struct {
	mock.Mock
}

func (m *mockEnforcer) Enforce(ctx context.Context, sites []string) error {
	args := m.Called(ctx, sites)
	return args.Error(0)
}

func (m *mockEnforcer) Lift(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
