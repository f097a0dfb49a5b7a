package ports

import "context"

// Enforcer applies and removes the actual blocking on the host. Platform
// adapters implement it with hosts-file edits, firewall rules or DNS
// redirection.
type Enforcer interface {
	Enforce(ctx context.Context, sites []string) error
	Lift(ctx context.Context) error
}

type NoopEnforcer struct{}

func (NoopEnforcer) Enforce(context.Context, []string) error { return nil }
func (NoopEnforcer) Lift(context.Context) error { return nil }
