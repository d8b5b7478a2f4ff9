package admin

import (
	"context"
	"sync"
)

// GateState is the authentication state of a panel load.
type GateState string

const (
	// GateUnknown means the session check has not completed yet. Callers
	// must not treat it as a rejection.
	GateUnknown         GateState = "unknown"
	GateAuthenticated   GateState = "authenticated"
	GateUnauthenticated GateState = "unauthenticated"
)

// Gate resolves the admin session check exactly once. It starts in the
// Unknown state and settles into Authenticated or Unauthenticated on the
// first Resolve call; later calls reuse the settled state.
type Gate struct {
	mu      sync.Mutex
	state   GateState
	resolve func(ctx context.Context) (bool, error)
}

// NewGate builds a gate around a session check function.
func NewGate(resolve func(ctx context.Context) (bool, error)) *Gate {
	return &Gate{state: GateUnknown, resolve: resolve}
}

// State returns the current gate state without triggering resolution.
func (g *Gate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Resolve runs the session check once and settles the gate. A check
// error leaves the gate in Unknown so the caller can retry.
func (g *Gate) Resolve(ctx context.Context) (GateState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != GateUnknown {
		return g.state, nil
	}

	ok, err := g.resolve(ctx)
	if err != nil {
		return GateUnknown, err
	}
	if ok {
		g.state = GateAuthenticated
	} else {
		g.state = GateUnauthenticated
	}
	return g.state, nil
}
