package provider

import (
	"context"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/mtlang/mtl/mtlerr"
)

// APIConstraint is the engine's declared provider-compatibility
// constraint: providers must declare a 1.x APIVersion to register.
// Mirrors holomush's plugin-version gate at registration time.
const APIConstraint = "^1"

// Registry maps a namespace string to an ordered list of providers,
// exactly per spec.md §4.4: registration is process-wide and happens at
// startup (Register takes a write lock); dispatch (Resolve) takes only
// the read lock, through Providers, since the registry is read-only
// after startup and must be safe for concurrent per-file renders
// (spec.md §5).
type Registry struct {
	mu         sync.RWMutex
	byNS       map[string][]Provider
	constraint *semver.Constraints
}

// NewRegistry builds an empty registry gating provider registration to
// APIConstraint.
func NewRegistry() *Registry {
	c, err := semver.NewConstraint(APIConstraint)
	if err != nil {
		panic("provider: invalid APIConstraint: " + err.Error())
	}
	return &Registry{byNS: make(map[string][]Provider), constraint: c}
}

// Register adds p under every namespace it claims. If p implements
// Versioned, its declared version must satisfy APIConstraint or
// registration fails with a ProviderError.
func (r *Registry) Register(p Provider) error {
	if v, ok := p.(Versioned); ok {
		ver, err := semver.NewVersion(v.APIVersion())
		if err != nil {
			return mtlerr.ProviderError("", "registry", err)
		}
		if !r.constraint.Check(ver) {
			return mtlerr.ProviderError("", "registry",
				errAPIVersionMismatch{declared: v.APIVersion(), want: APIConstraint})
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ns := range p.Namespaces() {
		r.byNS[ns] = append(r.byNS[ns], p)
	}
	return nil
}

// Providers returns the ordered provider list registered for ns (nil if
// none). The returned slice must not be mutated by the caller.
func (r *Registry) Providers(ns string) []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byNS[ns]
}

type errAPIVersionMismatch struct {
	declared, want string
}

func (e errAPIVersionMismatch) Error() string {
	return "provider API version " + e.declared + " does not satisfy " + e.want
}

// Resolve dispatches one field lookup through every provider registered
// for req.Namespace, in registration order, stopping at the first that
// claims the field. It never mutates registry state and takes no lock
// beyond Providers' read lock, so it is safe for concurrent calls across
// files per spec.md §5.
func (r *Registry) Resolve(ctx context.Context, traceID string, req Request) ([]string, bool, error) {
	for _, p := range r.Providers(req.Namespace) {
		values, consumed, ok, err := p.Resolve(ctx, req)
		if err != nil {
			return nil, false, mtlerr.ProviderError(traceID, req.Namespace, err)
		}
		if ok {
			return values, consumed, nil
		}
	}
	return nil, false, mtlerr.UnknownField(traceID, req.Namespace, req.Field)
}
