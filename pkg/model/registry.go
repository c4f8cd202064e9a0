package model

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// RegistryOption customises a Registry.
type RegistryOption func(*Registry)

// WithLogger routes registration and fill diagnostics to logger.
func WithLogger(logger zerolog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithClock overrides the clock used for last-update timestamps.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// Registry validates and registers types, and keeps them addressable by name.
type Registry struct {
	mu     sync.RWMutex
	types  map[string]*Type
	logger zerolog.Logger
	now    func() time.Time
}

// DefaultRegistry backs the package level Register function.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry(options ...RegistryOption) *Registry {
	r := &Registry{
		types:  make(map[string]*Type),
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Register registers target with DefaultRegistry.
func Register(target any, cfg *Configuration) error {
	return DefaultRegistry.Register(target, cfg)
}

// MustRegister panics when Register fails. Useful for init-time wiring, where
// a circular configuration is a programming error.
func MustRegister(target any, cfg *Configuration) {
	if err := Register(target, cfg); err != nil {
		panic(err)
	}
}

// Register attaches cfg (when non-nil) to the type of target, validates the
// resulting configuration graph and enables hydration for the type. A
// rejected configuration leaves the type as it was.
//
// target may be a *Type or an instance exposing its type (a *Model or any
// value with a Type() *Type method). Any other value is ignored without error.
//
// Every call starts a fresh object id counter for the type, so ids are scoped
// per type and per registration.
func (r *Registry) Register(target any, cfg *Configuration) error {
	t := typeOf(target)
	if t == nil {
		return nil
	}
	previous := t.config
	if cfg != nil {
		t.config = cfg
	}
	if t.config == nil {
		t.config = NewConfiguration()
	}

	if err := validateConfiguration(t); err != nil {
		t.config = previous
		r.logger.Debug().Err(err).Str("type", t.name).Msg("rejected circular configuration")
		return err
	}

	t.registry = r
	t.registered = true
	t.ids = new(atomic.Int64)

	if t.name != "" {
		r.mu.Lock()
		if existing, ok := r.types[t.name]; ok && existing != t {
			r.logger.Warn().Str("type", t.name).Msg("replacing registered type with the same name")
		}
		r.types[t.name] = t
		r.mu.Unlock()
	}

	r.logger.Debug().
		Str("type", t.name).
		Int("properties", t.config.Len()).
		Bool("dynamic", t.config.Dynamic()).
		Msg("registered type")
	return nil
}

// Lookup returns a registered type by name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[name]
	return t, ok
}

// Types returns the sorted names of registered types.
func (r *Registry) Types() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type typed interface {
	Type() *Type
}

func typeOf(target any) *Type {
	switch v := target.(type) {
	case nil:
		return nil
	case *Type:
		return v
	case typed:
		if isNilPointer(v) {
			return nil
		}
		return v.Type()
	default:
		return nil
	}
}
