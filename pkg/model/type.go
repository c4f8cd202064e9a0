package model

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultIDPrefix prefixes generated object ids when a type sets no prefix.
const DefaultIDPrefix = "object"

// Constructor builds an instance from raw data.
type Constructor func(data any) (any, error)

// BeforeFillHook receives the instance under construction and the data
// returned by the previous hook (the raw input for the first hook). Its return
// value replaces the data.
type BeforeFillHook func(m *Model, data any) (any, error)

// AfterFillHook runs after the instance has been populated.
type AfterFillHook func(m *Model) error

// TypeOption customises a Type at construction.
type TypeOption func(*Type)

// WithConfiguration sets the data configuration.
func WithConfiguration(cfg *Configuration) TypeOption {
	return func(t *Type) {
		t.config = cfg
	}
}

// WithBeforeFill appends before-fill hooks.
func WithBeforeFill(hooks ...BeforeFillHook) TypeOption {
	return func(t *Type) {
		t.OnBeforeFill(hooks...)
	}
}

// WithAfterFill appends after-fill hooks.
func WithAfterFill(hooks ...AfterFillHook) TypeOption {
	return func(t *Type) {
		t.OnAfterFill(hooks...)
	}
}

// WithIDPrefix overrides DefaultIDPrefix for instances of the type.
func WithIDPrefix(prefix string) TypeOption {
	return func(t *Type) {
		t.SetIDPrefix(prefix)
	}
}

// WithConstructor replaces the default constructor (a new *Model filled with
// the data).
func WithConstructor(fn Constructor) TypeOption {
	return func(t *Type) {
		t.construct = fn
	}
}

// WithUUIDObjectIDs makes generated object ids use a random UUID instead of
// the per-type counter.
func WithUUIDObjectIDs() TypeOption {
	return func(t *Type) {
		t.uuidIDs = true
	}
}

// Type is a model type descriptor. Types are identified by pointer; the name
// is used for registry lookups, ids and diagnostics.
type Type struct {
	name      string
	config    *Configuration
	before    []BeforeFillHook
	after     []AfterFillHook
	idPrefix  *string
	construct Constructor
	uuidIDs   bool

	ids        *atomic.Int64
	registry   *Registry
	registered bool
}

// NewType constructs a type descriptor. It must be registered before its
// instances can be filled.
func NewType(name string, options ...TypeOption) *Type {
	t := &Type{name: name, ids: new(atomic.Int64)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	return t
}

// Func wraps a plain constructor. Instances built by fn only support the
// hydration contract if they implement Hydratable themselves.
func Func(name string, fn func(data any) any) *Type {
	return NewType(name, WithConstructor(func(data any) (any, error) {
		return fn(data), nil
	}))
}

// Name returns the type name.
func (t *Type) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Configuration returns the data configuration, nil when none is attached.
func (t *Type) Configuration() *Configuration {
	if t == nil {
		return nil
	}
	return t.config
}

// SetConfiguration attaches cfg without validating it. Use Registry.Register
// to attach and validate in one step.
func (t *Type) SetConfiguration(cfg *Configuration) {
	if t == nil {
		return
	}
	t.config = cfg
}

// Configured reports whether a configuration is attached.
func (t *Type) Configured() bool {
	return t != nil && t.config != nil
}

// Registered reports whether the type went through Register.
func (t *Type) Registered() bool {
	return t != nil && t.registered
}

// OnBeforeFill appends before-fill hooks. Nil hooks are skipped at fill time.
func (t *Type) OnBeforeFill(hooks ...BeforeFillHook) *Type {
	if t != nil {
		t.before = append(t.before, hooks...)
	}
	return t
}

// OnAfterFill appends after-fill hooks. Nil hooks are skipped at fill time.
func (t *Type) OnAfterFill(hooks ...AfterFillHook) *Type {
	if t != nil {
		t.after = append(t.after, hooks...)
	}
	return t
}

// SetIDPrefix overrides the object id prefix.
func (t *Type) SetIDPrefix(prefix string) *Type {
	if t != nil {
		t.idPrefix = &prefix
	}
	return t
}

// IDPrefix returns the effective object id prefix.
func (t *Type) IDPrefix() string {
	if t == nil || t.idPrefix == nil {
		return DefaultIDPrefix
	}
	return *t.idPrefix
}

// New constructs an instance from data using the type constructor.
func (t *Type) New(data any) (any, error) {
	if t.construct != nil {
		return t.construct(data)
	}
	return t.NewModel(data)
}

// NewModel returns a new *Model filled with data. The model is returned even
// when filling fails so callers can inspect the partial state.
func (t *Type) NewModel(data any) (*Model, error) {
	m := t.Instance()
	if err := m.FillData(data); err != nil {
		return m, err
	}
	return m, nil
}

// Instance returns an empty, unfilled model of this type.
func (t *Type) Instance() *Model {
	return &Model{typ: t, props: make(map[string]any)}
}

func (t *Type) nextObjectID() string {
	prefix := t.IDPrefix()
	if t.uuidIDs {
		return prefix + uuid.NewString()
	}
	return prefix + strconv.FormatInt(t.ids.Add(1), 10)
}

func (t *Type) now() time.Time {
	if t.registry != nil && t.registry.now != nil {
		return t.registry.now()
	}
	return time.Now()
}

func (t *Type) logger() *zerolog.Logger {
	if t.registry != nil {
		return &t.registry.logger
	}
	nop := zerolog.Nop()
	return &nop
}
