package model

import (
	"sort"
	"time"
)

// Hydratable values are refilled in place, keeping their identity.
type Hydratable interface {
	FillData(data any) error
}

// Resettable values can be emptied in place, keeping their identity.
type Resettable interface {
	EmptyData() error
}

// Callback is notified after every fill of the instance it was attached to.
type Callback func(m *Model) error

type callbackEntry struct {
	fn Callback
}

// Model is a hydrated instance of a registered Type. Its own properties are
// the configured properties plus, in dynamic mode, every key that appeared in
// fill input. Property order follows first assignment.
type Model struct {
	typ        *Type
	keys       []string
	props      map[string]any
	objectID   string
	lastUpdate time.Time
	callbacks  []*callbackEntry
	dependents []func() error
}

var (
	_ Hydratable = (*Model)(nil)
	_ Resettable = (*Model)(nil)
)

// Type returns the model type.
func (m *Model) Type() *Type {
	if m == nil {
		return nil
	}
	return m.typ
}

// Has reports whether key is an own property, even when its value is nil.
func (m *Model) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.props[key]
	return ok
}

// Get returns the value of an own property.
func (m *Model) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	value, ok := m.props[key]
	return value, ok
}

// Value returns the value of key, nil when absent.
func (m *Model) Value(key string) any {
	value, _ := m.Get(key)
	return value
}

// Model returns the nested model stored under key.
func (m *Model) Model(key string) (*Model, bool) {
	nested, ok := m.Value(key).(*Model)
	return nested, ok && nested != nil
}

// List returns the list stored under key.
func (m *Model) List(key string) (*List, bool) {
	list, ok := m.Value(key).(*List)
	return list, ok && list != nil
}

// Set assigns an own property.
func (m *Model) Set(key string, value any) {
	if m == nil {
		return
	}
	if m.props == nil {
		m.props = make(map[string]any)
	}
	if _, exists := m.props[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.props[key] = value
}

// Delete removes an own property.
func (m *Model) Delete(key string) {
	if m == nil {
		return
	}
	if _, exists := m.props[key]; !exists {
		return
	}
	delete(m.props, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns own property names in assignment order.
func (m *Model) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Len returns the number of own properties.
func (m *Model) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// ObjectID returns the generated object id, empty until the first fill or an
// explicit GenerateUniqueObjectID call.
func (m *Model) ObjectID() string {
	if m == nil {
		return ""
	}
	return m.objectID
}

// LastDataUpdate returns the time of the last fill or UpdateFillFlag call.
func (m *Model) LastDataUpdate() time.Time {
	if m == nil {
		return time.Time{}
	}
	return m.lastUpdate
}

func sortedKeys(data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
