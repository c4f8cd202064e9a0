package model

import "fmt"

// EmptyData resets every configured own property. Resettable values and
// lists are emptied in place; other values are replaced by the rule default.
// Properties outside the configuration are left untouched.
func (m *Model) EmptyData() error {
	return m.emptyExcept(nil)
}

// EmptyDataExcept behaves like EmptyData but skips properties whose key is
// present in data. Non-map data skips nothing.
func (m *Model) EmptyDataExcept(data any) error {
	return m.emptyExcept(asMap(data))
}

func (m *Model) emptyExcept(keep map[string]any) error {
	if m == nil || m.typ == nil {
		return nil
	}
	cfg := m.typ.config
	for _, key := range m.Keys() {
		rule, configured := cfg.Get(key)
		if !configured {
			continue
		}
		if _, skip := keep[key]; skip {
			continue
		}
		value, err := ResetValue(m.props[key], rule)
		if err != nil {
			return fmt.Errorf("model: reset %s.%s: %w", m.typ.name, key, err)
		}
		m.props[key] = value
	}
	return nil
}
