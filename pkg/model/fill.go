package model

import "fmt"

// FillData hydrates the model from data.
//
// Pipeline:
//  1. assign an object id when the model has none
//  2. pipe non-nil data through the type's before-fill hooks; non-map
//     results are treated as an empty map
//  3. reset configured properties that are absent from the data
//  4. populate properties from the data (every key in dynamic mode, only
//     configured keys otherwise), refreshing values the model already owns
//  5. construct defaults for configured properties that are still unset
//  6. run after-fill hooks, dependent object updaters and callbacks
//  7. stamp the last-update time
//
// The first error aborts the remaining steps and is returned.
func (m *Model) FillData(data any) error {
	if m == nil || m.typ == nil {
		return fmt.Errorf("%w: nil model", ErrTypeNotRegistered)
	}
	t := m.typ
	if !t.registered {
		return notRegistered(t)
	}

	m.GenerateUniqueObjectID()

	if data != nil {
		filtered, err := m.runBeforeFill(data)
		if err != nil {
			return err
		}
		data = filtered
	}
	input := asMap(data)
	cfg := t.config

	if err := m.emptyExcept(input); err != nil {
		return err
	}

	for _, key := range m.candidateKeys(cfg, input) {
		if err := m.fillProperty(cfg, key, input[key]); err != nil {
			return err
		}
	}

	for _, key := range cfg.Keys() {
		if m.Has(key) {
			continue
		}
		rule, _ := cfg.Get(key)
		value, err := Construct(rule, nil)
		if err != nil {
			return fmt.Errorf("model: default %s.%s: %w", t.name, key, err)
		}
		m.Set(key, value)
	}

	for _, hook := range t.after {
		if hook == nil {
			continue
		}
		if err := hook(m); err != nil {
			return err
		}
	}
	for _, refresh := range append([]func() error(nil), m.dependents...) {
		if err := refresh(); err != nil {
			return err
		}
	}
	for _, entry := range append([]*callbackEntry(nil), m.callbacks...) {
		if err := entry.fn(m); err != nil {
			return err
		}
	}

	m.UpdateFillFlag()

	t.logger().Debug().
		Str("type", t.name).
		Str("object_id", m.objectID).
		Int("input_keys", len(input)).
		Int("properties", len(m.keys)).
		Msg("filled model")
	return nil
}

func (m *Model) runBeforeFill(data any) (any, error) {
	for _, hook := range m.typ.before {
		if hook == nil {
			continue
		}
		next, err := hook(m, data)
		if err != nil {
			return nil, err
		}
		data = next
	}
	return data, nil
}

func (m *Model) candidateKeys(cfg *Configuration, input map[string]any) []string {
	if cfg.Dynamic() {
		return sortedKeys(input)
	}
	keys := make([]string, 0, cfg.Len())
	for _, key := range cfg.Keys() {
		if _, ok := input[key]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}

func (m *Model) fillProperty(cfg *Configuration, key string, raw any) error {
	rule, _ := cfg.Get(key)

	var (
		value any
		err   error
	)
	if current, owned := m.Get(key); owned {
		value, err = Refresh(rule, current, raw)
	} else {
		value, err = Construct(rule, raw)
	}
	if err != nil {
		return fmt.Errorf("model: fill %s.%s: %w", m.typ.name, key, err)
	}
	m.Set(key, value)
	return nil
}
