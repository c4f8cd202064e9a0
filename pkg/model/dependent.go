package model

// DependentUpdater recomputes dependent from the state of owner.
type DependentUpdater func(owner *Model, dependent any, args ...any) error

// CreateDependentObject runs update for dependent immediately and again after
// every later fill of the model, in registration order. It returns dependent
// so the call can be chained. When the first update fails nothing is
// registered.
func (m *Model) CreateDependentObject(dependent any, update DependentUpdater, args ...any) (any, error) {
	if m == nil || update == nil {
		return dependent, nil
	}
	extra := append([]any(nil), args...)
	refresh := func() error {
		return update(m, dependent, extra...)
	}
	if err := refresh(); err != nil {
		return dependent, err
	}
	m.dependents = append(m.dependents, refresh)
	return dependent, nil
}

// Dependent is the typed form of CreateDependentObject.
func Dependent[T any](m *Model, dependent T, update func(owner *Model, dependent T, args ...any) error, args ...any) (T, error) {
	if update == nil {
		return dependent, nil
	}
	_, err := m.CreateDependentObject(dependent, func(owner *Model, _ any, extra ...any) error {
		return update(owner, dependent, extra...)
	}, args...)
	return dependent, err
}
