package model

// AfterFill registers cb to run after every fill of the model, in
// registration order. The returned function removes this registration; calling
// it again is a no-op.
func (m *Model) AfterFill(cb Callback) (deregister func()) {
	if m == nil || cb == nil {
		return func() {}
	}
	entry := &callbackEntry{fn: cb}
	m.callbacks = append(m.callbacks, entry)

	return func() {
		for i, existing := range m.callbacks {
			if existing == entry {
				m.callbacks = append(m.callbacks[:i], m.callbacks[i+1:]...)
				return
			}
		}
	}
}
