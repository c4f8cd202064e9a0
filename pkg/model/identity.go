package model

// GenerateUniqueObjectID assigns an object id unless the model already has
// one. Ids are the type prefix followed by the next value of the type counter
// (starting at 1), or a random UUID for types built with WithUUIDObjectIDs.
func (m *Model) GenerateUniqueObjectID() {
	if m == nil || m.typ == nil || m.objectID != "" {
		return
	}
	m.objectID = m.typ.nextObjectID()
}

// ClearObjectID drops the object id so the next GenerateUniqueObjectID call
// assigns a new one.
func (m *Model) ClearObjectID() {
	if m != nil {
		m.objectID = ""
	}
}

// UpdateFillFlag stamps the last-update time with the registry clock.
func (m *Model) UpdateFillFlag() {
	if m == nil || m.typ == nil {
		return
	}
	m.lastUpdate = m.typ.now()
}
