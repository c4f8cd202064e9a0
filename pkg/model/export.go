package model

// Exporter lets application types control how they appear in exported trees.
type Exporter interface {
	Export() any
}

// Export converts an instance graph back into plain maps, slices and
// scalars. Models become map[string]any, lists become []any.
func Export(value any) any {
	switch v := value.(type) {
	case *Model:
		if v == nil {
			return nil
		}
		return v.ToMap()
	case *List:
		if v == nil {
			return nil
		}
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = Export(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Export(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = Export(item)
		}
		return out
	case Exporter:
		if isNilPointer(value) {
			return nil
		}
		return v.Export()
	default:
		return value
	}
}

// ToMap exports the own properties of the model.
func (m *Model) ToMap() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m.keys))
	for _, key := range m.keys {
		out[key] = Export(m.props[key])
	}
	return out
}
