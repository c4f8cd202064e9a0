package hooks

import "github.com/goliatone/go-hydrate/pkg/model"

// WrapAs turns non-map fill data into a map holding the data under key, so a
// type can be built from a bare scalar or list:
//
//	item := model.NewType("Item", model.WithBeforeFill(hooks.WrapAs("name")))
//	item.New("first") // fills {"name": "first"}
func WrapAs(key string) model.BeforeFillHook {
	return func(_ *model.Model, data any) (any, error) {
		if _, ok := data.(map[string]any); ok {
			return data, nil
		}
		return map[string]any{key: data}, nil
	}
}

// RenameKeys moves values from the old key to the new key. When both keys
// are present the renamed value wins. Non-map data passes through.
func RenameKeys(renames map[string]string) model.BeforeFillHook {
	return func(_ *model.Model, data any) (any, error) {
		in, ok := data.(map[string]any)
		if !ok || len(renames) == 0 {
			return data, nil
		}
		out := make(map[string]any, len(in))
		for key, value := range in {
			if _, renamed := renames[key]; renamed {
				continue
			}
			out[key] = value
		}
		for from, to := range renames {
			if value, ok := in[from]; ok {
				out[to] = value
			}
		}
		return out, nil
	}
}

// Defaults adds the given values for keys missing from the fill data. Keys
// present with a nil value are left alone.
func Defaults(defaults map[string]any) model.BeforeFillHook {
	return func(_ *model.Model, data any) (any, error) {
		in, ok := data.(map[string]any)
		if !ok {
			return data, nil
		}
		out := make(map[string]any, len(in)+len(defaults))
		for key, value := range defaults {
			out[key] = value
		}
		for key, value := range in {
			out[key] = value
		}
		return out, nil
	}
}

// Chain composes hooks into one, skipping nil entries.
func Chain(hooks ...model.BeforeFillHook) model.BeforeFillHook {
	return func(m *model.Model, data any) (any, error) {
		for _, hook := range hooks {
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
}
