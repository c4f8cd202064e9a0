package model

// Construct builds a fresh property value from data according to rule.
//
// Passthrough and Scalar rules return data unchanged. One rules construct a
// new instance of the target type. Many rules return a *List (see buildList).
func Construct(rule Rule, data any) (any, error) {
	switch rule.kind {
	case RuleOne:
		return rule.target.New(data)
	case RuleMany:
		return buildList(rule.target, data)
	default:
		return data, nil
	}
}

// Refresh updates current with data, keeping its identity where possible.
//
// current is reset first. A Hydratable current value is then filled in place;
// a *List under a Many rule is refilled in place with the newly built
// elements. Any other value is discarded and replaced by Construct(rule, data).
func Refresh(rule Rule, current any, data any) (any, error) {
	list, isList := current.(*List)
	refill := isList && list != nil && rule.kind == RuleMany

	var items []any
	if refill {
		built, err := buildList(rule.target, data)
		if err != nil {
			return current, err
		}
		// data may be the current list itself; copy before truncating.
		items = built.Items()
	}

	if err := resetInPlace(current); err != nil {
		return current, err
	}

	if hydratable, ok := current.(Hydratable); ok && !isNilPointer(current) {
		if err := hydratable.FillData(data); err != nil {
			return current, err
		}
		return current, nil
	}
	if refill {
		list.Append(items...)
		return list, nil
	}
	return Construct(rule, data)
}

// ResetValue empties value in place when it is Resettable or a *List and
// returns it. Any other value is replaced by Construct(rule, nil).
func ResetValue(value any, rule Rule) (any, error) {
	if resettable(value) {
		if err := resetInPlace(value); err != nil {
			return value, err
		}
		return value, nil
	}
	return Construct(rule, nil)
}

func resettable(value any) bool {
	switch v := value.(type) {
	case *List:
		return v != nil
	case Resettable:
		return !isNilPointer(value)
	default:
		return false
	}
}

func resetInPlace(value any) error {
	if !resettable(value) {
		return nil
	}
	switch v := value.(type) {
	case *List:
		v.Truncate()
	case Resettable:
		return v.EmptyData()
	}
	return nil
}

// buildList applies the Many element policy:
//   - a sequence with a target type maps every element through target.New
//   - a sequence without a target is kept as-is; a *List is returned itself,
//     other sequences are copied into a new *List so raw input is never
//     mutated by later refills
//   - a truthy non-sequence value is treated as a one-element sequence
//   - anything else yields an empty list
func buildList(target *Type, data any) (*List, error) {
	items, isSeq := sequenceItems(data)
	if !isSeq {
		if !truthy(data) {
			return NewList(), nil
		}
		return buildList(target, []any{data})
	}

	if target == nil {
		if list, ok := data.(*List); ok {
			return list, nil
		}
		return NewList(items...), nil
	}

	out := &List{items: make([]any, 0, len(items))}
	for _, item := range items {
		value, err := target.New(item)
		if err != nil {
			return out, err
		}
		out.items = append(out.items, value)
	}
	return out, nil
}
