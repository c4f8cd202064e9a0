package model

// List is the sequence value produced by Many rules. It is always handled by
// pointer so that refills can truncate and append in place while callers keep
// holding the same list.
type List struct {
	items []any
}

// NewList returns a list holding a copy of items.
func NewList(items ...any) *List {
	return &List{items: append([]any(nil), items...)}
}

// Len returns the number of elements.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the element at index i, or nil when out of range.
func (l *List) At(i int) any {
	if l == nil || i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Set replaces the element at index i. Out of range indexes are ignored.
func (l *List) Set(i int, value any) {
	if l == nil || i < 0 || i >= len(l.items) {
		return
	}
	l.items[i] = value
}

// Append adds values to the end of the list.
func (l *List) Append(values ...any) {
	if l == nil {
		return
	}
	l.items = append(l.items, values...)
}

// Truncate empties the list in place.
func (l *List) Truncate() {
	if l == nil {
		return
	}
	clear(l.items)
	l.items = l.items[:0]
}

// Items returns a copy of the elements.
func (l *List) Items() []any {
	if l == nil {
		return nil
	}
	return append([]any(nil), l.items...)
}

// Each calls fn for every element until fn returns false.
func (l *List) Each(fn func(i int, value any) bool) {
	if l == nil || fn == nil {
		return
	}
	for i, value := range l.items {
		if !fn(i, value) {
			return
		}
	}
}
