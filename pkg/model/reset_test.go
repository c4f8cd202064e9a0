package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmptyData_ResetsConfiguredProperties(t *testing.T) {
	f := newFixture(t)
	m := mustModel(t, f.enhanced, testData())
	m.Set("extra", "keep")

	inner := nestedModel(t, m, "objProperty1")
	plain := listAt(t, m, "arrayProperty1")
	typed := listAt(t, m, "arrayProperty2")
	oldSimple := simpleAt(t, m.Value("objProperty2"))

	if err := m.EmptyData(); err != nil {
		t.Fatalf("empty: %v", err)
	}

	for _, key := range []string{"simpleProperty", "simpleNumber", "simpleBoolean", "simpleString"} {
		if !m.Has(key) {
			t.Fatalf("expected %s to remain an own property", key)
		}
		if got := m.Value(key); got != nil {
			t.Fatalf("expected %s to be nil, got %#v", key, got)
		}
	}

	if got := nestedModel(t, m, "objProperty1"); got != inner {
		t.Fatalf("expected nested model identity to be kept")
	}
	if got := inner.Value("objProperty2"); got != nil {
		t.Fatalf("expected nested passthrough to be nil, got %#v", got)
	}
	if got := simpleAt(t, inner.Value("simpleProperty")); got.Data != nil {
		t.Fatalf("expected nested constructed value to be rebuilt empty, got %#v", got.Data)
	}

	if got := listAt(t, m, "arrayProperty1"); got != plain || got.Len() != 0 {
		t.Fatalf("expected arrayProperty1 to be the same emptied list, len=%d", got.Len())
	}
	if got := listAt(t, m, "arrayProperty2"); got != typed || got.Len() != 0 {
		t.Fatalf("expected arrayProperty2 to be the same emptied list, len=%d", got.Len())
	}

	newSimple := simpleAt(t, m.Value("objProperty2"))
	if newSimple == oldSimple || newSimple.Data != nil {
		t.Fatalf("expected objProperty2 to be replaced by a fresh default")
	}

	if got := m.Value("extra"); got != "keep" {
		t.Fatalf("expected unconfigured property to be untouched, got %#v", got)
	}
	if diff := cmp.Diff(map[string]any{"c1": "item1", "c2": "item2"}, m.Value("listProperty")); diff != "" {
		t.Fatalf("unconfigured dynamic property changed (-want +got):\n%s", diff)
	}
}

func TestEmptyDataExcept_SkipsKeysPresentInData(t *testing.T) {
	f := newFixture(t)
	m := mustModel(t, f.enhanced, testData())
	plain := listAt(t, m, "arrayProperty1")

	err := m.EmptyDataExcept(map[string]any{
		"simpleProperty": nil,
		"arrayProperty1": "ignored",
	})
	if err != nil {
		t.Fatalf("empty: %v", err)
	}

	if got := m.Value("simpleProperty"); got != "simpleProperty" {
		t.Fatalf("expected simpleProperty to be kept, got %#v", got)
	}
	if got := listAt(t, m, "arrayProperty1"); got != plain || got.Len() != 2 {
		t.Fatalf("expected arrayProperty1 to be kept with 2 items, got %d", got.Len())
	}
	if got := m.Value("simpleString"); got != nil {
		t.Fatalf("expected simpleString to be reset, got %#v", got)
	}
	if got := listAt(t, m, "arrayProperty2"); got.Len() != 0 {
		t.Fatalf("expected arrayProperty2 to be emptied, got %d", got.Len())
	}
}

func TestEmptyDataExcept_NonMapDataSkipsNothing(t *testing.T) {
	f := newFixture(t)
	m := mustModel(t, f.enhanced, testData())

	if err := m.EmptyDataExcept("not a map"); err != nil {
		t.Fatalf("empty: %v", err)
	}
	if got := m.Value("simpleProperty"); got != nil {
		t.Fatalf("expected simpleProperty to be reset, got %#v", got)
	}
	if got := listAt(t, m, "arrayProperty1"); got.Len() != 0 {
		t.Fatalf("expected arrayProperty1 to be emptied, got %d", got.Len())
	}
}
