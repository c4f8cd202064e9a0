package model_test

import (
	"testing"

	"github.com/goliatone/go-hydrate/pkg/model"
)

type simple struct {
	Data any
}

func newSimpleType() *model.Type {
	return model.Func("Simple", func(data any) any {
		return &simple{Data: data}
	})
}

type fixture struct {
	registry *model.Registry
	simple   *model.Type
	another  *model.Type
	enhanced *model.Type
}

func newFixture(t *testing.T, options ...model.RegistryOption) fixture {
	t.Helper()

	reg := model.NewRegistry(options...)
	simpleType := newSimpleType()

	another := model.NewType("AnotherEnhanced", model.WithConfiguration(model.NewConfiguration(
		model.Prop("simpleProperty", model.One(simpleType)),
		model.Prop("objProperty2", model.Passthrough()),
	)))

	enhanced := model.NewType("Enhanced", model.WithConfiguration(model.NewConfiguration(
		model.Prop("simpleProperty", model.Passthrough()),
		model.Prop("objProperty1", model.One(another)),
		model.Prop("objProperty2", model.One(simpleType)),
		model.Prop("arrayProperty1", model.Many(nil)),
		model.Prop("arrayProperty2", model.Many(simpleType)),
		model.Prop("arrayProperty3", model.Many(nil)),
		model.Prop("arrayProperty4", model.Many(simpleType)),
		model.Prop("simpleNumber", model.Scalar("Number")),
		model.Prop("simpleBoolean", model.Scalar("Boolean")),
		model.Prop("simpleString", model.Scalar("String")),
	)))

	for _, typ := range []*model.Type{another, enhanced} {
		if err := reg.Register(typ, nil); err != nil {
			t.Fatalf("register %s: %v", typ.Name(), err)
		}
	}

	return fixture{registry: reg, simple: simpleType, another: another, enhanced: enhanced}
}

func testData() map[string]any {
	return map[string]any{
		"simpleProperty": "simpleProperty",
		"objProperty1": map[string]any{
			"simpleProperty": "innerSimpleProperty",
			"objProperty2":   "innerObjProperty2",
		},
		"objProperty2":   "objProperty2",
		"arrayProperty1": []any{"arrayProperty1.1", "arrayProperty1.2"},
		"arrayProperty2": []any{"arrayProperty2.1", "arrayProperty2.2"},
		"arrayProperty3": "arrayProperty3",
		"arrayProperty4": "arrayProperty4",
		"arrayProperty5": []any{1, 2, 3, 4, 5},
		"listProperty": map[string]any{
			"c1": "item1",
			"c2": "item2",
		},
		"simpleNumber":  1,
		"simpleBoolean": true,
		"simpleString":  "abc",
	}
}

func mustModel(t *testing.T, typ *model.Type, data any) *model.Model {
	t.Helper()

	m, err := typ.NewModel(data)
	if err != nil {
		t.Fatalf("new %s: %v", typ.Name(), err)
	}
	return m
}

func mustFill(t *testing.T, m *model.Model, data any) {
	t.Helper()

	if err := m.FillData(data); err != nil {
		t.Fatalf("fill: %v", err)
	}
}

func nestedModel(t *testing.T, m *model.Model, key string) *model.Model {
	t.Helper()

	nested, ok := m.Model(key)
	if !ok {
		t.Fatalf("expected %s to hold a model, got %T", key, m.Value(key))
	}
	return nested
}

func listAt(t *testing.T, m *model.Model, key string) *model.List {
	t.Helper()

	list, ok := m.List(key)
	if !ok {
		t.Fatalf("expected %s to hold a list, got %T", key, m.Value(key))
	}
	return list
}

func simpleAt(t *testing.T, value any) *simple {
	t.Helper()

	s, ok := value.(*simple)
	if !ok {
		t.Fatalf("expected *simple, got %T", value)
	}
	return s
}
