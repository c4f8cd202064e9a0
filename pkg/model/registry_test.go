package model_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-hydrate/pkg/model"
)

func TestRegister_AttachesConfigurationByReference(t *testing.T) {
	reg := model.NewRegistry()
	typ := model.NewType("TestModel")
	cfg := model.NewConfiguration(model.Prop("items", model.Many(nil)))

	if err := reg.Register(typ, cfg); err != nil {
		t.Fatalf("register: %v", err)
	}
	if typ.Configuration() != cfg {
		t.Fatalf("expected configuration to be attached by reference")
	}
	if !typ.Registered() {
		t.Fatalf("expected type to be registered")
	}

	cfg.Set("title", model.Scalar("String"))
	m := mustModel(t, typ, nil)
	if !m.Has("title") {
		t.Fatalf("expected configuration changes after registration to be visible")
	}
}

func TestRegister_KeepsExistingConfigurationWhenNil(t *testing.T) {
	reg := model.NewRegistry()
	cfg := model.NewConfiguration(model.Prop("dummy", model.Scalar("String")))
	typ := model.NewType("TestModel", model.WithConfiguration(cfg))

	if err := reg.Register(typ, nil); err != nil {
		t.Fatalf("register: %v", err)
	}
	if typ.Configuration() != cfg {
		t.Fatalf("expected existing configuration to be kept")
	}
}

func TestRegister_UsesInstanceType(t *testing.T) {
	reg := model.NewRegistry()
	typ := model.NewType("TestModel")
	instance := typ.Instance()

	if typ.Registered() {
		t.Fatalf("type should not be registered yet")
	}
	if err := instance.FillData(nil); !errors.Is(err, model.ErrTypeNotRegistered) {
		t.Fatalf("expected ErrTypeNotRegistered, got %v", err)
	}

	if err := reg.Register(instance, nil); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !typ.Registered() {
		t.Fatalf("expected the instance type to be registered")
	}
	mustFill(t, instance, map[string]any{"a": 1})
	if got := instance.Value("a"); got != 1 {
		t.Fatalf("expected a=1, got %#v", got)
	}
}

type article struct {
	*model.Model
}

func TestRegister_UsesEmbeddedModelType(t *testing.T) {
	reg := model.NewRegistry()
	typ := model.NewType("Article")
	a := article{Model: typ.Instance()}

	if err := reg.Register(a, model.NewConfiguration(model.Prop("title", model.Scalar("String")))); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !typ.Registered() {
		t.Fatalf("expected embedded model type to be registered")
	}
}

func TestRegister_IgnoresUnusableTargets(t *testing.T) {
	reg := model.NewRegistry()
	targets := []any{
		nil,
		"not a type",
		42,
		map[string]any{},
		(*model.Type)(nil),
		(*model.Model)(nil),
	}
	for _, target := range targets {
		if err := reg.Register(target, model.NewConfiguration()); err != nil {
			t.Fatalf("register(%#v): expected no-op, got %v", target, err)
		}
	}
	if got := reg.Types(); len(got) != 0 {
		t.Fatalf("expected no registered types, got %v", got)
	}
}

func TestRegister_DetectsCircularConfiguration(t *testing.T) {
	reg := model.NewRegistry()
	a := model.NewType("A")
	b := model.NewType("B")
	a.SetConfiguration(model.NewConfiguration(model.Prop("b", model.One(b))))
	b.SetConfiguration(model.NewConfiguration(model.Prop("a", model.One(a))))

	err := reg.Register(a, nil)
	if !errors.Is(err, model.ErrCircularConfiguration) {
		t.Fatalf("expected circular configuration error, got %v", err)
	}

	var circular *model.CircularConfigurationError
	if !errors.As(err, &circular) {
		t.Fatalf("expected *CircularConfigurationError, got %T", err)
	}
	if circular.Type != "A" {
		t.Fatalf("expected offending type A, got %q", circular.Type)
	}
	if diff := cmp.Diff([]string{"A", "B", "A"}, circular.Path); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(err.Error(), "model: detected circular configuration reference for A") {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if a.Registered() {
		t.Fatalf("a type with a circular configuration must not be registered")
	}
	if _, err := a.NewModel(nil); !errors.Is(err, model.ErrTypeNotRegistered) {
		t.Fatalf("expected instances of the rejected type to fail, got %v", err)
	}
}

func TestRegister_CircularConfigurationCases(t *testing.T) {
	tests := []struct {
		name  string
		setup func() *model.Type
		cycle bool
	}{
		{
			name: "self reference",
			setup: func() *model.Type {
				node := model.NewType("Node")
				node.SetConfiguration(model.NewConfiguration(model.Prop("next", model.One(node))))
				return node
			},
			cycle: true,
		},
		{
			name: "through many",
			setup: func() *model.Type {
				tree := model.NewType("Tree")
				leaf := model.NewType("Leaf")
				tree.SetConfiguration(model.NewConfiguration(model.Prop("leaves", model.Many(leaf))))
				leaf.SetConfiguration(model.NewConfiguration(model.Prop("tree", model.One(tree))))
				return tree
			},
			cycle: true,
		},
		{
			name: "cycle below the root",
			setup: func() *model.Type {
				root := model.NewType("Root")
				b := model.NewType("B")
				c := model.NewType("C")
				root.SetConfiguration(model.NewConfiguration(model.Prop("b", model.One(b))))
				b.SetConfiguration(model.NewConfiguration(model.Prop("c", model.One(c))))
				c.SetConfiguration(model.NewConfiguration(model.Prop("b", model.Many(b))))
				return root
			},
			cycle: true,
		},
		{
			name: "diamond is not a cycle",
			setup: func() *model.Type {
				root := model.NewType("Root")
				left := model.NewType("Left")
				right := model.NewType("Right")
				shared := model.NewType("Shared", model.WithConfiguration(model.NewConfiguration()))
				root.SetConfiguration(model.NewConfiguration(
					model.Prop("left", model.One(left)),
					model.Prop("right", model.One(right)),
				))
				left.SetConfiguration(model.NewConfiguration(model.Prop("shared", model.One(shared))))
				right.SetConfiguration(model.NewConfiguration(model.Prop("shared", model.Many(shared))))
				return root
			},
		},
		{
			name: "unconfigured targets are not walked",
			setup: func() *model.Type {
				root := model.NewType("Root")
				plain := model.Func("Plain", func(data any) any { return data })
				root.SetConfiguration(model.NewConfiguration(
					model.Prop("plain", model.One(plain)),
					model.Prop("plains", model.Many(plain)),
				))
				return root
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := model.NewRegistry().Register(tt.setup(), nil)
			if tt.cycle && !errors.Is(err, model.ErrCircularConfiguration) {
				t.Fatalf("expected circular configuration error, got %v", err)
			}
			if !tt.cycle && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestRegister_RejectedConfigurationLeavesTypeUnchanged(t *testing.T) {
	reg := model.NewRegistry()
	cfg := model.NewConfiguration(model.Prop("name", model.Scalar("String")))
	typ := model.NewType("A")
	if err := reg.Register(typ, cfg); err != nil {
		t.Fatalf("register: %v", err)
	}
	first := mustModel(t, typ, nil)

	cyclic := model.NewConfiguration(model.Prop("self", model.One(typ)))
	err := reg.Register(typ, cyclic)
	var circular *model.CircularConfigurationError
	if !errors.As(err, &circular) {
		t.Fatalf("expected CircularConfigurationError, got %v", err)
	}
	if typ.Configuration() != cfg {
		t.Fatalf("expected previous configuration to be restored")
	}
	if !typ.Registered() {
		t.Fatalf("expected type to stay registered")
	}

	second := mustModel(t, typ, nil)
	if diff := cmp.Diff([]string{"name"}, second.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if first.ObjectID() != model.DefaultIDPrefix+"1" || second.ObjectID() != model.DefaultIDPrefix+"2" {
		t.Fatalf("expected id counter to continue, got %q and %q", first.ObjectID(), second.ObjectID())
	}
}

func TestType_ValidateWithoutRegistering(t *testing.T) {
	a := model.NewType("A")
	b := model.NewType("B", model.WithConfiguration(model.NewConfiguration(model.Prop("a", model.One(a)))))
	a.SetConfiguration(model.NewConfiguration(model.Prop("b", model.Many(b))))

	err := a.Validate()
	if !errors.Is(err, model.ErrCircularConfiguration) {
		t.Fatalf("expected circular configuration, got %v", err)
	}
	if a.Registered() || b.Registered() {
		t.Fatalf("validate must not register types")
	}

	b.SetConfiguration(model.NewConfiguration())
	if err := a.Validate(); err != nil {
		t.Fatalf("expected acyclic graph after breaking the cycle, got %v", err)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	fx := newFixture(t)

	got, ok := fx.registry.Lookup("Enhanced")
	if !ok || got != fx.enhanced {
		t.Fatalf("expected Enhanced to be registered")
	}
	if _, ok := fx.registry.Lookup("Simple"); ok {
		t.Fatalf("Simple is never registered")
	}
	if diff := cmp.Diff([]string{"AnotherEnhanced", "Enhanced"}, fx.registry.Types()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_LogsRegistration(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	reg := model.NewRegistry(model.WithLogger(logger))

	if err := reg.Register(model.NewType("Logged"), nil); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !strings.Contains(buf.String(), `"type":"Logged"`) || !strings.Contains(buf.String(), "registered type") {
		t.Fatalf("expected registration log entry, got %q", buf.String())
	}

	self := model.NewType("Self")
	self.SetConfiguration(model.NewConfiguration(model.Prop("self", model.One(self))))
	_ = reg.Register(self, nil)
	if !strings.Contains(buf.String(), "rejected circular configuration") {
		t.Fatalf("expected circular configuration log entry, got %q", buf.String())
	}
}

func TestPackageRegister_UsesDefaultRegistry(t *testing.T) {
	typ := model.NewType("DefaultRegistryProbe")
	model.MustRegister(typ, nil)

	got, ok := model.DefaultRegistry.Lookup("DefaultRegistryProbe")
	if !ok || got != typ {
		t.Fatalf("expected type in DefaultRegistry")
	}
}
