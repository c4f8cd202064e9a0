package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hydrate/pkg/model"
	"github.com/goliatone/go-hydrate/pkg/source"
)

// LoadDocument reads a fixture into a source.Document using a file source.
func LoadDocument(t *testing.T, path string) source.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (source.Document, error) {
	if path == "" {
		return source.Document{}, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return source.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := source.NewDocument(source.FromFile(path), data)
	if err != nil {
		return source.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustLoadData decodes a JSON fixture into a plain data tree.
func MustLoadData(t *testing.T, path string) any {
	t.Helper()

	var out any
	if err := json.Unmarshal(MustReadGolden(t, path), &out); err != nil {
		t.Fatalf("unmarshal data %s: %v", path, err)
	}
	return out
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// AssertModelGolden exports the instance graph and compares it with the JSON
// golden at path. Both sides go through encoding/json so numbers compare as
// float64 regardless of how the data was decoded.
func AssertModelGolden(t *testing.T, path string, value any) {
	t.Helper()

	exported := model.Export(value)
	if WriteGolden(t, path, exported) {
		return
	}

	payload, err := json.Marshal(exported)
	if err != nil {
		t.Fatalf("marshal export: %v", err)
	}
	var got any
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	want := MustLoadData(t, path)
	if diff := CompareGolden(want, got); diff != "" {
		t.Fatalf("golden mismatch %s (-want +got):\n%s", path, diff)
	}
}
