package schema

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// LoadFS walks fsys, parses every JSON/YAML document and defines all types as
// a single batch, so documents may reference each other. A nil fsys is a
// no-op.
func (c *Catalog) LoadFS(fsys fs.FS) error {
	if fsys == nil {
		return nil
	}

	var defs []Definition
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}
		parsed, err := ParseBytes(data, path)
		if err != nil {
			return err
		}
		defs = append(defs, parsed...)
		return nil
	})
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		return nil
	}
	return c.Define(defs...)
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
