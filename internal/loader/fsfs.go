package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
)

func loadFromFS(ctx context.Context, filesystem fs.FS, name string, limit int64) ([]byte, error) {
	if filesystem == nil {
		return nil, errors.New("loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("loader: fs path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := filesystem.Open(name)
	if err != nil {
		return nil, fmt.Errorf("loader: open %s: %w", name, err)
	}
	defer file.Close()

	return readLimited(file, name, limit)
}

func readLimited(r io.Reader, name string, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", name, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("loader: %s exceeds %d bytes", name, limit)
	}
	return data, nil
}
