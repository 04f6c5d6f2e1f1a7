package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"sweet/internal/binding"
	"sweet/internal/syntax"
)

// WriteFile encodes the unit to path, replacing it atomically.
func WriteFile(path, source string, items []*syntax.Syntax, bm *binding.Map) (err error) {
	data, err := Encode(source, items, bm)
	if err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("snapshot write: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("snapshot write: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("snapshot write: %w", err)
	}
	return os.Rename(f.Name(), path)
}

// ReadFile decodes the snapshot at path.
func ReadFile(path string) (*Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot read: %w", err)
	}
	return Decode(data)
}
