// AngelaMos | 2026
// file.go

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileSlot stores the document as a single local file, overwritten whole on
// every save. Suitable for single-process development setups.
type FileSlot struct {
	path string
}

func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

func (s *FileSlot) Load(_ context.Context) ([]byte, error) {
	doc, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("load slot file %q: %w", s.path, err)
	}

	return doc, nil
}

func (s *FileSlot) Save(_ context.Context, doc []byte) error {
	if err := os.WriteFile(s.path, doc, 0o600); err != nil {
		return fmt.Errorf("save slot file %q: %w", s.path, err)
	}

	return nil
}
