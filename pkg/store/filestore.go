// Package store reads and writes onboarding payload documents on disk.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/core/model"
	"github.com/lalorirorero/Formulario-Planilla-Usuarios/pkg/export"
)

// FileStore resolves relative document names against a base directory
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir ("" means the working directory)
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(name string) string {
	if filepath.IsAbs(name) || s.dir == "" {
		return name
	}
	return filepath.Join(s.dir, name)
}

// LoadPayload reads a JSON payload document
func (s *FileStore) LoadPayload(ctx context.Context, name string) (model.Payload, error) {
	if err := ctx.Err(); err != nil {
		return model.Payload{}, err
	}
	f, err := os.Open(s.path(name))
	if err != nil {
		return model.Payload{}, fmt.Errorf("failed to open payload: %w", err)
	}
	defer f.Close()
	return export.ReadJSON(f)
}

// SavePayload writes a payload in format, replacing any existing file
func (s *FileStore) SavePayload(ctx context.Context, name string, p model.Payload, format export.Format) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := s.path(name)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := export.Write(f, p, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// Open returns a reader for an input file such as a roster workbook
func (s *FileStore) Open(ctx context.Context, name string) (*os.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	return f, nil
}
