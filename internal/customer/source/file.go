package source

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// File reads offers from a JSON document on disk.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Name() string { return "file" }

func (f *File) Path() string { return f.path }

func (f *File) Load(ctx context.Context) ([]decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	prices, err := ParseOffers(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	return prices, nil
}
