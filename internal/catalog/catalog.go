// Package catalog reads the product list kept next to the ledger.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"butchers-ledger/internal/storage"
)

type product struct {
	Name         string `json:"name"`
	Category     string `json:"category,omitempty"`
	QuantityType string `json:"quantityType"`
}

// File is a JSON product catalog. The file is read on every call so edits
// made by the admin side show up on the next aggregation pass.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

// Products returns the catalog. A missing file is an empty catalog.
func (c *File) Products(ctx context.Context) ([]storage.ProductRef, error) {
	const op = "catalog.File.Products"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var items []product
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%s: decode %s: %w", op, c.path, err)
	}

	refs := make([]storage.ProductRef, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		refs = append(refs, storage.ProductRef{Name: name, UnitKind: ParseUnitKind(it.QuantityType)})
	}

	return refs, nil
}

// ParseUnitKind maps the catalog's free-text quantity type onto a UnitKind.
func ParseUnitKind(s string) storage.UnitKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kg", "weight", "waga", "by_weight":
		return storage.UnitByWeight
	case "szt", "szt.", "sztuki", "pcs", "count", "by_count":
		return storage.UnitByCount
	default:
		return storage.UnitUnknown
	}
}

// Static is a fixed catalog, handy when the product list comes from config.
type Static []storage.ProductRef

func (s Static) Products(context.Context) ([]storage.ProductRef, error) {
	return s, nil
}
