// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package module

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SourceExt is the file extension of plugin source modules.
const SourceExt = ".lua"

// LocationKind distinguishes what a module name resolved to.
type LocationKind uint8

// Location kinds.
const (
	LocationSource LocationKind = iota + 1
	LocationNamespace
)

// String returns the kind name.
func (k LocationKind) String() string {
	switch k {
	case LocationSource:
		return "source"
	case LocationNamespace:
		return "namespace"
	default:
		return "unknown"
	}
}

// Location is where a module name resolved to.
type Location struct {
	Kind LocationKind
	// Path is the source file for LocationSource and the directory for LocationNamespace.
	Path string
}

// Resolver maps dotted module names to locations under an ordered list of roots.
type Resolver struct {
	roots []string
}

// NewResolver creates a resolver searching roots in the order given.
func NewResolver(roots ...string) *Resolver {
	return &Resolver{roots: slices.Clone(roots)}
}

// Roots returns a copy of the search roots.
func (r *Resolver) Roots() []string {
	return slices.Clone(r.roots)
}

// Resolve finds name under the first root that holds it. At each root a
// directory at the joined path wins over a source file beside it.
func (r *Resolver) Resolve(name string) (Location, error) {
	segments, ok := splitName(name)
	if !ok {
		return Location{}, ErrModuleNotFound(name, r.roots)
	}
	rel := filepath.Join(segments...)

	for _, root := range r.roots {
		base := filepath.Join(root, rel)
		if info, err := os.Stat(base); err == nil && info.IsDir() {
			return Location{Kind: LocationNamespace, Path: base}, nil
		}
		if info, err := os.Stat(base + SourceExt); err == nil && info.Mode().IsRegular() {
			return Location{Kind: LocationSource, Path: base + SourceExt}, nil
		}
	}
	return Location{}, ErrModuleNotFound(name, r.roots)
}

// splitName validates a dotted name. Empty segments and segments that could
// escape a root are rejected.
func splitName(name string) ([]string, bool) {
	if name == "" {
		return nil, false
	}
	segments := strings.Split(name, ".")
	for _, s := range segments {
		if s == "" || s == ".." || strings.ContainsAny(s, `/\`) || strings.ContainsRune(s, os.PathSeparator) {
			return nil, false
		}
	}
	return segments, true
}
