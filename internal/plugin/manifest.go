// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package plugin

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/quillhost/quill/internal/plugin/module"
)

// ManifestFile is the file name that marks a plugin package directory.
const ManifestFile = "plugin.yaml"

// Manifest represents a plugin.yaml file.
type Manifest struct {
	Name        string `json:"name" yaml:"name" jsonschema:"minLength=1,maxLength=64,pattern=^[a-z]([a-z0-9-]*[a-z0-9])?$"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Modules lists the modules to register, relative to the package
	// directory. When empty every source file in the directory is registered.
	Modules []string `json:"modules,omitempty" yaml:"modules,omitempty"`
	// Exclude holds glob patterns for source file names to leave out when
	// Modules is empty.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// maxNameLength is the maximum allowed length for plugin names.
const maxNameLength = 64

// namePattern validates plugin names: must start with lowercase letter,
// followed by lowercase letters, digits, or hyphens.
// Cannot end with a hyphen. Single character names are allowed.
var namePattern = regexp.MustCompile(`^[a-z]([a-z0-9-]*[a-z0-9])?$`)

// modulePattern validates dotted module names listed in a manifest.
var modulePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*(\.[A-Za-z_][A-Za-z0-9_-]*)*$`)

// ParseManifest parses and validates a plugin.yaml file.
func ParseManifest(data []byte) (*Manifest, error) {
	if len(data) == 0 {
		return nil, oops.In("plugin").Code(CodeInvalidManifest).Errorf("manifest data is empty")
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, oops.In("plugin").Code(CodeInvalidManifest).Wrapf(err, "invalid YAML")
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// LoadManifest reads path, checks it against the manifest schema and parses it.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is built from search root entries
	if err != nil {
		return nil, ErrInvalidManifest(path, err)
	}
	if err := ValidateSchema(data); err != nil {
		return nil, ErrInvalidManifest(path, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, ErrInvalidManifest(path, err)
	}
	return m, nil
}

// Validate checks manifest constraints.
func (m *Manifest) Validate() error {
	invalid := oops.In("plugin").Code(CodeInvalidManifest).With("plugin", m.Name)

	if m.Name == "" || !namePattern.MatchString(m.Name) {
		return invalid.Errorf("name %q must start with a-z, contain only a-z, 0-9, hyphens, and not end with a hyphen", m.Name)
	}
	if len(m.Name) > maxNameLength {
		return invalid.Errorf("name must be %d characters or less, got %d", maxNameLength, len(m.Name))
	}

	for _, mod := range m.Modules {
		if !modulePattern.MatchString(mod) {
			return invalid.Errorf("module %q is not a valid dotted module name", mod)
		}
	}

	for _, pattern := range m.Exclude {
		if _, err := glob.Compile(pattern); err != nil {
			return invalid.Wrapf(err, "exclude pattern %q", pattern)
		}
	}

	return nil
}

// ModuleNames returns the fully qualified modules the package in dir
// provides, prefixed with pkg.
func (m *Manifest) ModuleNames(pkg, dir string) ([]string, error) {
	if len(m.Modules) > 0 {
		names := make([]string, 0, len(m.Modules))
		for _, mod := range m.Modules {
			names = append(names, pkg+"."+mod)
		}
		return names, nil
	}

	excludes := make([]glob.Glob, 0, len(m.Exclude))
	for _, pattern := range m.Exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, ErrInvalidManifest(filepath.Join(dir, ManifestFile), err)
		}
		excludes = append(excludes, g)
	}
	return sourceModules(pkg, dir, excludes...)
}

// sourceModules lists pkg.<file> for each source file directly in dir,
// sorted, skipping files matched by excludes.
func sourceModules(pkg, dir string, excludes ...glob.Glob) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, oops.In("plugin").With("dir", dir).Wrap(err)
	}

	var names []string
outer:
	for _, e := range entries {
		file := e.Name()
		if !e.Type().IsRegular() || filepath.Ext(file) != module.SourceExt {
			continue
		}
		for _, g := range excludes {
			if g.Match(file) {
				continue outer
			}
		}
		base := strings.TrimSuffix(file, module.SourceExt)
		if !isPlainName(base) {
			continue
		}
		names = append(names, pkg+"."+base)
	}
	sort.Strings(names)
	return names, nil
}

// isPlainName reports whether s can be one segment of a module name.
func isPlainName(s string) bool {
	return s != "" && !strings.HasPrefix(s, ".") && !strings.HasPrefix(s, "_") && !strings.Contains(s, ".")
}
