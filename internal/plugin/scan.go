// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package plugin

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/quillhost/quill/internal/plugin/module"
	"github.com/quillhost/quill/pkg/errutil"
)

// Scan reloads every plugin found directly under the search roots, in root
// order and then name order. A top-level name.lua registers module "name".
// A directory holding plugin.yaml registers the modules its manifest
// provides. A directory without one registers each dir/*.lua as "dir.file".
//
// A name found under several roots is reloaded once. Failures are logged,
// reported and never stop the scan.
func (r *Registrar) Scan(ctx context.Context) []Report {
	var reports []Report
	seen := make(map[string]bool)

	reload := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		reports = append(reports, r.ReloadPlugin(ctx, name))
	}

	for _, root := range r.loader.Resolver().Roots() {
		entries, err := os.ReadDir(root)
		if err != nil {
			if !os.IsNotExist(err) {
				errutil.LogWarn(r.logger, "skipping unreadable plugin root", err, "root", root)
			}
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			switch {
			case entry.IsDir():
				if !isPlainName(name) {
					continue
				}
				names, err := r.packageModules(root, name)
				if err != nil {
					errutil.LogError(r.logger, "skipping plugin package", err, "package", name)
					reports = append(reports, Report{Module: name, Err: err})
					continue
				}
				for _, n := range names {
					reload(n)
				}
			case entry.Type().IsRegular() && filepath.Ext(name) == module.SourceExt:
				base := strings.TrimSuffix(name, module.SourceExt)
				if isPlainName(base) {
					reload(base)
				}
			}
		}
	}
	return reports
}

// packageModules lists the modules a plugin package directory provides.
func (r *Registrar) packageModules(root, pkg string) ([]string, error) {
	dir := filepath.Join(root, pkg)
	manifestPath := filepath.Join(dir, ManifestFile)

	if _, err := os.Stat(manifestPath); err != nil {
		if os.IsNotExist(err) {
			return sourceModules(pkg, dir)
		}
		return nil, ErrInvalidManifest(manifestPath, err)
	}

	m, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("plugin manifest loaded", "plugin", m.Name, "dir", dir)
	return m.ModuleNames(pkg, dir)
}
