// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

// Package extension classifies plugin-defined classes against the
// extension kinds the host understands.
package extension

import (
	"slices"

	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

// Order is the fixed sequence classification checks kinds in. A class
// reaching several kinds through its bases takes the first listed here.
var Order = []pluginpkg.Kind{
	pluginpkg.KindEventListener,
	pluginpkg.KindTextCommand,
	pluginpkg.KindWindowCommand,
	pluginpkg.KindApplicationCommand,
}

// Descriptor describes a plugin class by name and the kinds it inherits.
type Descriptor struct {
	Name  string
	Kinds []pluginpkg.Kind
}

// Implements reports whether the class inherits kind.
func (d Descriptor) Implements(kind pluginpkg.Kind) bool {
	return slices.Contains(d.Kinds, kind)
}

// Classify returns the single kind d registers as. The second result is
// false when d inherits none of the known kinds.
func Classify(d Descriptor) (pluginpkg.Kind, bool) {
	for _, kind := range Order {
		if d.Implements(kind) {
			return kind, true
		}
	}
	return 0, false
}
