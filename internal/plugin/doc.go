// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

// Package plugin loads Lua plugin modules and wires the extensions they
// define into the host.
//
// ReloadPlugin loads one module through the module loader, classifies each
// class it exports and registers commands with the host's command table or
// subscribes listener hooks to the lifecycle channels. Scan does the same for
// every plugin found under the search roots. Neither returns an error past
// its boundary: failures are logged and collected in a Report so one broken
// plugin never stops the others.
//
// Open assembles the Lua runtime, loader, registrar and host functions.
package plugin
