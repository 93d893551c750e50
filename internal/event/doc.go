// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

// Package event provides the multicast channels the host fires on document
// lifecycle moments, and the process-scoped Registry that owns them.
//
// Channels are not safe for concurrent use. A multithreaded host must
// serialize Subscribe, Unsubscribe and Fire calls itself.
package event
