// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package command

import "time"

// MetricsRecorder tracks command execution metrics for a single dispatch.
type MetricsRecorder struct {
	startTime     time.Time
	commandName   string
	commandSource string
	status        string
}

// NewMetricsRecorder initializes a recorder for a single dispatch.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{startTime: time.Now()}
}

// SetCommand sets the command name and source for metrics.
func (m *MetricsRecorder) SetCommand(name, source string) {
	m.commandName = name
	m.commandSource = source
}

// SetStatus sets the execution status for metrics.
func (m *MetricsRecorder) SetStatus(status string) {
	m.status = status
}

// Record writes the collected metrics if command name is available.
func (m *MetricsRecorder) Record() {
	if m.commandName == "" {
		return
	}

	RecordCommandExecution(m.commandName, m.commandSource, m.status)
	RecordCommandDuration(m.commandName, m.commandSource, time.Since(m.startTime))
}
