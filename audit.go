// audit.go: Audit trail for Hestia store mutations
//
// Every mutating store operation can be recorded with before/after
// values, a tamper-detection checksum and process identity. The trail
// is opt-in and buffered so the write-through store path stays cheap.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"crypto/sha256"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/agilira/go-timecache"
)

// AuditLevel represents the severity of audit events
type AuditLevel int

const (
	AuditInfo AuditLevel = iota
	AuditWarn
	AuditCritical
)

func (al AuditLevel) String() string {
	switch al {
	case AuditInfo:
		return "INFO"
	case AuditWarn:
		return "WARN"
	case AuditCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// AuditEvent represents a single auditable store event
type AuditEvent struct {
	Timestamp   time.Time  `json:"timestamp"`
	Level       AuditLevel `json:"level"`
	Event       string     `json:"event"`
	Component   string     `json:"component"`
	FilePath    string     `json:"file_path,omitempty"`
	Section     string     `json:"section,omitempty"`
	Key         string     `json:"key,omitempty"`
	OldValue    string     `json:"old_value,omitempty"`
	NewValue    string     `json:"new_value,omitempty"`
	ProcessID   int        `json:"process_id"`
	ProcessName string     `json:"process_name"`
	Checksum    string     `json:"checksum"` // For tamper detection
}

// AuditConfig configures the audit system
type AuditConfig struct {
	Enabled       bool          `json:"enabled"`
	OutputFile    string        `json:"output_file"` // .jsonl for line-delimited JSON, anything else is SQLite
	MinLevel      AuditLevel    `json:"min_level"`
	BufferSize    int           `json:"buffer_size"`
	FlushInterval time.Duration `json:"flush_interval"`
}

// withDefaults fills unset audit fields. OutputFile has no default: an
// enabled trail with no destination is a configuration error surfaced
// by NewAuditLogger.
func (c *AuditConfig) withDefaults() *AuditConfig {
	config := *c

	if config.BufferSize <= 0 {
		config.BufferSize = 256
	}
	if config.FlushInterval <= 0 {
		config.FlushInterval = 5 * time.Second
	}

	return &config
}

// AuditLogger buffers store audit events and flushes them to a
// pluggable backend (JSONL or SQLite) in batches.
type AuditLogger struct {
	config      AuditConfig
	backend     auditBackend
	buffer      []AuditEvent
	bufferMu    sync.Mutex
	flushTicker *time.Ticker
	stopCh      chan struct{}
	processID   int
	processName string
}

// NewAuditLogger creates an audit logger for the given configuration.
// The backend is selected from the OutputFile extension: ".jsonl" gets
// the append-only line-delimited JSON backend, everything else the
// SQLite backend.
func NewAuditLogger(config AuditConfig) (*AuditLogger, error) {
	config = *config.withDefaults()

	backend, err := newAuditBackend(config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audit backend: %w", err)
	}

	logger := &AuditLogger{
		config:      config,
		backend:     backend,
		buffer:      make([]AuditEvent, 0, config.BufferSize),
		stopCh:      make(chan struct{}),
		processID:   os.Getpid(),
		processName: processName(),
	}

	if config.FlushInterval > 0 {
		logger.flushTicker = time.NewTicker(config.FlushInterval)
		go logger.flushLoop()
	}

	return logger, nil
}

// Log records an audit event
func (al *AuditLogger) Log(level AuditLevel, event, filePath, section, key, oldVal, newVal string) {
	if al == nil || al.backend == nil || !al.config.Enabled || level < al.config.MinLevel {
		return
	}

	// Cached timestamp: audit sits on the store's mutation path
	auditEvent := AuditEvent{
		Timestamp:   timecache.CachedTime(),
		Level:       level,
		Event:       event,
		Component:   "hestia",
		FilePath:    filePath,
		Section:     section,
		Key:         key,
		OldValue:    oldVal,
		NewValue:    newVal,
		ProcessID:   al.processID,
		ProcessName: al.processName,
	}
	auditEvent.Checksum = generateChecksum(auditEvent)

	al.bufferMu.Lock()
	al.buffer = append(al.buffer, auditEvent)
	if len(al.buffer) >= al.config.BufferSize {
		_ = al.flushBufferUnsafe() // Keep the mutation path fast; flush errors resurface on Close
	}
	al.bufferMu.Unlock()
}

// LogValueChange logs a key write with its before/after values
// (the most common event).
func (al *AuditLogger) LogValueChange(filePath, section, key, oldVal, newVal string) {
	al.Log(AuditCritical, "value_change", filePath, section, key, oldVal, newVal)
}

// LogStoreEvent logs a store-level event such as a key or section deletion.
func (al *AuditLogger) LogStoreEvent(event, filePath, section, key string) {
	al.Log(AuditInfo, event, filePath, section, key, "", "")
}

// Flush immediately writes all buffered events
func (al *AuditLogger) Flush() error {
	al.bufferMu.Lock()
	defer al.bufferMu.Unlock()
	return al.flushBufferUnsafe()
}

// Close gracefully shuts down the audit logger
func (al *AuditLogger) Close() error {
	close(al.stopCh)
	if al.flushTicker != nil {
		al.flushTicker.Stop()
	}

	if err := al.Flush(); err != nil {
		return fmt.Errorf("failed to flush audit logger during close: %w", err)
	}

	if al.backend != nil {
		if err := al.backend.Close(); err != nil {
			return fmt.Errorf("failed to close audit backend: %w", err)
		}
	}

	return nil
}

// flushLoop runs the background flush process
func (al *AuditLogger) flushLoop() {
	for {
		select {
		case <-al.flushTicker.C:
			_ = al.Flush()
		case <-al.stopCh:
			return
		}
	}
}

// flushBufferUnsafe writes the buffer to the backend (caller holds bufferMu).
func (al *AuditLogger) flushBufferUnsafe() error {
	if len(al.buffer) == 0 {
		return nil
	}

	if err := al.backend.Write(al.buffer); err != nil {
		return fmt.Errorf("failed to write audit events to backend: %w", err)
	}

	al.buffer = al.buffer[:0]
	return nil
}

// generateChecksum creates a tamper-detection checksum using SHA-256
func generateChecksum(event AuditEvent) string {
	data := fmt.Sprintf("%s:%s:%s:%s:%s:%s",
		event.Timestamp.Format(time.RFC3339Nano),
		event.Event, event.Section, event.Key, event.OldValue, event.NewValue)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

func processName() string {
	return "hestia" // Could read from /proc/self/comm
}
