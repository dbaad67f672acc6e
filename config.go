// config.go: Store configuration for Hestia
//
// Copyright (c) 2025 AGILira
// Series: AGILira System Libraries
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"os"
	"time"
)

// Config controls store behavior. The zero value is usable: New applies
// WithDefaults before the first operation.
type Config struct {
	// LockTimeout bounds the wait for the exclusive file lock taken by
	// every store operation. Expiry surfaces as ErrCodeLockTimeout.
	LockTimeout time.Duration

	// LockRetryInterval is the pause between non-blocking lock attempts.
	LockRetryInterval time.Duration

	// FileMode is applied when the profile file is first created.
	FileMode os.FileMode

	// Audit configures the optional audit trail for mutating
	// operations. Disabled unless explicitly enabled.
	Audit AuditConfig
}

// WithDefaults applies sensible defaults to the configuration
func (c *Config) WithDefaults() *Config {
	config := *c

	if config.LockTimeout <= 0 {
		config.LockTimeout = 5 * time.Second
	}

	if config.LockRetryInterval <= 0 {
		config.LockRetryInterval = 10 * time.Millisecond
	}

	// GUARD RAIL: a retry interval beyond the timeout would turn the
	// bounded wait into a single attempt
	if config.LockRetryInterval > config.LockTimeout {
		config.LockRetryInterval = config.LockTimeout / 10
	}

	if config.FileMode == 0 {
		config.FileMode = 0644
	}

	if config.Audit.Enabled {
		config.Audit = *config.Audit.withDefaults()
	}

	return &config
}
