// Utility functions for the Hestia CLI
//
// Shared helpers for store construction and value parsing.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/agilira/hestia"
)

// openStore binds a store to filePath, enabling the audit trail when an
// output file was requested.
func (m *Manager) openStore(filePath, auditOutput string) (*hestia.Store, error) {
	if auditOutput == "" {
		return hestia.New(filePath)
	}
	return hestia.NewWithConfig(filePath, hestia.Config{
		Audit: hestia.AuditConfig{
			Enabled:    true,
			OutputFile: auditOutput,
		},
	})
}

// closeStore flushes the store's audit trail, reporting rather than
// swallowing a failed final flush.
func closeStore(store *hestia.Store) {
	if err := store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to close store: %v\n", err)
	}
}

// atoiOrZero parses a full decimal integer, returning 0 for anything
// else. Used only for the --default flag; stored values go through the
// store's own leading-run semantics.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
