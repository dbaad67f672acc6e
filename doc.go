// Package hestia provides a portable private-profile store for Go
// applications: the classic [section] / key=value file model with typed
// reads, write-through persistence and cross-process locking, backed by
// a self-contained parser and serializer instead of any platform
// profile API.
//
// # Philosophy: The Profile Contract, Without the Platform
//
// Hestia reproduces the observable contract of the historical private
// profile APIs - forgiving parsing, per-call persistence, typed reads
// that resolve damaged data to defaults instead of errors - while
// keeping everything in portable Go. Failure is reserved for I/O
// boundary problems; the format itself never fails.
//
// # Architecture Overview
//
// Hestia consists of five integrated subsystems:
//  1. **Line Tokenizer**: single-pass classification of raw file text
//  2. **Ordered Document Model**: sections and entries in first-insertion order
//  3. **Forgiving Parser / Canonical Serializer**: value-preserving round trips
//  4. **Locked Write-Through Store**: one load-mutate-save cycle per call under an exclusive advisory lock
//  5. **Audit Trail**: optional buffered change logging with JSONL and SQLite backends
//
// # Quick Start
//
// Bind a store to a file path and use typed operations:
//
//	store, err := hestia.New("app.ini")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close()
//
//	_ = store.Write("database", "host", "db.internal")
//	host, _ := store.ReadString("database", "host", "localhost")
//	port, _ := store.ReadInt("database", "port", 5432)
//	tls, _ := store.ReadBool("database", "tls", false)
//
// Every operation loads the file fresh, applies itself and, for
// mutations, atomically rewrites the file. Two stores bound to the same
// path - in the same process or different ones - serialize through an
// exclusive advisory lock with a bounded wait.
//
// # Read Semantics
//
// ReadString returns the stored value or the supplied default when the
// key is absent; an explicitly stored empty value is returned as "".
// ReadBool matches true/1/yes and false/0/no case-insensitively and
// falls back to the default otherwise.
//
// ReadInt preserves the historical asymmetry exactly: the default
// applies only when the key is absent. A present value that does not
// begin with an optional sign and decimal digits reads as 0, not the
// default, and a value like "123abc" reads as 123.
//
// # Typed Binding
//
// The zero-reflection binding system resolves many values against one
// consistent snapshot under a single lock:
//
//	var host string
//	var port int
//	var tls bool
//
//	err := store.Bind().
//		BindString(&host, "database", "host", "localhost").
//		BindInt(&port, "database", "port", 5432).
//		BindBool(&tls, "database", "tls").
//		Apply()
//
// # Audit Trail
//
// Mutations can be recorded with before/after values and a
// tamper-detection checksum, buffered and flushed to an append-only
// JSONL file or a shared SQLite database:
//
//	store, err := hestia.NewWithConfig("app.ini", hestia.Config{
//		Audit: hestia.AuditConfig{
//			Enabled:    true,
//			OutputFile: "hestia-audit.db",
//		},
//	})
//
// # Known Limits
//
// Every mutation rewrites the whole file; this is the accepted cost of
// the per-call consistency contract and suits the small configuration
// files the format is made for. Comments and blank lines are consumed
// on read and not reproduced on write: round trips preserve values, not
// bytes.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package hestia
