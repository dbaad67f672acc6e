// Package cli provides the command-line interface for Hestia profile management.
//
// This package implements the CLI using the Orpheus framework, exposing
// the full store surface (typed gets, writes, deletes, enumeration) as
// git-style subcommands, plus format conversion, strict validation and
// audit trail queries.
//
// Architecture:
// - Manager: CLI orchestration and command routing
// - Handlers: individual command implementations
// - Utils: shared helpers for store construction and value rendering
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"github.com/agilira/hestia"
	"github.com/agilira/orpheus/pkg/orpheus"
)

// Manager provides CLI operations for Hestia profile management.
type Manager struct {
	app         *orpheus.App
	auditLogger *hestia.AuditLogger // Optional audit integration
}

// NewManager creates a new CLI manager powered by Orpheus.
func NewManager() *Manager {
	app := orpheus.New("hestia").
		SetDescription("Portable private-profile store with typed reads and audited writes").
		SetVersion("1.0.0")

	manager := &Manager{
		app: app,
	}

	manager.setupProfileCommands()
	manager.setupUtilityCommands()

	return manager
}

// WithAudit enables audit logging for all CLI operations.
func (m *Manager) WithAudit(auditLogger *hestia.AuditLogger) *Manager {
	m.auditLogger = auditLogger
	return m
}

// Run executes the CLI application with the provided arguments.
func (m *Manager) Run(args []string) error {
	return m.app.Run(args)
}

// Command Setup Methods

// setupProfileCommands configures the 'profile' command group exposing
// the store operation surface. The section argument is literal: pass ""
// for the unnamed global section.
func (m *Manager) setupProfileCommands() {
	profileCmd := orpheus.NewCommand("profile", "Profile file operations")

	// profile get <file> <section> <key> [--type=string] [--default=]
	getCmd := profileCmd.Subcommand("get", "Read a value", m.handleGet)
	getCmd.AddFlag("type", "t", "string", "Value type (string|int|bool)")
	getCmd.AddFlag("default", "d", "", "Default when the key is absent")

	// profile set <file> <section> <key> <value>
	setCmd := profileCmd.Subcommand("set", "Write a value", m.handleSet)
	setCmd.AddFlag("audit", "a", "", "Audit output file (.jsonl or SQLite database)")

	// profile delete <file> <section> <key>
	deleteCmd := profileCmd.Subcommand("delete", "Delete a key", m.handleDelete)
	deleteCmd.AddFlag("audit", "a", "", "Audit output file (.jsonl or SQLite database)")

	// profile delete-section <file> <section>
	deleteSectionCmd := profileCmd.Subcommand("delete-section", "Delete an entire section", m.handleDeleteSection)
	deleteSectionCmd.AddFlag("audit", "a", "", "Audit output file (.jsonl or SQLite database)")

	// profile sections <file>
	profileCmd.Subcommand("sections", "List section names", m.handleSections)

	// profile keys <file> <section>
	profileCmd.Subcommand("keys", "List a section's key=value data", m.handleKeys)

	// profile exists <file> <section> <key>
	profileCmd.Subcommand("exists", "Check whether a key holds a non-empty value", m.handleExists)

	m.app.AddCommand(profileCmd)
}

// setupUtilityCommands configures conversion, validation and audit
// query commands.
func (m *Manager) setupUtilityCommands() {
	// convert <file> <output> [--to=json|yaml]
	convertCmd := orpheus.NewCommand("convert", "Convert a profile to JSON or YAML")
	convertCmd.SetHandler(m.handleConvert)
	convertCmd.AddFlag("to", "", "json", "Output format (json|yaml)")
	m.app.AddCommand(convertCmd)

	// validate <file>
	validateCmd := orpheus.NewCommand("validate", "Report lines the forgiving parser would skip")
	validateCmd.SetHandler(m.handleValidate)
	m.app.AddCommand(validateCmd)

	// audit command group
	auditCmd := orpheus.NewCommand("audit", "Audit trail management")
	queryCmd := auditCmd.Subcommand("query", "Query a SQLite audit database", m.handleAuditQuery)
	queryCmd.AddFlag("db", "", "", "Audit database path")
	queryCmd.AddFlag("since", "s", "24h", "Time range (e.g. 30m, 24h)")
	queryCmd.AddFlag("event", "e", "", "Event type filter")
	queryCmd.AddFlag("file", "f", "", "Profile path filter")
	queryCmd.AddIntFlag("limit", "l", 100, "Maximum results")
	m.app.AddCommand(auditCmd)
}
