// Command handlers for the Hestia CLI
//
// This file contains all command handler implementations for the Orpheus-powered CLI.
// Handlers construct a store per invocation, matching the engine's
// no-cached-state contract.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/agilira/go-errors"
	"github.com/agilira/hestia"
	"github.com/agilira/orpheus/pkg/orpheus"
)

// handleGet reads one value with the requested type semantics.
func (m *Manager) handleGet(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)
	section := ctx.GetArg(1)
	key := ctx.GetArg(2)

	if m.auditLogger != nil {
		m.auditLogger.LogStoreEvent("cli_get", filePath, section, key)
	}

	store, err := m.openStore(filePath, "")
	if err != nil {
		return err
	}

	switch ctx.GetFlagString("type") {
	case "int":
		def := 0
		if d := ctx.GetFlagString("default"); d != "" {
			def = atoiOrZero(d)
		}
		v, err := store.ReadInt(section, key, def)
		if err != nil {
			return err
		}
		fmt.Printf("%d\n", v)
	case "bool":
		def := ctx.GetFlagString("default") == "true"
		v, err := store.ReadBool(section, key, def)
		if err != nil {
			return err
		}
		fmt.Printf("%t\n", v)
	default:
		v, err := store.ReadString(section, key, ctx.GetFlagString("default"))
		if err != nil {
			return err
		}
		fmt.Println(v)
	}

	return nil
}

// handleSet writes one value, creating the file and section as needed.
func (m *Manager) handleSet(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)
	section := ctx.GetArg(1)
	key := ctx.GetArg(2)
	value := ctx.GetArg(3)

	if m.auditLogger != nil {
		m.auditLogger.LogStoreEvent("cli_set", filePath, section, key)
	}

	store, err := m.openStore(filePath, ctx.GetFlagString("audit"))
	if err != nil {
		return err
	}
	defer closeStore(store)

	if err := store.Write(section, key, value); err != nil {
		return errors.Wrap(err, hestia.ErrCodeStorageError, "failed to write value")
	}

	return nil
}

// handleDelete removes one key; deleting an absent key succeeds quietly.
func (m *Manager) handleDelete(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)
	section := ctx.GetArg(1)
	key := ctx.GetArg(2)

	if m.auditLogger != nil {
		m.auditLogger.LogStoreEvent("cli_delete", filePath, section, key)
	}

	store, err := m.openStore(filePath, ctx.GetFlagString("audit"))
	if err != nil {
		return err
	}
	defer closeStore(store)

	if err := store.DeleteKey(section, key); err != nil {
		return errors.Wrap(err, hestia.ErrCodeStorageError, "failed to delete key")
	}

	return nil
}

// handleDeleteSection removes an entire section and its keys.
func (m *Manager) handleDeleteSection(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)
	section := ctx.GetArg(1)

	if m.auditLogger != nil {
		m.auditLogger.LogStoreEvent("cli_delete_section", filePath, section, "")
	}

	store, err := m.openStore(filePath, ctx.GetFlagString("audit"))
	if err != nil {
		return err
	}
	defer closeStore(store)

	if err := store.DeleteSection(section); err != nil {
		return errors.Wrap(err, hestia.ErrCodeStorageError, "failed to delete section")
	}

	return nil
}

// handleSections lists the current section names in insertion order.
func (m *Manager) handleSections(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)

	store, err := m.openStore(filePath, "")
	if err != nil {
		return err
	}

	names, err := store.Sections()
	if err != nil {
		return errors.Wrap(err, hestia.ErrCodeStorageError, "failed to list sections")
	}

	if len(names) == 0 {
		fmt.Println("No sections found")
		return nil
	}
	for _, name := range names {
		if name == "" {
			fmt.Println("(global)")
			continue
		}
		fmt.Println(name)
	}

	return nil
}

// handleKeys prints a section's entries as key=value lines.
func (m *Manager) handleKeys(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)
	section := ctx.GetArg(1)

	store, err := m.openStore(filePath, "")
	if err != nil {
		return err
	}

	data, err := store.SectionData(section)
	if err != nil {
		return errors.Wrap(err, hestia.ErrCodeStorageError, "failed to read section")
	}

	if len(data) == 0 {
		fmt.Printf("No keys found in section '%s'\n", section)
		return nil
	}
	for _, line := range data {
		fmt.Println(line)
	}

	return nil
}

// handleExists reports whether the key holds a non-empty value.
func (m *Manager) handleExists(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)
	section := ctx.GetArg(1)
	key := ctx.GetArg(2)

	store, err := m.openStore(filePath, "")
	if err != nil {
		return err
	}

	exists, err := store.KeyExists(section, key)
	if err != nil {
		return errors.Wrap(err, hestia.ErrCodeStorageError, "failed to check key")
	}

	fmt.Printf("%t\n", exists)
	return nil
}

// handleConvert renders a profile file as JSON or YAML.
func (m *Manager) handleConvert(ctx *orpheus.Context) error {
	inputPath := ctx.GetArg(0)
	outputPath := ctx.GetArg(1)

	if m.auditLogger != nil {
		m.auditLogger.LogStoreEvent("cli_convert", inputPath, "", "")
	}

	store, err := m.openStore(inputPath, "")
	if err != nil {
		return err
	}

	doc, err := store.Snapshot()
	if err != nil {
		return errors.Wrap(err, hestia.ErrCodeStorageError, "failed to load profile")
	}

	var data []byte
	switch ctx.GetFlagString("to") {
	case "yaml", "yml":
		data, err = hestia.ExportYAML(doc)
	case "json":
		data, err = hestia.ExportJSON(doc)
	default:
		return errors.New(hestia.ErrCodeInvalidConfig,
			fmt.Sprintf("unsupported output format: %s", ctx.GetFlagString("to")))
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return errors.Wrap(err, hestia.ErrCodeStorageError, "failed to write output file")
	}

	fmt.Printf("Converted %s -> %s\n", inputPath, outputPath)
	return nil
}

// handleValidate runs the strict lint pass and prints every line the
// parser would silently skip.
func (m *Manager) handleValidate(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)

	data, err := os.ReadFile(filePath) // #nosec G304 -- filePath is user-provided intentionally
	if err != nil {
		return errors.Wrap(err, hestia.ErrCodeStorageError, "failed to read profile file")
	}

	issues := hestia.Lint(data)
	if len(issues) == 0 {
		fmt.Printf("%s: OK\n", filePath)
		return nil
	}

	for _, issue := range issues {
		fmt.Printf("%s: %s\n", filePath, issue)
	}
	return errors.New(hestia.ErrCodeInvalidConfig,
		fmt.Sprintf("%d line(s) would be skipped by the parser", len(issues)))
}

// handleAuditQuery reads events back from a SQLite audit database.
func (m *Manager) handleAuditQuery(ctx *orpheus.Context) error {
	dbPath := ctx.GetFlagString("db")
	if dbPath == "" {
		return errors.New(hestia.ErrCodeInvalidConfig, "audit database path required (--db)")
	}

	filter := hestia.AuditQueryFilter{
		Event:    ctx.GetFlagString("event"),
		FilePath: ctx.GetFlagString("file"),
		Limit:    ctx.GetFlagInt("limit"),
	}
	if sinceStr := ctx.GetFlagString("since"); sinceStr != "" {
		since, err := time.ParseDuration(sinceStr)
		if err != nil {
			return errors.Wrap(err, hestia.ErrCodeInvalidConfig, "invalid --since duration")
		}
		filter.Since = time.Now().Add(-since)
	}

	events, err := hestia.QueryAuditEvents(dbPath, filter)
	if err != nil {
		return errors.Wrap(err, hestia.ErrCodeAuditError, "audit query failed")
	}

	if len(events) == 0 {
		fmt.Println("No audit events found")
		return nil
	}
	for _, e := range events {
		fmt.Printf("%s [%s] %s %s [%s] %s old=%q new=%q\n",
			e.Timestamp.Format(time.RFC3339), e.Level, e.Event,
			e.FilePath, e.Section, e.Key, e.OldValue, e.NewValue)
	}

	return nil
}
