// export_test.go: Tests for JSON/YAML export
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"encoding/json"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"
)

func exportFixture() *Document {
	doc := NewDocument()
	doc.Set("", "global_key", "global_value")
	doc.Set("database", "host", "localhost")
	doc.Set("database", "port", "5432")
	doc.Set("app", "name", "api")
	return doc
}

func TestExportMap(t *testing.T) {
	m := ExportMap(exportFixture())

	if m["global_key"] != "global_value" {
		t.Errorf("global entry missing: %v", m)
	}
	db, ok := m["database"].(map[string]interface{})
	if !ok {
		t.Fatalf("database section not a map: %T", m["database"])
	}
	if db["host"] != "localhost" || db["port"] != "5432" {
		t.Errorf("database section = %v", db)
	}
}

func TestExportMapSectionShadowsGlobal(t *testing.T) {
	doc := NewDocument()
	doc.Set("", "app", "a-global-value")
	doc.Set("app", "k", "v")

	m := ExportMap(doc)
	if _, ok := m["app"].(map[string]interface{}); !ok {
		t.Errorf("section should shadow same-named global key: %T", m["app"])
	}
}

func TestExportJSON(t *testing.T) {
	out, err := ExportJSON(exportFixture())
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["global_key"] != "global_value" {
		t.Errorf("parsed = %v", parsed)
	}
	if !strings.Contains(string(out), "\n") {
		t.Error("expected indented output")
	}
}

func TestExportYAML(t *testing.T) {
	out, err := ExportYAML(exportFixture())
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var parsed map[string]interface{}
	if err := yaml.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	db, ok := parsed["database"].(map[string]interface{})
	if !ok {
		t.Fatalf("database not a mapping: %T", parsed["database"])
	}
	if db["host"] != "localhost" {
		t.Errorf("database = %v", db)
	}
}

func TestExportEmptyDocument(t *testing.T) {
	out, err := ExportJSON(NewDocument())
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	if strings.TrimSpace(string(out)) != "{}" {
		t.Errorf("empty export = %q", out)
	}
}
