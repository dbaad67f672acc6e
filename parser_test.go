// parser_test.go: Tests for the forgiving profile parser
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"reflect"
	"testing"
)

func TestParseDocumentBasic(t *testing.T) {
	input := `global=1

[db]
host=localhost
port=5432

[app]
name=api
`
	doc := parseDocument([]byte(input))

	if got := doc.SectionNames(); !reflect.DeepEqual(got, []string{"", "db", "app"}) {
		t.Fatalf("section names = %v", got)
	}
	if v, ok := doc.Get("", "global"); !ok || v != "1" {
		t.Errorf("global = %q ok=%v, want 1", v, ok)
	}
	if v, ok := doc.Get("db", "host"); !ok || v != "localhost" {
		t.Errorf("db.host = %q ok=%v", v, ok)
	}
	if v, ok := doc.Get("app", "name"); !ok || v != "api" {
		t.Errorf("app.name = %q ok=%v", v, ok)
	}
}

func TestParseDocumentDuplicateKeyOverwrites(t *testing.T) {
	input := "[s]\nkey=first\nother=x\nkey=second\n"
	doc := parseDocument([]byte(input))

	v, ok := doc.Get("s", "key")
	if !ok || v != "second" {
		t.Fatalf("key = %q, want second", v)
	}

	// Overwrite keeps the original position
	data := doc.Section("s").Data()
	want := []string{"key=second", "other=x"}
	if !reflect.DeepEqual(data, want) {
		t.Fatalf("data = %v, want %v", data, want)
	}
}

func TestParseDocumentDuplicateSectionMerges(t *testing.T) {
	input := "[s]\na=1\n[t]\nb=2\n[s]\nc=3\n"
	doc := parseDocument([]byte(input))

	if got := doc.SectionNames(); !reflect.DeepEqual(got, []string{"s", "t"}) {
		t.Fatalf("section names = %v, want [s t]", got)
	}
	if v, ok := doc.Get("s", "c"); !ok || v != "3" {
		t.Errorf("merged section lost later entry: c = %q ok=%v", v, ok)
	}
	if v, ok := doc.Get("s", "a"); !ok || v != "1" {
		t.Errorf("merged section lost earlier entry: a = %q ok=%v", v, ok)
	}
}

func TestParseDocumentNeverFails(t *testing.T) {
	// Lines the tokenizer cannot classify are dropped without error
	inputs := []string{
		"",
		"complete garbage\nmore garbage",
		"[unclosed\n=nokey\n",
		"\x00\x01\x02",
		"[]\n=\n==\n[ ]\n",
	}

	for _, input := range inputs {
		doc := parseDocument([]byte(input))
		if doc == nil {
			t.Fatalf("parseDocument(%q) returned nil", input)
		}
	}
}

func TestParseDocumentEmptySectionKept(t *testing.T) {
	doc := parseDocument([]byte("[empty]\n[full]\nk=v\n"))

	if got := doc.SectionNames(); !reflect.DeepEqual(got, []string{"empty", "full"}) {
		t.Fatalf("section names = %v, want [empty full]", got)
	}
	if doc.Section("empty").Len() != 0 {
		t.Error("empty section should have no entries")
	}
}

func TestParseDocumentGlobalAfterSection(t *testing.T) {
	// A duplicate header re-selects; keys before any header are global
	input := "top=1\n[s]\nmid=2\n"
	doc := parseDocument([]byte(input))

	if v, ok := doc.Get("", "top"); !ok || v != "1" {
		t.Errorf("global top = %q ok=%v", v, ok)
	}
	if _, ok := doc.Get("s", "top"); ok {
		t.Error("top leaked into section s")
	}
}
