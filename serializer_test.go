// serializer_test.go: Tests for canonical profile rendering
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"reflect"
	"testing"
)

func TestSerializeDocument(t *testing.T) {
	doc := NewDocument()
	doc.Set("", "global", "1")
	doc.Set("db", "host", "localhost")
	doc.Set("db", "port", "5432")
	doc.Set("app", "name", "api")

	want := "global=1\n\n[db]\nhost=localhost\nport=5432\n\n[app]\nname=api\n"
	if got := string(serializeDocument(doc)); got != want {
		t.Fatalf("serialized =\n%q\nwant\n%q", got, want)
	}
}

func TestSerializeEmptyDocument(t *testing.T) {
	if got := serializeDocument(NewDocument()); len(got) != 0 {
		t.Fatalf("empty document serialized to %q", got)
	}
}

func TestSerializeEmptyNamedSectionKeepsHeader(t *testing.T) {
	doc := NewDocument()
	doc.ensureSection("empty")

	if got := string(serializeDocument(doc)); got != "[empty]\n" {
		t.Fatalf("serialized = %q, want bare header", got)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	doc := NewDocument()
	doc.Set("", "g", "top")
	doc.Set("s", "spaced", "  value with spaces  ")
	doc.Set("s", "equals", "a=b=c")
	doc.Set("s", "empty", "")
	doc.Set("other", "k", "v")

	reparsed := parseDocument(serializeDocument(doc))

	if !reflect.DeepEqual(reparsed.SectionNames(), doc.SectionNames()) {
		t.Fatalf("round trip changed sections: %v vs %v",
			reparsed.SectionNames(), doc.SectionNames())
	}
	for _, name := range doc.SectionNames() {
		want := doc.Section(name).Data()
		got := reparsed.Section(name).Data()
		if !reflect.DeepEqual(got, want) {
			t.Errorf("section %q round trip: got %v, want %v", name, got, want)
		}
	}
}

func TestSerializeCommentsNotPreserved(t *testing.T) {
	input := "; leading comment\n[s]\n; inner comment\nk=v\n"
	doc := parseDocument([]byte(input))

	if got := string(serializeDocument(doc)); got != "[s]\nk=v\n" {
		t.Fatalf("serialized = %q, comments should be dropped", got)
	}
}
