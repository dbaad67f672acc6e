// hestia_test.go: Tests for the store operation surface
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.ini"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestNewRejectsEmptyPath(t *testing.T) {
	for _, path := range []string{"", "   ", "\t"} {
		if _, err := New(path); err == nil {
			t.Errorf("New(%q) should fail", path)
		}
	}
}

func TestNewResolvesAbsolutePath(t *testing.T) {
	store, err := New("relative.ini")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if !filepath.IsAbs(store.Path()) {
		t.Errorf("Path() = %q, want absolute", store.Path())
	}
}

func TestWriteThenReadString(t *testing.T) {
	store := newTestStore(t)

	if err := store.Write("S", "K", "V"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	v, err := store.ReadString("S", "K", "")
	if err != nil {
		t.Fatalf("ReadString failed: %v", err)
	}
	if v != "V" {
		t.Errorf("ReadString = %q, want V", v)
	}
}

func TestWriteCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.ini")
	store, err := New(path)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if err := store.Write("S", "K", "V"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not created: %v", err)
	}
}

func TestWriteRejectsEmptyKey(t *testing.T) {
	store := newTestStore(t)
	if err := store.Write("S", "", "V"); err == nil {
		t.Fatal("Write with empty key should fail")
	}
}

func TestReadStringDefaults(t *testing.T) {
	store := newTestStore(t)

	v, err := store.ReadString("NoSection", "Missing", "fb")
	if err != nil {
		t.Fatalf("ReadString failed: %v", err)
	}
	if v != "fb" {
		t.Errorf("ReadString default = %q, want fb", v)
	}

	v, err = store.ReadString("NoSection", "Missing", "")
	if err != nil {
		t.Fatalf("ReadString failed: %v", err)
	}
	if v != "" {
		t.Errorf("ReadString empty default = %q, want \"\"", v)
	}
}

func TestReadIntAsymmetricDefault(t *testing.T) {
	store := newTestStore(t)

	// Absent key: default applies
	v, err := store.ReadInt("S", "Missing", 42)
	if err != nil {
		t.Fatalf("ReadInt failed: %v", err)
	}
	if v != 42 {
		t.Errorf("ReadInt absent = %d, want 42", v)
	}

	// Present but unparseable: 0, NOT the default
	if err := store.Write("S", "Key", "NotANumber"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	v, err = store.ReadInt("S", "Key", -1)
	if err != nil {
		t.Fatalf("ReadInt failed: %v", err)
	}
	if v != 0 {
		t.Errorf("ReadInt unparseable = %d, want 0 (not -1)", v)
	}
}

func TestReadIntLeadingRun(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		value string
		want  int
	}{
		{"123", 123},
		{"-7", -7},
		{"+15", 15},
		{"123abc", 123},
		{"-42xyz", -42},
		{"abc123", 0},
		{" 12", 0}, // leading whitespace: value does not begin with an integer token
		{"", 0},
		{"+", 0},
		{"-", 0},
	}

	for _, tt := range tests {
		if err := store.Write("S", "K", tt.value); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		v, err := store.ReadInt("S", "K", -99)
		if err != nil {
			t.Fatalf("ReadInt failed: %v", err)
		}
		if v != tt.want {
			t.Errorf("ReadInt(%q) = %d, want %d", tt.value, v, tt.want)
		}
	}
}

func TestReadBoolTokens(t *testing.T) {
	store := newTestStore(t)

	trueTokens := []string{"true", "True", "TRUE", "1", "yes", "Yes"}
	falseTokens := []string{"false", "False", "FALSE", "0", "no", "No"}

	for _, tok := range trueTokens {
		if err := store.Write("S", "K", tok); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		// Default false so a match is unambiguous
		v, err := store.ReadBool("S", "K", false)
		if err != nil {
			t.Fatalf("ReadBool failed: %v", err)
		}
		if !v {
			t.Errorf("ReadBool(%q) = false, want true", tok)
		}
	}

	for _, tok := range falseTokens {
		if err := store.Write("S", "K", tok); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		v, err := store.ReadBool("S", "K", true)
		if err != nil {
			t.Fatalf("ReadBool failed: %v", err)
		}
		if v {
			t.Errorf("ReadBool(%q) = true, want false", tok)
		}
	}
}

func TestReadBoolUnrecognizedYieldsDefault(t *testing.T) {
	store := newTestStore(t)

	for _, value := range []string{"maybe", "2", "   ", "on"} {
		if err := store.Write("S", "K", value); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		for _, def := range []bool{true, false} {
			v, err := store.ReadBool("S", "K", def)
			if err != nil {
				t.Fatalf("ReadBool failed: %v", err)
			}
			if v != def {
				t.Errorf("ReadBool(%q, default %v) = %v", value, def, v)
			}
		}
	}

	// Absent key also yields the default in both polarities
	for _, def := range []bool{true, false} {
		v, err := store.ReadBool("S", "Missing", def)
		if err != nil {
			t.Fatalf("ReadBool failed: %v", err)
		}
		if v != def {
			t.Errorf("ReadBool absent, default %v = %v", def, v)
		}
	}
}

func TestSectionsIndependent(t *testing.T) {
	store := newTestStore(t)

	if err := store.Write("A", "K", "va"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Write("B", "K", "vb"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	va, _ := store.ReadString("A", "K", "")
	vb, _ := store.ReadString("B", "K", "")
	if va != "va" || vb != "vb" {
		t.Errorf("sections not independent: A=%q B=%q", va, vb)
	}

	if err := store.DeleteKey("A", "K"); err != nil {
		t.Fatalf("DeleteKey failed: %v", err)
	}
	if vb, _ = store.ReadString("B", "K", ""); vb != "vb" {
		t.Errorf("deleting A.K affected B.K: %q", vb)
	}
}

func TestSectionsEnumeration(t *testing.T) {
	store := newTestStore(t)

	names, err := store.Sections()
	if err != nil {
		t.Fatalf("Sections failed: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("empty store Sections = %v", names)
	}

	_ = store.Write("first", "k", "v")
	_ = store.Write("second", "k", "v")
	_ = store.Write("", "g", "v")

	names, err = store.Sections()
	if err != nil {
		t.Fatalf("Sections failed: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"", "first", "second"}) {
		t.Errorf("Sections = %v, want global first then insertion order", names)
	}
}

func TestSectionData(t *testing.T) {
	store := newTestStore(t)

	data, err := store.SectionData("missing")
	if err != nil {
		t.Fatalf("SectionData failed: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("absent section data = %v", data)
	}

	_ = store.Write("s", "a", "1")
	_ = store.Write("s", "b", "2")

	data, err = store.SectionData("s")
	if err != nil {
		t.Fatalf("SectionData failed: %v", err)
	}
	if !reflect.DeepEqual(data, []string{"a=1", "b=2"}) {
		t.Errorf("SectionData = %v", data)
	}
}

func TestDeleteKeyThenKeyExists(t *testing.T) {
	store := newTestStore(t)

	_ = store.Write("S", "K", "V")

	exists, err := store.KeyExists("S", "K")
	if err != nil || !exists {
		t.Fatalf("KeyExists = %v err=%v, want true", exists, err)
	}

	if err := store.DeleteKey("S", "K"); err != nil {
		t.Fatalf("DeleteKey failed: %v", err)
	}
	exists, err = store.KeyExists("S", "K")
	if err != nil || exists {
		t.Fatalf("KeyExists after delete = %v err=%v, want false", exists, err)
	}

	// Deleting an absent key is a successful no-op
	if err := store.DeleteKey("S", "K"); err != nil {
		t.Errorf("DeleteKey on absent key failed: %v", err)
	}
}

func TestDeleteSection(t *testing.T) {
	store := newTestStore(t)

	_ = store.Write("S", "a", "1")
	_ = store.Write("S", "b", "2")
	_ = store.Write("T", "c", "3")

	if err := store.DeleteSection("S"); err != nil {
		t.Fatalf("DeleteSection failed: %v", err)
	}

	names, _ := store.Sections()
	if !reflect.DeepEqual(names, []string{"T"}) {
		t.Errorf("Sections after delete = %v, want [T]", names)
	}
	if exists, _ := store.KeyExists("S", "a"); exists {
		t.Error("key survived section delete")
	}

	// Absent section is a successful no-op
	if err := store.DeleteSection("S"); err != nil {
		t.Errorf("DeleteSection on absent section failed: %v", err)
	}
}

func TestEmptyValueDistinction(t *testing.T) {
	store := newTestStore(t)

	if err := store.Write("S", "K", ""); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// ReadString returns the stored empty value, not the default
	v, err := store.ReadString("S", "K", "default")
	if err != nil {
		t.Fatalf("ReadString failed: %v", err)
	}
	if v != "" {
		t.Errorf("ReadString = %q, want stored empty value", v)
	}

	// KeyExists treats zero-length values as nonexistent
	exists, err := store.KeyExists("S", "K")
	if err != nil {
		t.Fatalf("KeyExists failed: %v", err)
	}
	if exists {
		t.Error("KeyExists = true for empty value, want false")
	}
}

func TestLongValueRoundTrip(t *testing.T) {
	store := newTestStore(t)

	value := strings.Repeat("long-value-", 100) // well past any fixed buffer
	if err := store.Write("S", "K", value); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	v, err := store.ReadString("S", "K", "")
	if err != nil {
		t.Fatalf("ReadString failed: %v", err)
	}
	if v != value {
		t.Fatalf("long value truncated: got %d bytes, want %d", len(v), len(value))
	}
}

func TestGlobalSectionOperations(t *testing.T) {
	store := newTestStore(t)

	if err := store.Write("", "K", "global"); err != nil {
		t.Fatalf("Write to global section failed: %v", err)
	}
	v, _ := store.ReadString("", "K", "")
	if v != "global" {
		t.Errorf("global read = %q", v)
	}

	// Global entries render before any named section, with no header
	_ = store.Write("named", "K", "v")
	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.HasPrefix(string(data), "K=global\n") {
		t.Errorf("file does not start with global entry:\n%s", data)
	}
}

func TestReloadReflectsLastWrittenState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.ini")

	store, err := New(path)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	_ = store.Write("S", "a", "1")
	_ = store.Write("S", "b", "2")
	_ = store.Write("S", "a", "3")
	_ = store.DeleteKey("S", "b")

	// A second store bound to the same path observes the final state
	reloaded, err := New(path)
	if err != nil {
		t.Fatalf("Failed to create second store: %v", err)
	}
	data, err := reloaded.SectionData("S")
	if err != nil {
		t.Fatalf("SectionData failed: %v", err)
	}
	if !reflect.DeepEqual(data, []string{"a=3"}) {
		t.Fatalf("reloaded data = %v, want [a=3]", data)
	}
}

func TestStorePreservesForeignComments(t *testing.T) {
	// Comments are read-tolerated but not preserved across a mutation
	path := filepath.Join(t.TempDir(), "commented.ini")
	content := "; hand-written comment\n[s]\nk=v\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	store, err := New(path)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	// Reading leaves the file untouched
	if v, _ := store.ReadString("s", "k", ""); v != "v" {
		t.Fatalf("seeded value not read")
	}
	data, _ := os.ReadFile(path)
	if string(data) != content {
		t.Error("read operation modified the file")
	}

	// A mutation rewrites canonically, dropping the comment
	_ = store.Write("s", "k2", "v2")
	data, _ = os.ReadFile(path)
	if strings.Contains(string(data), ";") {
		t.Errorf("comment survived rewrite:\n%s", data)
	}
}
