// document.go: Ordered INI document model for Hestia
//
// The document is the in-memory form of one profile file: an ordered
// sequence of sections, each an ordered sequence of key=value entries.
// First-insertion order is preserved across load/save round-trips.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

// Entry is a single key=value pair within a section.
// Keys are case-sensitive and unique within their section.
type Entry struct {
	Key   string
	Value string
}

// Section is a named, ordered sequence of entries.
// The empty name denotes the unnamed global section.
type Section struct {
	Name    string
	entries []Entry
}

// Document is an ordered collection of sections representing one full
// profile file. Section names are unique within a document; the unnamed
// global section, when present, is kept first.
type Document struct {
	sections []*Section
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		sections: make([]*Section, 0, 8),
	}
}

// Section returns the section with the given name, or nil if absent.
func (d *Document) Section(name string) *Section {
	for _, s := range d.sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// ensureSection returns the section with the given name, creating it if
// it does not exist yet. The unnamed global section is inserted at the
// front so it renders before any named section.
func (d *Document) ensureSection(name string) *Section {
	if s := d.Section(name); s != nil {
		return s
	}

	s := &Section{Name: name}
	if name == "" && len(d.sections) > 0 {
		d.sections = append([]*Section{s}, d.sections...)
	} else {
		d.sections = append(d.sections, s)
	}
	return s
}

// Set inserts or overwrites an entry in the named section, creating the
// section if needed. Overwriting an existing key preserves its position.
func (d *Document) Set(section, key, value string) {
	d.ensureSection(section).set(key, value)
}

// Get returns the stored value for the key in the named section and
// whether the key exists.
func (d *Document) Get(section, key string) (string, bool) {
	s := d.Section(section)
	if s == nil {
		return "", false
	}
	return s.get(key)
}

// Delete removes the entry for the key in the named section.
// Returns true if the entry existed.
func (d *Document) Delete(section, key string) bool {
	s := d.Section(section)
	if s == nil {
		return false
	}
	return s.delete(key)
}

// DeleteSection removes the entire named section and all its entries.
// Returns true if the section existed.
func (d *Document) DeleteSection(name string) bool {
	for i, s := range d.sections {
		if s.Name == name {
			d.sections = append(d.sections[:i], d.sections[i+1:]...)
			return true
		}
	}
	return false
}

// SectionNames returns all section names in insertion order. The global
// section appears as the empty string and only when it has entries.
func (d *Document) SectionNames() []string {
	names := make([]string, 0, len(d.sections))
	for _, s := range d.sections {
		if s.Name == "" && len(s.entries) == 0 {
			continue
		}
		names = append(names, s.Name)
	}
	return names
}

// Len returns the number of sections, counting the global section only
// when it has entries.
func (d *Document) Len() int {
	return len(d.SectionNames())
}

// set inserts or overwrites an entry in place.
func (s *Section) set(key, value string) {
	for i := range s.entries {
		if s.entries[i].Key == key {
			s.entries[i].Value = value
			return
		}
	}
	s.entries = append(s.entries, Entry{Key: key, Value: value})
}

// get returns the value for key and whether it exists.
func (s *Section) get(key string) (string, bool) {
	for i := range s.entries {
		if s.entries[i].Key == key {
			return s.entries[i].Value, true
		}
	}
	return "", false
}

// delete removes the entry for key, preserving the order of the rest.
func (s *Section) delete(key string) bool {
	for i := range s.entries {
		if s.entries[i].Key == key {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Entries returns the section's entries in insertion order.
// The returned slice is a copy; mutating it does not affect the section.
func (s *Section) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Data renders the section's entries as "key=value" strings in order.
func (s *Section) Data() []string {
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Key+"="+e.Value)
	}
	return out
}

// Len returns the number of entries in the section.
func (s *Section) Len() int {
	return len(s.entries)
}
