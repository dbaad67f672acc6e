// export.go: Document projection and format conversion for Hestia
//
// Projects the ordered profile document into generic maps and renders
// them as JSON or YAML. Values stay strings: the profile format carries
// no type information and conversion must be value-preserving.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"encoding/json"

	"github.com/agilira/go-errors"
	"go.yaml.in/yaml/v3"
)

// ExportMap projects a document into a generic map. Entries of the
// unnamed global section appear at the top level; each named section
// becomes a nested map under its name. A named section shadows a global
// key of the same name.
func ExportMap(doc *Document) map[string]interface{} {
	out := make(map[string]interface{})

	for _, name := range doc.SectionNames() {
		s := doc.Section(name)
		if name == "" {
			for _, e := range s.Entries() {
				out[e.Key] = e.Value
			}
			continue
		}

		nested := make(map[string]interface{}, s.Len())
		for _, e := range s.Entries() {
			nested[e.Key] = e.Value
		}
		out[name] = nested
	}

	return out
}

// ExportJSON renders the document as indented JSON.
func ExportJSON(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(ExportMap(doc), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeInvalidConfig, "JSON export failed")
	}
	return data, nil
}

// ExportYAML renders the document as YAML.
func ExportYAML(doc *Document) ([]byte, error) {
	data, err := yaml.Marshal(ExportMap(doc))
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeInvalidConfig, "YAML export failed")
	}
	return data, nil
}
