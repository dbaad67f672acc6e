// binder.go - Typed binding of profile values onto Go variables
//
// Implements the zero-reflection bind pattern: Bind* calls collect
// intents against (section, key) addresses, Apply resolves them all in
// one load under a single store lock. Resolution uses exactly the store
// read semantics, including ReadInt's asymmetric default.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"fmt"
	"strconv"
	"time"
	"unsafe"

	"github.com/agilira/go-errors"
)

// bindKind represents the type of binding for fast type switching
type bindKind uint8

const (
	bindString bindKind = iota
	bindInt
	bindBool
	bindDuration
)

// binding is a single collected intent. The target is an unsafe.Pointer
// with a compile-time discriminator instead of reflection: the public
// Bind* API keeps it type-safe, and Apply stays allocation-free.
type binding struct {
	target   unsafe.Pointer
	section  string
	key      string
	defValue string // Default as string (universal representation)
	kind     bindKind
}

// Binder collects typed bindings against one store and applies them in
// a single pass.
type Binder struct {
	bindings []binding
	store    *Store
	err      error
}

// Bind starts a fluent binding chain against the store.
func (s *Store) Bind() *Binder {
	return &Binder{
		bindings: make([]binding, 0, 16),
		store:    s,
	}
}

// BindString binds a string value; an absent key yields the optional
// default (or "").
func (b *Binder) BindString(target *string, section, key string, defaultValue ...string) *Binder {
	defVal := ""
	if len(defaultValue) > 0 {
		defVal = defaultValue[0]
	}

	b.bindings = append(b.bindings, binding{
		target:   unsafe.Pointer(target), // #nosec G103 - intentional unsafe.Pointer usage for zero-reflection binding
		section:  section,
		key:      key,
		defValue: defVal,
		kind:     bindString,
	})

	return b
}

// BindInt binds an integer value with ReadInt semantics: the optional
// default (or -1) applies only when the key is absent; a present value
// without a leading integer run binds 0.
func (b *Binder) BindInt(target *int, section, key string, defaultValue ...int) *Binder {
	defVal := "-1"
	if len(defaultValue) > 0 {
		defVal = strconv.Itoa(defaultValue[0])
	}

	b.bindings = append(b.bindings, binding{
		target:   unsafe.Pointer(target), // #nosec G103 - intentional unsafe.Pointer usage for zero-reflection binding
		section:  section,
		key:      key,
		defValue: defVal,
		kind:     bindInt,
	})

	return b
}

// BindBool binds a boolean value; unrecognized or absent values yield
// the optional default (or false).
func (b *Binder) BindBool(target *bool, section, key string, defaultValue ...bool) *Binder {
	defVal := "false"
	if len(defaultValue) > 0 && defaultValue[0] {
		defVal = "true"
	}

	b.bindings = append(b.bindings, binding{
		target:   unsafe.Pointer(target), // #nosec G103 - intentional unsafe.Pointer usage for zero-reflection binding
		section:  section,
		key:      key,
		defValue: defVal,
		kind:     bindBool,
	})

	return b
}

// BindDuration binds a time.Duration value parsed with
// time.ParseDuration; unparseable or absent values yield the optional
// default (or 0).
func (b *Binder) BindDuration(target *time.Duration, section, key string, defaultValue ...time.Duration) *Binder {
	defVal := "0s"
	if len(defaultValue) > 0 {
		defVal = defaultValue[0].String()
	}

	b.bindings = append(b.bindings, binding{
		target:   unsafe.Pointer(target), // #nosec G103 - intentional unsafe.Pointer usage for zero-reflection binding
		section:  section,
		key:      key,
		defValue: defVal,
		kind:     bindDuration,
	})

	return b
}

// Apply resolves all bindings against one consistent snapshot of the
// file, taken under a single store lock. Nothing is written to any
// target until the snapshot load succeeds.
func (b *Binder) Apply() error {
	if b.err != nil {
		return b.err
	}

	doc, err := b.store.Snapshot()
	if err != nil {
		return errors.Wrap(err, ErrCodeStorageError, "failed to load profile for binding")
	}

	for _, bd := range b.bindings {
		if err := applyBinding(doc, bd); err != nil {
			return errors.Wrap(err, ErrCodeInvalidConfig,
				fmt.Sprintf("failed to bind key '%s' in section '%s'", bd.key, bd.section))
		}
	}

	return nil
}

// applyBinding resolves a single binding with zero-allocation type switching
func applyBinding(doc *Document, b binding) error {
	switch b.kind {
	case bindString:
		*(*string)(b.target) = docReadString(doc, b.section, b.key, b.defValue)
	case bindInt:
		def, err := strconv.Atoi(b.defValue)
		if err != nil {
			return err
		}
		*(*int)(b.target) = docReadInt(doc, b.section, b.key, def)
	case bindBool:
		*(*bool)(b.target) = docReadBool(doc, b.section, b.key, b.defValue == "true")
	case bindDuration:
		def, err := time.ParseDuration(b.defValue)
		if err != nil {
			return err
		}
		*(*time.Duration)(b.target) = docReadDuration(doc, b.section, b.key, def)
	default:
		return errors.New(ErrCodeInvalidConfig, fmt.Sprintf("unsupported binding kind: %d", b.kind))
	}

	return nil
}
