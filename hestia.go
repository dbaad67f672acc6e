// hestia: Portable private-profile store with classic [section]/key=value semantics
//
// Philosophy:
// - Minimal dependencies (AGILira ecosystem only: go-errors, go-timecache)
// - Self-contained parser and serializer, no platform profile API
// - Write-through persistence: every mutation is one load-mutate-save cycle
// - Exclusive advisory locking per operation for cross-process safety
// - Forgiving format: damaged data resolves to defaults, never errors
//
// Example Usage:
//   store, err := hestia.New("app.ini")
//   if err != nil {
//       return err
//   }
//
//   _ = store.Write("database", "host", "localhost")
//   host, _ := store.ReadString("database", "host", "127.0.0.1")
//   port, _ := store.ReadInt("database", "port", 5432)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agilira/go-errors"
	"github.com/agilira/go-timecache"
)

// Error codes for Hestia operations
const (
	ErrCodeInvalidPath   = "HESTIA_INVALID_PATH"
	ErrCodeInvalidKey    = "HESTIA_INVALID_KEY"
	ErrCodeStorageError  = "HESTIA_STORAGE_ERROR"
	ErrCodeLockTimeout   = "HESTIA_LOCK_TIMEOUT"
	ErrCodeInvalidConfig = "HESTIA_INVALID_CONFIG"
	ErrCodeAuditError    = "HESTIA_AUDIT_ERROR"
)

// Store is the public-facing profile engine. It binds to one file path
// at construction and exposes typed read/write/delete/enumerate
// operations over it.
//
// The store holds no document between calls: every operation loads the
// current on-disk state fresh, applies itself, and (for mutations)
// immediately serializes the result back. Each cycle runs under an
// exclusive advisory lock on the bound path, so stores in different
// processes bound to the same file serialize instead of racing.
type Store struct {
	path        string
	lockPath    string
	config      Config
	auditLogger *AuditLogger // Optional - nil when audit is disabled
}

// New creates a store bound to path with default configuration.
// Relative paths are resolved to absolute at construction; the binding
// is fixed for the store's lifetime. The file itself does not need to
// exist yet.
func New(path string) (*Store, error) {
	return NewWithConfig(path, Config{})
}

// NewWithConfig creates a store bound to path with explicit configuration.
func NewWithConfig(path string, config Config) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New(ErrCodeInvalidPath, "store path cannot be empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeInvalidPath, "invalid store path").
			WithContext("path", path)
	}

	cfg := config.WithDefaults()

	var auditLogger *AuditLogger
	if cfg.Audit.Enabled {
		auditLogger, err = NewAuditLogger(cfg.Audit)
		if err != nil {
			return nil, errors.Wrap(err, ErrCodeAuditError, "failed to initialize audit logger").
				WithContext("path", absPath)
		}
	}

	return &Store{
		path:        absPath,
		lockPath:    absPath + ".lock",
		config:      *cfg,
		auditLogger: auditLogger,
	}, nil
}

// Path returns the absolute file path the store is bound to.
func (s *Store) Path() string {
	return s.path
}

// Close flushes and closes the optional audit trail. The store itself
// holds no resources between operations and remains usable, but audit
// events after Close are dropped.
func (s *Store) Close() error {
	if s.auditLogger != nil {
		return s.auditLogger.Close()
	}
	return nil
}

// Write creates or overwrites the value for key in the named section,
// creating the file and section as needed, and persists the result
// immediately. Pass section "" for the unnamed global section.
func (s *Store) Write(section, key, value string) error {
	if key == "" {
		return errors.New(ErrCodeInvalidKey, "key cannot be empty")
	}

	return s.withLock(func() error {
		doc, err := s.load()
		if err != nil {
			return err
		}

		old, existed := doc.Get(section, key)
		doc.Set(section, key, value)

		if err := s.save(doc); err != nil {
			return err
		}

		if s.auditLogger != nil {
			if existed {
				s.auditLogger.LogValueChange(s.path, section, key, old, value)
			} else {
				s.auditLogger.LogValueChange(s.path, section, key, "", value)
			}
		}
		return nil
	})
}

// ReadString returns the stored value for key, or def when the key is
// absent. An existing key with an explicitly stored empty value returns
// "", not def.
func (s *Store) ReadString(section, key, def string) (string, error) {
	var out string
	err := s.withLock(func() error {
		doc, err := s.load()
		if err != nil {
			return err
		}
		out = docReadString(doc, section, key, def)
		return nil
	})
	return out, err
}

// ReadInt returns the stored value for key parsed as a decimal integer.
//
// The default applies only when the key is absent. A present value that
// does not begin with an optional sign followed by decimal digits
// yields 0, NOT def; a value that does begins yields its leading
// integer run ("123abc" reads as 123). This asymmetry is the historical
// profile-API contract and is preserved deliberately.
func (s *Store) ReadInt(section, key string, def int) (int, error) {
	var out int
	err := s.withLock(func() error {
		doc, err := s.load()
		if err != nil {
			return err
		}
		out = docReadInt(doc, section, key, def)
		return nil
	})
	return out, err
}

// ReadBool returns the stored value for key interpreted as a boolean.
// "true", "1" and "yes" read as true, "false", "0" and "no" as false,
// all case-insensitive. Anything else, including an absent key, yields
// def.
func (s *Store) ReadBool(section, key string, def bool) (bool, error) {
	var out bool
	err := s.withLock(func() error {
		doc, err := s.load()
		if err != nil {
			return err
		}
		out = docReadBool(doc, section, key, def)
		return nil
	})
	return out, err
}

// Sections returns the current section names in insertion order. The
// unnamed global section appears as "" when it holds entries.
func (s *Store) Sections() ([]string, error) {
	var out []string
	err := s.withLock(func() error {
		doc, err := s.load()
		if err != nil {
			return err
		}
		out = doc.SectionNames()
		return nil
	})
	return out, err
}

// SectionData returns the named section's entries as "key=value"
// strings in insertion order, or an empty slice when the section is
// absent or empty.
func (s *Store) SectionData(section string) ([]string, error) {
	out := []string{}
	err := s.withLock(func() error {
		doc, err := s.load()
		if err != nil {
			return err
		}
		if sec := doc.Section(section); sec != nil {
			out = sec.Data()
		}
		return nil
	})
	return out, err
}

// DeleteKey removes the entry for key in the named section. Removing an
// absent key is a successful no-op and does not touch the file.
func (s *Store) DeleteKey(section, key string) error {
	return s.withLock(func() error {
		doc, err := s.load()
		if err != nil {
			return err
		}

		if !doc.Delete(section, key) {
			return nil
		}

		if err := s.save(doc); err != nil {
			return err
		}

		if s.auditLogger != nil {
			s.auditLogger.LogStoreEvent("key_deleted", s.path, section, key)
		}
		return nil
	})
}

// DeleteSection removes the entire named section and its entries.
// Removing an absent section is a successful no-op.
func (s *Store) DeleteSection(section string) error {
	return s.withLock(func() error {
		doc, err := s.load()
		if err != nil {
			return err
		}

		if !doc.DeleteSection(section) {
			return nil
		}

		if err := s.save(doc); err != nil {
			return err
		}

		if s.auditLogger != nil {
			s.auditLogger.LogStoreEvent("section_deleted", s.path, section, "")
		}
		return nil
	})
}

// KeyExists reports whether key is present in the named section with a
// value of non-zero length. A key stored with an explicitly empty value
// reports false here even though ReadString returns "" rather than the
// default for it.
func (s *Store) KeyExists(section, key string) (bool, error) {
	var out bool
	err := s.withLock(func() error {
		doc, err := s.load()
		if err != nil {
			return err
		}
		v, ok := doc.Get(section, key)
		out = ok && len(v) > 0
		return nil
	})
	return out, err
}

// Snapshot loads and returns the current on-disk document under the
// store lock. The returned document is a private copy; mutating it does
// not affect the file.
func (s *Store) Snapshot() (*Document, error) {
	var doc *Document
	err := s.withLock(func() error {
		var loadErr error
		doc, loadErr = s.load()
		return loadErr
	})
	return doc, err
}

// withLock runs fn while holding the exclusive store lock.
func (s *Store) withLock(fn func() error) error {
	lock, err := acquireFileLock(s.lockPath, s.config.LockTimeout, s.config.LockRetryInterval)
	if err != nil {
		return err
	}
	defer lock.release()
	return fn()
}

// load parses the current on-disk state. A missing file is an empty
// document, not an error.
func (s *Store) load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDocument(), nil
		}
		return nil, errors.Wrap(err, ErrCodeStorageError, "failed to read profile file").
			WithContext("path", s.path)
	}
	return parseDocument(data), nil
}

// save atomically rewrites the whole file from the document. Whole-file
// rewrite per mutation is a known scalability ceiling accepted for
// small configuration files.
func (s *Store) save(doc *Document) error {
	data := serializeDocument(doc)

	dir := filepath.Dir(s.path)
	base := filepath.Base(s.path)

	// Temp file in the same directory so the rename stays on one
	// filesystem and either fully replaces the file or leaves it
	// untouched.
	tempPath := filepath.Join(dir, "."+base+".tmp."+fmt.Sprintf("%d", timecache.CachedTimeNano()))

	if err := os.WriteFile(tempPath, data, s.config.FileMode); err != nil {
		return errors.Wrap(err, ErrCodeStorageError, "failed to write temp file").
			WithContext("path", tempPath)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			fmt.Printf("Failed to cleanup temp file %s: %v\n", tempPath, removeErr)
		}
		return errors.Wrap(err, ErrCodeStorageError, "failed to rename temp file").
			WithContext("path", s.path)
	}

	return nil
}

// Document-level read semantics, shared by the Store operations and the
// Binder so both resolve values identically.

func docReadString(doc *Document, section, key, def string) string {
	if v, ok := doc.Get(section, key); ok {
		return v
	}
	return def
}

func docReadInt(doc *Document, section, key string, def int) int {
	v, ok := doc.Get(section, key)
	if !ok {
		return def
	}
	return leadingInt(v)
}

func docReadBool(doc *Document, section, key string, def bool) bool {
	v, ok := doc.Get(section, key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return def
	}
}

func docReadDuration(doc *Document, section, key string, def time.Duration) time.Duration {
	v, ok := doc.Get(section, key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// leadingInt parses the leading run of an optional sign and decimal
// digits. A value that does not begin with such a run, or whose run
// overflows int, yields 0.
func leadingInt(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0
	}

	neg := s[0] == '-'
	n := 0
	for k := i; k < j; k++ {
		d := int(s[k] - '0')
		if n > (math.MaxInt-d)/10 {
			return 0 // overflow
		}
		n = n*10 + d
	}
	if neg {
		return -n
	}
	return n
}
