// integration.go: Unified Integration Layer for Hestia + FlashFlags
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

// Combines FlashFlags command-line parsing with a profile store into
// one typed lookup surface. Precedence, highest first: explicit Set
// overrides, flags given on the command line, values from the bound
// profile section, then the flag's declared default.

package hestia

import (
	"fmt"
	"os"
	"strings"
	"time"

	flashflags "github.com/agilira/flash-flags"
)

// ConfigManager resolves configuration from flags, environment and an
// optional profile store with documented precedence.
type ConfigManager struct {
	// FlashFlags for command-line parsing
	flags *flashflags.FlagSet

	// Optional profile backing: values come from this store's section
	// when the flag was not set on the command line
	store   *Store
	section string

	// Application metadata
	appName        string
	appDescription string
	appVersion     string

	// Explicit overrides (highest precedence)
	values map[string]interface{}
}

// NewConfigManager creates a unified configuration manager
func NewConfigManager(appName string) *ConfigManager {
	return &ConfigManager{
		flags:   flashflags.New(appName),
		appName: appName,
		values:  make(map[string]interface{}),
	}
}

// SetDescription sets the application description for help text
func (cm *ConfigManager) SetDescription(description string) *ConfigManager {
	cm.appDescription = description
	cm.flags.SetDescription(description)
	return cm
}

// SetVersion sets the application version for help text
func (cm *ConfigManager) SetVersion(version string) *ConfigManager {
	cm.appVersion = version
	cm.flags.SetVersion(version)
	return cm
}

// WithStore backs the manager with a profile store. Flag names map
// directly to keys inside the given section ("" for the global
// section).
func (cm *ConfigManager) WithStore(store *Store, section string) *ConfigManager {
	cm.store = store
	cm.section = section
	return cm
}

// Flag Registration Methods - Fluent Interface

// StringFlag adds a string configuration flag
func (cm *ConfigManager) StringFlag(name, defaultValue, usage string) *ConfigManager {
	cm.flags.String(name, defaultValue, usage)
	return cm
}

// IntFlag adds an integer configuration flag
func (cm *ConfigManager) IntFlag(name string, defaultValue int, usage string) *ConfigManager {
	cm.flags.Int(name, defaultValue, usage)
	return cm
}

// BoolFlag adds a boolean configuration flag
func (cm *ConfigManager) BoolFlag(name string, defaultValue bool, usage string) *ConfigManager {
	cm.flags.Bool(name, defaultValue, usage)
	return cm
}

// DurationFlag adds a duration configuration flag
func (cm *ConfigManager) DurationFlag(name string, defaultValue time.Duration, usage string) *ConfigManager {
	cm.flags.Duration(name, defaultValue, usage)
	return cm
}

// Parse parses command-line arguments and binds them to configuration
func (cm *ConfigManager) Parse(args []string) error {
	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			return fmt.Errorf("help requested")
		}
	}

	if err := cm.flags.Parse(args); err != nil {
		return fmt.Errorf("failed to parse command-line flags: %w", err)
	}

	// FlashFlags resolves environment variables itself under this prefix
	cm.flags.SetEnvPrefix(strings.ToUpper(cm.appName))

	return nil
}

// ParseArgs is a convenience method that parses os.Args[1:]
func (cm *ConfigManager) ParseArgs() error {
	return cm.Parse(os.Args[1:])
}

// ParseArgsOrExit parses command-line arguments and exits gracefully on help/error
func (cm *ConfigManager) ParseArgsOrExit() {
	if err := cm.ParseArgs(); err != nil {
		if err.Error() == "help requested" {
			cm.PrintUsage()
			os.Exit(0)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
			cm.PrintUsage()
			os.Exit(1)
		}
	}
}

// Configuration Access Methods

// GetString retrieves a string configuration value
func (cm *ConfigManager) GetString(key string) string {
	if val, exists := cm.values[key]; exists {
		if str, ok := val.(string); ok {
			return str
		}
	}

	if cm.store != nil && !cm.flagChanged(key) {
		if v, err := cm.store.ReadString(cm.section, key, cm.flags.GetString(key)); err == nil {
			return v
		}
	}

	return cm.flags.GetString(key)
}

// GetInt retrieves an integer configuration value. A profile value
// without a leading integer run resolves to 0, per ReadInt semantics.
func (cm *ConfigManager) GetInt(key string) int {
	if val, exists := cm.values[key]; exists {
		if intVal, ok := val.(int); ok {
			return intVal
		}
	}

	if cm.store != nil && !cm.flagChanged(key) {
		if v, err := cm.store.ReadInt(cm.section, key, cm.flags.GetInt(key)); err == nil {
			return v
		}
	}

	return cm.flags.GetInt(key)
}

// GetBool retrieves a boolean configuration value
func (cm *ConfigManager) GetBool(key string) bool {
	if val, exists := cm.values[key]; exists {
		if boolVal, ok := val.(bool); ok {
			return boolVal
		}
	}

	if cm.store != nil && !cm.flagChanged(key) {
		if v, err := cm.store.ReadBool(cm.section, key, cm.flags.GetBool(key)); err == nil {
			return v
		}
	}

	return cm.flags.GetBool(key)
}

// GetDuration retrieves a duration configuration value
func (cm *ConfigManager) GetDuration(key string) time.Duration {
	if val, exists := cm.values[key]; exists {
		if durVal, ok := val.(time.Duration); ok {
			return durVal
		}
	}

	if cm.store != nil && !cm.flagChanged(key) {
		def := cm.flags.GetDuration(key)
		if raw, err := cm.store.ReadString(cm.section, key, ""); err == nil && raw != "" {
			if d, parseErr := time.ParseDuration(raw); parseErr == nil {
				return d
			}
		}
		return def
	}

	return cm.flags.GetDuration(key)
}

// Set explicitly sets a configuration value (highest precedence)
func (cm *ConfigManager) Set(key string, value interface{}) {
	cm.values[key] = value
}

// Utility Methods

// PrintUsage prints help information for all flags
func (cm *ConfigManager) PrintUsage() {
	cm.flags.PrintHelp()
}

// GetBoundFlags returns a map of flag names to the profile keys they
// resolve through.
func (cm *ConfigManager) GetBoundFlags() map[string]string {
	result := make(map[string]string)
	cm.flags.VisitAll(func(flag *flashflags.Flag) {
		name := flag.Name()
		if cm.section != "" {
			result[name] = cm.section + "/" + name
		} else {
			result[name] = name
		}
	})
	return result
}

// flagChanged reports whether the flag was set on the command line.
func (cm *ConfigManager) flagChanged(name string) bool {
	changed := false
	cm.flags.VisitAll(func(flag *flashflags.Flag) {
		if flag.Name() == name && flag.Changed() {
			changed = true
		}
	})
	return changed
}
