// Package config provides the generator settings.
//
// Settings are layered with koanf: built-in defaults, then an optional
// TOML or YAML file, then DISCPACK_* environment variables. A collector
// can also hand over a plain mapping with FromMap.
//
// Usage:
//
//	settings, err := config.Load(path)
//	if err != nil {
//	    return err
//	}
//	if err := settings.Validate(); err != nil {
//	    return err
//	}
package config
