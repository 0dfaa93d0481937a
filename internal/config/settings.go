package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment override, e.g. DISCPACK_ZIP=true.
	EnvPrefix = "DISCPACK_"

	// ConfigFileName is the config file path relative to the XDG config dir.
	ConfigFileName = "discpack/config.toml"

	// DefaultName is the pack name used when none is configured.
	DefaultName = "custom_music_discs"

	// SetV2 and SetLegacy name the template sets.
	SetV2     = "v2"
	SetLegacy = "legacy"
)

var namePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// PackVersion holds the target pack formats.
type PackVersion struct {
	DP int `koanf:"dp" toml:"dp" yaml:"dp"`
	RP int `koanf:"rp" toml:"rp" yaml:"rp"`
}

// Settings holds all generation options.
type Settings struct {
	// Pack naming
	Name    string      `koanf:"name" toml:"name" yaml:"name"`
	Version PackVersion `koanf:"version" toml:"version" yaml:"version"`
	Offset  int         `koanf:"offset" toml:"offset" yaml:"offset"`

	// Pack icon, copied to pack.png in both packs
	Pack string `koanf:"pack" toml:"pack,omitempty" yaml:"pack,omitempty"`

	// Output
	Zip      bool   `koanf:"zip" toml:"zip" yaml:"zip"`
	LegacyDP bool   `koanf:"legacy_dp" toml:"legacy_dp" yaml:"legacy_dp"`
	Output   string `koanf:"output" toml:"output" yaml:"output"`

	// Template tree directory; empty uses the built-in templates
	Templates string `koanf:"templates" toml:"templates,omitempty" yaml:"templates,omitempty"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Name:    DefaultName,
		Version: PackVersion{DP: 15, RP: 15},
		Offset:  0,
		Zip:     false,
		Output:  ".",
	}
}

// ToMap returns the settings in mapping form.
func (s *Settings) ToMap() map[string]any {
	return map[string]any{
		"name":      s.Name,
		"version":   map[string]any{"dp": s.Version.DP, "rp": s.Version.RP},
		"offset":    s.Offset,
		"pack":      s.Pack,
		"zip":       s.Zip,
		"legacy_dp": s.LegacyDP,
		"output":    s.Output,
		"templates": s.Templates,
	}
}

// FromMap builds settings from a collector mapping layered over the
// defaults. Keys absent from values keep their default.
func FromMap(values map[string]any) (*Settings, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(DefaultSettings().ToMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return unmarshal(k)
}

// Load reads settings from path layered over the defaults, then applies
// DISCPACK_* environment variables. A missing file yields the defaults.
// The file format follows its extension: .yaml/.yml or TOML otherwise.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(DefaultSettings().ToMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	return unmarshal(k)
}

// DefaultPath returns the config file location under the XDG config dir.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(ConfigFileName)
}

// Save writes settings to path as TOML, or YAML for .yaml/.yml paths.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if isYAML(path) {
		enc := yamlv3.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	} else if err := gotoml.NewEncoder(&buf).Encode(s); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}

// ValidationError reports a setting that cannot be used for a run.
type ValidationError struct {
	Key    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Key, e.Reason)
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Validate checks the settings before a run. The name becomes a directory
// and function namespace, so it is restricted to [a-z0-9_].
func (s *Settings) Validate() error {
	if !namePattern.MatchString(s.Name) {
		return &ValidationError{Key: "name", Reason: fmt.Sprintf("%q must be lowercase letters, digits and underscores", s.Name)}
	}
	if s.Offset < 0 {
		return &ValidationError{Key: "offset", Reason: fmt.Sprintf("must not be negative, got %d", s.Offset)}
	}
	if s.Version.DP <= 0 || s.Version.RP <= 0 {
		return &ValidationError{Key: "version", Reason: fmt.Sprintf("pack formats must be positive, got dp=%d rp=%d", s.Version.DP, s.Version.RP)}
	}
	return nil
}

// TemplateSet returns the template set the behavior pack is rendered from.
// Legacy game versions always use the legacy set.
func (s *Settings) TemplateSet() string {
	if s.LegacyDP || s.Version.IsLegacy() {
		return SetLegacy
	}
	return SetV2
}

func unmarshal(k *koanf.Koanf) (*Settings, error) {
	var s Settings
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &s, conf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return &s, nil
}

// envKey maps DISCPACK_VERSION_DP to version.dp and DISCPACK_LEGACY_DP to
// legacy_dp.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "version_"); ok {
		return "version." + rest
	}
	return key
}

func parserFor(path string) koanf.Parser {
	if isYAML(path) {
		return yaml.Parser()
	}
	return toml.Parser()
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
