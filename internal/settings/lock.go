package settings

import "github.com/handiism/discpack/internal/config"

// LockRule forces a check setting on while another setting's value
// requires it, and restores the user's choice once it no longer does.
type LockRule struct {
	// Source is the setting watched, Target the check that gets locked.
	Source string
	Target string
	// Requires reports whether the source value forces the target on.
	Requires func(source any) bool

	saved  any
	active bool
}

// NewLegacyLock locks legacy_dp on when the selected version's datapack
// format is at or below config.LegacyMaxFormat.
func NewLegacyLock() *LockRule {
	return &LockRule{
		Source:   "version",
		Target:   "legacy_dp",
		Requires: requiresLegacy,
	}
}

// Apply implements Rule.
func (r *LockRule) Apply(f *Form) {
	required := r.Requires(f.Value(r.Source))

	switch {
	case required && !r.active:
		r.saved = f.Value(r.Target)
		r.active = true
		f.Force(r.Target, true, true)
	case !required && r.active:
		r.active = false
		f.Force(r.Target, r.saved, false)
	}
}

func requiresLegacy(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	dp := NormalizeNumber(m["dp"], 0)
	return dp > 0 && dp <= config.LegacyMaxFormat
}
