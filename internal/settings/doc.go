// Package settings models the settings a collector presents to the user.
//
// Each setting has a Definition with one of a closed set of Kinds. A Form
// holds the current values, normalizes input per kind and applies rules
// that tie settings together, such as LockRule.
package settings
