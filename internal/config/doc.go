// Package config loads, normalizes, and validates sleuth configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SLEUTH_ORIGINALS_DIR. The Config type centralizes every knob the matcher and
// CLI need: the originals folder, the active rule list, the acceptance
// threshold and its mode, and the tuning values of the image primitives.
//
// The acceptance threshold is deliberately explicit. It is either a fraction
// of the maximum achievable score or an absolute number of points, and the CLI
// can override both per invocation.
package config
