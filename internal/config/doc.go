// Package config loads and validates the TOML configuration file.
//
// Load starts from repository defaults, overlays the file when one exists,
// normalizes values (path expansion, env-var fallbacks for secrets, string
// trimming), and validates the result eagerly so layout or timing mistakes
// surface at startup instead of mid-batch.
package config
