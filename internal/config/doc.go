// Package config loads, validates, and normalizes outreach configuration.
//
// Configuration is stored as TOML. Load searches the explicit path first,
// then ~/.config/outreach/config.toml, then ./outreach.toml, and falls back
// to built-in defaults when no file exists. All directory values are expanded
// and made absolute before use.
package config
