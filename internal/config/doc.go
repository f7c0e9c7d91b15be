// Package config loads and merges tonecheck configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (OPENAI_TOKEN, TONECHECK_BACKEND_URL, TONECHECK_MODEL, etc.)
//  3. The local env file (.env by default), which never overrides variables
//     already present in the process environment
//  4. Config file ($XDG_CONFIG_HOME/tonecheck/config.json)
//  5. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to write a config file, and
// [SetField] to update a single key.
package config
