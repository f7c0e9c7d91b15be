// Package redact keeps the OpenAI token out of logs and console output.
//
// Detection combines exact replacement of known secret values with regex
// heuristics for common secret shapes (bearer tokens, JWTs, OpenAI keys and
// key assignments). [Mask] renders a token for display in `config show`.
package redact
