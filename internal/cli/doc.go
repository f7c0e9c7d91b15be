// Package cli wires together the Cobra command tree for the tonecheck binary.
//
// The root command runs the analysis; config and version are the only
// subcommands. Flags are bound here, configuration is loaded once, and the
// outcome is mapped to a process exit code.
package cli
