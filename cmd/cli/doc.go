// Package cli assembles the wtx root command: configuration loading, logger
// construction, and registration of the worktree subcommands.
package cli
