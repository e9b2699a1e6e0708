// Package gitrepo implements the read-only repository inspector used by the
// worktree services: repository root resolution, default branch detection,
// worktree enumeration, clean-tree checks, and branch slug derivation.
package gitrepo
