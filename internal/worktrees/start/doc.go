// Package start implements worktree creation for feature branches: attach to
// an existing branch or create the branch from a base reference, with an
// idempotent no-op when the branch already has a worktree.
package start
