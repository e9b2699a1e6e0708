// Package finish implements feature branch integration: merge the branch into
// a target branch using a chosen strategy, then remove the worktree and delete
// the branch. All preconditions are validated before the first mutating git
// command so a refused finish leaves the repository untouched.
package finish
