package gitrepo

import "strings"

const (
	branchPathSeparatorConstant     = "/"
	slugPathSeparatorConstant       = "__"
	branchSpaceSeparatorConstant    = " "
	slugSpaceReplacementConstant    = "_"
)

// SlugifyBranchName derives a filesystem-friendly directory name from a branch name.
//
// Path separators become a double underscore and spaces a single underscore.
// The mapping is a best-effort heuristic, not a unique encoding: distinct
// branch names such as "a/b" and "a__b" collapse to the same slug. Callers
// accept this as a documented limitation of default worktree path derivation.
func SlugifyBranchName(branchName string) string {
	slug := strings.ReplaceAll(branchName, branchPathSeparatorConstant, slugPathSeparatorConstant)
	slug = strings.ReplaceAll(slug, branchSpaceSeparatorConstant, slugSpaceReplacementConstant)
	return slug
}
