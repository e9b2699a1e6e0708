package pathutils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const worktreesContainerDirectoryNameConstant = ".worktrees"

// WorktreePathPlanner derives and normalizes worktree directory locations.
type WorktreePathPlanner struct {
	homeExpander *HomeExpander
}

// NewWorktreePathPlanner constructs a planner with operating system home lookup.
func NewWorktreePathPlanner() *WorktreePathPlanner {
	return NewWorktreePathPlannerWithExpander(nil)
}

// NewWorktreePathPlannerWithExpander constructs a planner using the provided expander.
func NewWorktreePathPlannerWithExpander(homeExpander *HomeExpander) *WorktreePathPlanner {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}
	return &WorktreePathPlanner{homeExpander: resolvedExpander}
}

// DefaultWorktreePath derives the conventional worktree location for a branch slug:
// a .worktrees container beside the repository, partitioned by repository name.
func (planner *WorktreePathPlanner) DefaultWorktreePath(repositoryRoot string, branchSlug string) string {
	repositoryName := filepath.Base(repositoryRoot)
	repositoryParent := filepath.Dir(repositoryRoot)
	return filepath.Join(repositoryParent, worktreesContainerDirectoryNameConstant, repositoryName, branchSlug)
}

// ResolveRequestedPath normalizes a caller-provided worktree path. Tilde
// prefixes expand to the home directory and relative paths resolve against the
// repository root rather than the process working directory.
func (planner *WorktreePathPlanner) ResolveRequestedPath(requestedPath string, repositoryRoot string) string {
	trimmedPath := strings.TrimSpace(requestedPath)
	if len(trimmedPath) == 0 {
		return ""
	}

	expandedPath := planner.homeExpander.Expand(trimmedPath)
	if filepath.IsAbs(expandedPath) {
		return filepath.Clean(expandedPath)
	}
	return filepath.Clean(filepath.Join(repositoryRoot, expandedPath))
}

// Canonicalize cleans the path and makes it absolute when possible.
func Canonicalize(path string) string {
	cleanedPath := filepath.Clean(path)
	absolutePath, absoluteError := filepath.Abs(cleanedPath)
	if absoluteError == nil {
		return filepath.Clean(absolutePath)
	}
	return cleanedPath
}

// IsSamePath reports whether the two paths identify the same location after canonicalization.
func IsSamePath(firstPath string, secondPath string) bool {
	return comparisonPath(Canonicalize(firstPath)) == comparisonPath(Canonicalize(secondPath))
}

// IsWithinPath reports whether candidate equals parent or lives underneath it.
func IsWithinPath(parent string, candidate string) bool {
	parentClean := comparisonPath(Canonicalize(parent))
	candidateClean := comparisonPath(Canonicalize(candidate))

	if candidateClean == parentClean {
		return true
	}

	if len(candidateClean) <= len(parentClean) {
		return false
	}

	if !strings.HasPrefix(candidateClean, parentClean) {
		return false
	}

	parentEndsWithSeparator := parentClean[len(parentClean)-1] == os.PathSeparator
	if parentEndsWithSeparator {
		return true
	}

	return candidateClean[len(parentClean)] == os.PathSeparator
}

func comparisonPath(path string) string {
	comparison := filepath.Clean(path)
	if runtime.GOOS == "windows" {
		comparison = strings.ToLower(comparison)
	}
	return comparison
}
