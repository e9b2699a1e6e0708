package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/wtx/internal/execshell"
)

const (
	gitExecutorMissingMessageConstant   = "git executor not configured"
	notARepositoryMessageConstant       = "not inside a git repository"
	noDefaultBranchMessageConstant      = "unable to determine a default branch"
	notARepositoryTemplateConstant      = "%w: %s"
	gitRevParseSubcommandConstant       = "rev-parse"
	gitShowTopLevelFlagConstant         = "--show-toplevel"
	gitAbbrevRefFlagConstant            = "--abbrev-ref"
	gitHeadReferenceConstant            = "HEAD"
	gitSymbolicRefSubcommandConstant    = "symbolic-ref"
	gitShowRefSubcommandConstant        = "show-ref"
	gitQuietFlagConstant                = "--quiet"
	gitShortFlagConstant                = "--short"
	gitVerifyFlagConstant               = "--verify"
	gitStatusSubcommandConstant         = "status"
	gitStatusPorcelainFlagConstant      = "--porcelain"
	gitWorktreeSubcommandConstant       = "worktree"
	gitWorktreeListVerbConstant         = "list"
	gitWorktreePorcelainFlagConstant    = "--porcelain"
	originHeadReferenceConstant         = "refs/remotes/origin/HEAD"
	originReferencePrefixConstant       = "origin/"
	localBranchReferencePrefixConstant  = "refs/heads/"
	mainBranchNameConstant              = "main"
	masterBranchNameConstant            = "master"
	porcelainWorktreeFieldNameConstant  = "worktree"
	porcelainHeadFieldNameConstant      = "HEAD"
	porcelainBranchFieldNameConstant    = "branch"
	porcelainBareMarkerConstant         = "bare"
	porcelainDetachedMarkerConstant     = "detached"
	porcelainFieldSeparatorConstant     = " "
	currentDirectoryHintConstant        = "."
)

// ErrGitExecutorNotConfigured indicates the inspector was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrNotARepository indicates the hint path does not resolve to a git working tree.
var ErrNotARepository = errors.New(notARepositoryMessageConstant)

// ErrNoDefaultBranch indicates no default branch candidate applies and the caller must supply one.
var ErrNoDefaultBranch = errors.New(noDefaultBranchMessageConstant)

// GitExecutor exposes the subset of shell execution required by the inspector.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Worktree describes a single entry of `git worktree list --porcelain`.
type Worktree struct {
	// Path is the absolute filesystem path of the checked-out working directory.
	Path string
	// Branch is the short branch name, empty when the worktree is detached or bare.
	Branch string
	// Head is the commit identifier the worktree currently points at.
	Head string
	// Bare marks the bare repository entry.
	Bare bool
	// Detached marks a worktree without an associated branch.
	Detached bool
}

// RepositoryInspector answers read-only queries about a git repository.
type RepositoryInspector struct {
	executor GitExecutor
}

// NewRepositoryInspector constructs an inspector backed by the provided executor.
func NewRepositoryInspector(executor GitExecutor) (*RepositoryInspector, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryInspector{executor: executor}, nil
}

// ResolveRepositoryRoot returns the top-level working directory containing hintPath.
func (inspector *RepositoryInspector) ResolveRepositoryRoot(executionContext context.Context, hintPath string) (string, error) {
	trimmedHint := strings.TrimSpace(hintPath)
	if len(trimmedHint) == 0 {
		trimmedHint = currentDirectoryHintConstant
	}

	executionResult, executionError := inspector.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitShowTopLevelFlagConstant},
		WorkingDirectory: trimmedHint,
	})
	if executionError != nil {
		return "", fmt.Errorf(notARepositoryTemplateConstant, ErrNotARepository, trimmedHint)
	}

	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// CurrentBranch reports the short branch name checked out in directory and whether HEAD is detached.
func (inspector *RepositoryInspector) CurrentBranch(executionContext context.Context, directory string) (string, bool, error) {
	executionResult, executionError := inspector.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: directory,
	})
	if executionError != nil {
		return "", false, executionError
	}

	branchName := strings.TrimSpace(executionResult.StandardOutput)
	if branchName == gitHeadReferenceConstant {
		return "", true, nil
	}
	return branchName, false, nil
}

// DetectDefaultBranch resolves the branch used as an implicit merge target.
//
// Precedence: the remote's symbolic HEAD, a local main branch, a local master
// branch, then the currently checked-out branch when HEAD is not detached.
func (inspector *RepositoryInspector) DetectDefaultBranch(executionContext context.Context, repositoryRoot string) (string, error) {
	symbolicResult, symbolicError := inspector.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitSymbolicRefSubcommandConstant, gitQuietFlagConstant, gitShortFlagConstant, originHeadReferenceConstant},
		WorkingDirectory: repositoryRoot,
	})
	if symbolicError == nil {
		remoteHead := strings.TrimSpace(symbolicResult.StandardOutput)
		branchName := strings.TrimPrefix(remoteHead, originReferencePrefixConstant)
		if len(branchName) > 0 {
			return branchName, nil
		}
	} else if !isCommandFailure(symbolicError) {
		return "", symbolicError
	}

	for _, candidateBranch := range []string{mainBranchNameConstant, masterBranchNameConstant} {
		branchKnown, lookupError := inspector.BranchExists(executionContext, repositoryRoot, candidateBranch)
		if lookupError != nil {
			return "", lookupError
		}
		if branchKnown {
			return candidateBranch, nil
		}
	}

	currentBranch, detachedHead, currentBranchError := inspector.CurrentBranch(executionContext, repositoryRoot)
	if currentBranchError != nil {
		return "", currentBranchError
	}
	if !detachedHead && len(currentBranch) > 0 {
		return currentBranch, nil
	}

	return "", ErrNoDefaultBranch
}

// BranchExists reports whether the named local branch reference is known.
func (inspector *RepositoryInspector) BranchExists(executionContext context.Context, repositoryRoot string, branchName string) (bool, error) {
	_, executionError := inspector.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitShowRefSubcommandConstant, gitVerifyFlagConstant, gitQuietFlagConstant, localBranchReferencePrefixConstant + branchName},
		WorkingDirectory: repositoryRoot,
	})
	if executionError != nil {
		if isCommandFailure(executionError) {
			return false, nil
		}
		return false, executionError
	}
	return true, nil
}

// CheckCleanWorktree reports whether directory holds no staged, unstaged, or untracked changes.
func (inspector *RepositoryInspector) CheckCleanWorktree(executionContext context.Context, directory string) (bool, error) {
	executionResult, executionError := inspector.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant, gitStatusPorcelainFlagConstant},
		WorkingDirectory: directory,
	})
	if executionError != nil {
		return false, executionError
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) == 0, nil
}

// ListWorktrees enumerates the repository's worktrees including the primary working directory.
func (inspector *RepositoryInspector) ListWorktrees(executionContext context.Context, repositoryRoot string) ([]Worktree, error) {
	executionResult, executionError := inspector.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitWorktreeSubcommandConstant, gitWorktreeListVerbConstant, gitWorktreePorcelainFlagConstant},
		WorkingDirectory: repositoryRoot,
	})
	if executionError != nil {
		return nil, executionError
	}

	return parseWorktreePorcelain(executionResult.StandardOutput), nil
}

// FindWorktreeForBranch returns the path of the worktree checked out on branchName.
// The second return value reports whether such a worktree exists; absence is not an error.
func (inspector *RepositoryInspector) FindWorktreeForBranch(executionContext context.Context, repositoryRoot string, branchName string) (string, bool, error) {
	worktrees, listError := inspector.ListWorktrees(executionContext, repositoryRoot)
	if listError != nil {
		return "", false, listError
	}

	for _, worktree := range worktrees {
		if worktree.Branch == branchName {
			return worktree.Path, true, nil
		}
	}
	return "", false, nil
}

// PrimaryWorktreePath returns the path of the first non-bare worktree entry,
// which git guarantees to be the main working directory.
func (inspector *RepositoryInspector) PrimaryWorktreePath(executionContext context.Context, repositoryRoot string) (string, error) {
	worktrees, listError := inspector.ListWorktrees(executionContext, repositoryRoot)
	if listError != nil {
		return "", listError
	}

	for _, worktree := range worktrees {
		if !worktree.Bare {
			return worktree.Path, nil
		}
	}
	return repositoryRoot, nil
}

// parseWorktreePorcelain splits `git worktree list --porcelain` output into entries.
// Blocks are separated by blank lines; each line is a field name optionally
// followed by a value, with bare/detached appearing as standalone markers.
func parseWorktreePorcelain(porcelainOutput string) []Worktree {
	var worktrees []Worktree
	var current *Worktree

	for _, line := range strings.Split(strings.TrimRight(porcelainOutput, "\n"), "\n") {
		if len(line) == 0 {
			if current != nil {
				worktrees = append(worktrees, *current)
				current = nil
			}
			continue
		}

		fieldName, fieldValue, _ := strings.Cut(line, porcelainFieldSeparatorConstant)
		switch fieldName {
		case porcelainWorktreeFieldNameConstant:
			current = &Worktree{Path: fieldValue}
		case porcelainHeadFieldNameConstant:
			if current != nil {
				current.Head = fieldValue
			}
		case porcelainBranchFieldNameConstant:
			if current != nil {
				current.Branch = strings.TrimPrefix(fieldValue, localBranchReferencePrefixConstant)
			}
		case porcelainBareMarkerConstant:
			if current != nil {
				current.Bare = true
			}
		case porcelainDetachedMarkerConstant:
			if current != nil {
				current.Detached = true
			}
		}
	}

	if current != nil {
		worktrees = append(worktrees, *current)
	}

	return worktrees
}

func isCommandFailure(candidateError error) bool {
	var commandFailure execshell.CommandFailedError
	return errors.As(candidateError, &commandFailure)
}
