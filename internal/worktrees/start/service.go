package start

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/wtx/internal/execshell"
	"github.com/temirov/wtx/internal/gitrepo"
	pathutils "github.com/temirov/wtx/internal/utils/path"
	"github.com/temirov/wtx/internal/worktrees/prompt"
)

const (
	branchNameRequiredMessageConstant       = "branch name must be provided"
	gitExecutorMissingMessageConstant       = "git executor not configured"
	inspectorMissingMessageConstant         = "repository inspector not configured"
	prompterMissingMessageConstant          = "confirmation prompter not configured"
	worktreeCreationFailureTemplateConstant = "failed to create worktree at %s: %w"
	parentDirectoryFailureTemplateConstant  = "failed to prepare worktree parent directory %s: %w"
	confirmationQuestionTemplateConstant    = "Create worktree for branch %q at %s?"
	nextStepSuggestionTemplateConstant      = "cd %s"
	gitWorktreeSubcommandConstant           = "worktree"
	gitWorktreeAddVerbConstant              = "add"
	gitCreateBranchFlagConstant             = "-b"
	worktreeParentDirectoryPermissionsOctal = 0o755
)

// ErrBranchNameRequired indicates the branch option was empty.
var ErrBranchNameRequired = errors.New(branchNameRequiredMessageConstant)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrInspectorNotConfigured indicates the repository inspector dependency was missing.
var ErrInspectorNotConfigured = errors.New(inspectorMissingMessageConstant)

// ErrPrompterNotConfigured indicates the confirmation prompter dependency was missing.
var ErrPrompterNotConfigured = errors.New(prompterMissingMessageConstant)

// DirectoryCreator prepares worktree parent directories.
type DirectoryCreator func(path string, permissions os.FileMode) error

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	GitExecutor      gitrepo.GitExecutor
	Inspector        *gitrepo.RepositoryInspector
	Prompter         prompt.ConfirmationPrompter
	PathPlanner      *pathutils.WorktreePathPlanner
	DirectoryCreator DirectoryCreator
}

// Options configure a worktree start operation.
type Options struct {
	RepositoryPath string
	BranchName     string
	BaseReference  string
	WorktreePath   string
	AssumeYes      bool
}

// Result captures the outcome of a worktree start.
type Result struct {
	RepositoryRoot  string
	BranchName      string
	BaseReference   string
	WorktreePath    string
	WorktreeCreated bool
	BranchCreated   bool
	AlreadyExisted  bool
	Aborted         bool
	NextStep        string
}

// Service creates worktrees for feature branches.
type Service struct {
	executor         gitrepo.GitExecutor
	inspector        *gitrepo.RepositoryInspector
	prompter         prompt.ConfirmationPrompter
	pathPlanner      *pathutils.WorktreePathPlanner
	directoryCreator DirectoryCreator
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.Inspector == nil {
		return nil, ErrInspectorNotConfigured
	}
	if dependencies.Prompter == nil {
		return nil, ErrPrompterNotConfigured
	}

	pathPlanner := dependencies.PathPlanner
	if pathPlanner == nil {
		pathPlanner = pathutils.NewWorktreePathPlanner()
	}

	directoryCreator := dependencies.DirectoryCreator
	if directoryCreator == nil {
		directoryCreator = os.MkdirAll
	}

	return &Service{
		executor:         dependencies.GitExecutor,
		inspector:        dependencies.Inspector,
		prompter:         dependencies.Prompter,
		pathPlanner:      pathPlanner,
		directoryCreator: directoryCreator,
	}, nil
}

// Start creates or attaches a worktree for the requested branch.
//
// A branch that already has a worktree succeeds without prompting or touching
// the repository, so repeating the command is safe.
func (service *Service) Start(executionContext context.Context, options Options) (Result, error) {
	trimmedBranchName := strings.TrimSpace(options.BranchName)
	if len(trimmedBranchName) == 0 {
		return Result{}, ErrBranchNameRequired
	}

	repositoryRoot, rootError := service.inspector.ResolveRepositoryRoot(executionContext, options.RepositoryPath)
	if rootError != nil {
		return Result{}, rootError
	}

	existingWorktreePath, worktreeFound, findError := service.inspector.FindWorktreeForBranch(executionContext, repositoryRoot, trimmedBranchName)
	if findError != nil {
		return Result{}, findError
	}
	if worktreeFound {
		return Result{
			RepositoryRoot: repositoryRoot,
			BranchName:     trimmedBranchName,
			WorktreePath:   existingWorktreePath,
			AlreadyExisted: true,
			NextStep:       fmt.Sprintf(nextStepSuggestionTemplateConstant, existingWorktreePath),
		}, nil
	}

	branchKnown, branchLookupError := service.inspector.BranchExists(executionContext, repositoryRoot, trimmedBranchName)
	if branchLookupError != nil {
		return Result{}, branchLookupError
	}

	baseReference := ""
	if !branchKnown {
		resolvedBase, baseError := service.resolveBaseReference(executionContext, repositoryRoot, options.BaseReference)
		if baseError != nil {
			return Result{}, baseError
		}
		baseReference = resolvedBase
	}

	worktreePath := service.pathPlanner.ResolveRequestedPath(options.WorktreePath, repositoryRoot)
	if len(worktreePath) == 0 {
		worktreePath = service.pathPlanner.DefaultWorktreePath(repositoryRoot, gitrepo.SlugifyBranchName(trimmedBranchName))
	}

	if !options.AssumeYes {
		confirmed, confirmError := service.prompter.Confirm(fmt.Sprintf(confirmationQuestionTemplateConstant, trimmedBranchName, worktreePath))
		if confirmError != nil {
			return Result{}, confirmError
		}
		if !confirmed {
			return Result{
				RepositoryRoot: repositoryRoot,
				BranchName:     trimmedBranchName,
				BaseReference:  baseReference,
				WorktreePath:   worktreePath,
				Aborted:        true,
			}, nil
		}
	}

	parentDirectory := filepath.Dir(worktreePath)
	if directoryError := service.directoryCreator(parentDirectory, worktreeParentDirectoryPermissionsOctal); directoryError != nil {
		return Result{}, fmt.Errorf(parentDirectoryFailureTemplateConstant, parentDirectory, directoryError)
	}

	addArguments := []string{gitWorktreeSubcommandConstant, gitWorktreeAddVerbConstant, worktreePath, trimmedBranchName}
	if !branchKnown {
		addArguments = []string{gitWorktreeSubcommandConstant, gitWorktreeAddVerbConstant, gitCreateBranchFlagConstant, trimmedBranchName, worktreePath, baseReference}
	}

	if _, addError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        addArguments,
		WorkingDirectory: repositoryRoot,
	}); addError != nil {
		return Result{}, fmt.Errorf(worktreeCreationFailureTemplateConstant, worktreePath, addError)
	}

	return Result{
		RepositoryRoot:  repositoryRoot,
		BranchName:      trimmedBranchName,
		BaseReference:   baseReference,
		WorktreePath:    worktreePath,
		WorktreeCreated: true,
		BranchCreated:   !branchKnown,
		NextStep:        fmt.Sprintf(nextStepSuggestionTemplateConstant, worktreePath),
	}, nil
}

// resolveBaseReference picks the reference a new branch forks from: the caller's
// choice, the currently checked-out branch, or the detected default branch when
// HEAD is detached.
func (service *Service) resolveBaseReference(executionContext context.Context, repositoryRoot string, requestedBase string) (string, error) {
	trimmedBase := strings.TrimSpace(requestedBase)
	if len(trimmedBase) > 0 {
		return trimmedBase, nil
	}

	currentBranch, detachedHead, currentBranchError := service.inspector.CurrentBranch(executionContext, repositoryRoot)
	if currentBranchError != nil {
		return "", currentBranchError
	}
	if !detachedHead && len(currentBranch) > 0 {
		return currentBranch, nil
	}

	return service.inspector.DetectDefaultBranch(executionContext, repositoryRoot)
}
